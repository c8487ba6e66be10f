package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	if user := a.sessions.CurrentUser(); user != nil {
		return fmt.Sprintf("(%s)", user.Username)
	}
	return "(guest)"
}

func (a *App) Root(ctx context.Context) {
	fmt.Println("Recipe Manager CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
