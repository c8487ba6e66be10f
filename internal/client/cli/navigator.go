package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/recipemanager/internal/client/navigation"
)

// PromptNavigator renders navigation events as prompt lines. It also keeps
// the last pushed route so the REPL can reflect forced redirects (e.g. a
// session expiry detected mid-command).
type PromptNavigator struct {
	mu   sync.Mutex
	w    io.Writer
	last *navigation.Route
}

func NewPromptNavigator(w io.Writer) *PromptNavigator {
	return &PromptNavigator{w: w}
}

func (n *PromptNavigator) Push(route navigation.Route) {
	n.mu.Lock()
	n.last = &route
	n.mu.Unlock()

	if msg := route.Query[navigation.QueryMessage]; msg != "" {
		fmt.Fprintln(n.w, msg)
	}
	fmt.Fprintf(n.w, "-> %s\n", route.Name)
}

// Last returns the most recently pushed route, or nil when none was pushed.
func (n *PromptNavigator) Last() *navigation.Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}
