package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/recipemanager/internal/client/client"
	"github.com/dmitrijs2005/recipemanager/internal/client/config"
	"github.com/dmitrijs2005/recipemanager/internal/client/navigation"
	"github.com/dmitrijs2005/recipemanager/internal/client/services"
	"github.com/dmitrijs2005/recipemanager/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the client together: config, transport pipeline, session
// manager, recipe store and the REPL on top of them.
type App struct {
	config    *config.Config
	log       logging.Logger
	apiClient client.Client
	sessions  *services.SessionManager
	recipes   *services.RecipeStore
	nav       *PromptNavigator
	reader    *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing local database", "err", err)
		return nil, err
	}

	nav := NewPromptNavigator(os.Stdout)

	pipeline := client.NewPipeline()
	apiClient := client.NewRESTClient(c.APIBaseURL, pipeline)

	sessions := services.NewSessionManager(apiClient, db, logger)
	recipes := services.NewRecipeStore(apiClient, sessions, logger)
	sessions.OnSessionEnded(recipes.Reset)

	// Stage order: request id first, then the credential; the auth-failure
	// handler reacts to every failing response.
	pipeline.Use(client.RequestID())
	pipeline.Use(client.BearerToken(sessions.Token))
	pipeline.OnFailure(client.AuthFailure(sessions, nav))

	if err := sessions.Restore(ctx); err != nil {
		logger.Warn(ctx, "could not restore session", "err", err)
	}

	return &App{
		config:    c,
		log:       logger,
		apiClient: apiClient,
		sessions:  sessions,
		recipes:   recipes,
		nav:       nav,
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.apiClient.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.sessions.IsAuthenticated()
}

// guard resolves the intended transition against the current session and
// pushes the redirect when access is denied. Returns true when the command
// may proceed.
func (a *App) guard(name navigation.RouteName) bool {
	resolved := navigation.Resolve(navigation.Route{Name: name}, a.sessions.IsAuthenticated())
	if resolved.Name != name {
		a.nav.Push(resolved)
		return false
	}
	return true
}
