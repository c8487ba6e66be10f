package client

import (
	"context"

	"github.com/dmitrijs2005/recipemanager/internal/client/models"
)

// Client is the remote recipe manager API as seen by the stores. The
// concrete implementation is RESTClient; tests substitute fakes.
type Client interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	ListRecipes(ctx context.Context) ([]models.Recipe, error)
	ListMyRecipes(ctx context.Context) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, id int64) (*models.Recipe, error)
	CreateRecipe(ctx context.Context, recipe models.Recipe) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, id int64, recipe models.Recipe) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id int64) error
	Close() error
}
