package services

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/recipemanager/internal/client/client"
	"github.com/dmitrijs2005/recipemanager/internal/client/models"
	"github.com/dmitrijs2005/recipemanager/internal/logging"
)

// Fallback display messages for recipe operations.
const (
	fetchRecipesFailedMsg = "Failed to fetch recipes"
	fetchMineFailedMsg    = "Failed to fetch your recipes"
	fetchDetailFailedMsg  = "Failed to fetch recipe details"
	createRecipeFailedMsg = "Failed to create recipe"
	updateRecipeFailedMsg = "Failed to update recipe"
	deleteRecipeFailedMsg = "Failed to delete recipe"
)

// Filters is the view-derivation state for the recipe list. Zero values are
// the "unconstrained" sentinels: empty difficulty, zero ingredient count,
// empty search text.
type Filters struct {
	Difficulty      models.Difficulty
	IngredientCount int
	SearchText      string
}

// IdentityProvider is the slice of the session manager the store needs for
// identity-scoped views.
type IdentityProvider interface {
	CurrentUser() *models.User
}

// RecipeStore is a read-through/write-through mirror of the server's recipe
// collection. The server is the record of truth: the cache mutates only in
// response to confirmed server operations, and a full fetch always replaces
// the whole collection so stale and fresh records never mix.
//
// Concurrent operations share one loading/error pair; the most recently
// completing operation's status wins. The lock is never held across a
// network call.
type RecipeStore struct {
	mu       sync.Mutex
	client   client.Client
	identity IdentityProvider
	log      logging.Logger

	recipes []models.Recipe
	current *models.Recipe
	filters Filters
	loading bool
	errMsg  string
}

func NewRecipeStore(c client.Client, identity IdentityProvider, log logging.Logger) *RecipeStore {
	return &RecipeStore{client: c, identity: identity, log: log}
}

// FetchAll replaces the local collection with the server's full collection.
// On failure the collection is left unchanged.
func (s *RecipeStore) FetchAll(ctx context.Context) error {
	s.begin()
	defer s.finish()

	recipes, err := s.client.ListRecipes(ctx)
	if err != nil {
		s.fail(client.MessageOr(err, fetchRecipesFailedMsg))
		return err
	}

	s.mu.Lock()
	s.recipes = recipes
	s.mu.Unlock()

	s.log.Debug(ctx, "fetched recipes", "count", len(recipes))
	return nil
}

// FetchMine replaces the local collection with the records owned by the
// current identity. The call is not gated locally when unauthenticated;
// the server decides.
func (s *RecipeStore) FetchMine(ctx context.Context) error {
	s.begin()
	defer s.finish()

	recipes, err := s.client.ListMyRecipes(ctx)
	if err != nil {
		s.fail(client.MessageOr(err, fetchMineFailedMsg))
		return err
	}

	s.mu.Lock()
	s.recipes = recipes
	s.mu.Unlock()
	return nil
}

// FetchByID populates the current-record slot only; the collection is never
// touched.
func (s *RecipeStore) FetchByID(ctx context.Context, id int64) error {
	s.begin()
	defer s.finish()

	recipe, err := s.client.GetRecipe(ctx, id)
	if err != nil {
		s.fail(client.MessageOr(err, fetchDetailFailedMsg))
		return err
	}

	s.mu.Lock()
	s.current = recipe
	s.mu.Unlock()
	return nil
}

// Create sends the recipe (without id) to the server and appends the
// server-returned record to the end of the collection.
func (s *RecipeStore) Create(ctx context.Context, recipe models.Recipe) (*models.Recipe, error) {
	s.begin()
	defer s.finish()

	created, err := s.client.CreateRecipe(ctx, recipe)
	if err != nil {
		s.fail(client.MessageOr(err, createRecipeFailedMsg))
		return nil, err
	}

	s.mu.Lock()
	s.recipes = append(s.recipes, *created)
	s.mu.Unlock()

	s.log.Info(ctx, "recipe created", "id", created.ID, "title", created.Title)
	return created, nil
}

// Update sends the full record. On success the matching record is replaced
// in place, keeping its position. If no record with a matching id is cached
// the update is dropped locally — the cache only reflects records it
// already knew about, even though the server-side mutation happened.
func (s *RecipeStore) Update(ctx context.Context, id int64, recipe models.Recipe) (*models.Recipe, error) {
	s.begin()
	defer s.finish()

	updated, err := s.client.UpdateRecipe(ctx, id, recipe)
	if err != nil {
		s.fail(client.MessageOr(err, updateRecipeFailedMsg))
		return nil, err
	}

	s.mu.Lock()
	for i := range s.recipes {
		if s.recipes[i].ID == id {
			s.recipes[i] = *updated
			break
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// Delete issues the deletion and removes the matching record from the
// collection. Absence of a match is a no-op.
func (s *RecipeStore) Delete(ctx context.Context, id int64) error {
	s.begin()
	defer s.finish()

	if err := s.client.DeleteRecipe(ctx, id); err != nil {
		s.fail(client.MessageOr(err, deleteRecipeFailedMsg))
		return err
	}

	s.mu.Lock()
	for i := range s.recipes {
		if s.recipes[i].ID == id {
			s.recipes = append(s.recipes[:i], s.recipes[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.log.Info(ctx, "recipe deleted", "id", id)
	return nil
}

// Filtered recomputes the filtered view from the current collection and
// filter state: conjunction of exact difficulty, exact ingredient count and
// case-insensitive title substring, each skipped at its neutral sentinel.
// Original order is preserved.
func (s *RecipeStore) Filtered() []models.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Recipe, 0, len(s.recipes))
	search := strings.ToLower(s.filters.SearchText)

	for _, r := range s.recipes {
		if s.filters.Difficulty != "" && r.Difficulty != s.filters.Difficulty {
			continue
		}
		if s.filters.IngredientCount > 0 && len(r.Ingredients) != s.filters.IngredientCount {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(r.Title), search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Mine returns the cached records owned by the current identity. Signed out
// it yields an empty slice, never an error.
func (s *RecipeStore) Mine() []models.Recipe {
	user := s.identity.CurrentUser()
	if user == nil {
		return []models.Recipe{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		if r.UserID == user.ID {
			out = append(out, r)
		}
	}
	return out
}

// SetFilters replaces the filter state.
func (s *RecipeStore) SetFilters(f Filters) {
	s.mu.Lock()
	s.filters = f
	s.mu.Unlock()
}

// ClearFilters resets all filters to their unconstrained sentinels.
func (s *RecipeStore) ClearFilters() {
	s.SetFilters(Filters{})
}

func (s *RecipeStore) Filters() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Reset returns the store to its initial empty state. Subscribed to the
// session manager's session-ended signal so cached authenticated data never
// leaks into a later anonymous or different-user session.
func (s *RecipeStore) Reset() {
	s.mu.Lock()
	s.recipes = nil
	s.current = nil
	s.filters = Filters{}
	s.loading = false
	s.errMsg = ""
	s.mu.Unlock()
}

// Recipes returns a copy of the cached collection in insertion order.
func (s *RecipeStore) Recipes() []models.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Recipe, len(s.recipes))
	copy(out, s.recipes)
	return out
}

// Current returns a copy of the current-record slot, or nil when empty.
func (s *RecipeStore) Current() *models.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	r := *s.current
	return &r
}

func (s *RecipeStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *RecipeStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

func (s *RecipeStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()
}

func (s *RecipeStore) finish() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *RecipeStore) fail(msg string) {
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
}
