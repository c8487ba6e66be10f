package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/recipemanager/internal/client/client"
	"github.com/dmitrijs2005/recipemanager/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIdentity implements IdentityProvider.
type fakeIdentity struct {
	user *models.User
}

func (f *fakeIdentity) CurrentUser() *models.User { return f.user }

func sampleRecipes() []models.Recipe {
	return []models.Recipe{
		{ID: 1, Title: "Pancakes", Difficulty: models.DifficultyEasy, UserID: 1,
			Ingredients: []models.Ingredient{{Name: "flour"}, {Name: "milk"}, {Name: "egg"}}},
		{ID: 2, Title: "Beef Wellington", Difficulty: models.DifficultyHard, UserID: 2,
			Ingredients: []models.Ingredient{{Name: "beef"}, {Name: "pastry"}}},
		{ID: 3, Title: "Pancake Cake", Difficulty: models.DifficultyMedium, UserID: 1,
			Ingredients: []models.Ingredient{{Name: "flour"}, {Name: "cream"}}},
		{ID: 4, Title: "Toast", Difficulty: models.DifficultyEasy, UserID: 2,
			Ingredients: []models.Ingredient{{Name: "bread"}, {Name: "butter"}}},
	}
}

func newStore(fc *fakeClient, user *models.User) *RecipeStore {
	return NewRecipeStore(fc, &fakeIdentity{user: user}, testLogger())
}

func seed(t *testing.T, s *RecipeStore, fc *fakeClient, recipes []models.Recipe) {
	t.Helper()
	fc.ListRet = recipes
	require.NoError(t, s.FetchAll(context.Background()))
}

func TestFetchAll_ReplacesCollection(t *testing.T) {
	fc := &fakeClient{}
	s := newStore(fc, nil)
	seed(t, s, fc, sampleRecipes())

	// a second fetch replaces, never merges
	fc.ListRet = []models.Recipe{{ID: 9, Title: "Omelette", Difficulty: models.DifficultyEasy}}
	require.NoError(t, s.FetchAll(context.Background()))

	got := s.Recipes()
	require.Len(t, got, 1)
	assert.Equal(t, int64(9), got[0].ID)
}

func TestFetchAll_FailureLeavesCollectionUnchanged(t *testing.T) {
	fc := &fakeClient{}
	s := newStore(fc, nil)
	seed(t, s, fc, sampleRecipes())

	fc.ListRet = nil
	fc.ListErr = &client.APIError{Status: 502}

	err := s.FetchAll(context.Background())
	require.Error(t, err)

	assert.Len(t, s.Recipes(), 4)
	assert.Equal(t, "Failed to fetch recipes", s.Err())
	assert.False(t, s.Loading())
}

func TestFetchMine_ReplacesWithOwnedRecords(t *testing.T) {
	fc := &fakeClient{ListMineRet: sampleRecipes()[:2]}
	s := newStore(fc, &models.User{ID: 1})

	require.NoError(t, s.FetchMine(context.Background()))
	assert.Len(t, s.Recipes(), 2)
}

func TestFetchByID_PopulatesCurrentOnly(t *testing.T) {
	want := sampleRecipes()[1]
	fc := &fakeClient{GetRet: &want}
	s := newStore(fc, nil)

	require.NoError(t, s.FetchByID(context.Background(), 2))

	require.NotNil(t, s.Current())
	assert.Equal(t, int64(2), s.Current().ID)
	assert.Equal(t, int64(2), fc.LastGetID)
	assert.Empty(t, s.Recipes(), "collection must not be touched")
}

func TestCreate_AppendsServerReturnedRecord(t *testing.T) {
	fc := &fakeClient{}
	s := newStore(fc, nil)
	seed(t, s, fc, sampleRecipes())

	draft := models.Recipe{Title: "Soup", Difficulty: models.DifficultyEasy,
		Ingredients: []models.Ingredient{{Name: "water"}}}
	created := draft
	created.ID = 42
	created.CreatedDate = "2026-01-02T15:04:05Z"
	fc.CreateRet = &created

	got, err := s.Create(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)

	all := s.Recipes()
	require.Len(t, all, 5)
	assert.Equal(t, created, all[len(all)-1], "new last element equals the server's record")
}

func TestCreate_FailurePropagatesAndRecords(t *testing.T) {
	fc := &fakeClient{}
	s := newStore(fc, nil)
	seed(t, s, fc, sampleRecipes())

	fc.CreateErr = &client.APIError{Status: 400, Message: "title is required"}

	_, err := s.Create(context.Background(), models.Recipe{})
	require.Error(t, err)
	assert.Len(t, s.Recipes(), 4)
	assert.Equal(t, "title is required", s.Err())
}

func TestUpdate_ReplacesInPlacePreservingPosition(t *testing.T) {
	fc := &fakeClient{}
	s := newStore(fc, nil)
	seed(t, s, fc, sampleRecipes())

	updated := sampleRecipes()[1]
	updated.Title = "Vegetable Wellington"
	fc.UpdateRet = &updated

	_, err := s.Update(context.Background(), 2, updated)
	require.NoError(t, err)

	all := s.Recipes()
	require.Len(t, all, 4)
	assert.Equal(t, "Vegetable Wellington", all[1].Title)
	assert.Equal(t, int64(1), all[0].ID, "order preserved")
	assert.Equal(t, int64(3), all[2].ID, "order preserved")
}

func TestUpdate_UnknownIDIsDroppedFromCache(t *testing.T) {
	fc := &fakeClient{}
	s := newStore(fc, nil)
	before := sampleRecipes()
	seed(t, s, fc, before)

	ghost := models.Recipe{ID: 5, Title: "Ghost", Difficulty: models.DifficultyEasy}
	fc.UpdateRet = &ghost

	_, err := s.Update(context.Background(), 5, ghost)
	require.NoError(t, err, "the server-side mutation still succeeded")

	assert.Equal(t, before, s.Recipes(), "length and contents unchanged")
}

func TestDelete_RemovesMatchingRecord(t *testing.T) {
	fc := &fakeClient{}
	s := newStore(fc, nil)
	seed(t, s, fc, sampleRecipes())

	require.NoError(t, s.Delete(context.Background(), 2))

	all := s.Recipes()
	require.Len(t, all, 3)
	for _, r := range all {
		assert.NotEqual(t, int64(2), r.ID)
	}
	assert.Equal(t, int64(2), fc.LastDeleteID)
}

func TestDelete_AbsentIDIsNoOp(t *testing.T) {
	fc := &fakeClient{}
	s := newStore(fc, nil)
	before := sampleRecipes()
	seed(t, s, fc, before)

	require.NoError(t, s.Delete(context.Background(), 99))
	assert.Equal(t, before, s.Recipes())
	assert.Empty(t, s.Err())
}

func TestFiltered_DifficultyOnlyPreservesOrder(t *testing.T) {
	fc := &fakeClient{}
	s := newStore(fc, nil)
	seed(t, s, fc, sampleRecipes())

	s.SetFilters(Filters{Difficulty: models.DifficultyEasy, IngredientCount: 0, SearchText: ""})

	got := s.Filtered()
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(4), got[1].ID)
}

func TestFiltered_NeutralFiltersReturnAllInOrder(t *testing.T) {
	fc := &fakeClient{}
	s := newStore(fc, nil)
	seed(t, s, fc, sampleRecipes())

	got := s.Filtered()
	assert.Equal(t, sampleRecipes(), got)
}

func TestFiltered_IngredientCount(t *testing.T) {
	fc := &fakeClient{}
	s := newStore(fc, nil)
	seed(t, s, fc, sampleRecipes())

	s.SetFilters(Filters{IngredientCount: 2})

	got := s.Filtered()
	require.Len(t, got, 3)
	for _, r := range got {
		assert.Len(t, r.Ingredients, 2)
	}
}

func TestFiltered_SearchTextCaseInsensitive(t *testing.T) {
	fc := &fakeClient{}
	s := newStore(fc, nil)
	seed(t, s, fc, sampleRecipes())

	s.SetFilters(Filters{SearchText: "PANCAKE"})

	got := s.Filtered()
	require.Len(t, got, 2)
	assert.Equal(t, "Pancakes", got[0].Title)
	assert.Equal(t, "Pancake Cake", got[1].Title)
}

func TestFiltered_PredicatesAreConjunctive(t *testing.T) {
	fc := &fakeClient{}
	s := newStore(fc, nil)
	seed(t, s, fc, sampleRecipes())

	s.SetFilters(Filters{Difficulty: models.DifficultyEasy, IngredientCount: 3, SearchText: "pan"})

	got := s.Filtered()
	require.Len(t, got, 1)
	assert.Equal(t, "Pancakes", got[0].Title)
}

func TestMine_FiltersByCurrentIdentity(t *testing.T) {
	fc := &fakeClient{}
	s := newStore(fc, &models.User{ID: 1, Username: "alice"})
	seed(t, s, fc, sampleRecipes())

	got := s.Mine()
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
}

func TestMine_EmptyWithoutSession(t *testing.T) {
	fc := &fakeClient{}
	s := newStore(fc, nil)
	seed(t, s, fc, sampleRecipes())

	assert.Empty(t, s.Mine())
}

func TestClearFilters_RestoresNeutralSentinels(t *testing.T) {
	fc := &fakeClient{}
	s := newStore(fc, nil)
	seed(t, s, fc, sampleRecipes())

	s.SetFilters(Filters{Difficulty: models.DifficultyHard, IngredientCount: 2, SearchText: "x"})
	s.ClearFilters()

	assert.Equal(t, Filters{}, s.Filters())
	assert.Len(t, s.Filtered(), 4)
}

func TestReset_ReturnsStoreToInitialState(t *testing.T) {
	fc := &fakeClient{GetRet: &models.Recipe{ID: 1}}
	s := newStore(fc, nil)
	seed(t, s, fc, sampleRecipes())
	require.NoError(t, s.FetchByID(context.Background(), 1))
	s.SetFilters(Filters{SearchText: "pan"})

	s.Reset()

	assert.Empty(t, s.Recipes())
	assert.Nil(t, s.Current())
	assert.Equal(t, Filters{}, s.Filters())
	assert.Empty(t, s.Err())
	assert.False(t, s.Loading())
}

func TestErrorMessage_ServerMessagePreferred(t *testing.T) {
	fc := &fakeClient{DeleteErr: &client.APIError{Status: 409, Message: "recipe is referenced"}}
	s := newStore(fc, nil)

	err := s.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, "recipe is referenced", s.Err())
}

func TestErrorCleared_AtStartOfNextOperation(t *testing.T) {
	fc := &fakeClient{ListErr: &client.APIError{Status: 500}}
	s := newStore(fc, nil)

	require.Error(t, s.FetchAll(context.Background()))
	require.NotEmpty(t, s.Err())

	fc.ListErr = nil
	fc.ListRet = sampleRecipes()
	require.NoError(t, s.FetchAll(context.Background()))
	assert.Empty(t, s.Err())
}
