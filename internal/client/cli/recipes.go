package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/recipemanager/internal/client/models"
	"github.com/dmitrijs2005/recipemanager/internal/client/navigation"
)

var getTextDefault = GetTextDefault
var getMultiline = GetMultiline
var getList = GetList

// List fetches the full collection and prints it through the active
// filters.
func (a *App) List(ctx context.Context) error {
	if err := a.recipes.FetchAll(ctx); err != nil {
		fmt.Println(a.recipes.Err())
		return err
	}
	a.printRecipes(a.recipes.Filtered())
	return nil
}

// My fetches the authenticated user's recipes.
func (a *App) My(ctx context.Context) error {
	if !a.guard(navigation.RouteMyRecipes) {
		return nil
	}
	if err := a.recipes.FetchMine(ctx); err != nil {
		fmt.Println(a.recipes.Err())
		return err
	}
	a.printRecipes(a.recipes.Recipes())
	return nil
}

// Show fetches one recipe by id and prints the full record.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		fmt.Println(err)
		return err
	}
	if err := a.recipes.FetchByID(ctx, id); err != nil {
		fmt.Println(a.recipes.Err())
		return err
	}
	a.printDetail(a.recipes.Current())
	return nil
}

// Add prompts for a new recipe and creates it.
func (a *App) Add(ctx context.Context) error {
	if !a.guard(navigation.RouteCreate) {
		return nil
	}

	recipe, err := a.promptRecipe(models.Recipe{})
	if err != nil {
		return err
	}
	if user := a.sessions.CurrentUser(); user != nil {
		recipe.CreatorName = user.Name
	}

	created, err := a.recipes.Create(ctx, recipe)
	if err != nil {
		fmt.Println(a.recipes.Err())
		return err
	}
	fmt.Printf("Created recipe %d: %s\n", created.ID, created.Title)
	return nil
}

// Edit fetches the recipe, prompts for each field with the current value as
// the default, and sends the update.
func (a *App) Edit(ctx context.Context, args []string) error {
	if !a.guard(navigation.RouteEdit) {
		return nil
	}

	id, err := parseID(args)
	if err != nil {
		fmt.Println(err)
		return err
	}
	if err := a.recipes.FetchByID(ctx, id); err != nil {
		fmt.Println(a.recipes.Err())
		return err
	}
	current := a.recipes.Current()
	if current == nil {
		fmt.Println("Recipe not found.")
		return nil
	}

	recipe, err := a.promptRecipe(*current)
	if err != nil {
		return err
	}

	updated, err := a.recipes.Update(ctx, id, recipe)
	if err != nil {
		fmt.Println(a.recipes.Err())
		return err
	}
	fmt.Printf("Updated recipe %d: %s\n", updated.ID, updated.Title)
	return nil
}

// Delete removes the recipe with the given id.
func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		fmt.Println(err)
		return err
	}
	if err := a.recipes.Delete(ctx, id); err != nil {
		fmt.Println(a.recipes.Err())
		return err
	}
	fmt.Printf("Deleted recipe %d.\n", id)
	return nil
}

// Filter adjusts one criterion of the active filter set. Criteria combine:
// a recipe must satisfy all of them to be listed.
//
//	filter difficulty Easy|Medium|Hard
//	filter ingredients <n>
//	filter search <text...>
func (a *App) Filter(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Println("Usage: filter difficulty <level> | filter ingredients <n> | filter search <text>")
		return nil
	}

	f := a.recipes.Filters()
	switch args[0] {
	case "difficulty":
		d := models.Difficulty(args[1])
		if !d.Valid() {
			fmt.Println("Difficulty must be Easy, Medium or Hard.")
			return nil
		}
		f.Difficulty = d
	case "ingredients":
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 0 {
			fmt.Println("Ingredient count must be a non-negative number.")
			return nil
		}
		f.IngredientCount = n
	case "search":
		f.SearchText = strings.Join(args[1:], " ")
	default:
		fmt.Println("Unknown filter criterion:", args[0])
		return nil
	}

	a.recipes.SetFilters(f)
	a.printRecipes(a.recipes.Filtered())
	return nil
}

// ClearFilter drops all filter criteria.
func (a *App) ClearFilter(ctx context.Context) error {
	a.recipes.ClearFilters()
	fmt.Println("Filters cleared.")
	return nil
}

func (a *App) printRecipes(recipes []models.Recipe) {
	if len(recipes) == 0 {
		fmt.Println("No recipes.")
		return
	}
	for _, r := range recipes {
		fmt.Printf("%4d  %-30s %-6s %d ingredients  by %s\n",
			r.ID, r.Title, r.Difficulty, len(r.Ingredients), r.CreatorName)
	}
}

func (a *App) printDetail(r *models.Recipe) {
	if r == nil {
		fmt.Println("No recipe loaded.")
		return
	}
	fmt.Printf("#%d %s (%s)\n", r.ID, r.Title, r.Difficulty)
	fmt.Printf("by %s", r.CreatorName)
	if r.CreatedDate != "" {
		fmt.Printf(", %s", r.CreatedDate)
	}
	fmt.Println()
	if r.ImageURL != "" {
		fmt.Println("Image:", r.ImageURL)
	}
	fmt.Println("Ingredients:")
	for _, ing := range r.Ingredients {
		fmt.Println("  -", ing.Name)
	}
	fmt.Println("Instructions:")
	fmt.Println(r.Instructions)
}

// promptRecipe collects every editable field. When base carries values they
// become the defaults, so edits only need to touch the fields that change.
func (a *App) promptRecipe(base models.Recipe) (models.Recipe, error) {
	title, err := getTextDefault(a.reader, "Title", base.Title, os.Stdout)
	if err != nil {
		return models.Recipe{}, err
	}

	var difficulty models.Difficulty
	for {
		d, err := getTextDefault(a.reader, "Difficulty (Easy/Medium/Hard)", string(base.Difficulty), os.Stdout)
		if err != nil {
			return models.Recipe{}, err
		}
		difficulty = models.Difficulty(d)
		if difficulty.Valid() {
			break
		}
		fmt.Println("Difficulty must be Easy, Medium or Hard.")
	}

	imageURL, err := getTextDefault(a.reader, "Image URL", base.ImageURL, os.Stdout)
	if err != nil {
		return models.Recipe{}, err
	}

	names, err := getList(a.reader, "Ingredients", os.Stdout)
	if err != nil {
		return models.Recipe{}, err
	}
	ingredients := base.Ingredients
	if len(names) > 0 {
		ingredients = make([]models.Ingredient, 0, len(names))
		for _, n := range names {
			ingredients = append(ingredients, models.Ingredient{Name: n})
		}
	}

	instructions, err := getMultiline(a.reader, "Instructions", os.Stdout)
	if err != nil {
		return models.Recipe{}, err
	}
	if instructions == "" {
		instructions = base.Instructions
	}

	return models.Recipe{
		Title:        title,
		Difficulty:   difficulty,
		Instructions: instructions,
		ImageURL:     imageURL,
		CreatorName:  base.CreatorName,
		Ingredients:  ingredients,
	}, nil
}

func parseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("an id argument is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}
