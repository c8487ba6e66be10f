// Package models defines the data types exchanged with the recipe manager
// API and mirrored by the client-side stores.
package models

// Difficulty is the recipe difficulty level as the server knows it.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Valid reports whether d is one of the known difficulty levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Ingredient is a single named ingredient of a recipe. ID is assigned by
// the server and absent on ingredients that were never persisted.
type Ingredient struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"ingredient_name"`
}

// Recipe is a recipe record as served by the API.
//
// ID is zero until the server assigns one; a recipe without an ID exists
// only transiently while a create call is in flight. UserID identifies the
// owner and is filled in by the server.
type Recipe struct {
	ID           int64        `json:"id,omitempty"`
	Title        string       `json:"title"`
	Difficulty   Difficulty   `json:"difficulty"`
	Instructions string       `json:"instructions"`
	ImageURL     string       `json:"image_url,omitempty"`
	CreatorName  string       `json:"creator_name"`
	CreatedDate  string       `json:"created_date,omitempty"`
	UserID       int64        `json:"user_id,omitempty"`
	Ingredients  []Ingredient `json:"ingredients"`
}
