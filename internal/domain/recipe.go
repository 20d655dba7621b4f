package domain

import "time"

// IngredientAmount is an ingredient used by a recipe in a given quantity.
type IngredientAmount struct {
	Ingredient
	Amount int `json:"amount"`
}

type Recipe struct {
	ID          int64              `json:"id"`
	Author      User               `json:"author"`
	Name        string             `json:"name"`
	Text        string             `json:"text"`
	Image       string             `json:"image"`
	CookingTime int                `json:"cooking_time"`
	Tags        []Tag              `json:"tags"`
	Ingredients []IngredientAmount `json:"ingredients"`
	CDate       time.Time          `json:"cdate"`
}

// RecipeDetail is a recipe annotated for a particular requester.
type RecipeDetail struct {
	Recipe
	AuthorSubscribed bool
	IsFavorited      bool
	IsInShoppingCart bool
}

// RecipeFilter narrows recipe listings. Nil pointers are not applied.
type RecipeFilter struct {
	AuthorID    *int64
	TagSlugs    []string
	FavoritedBy *int64
	InCartOf    *int64
}

// IngredientInput references an existing ingredient by id.
type IngredientInput struct {
	ID     int64
	Amount int
}

// RecipeWrite carries the fields of a create or partial update.
// On update, nil fields are left untouched.
type RecipeWrite struct {
	Name        *string
	Text        *string
	CookingTime *int
	Image       *Image
	Tags        *[]int64
	Ingredients *[]IngredientInput
}

// Image is decoded upload content.
type Image struct {
	ContentType string
	Extension   string
	Data        []byte
}

// Page is one page of a listing plus the total number of matches.
type Page[T any] struct {
	Count   int64
	Results []T
}

// Pagination is a 1-based page request.
type Pagination struct {
	Page  int
	Limit int
}

func (p Pagination) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}
