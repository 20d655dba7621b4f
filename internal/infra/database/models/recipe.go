package models

import (
	"time"
)

type Recipe struct {
	ID          int64              `json:"id" gorm:"primaryKey;autoIncrement"`
	AuthorID    int64              `json:"author_id" gorm:"not null;uniqueIndex:uniq_recipe_author,priority:1"`
	Author      User               `json:"author" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Name        string             `json:"name" gorm:"type:varchar(200);not null;uniqueIndex:uniq_recipe_author,priority:2"`
	Text        string             `json:"text" gorm:"type:text;not null"`
	CookingTime int                `json:"cooking_time" gorm:"not null;check:cooking_time_positive,cooking_time >= 1"`
	Image       string             `json:"image" gorm:"type:text;not null"`
	Tags        []Tag              `json:"tags" gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE;"`
	Ingredients []RecipeIngredient `json:"ingredients" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE;"`
	CDate       time.Time          `json:"cdate" gorm:"autoCreateTime"`
}

type RecipeTag struct {
	RecipeID int64 `json:"recipe_id" gorm:"primaryKey"`
	TagID    int64 `json:"tag_id" gorm:"primaryKey;index"`
}

// RecipeIngredient is unique per (recipe, ingredient); the primary key enforces it.
type RecipeIngredient struct {
	RecipeID     int64      `json:"recipe_id" gorm:"primaryKey"`
	IngredientID int64      `json:"ingredient_id" gorm:"primaryKey;index"`
	Ingredient   Ingredient `json:"ingredient" gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE;"`
	Amount       int        `json:"amount" gorm:"not null;check:amount_positive,amount >= 1"`
}

type Favorite struct {
	UserID   int64     `json:"user_id" gorm:"primaryKey"`
	User     User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	RecipeID int64     `json:"recipe_id" gorm:"primaryKey;index"`
	Recipe   Recipe    `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE;"`
	CDate    time.Time `json:"cdate" gorm:"autoCreateTime"`
}

// Cart membership is binary: a row either exists or not.
type Cart struct {
	UserID   int64     `json:"user_id" gorm:"primaryKey"`
	User     User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	RecipeID int64     `json:"recipe_id" gorm:"primaryKey;index"`
	Recipe   Recipe    `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE;"`
	CDate    time.Time `json:"cdate" gorm:"autoCreateTime"`
}
