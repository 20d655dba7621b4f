package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/totegamma/foodgram/internal/domain"
	"github.com/totegamma/foodgram/internal/infra/database/models"
)

// ActivityRepository stores per-user recipe marks: favorites and the shopping cart.
type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) AddFavorite(ctx context.Context, userID, recipeID int64) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&models.Favorite{UserID: userID, RecipeID: recipeID}).Error
	if err != nil {
		return conflictAs(translate(err, "favorite", "ActivityRepository.AddFavorite"), "recipe is already in favorites")
	}
	return nil
}

func (r *ActivityRepository) RemoveFavorite(ctx context.Context, userID, recipeID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return false, translate(result.Error, "favorite", "ActivityRepository.RemoveFavorite")
	}
	return result.RowsAffected > 0, nil
}

func (r *ActivityRepository) AddToCart(ctx context.Context, userID, recipeID int64) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&models.Cart{UserID: userID, RecipeID: recipeID}).Error
	if err != nil {
		return conflictAs(translate(err, "cart item", "ActivityRepository.AddToCart"), "recipe is already in the shopping cart")
	}
	return nil
}

func (r *ActivityRepository) RemoveFromCart(ctx context.Context, userID, recipeID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Cart{})
	if result.Error != nil {
		return false, translate(result.Error, "cart item", "ActivityRepository.RemoveFromCart")
	}
	return result.RowsAffected > 0, nil
}

// Marks reports which of recipeIDs userID has favorited and put in the cart.
func (r *ActivityRepository) Marks(ctx context.Context, userID int64, recipeIDs []int64) (favorited, inCart map[int64]bool, err error) {
	favorited = map[int64]bool{}
	inCart = map[int64]bool{}
	if userID == 0 || len(recipeIDs) == 0 {
		return favorited, inCart, nil
	}

	var ids []int64
	err = r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, nil, translate(err, "favorite", "ActivityRepository.Marks")
	}
	for _, id := range ids {
		favorited[id] = true
	}

	ids = nil
	err = r.db.WithContext(ctx).Model(&models.Cart{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, nil, translate(err, "cart item", "ActivityRepository.Marks")
	}
	for _, id := range ids {
		inCart[id] = true
	}

	return favorited, inCart, nil
}

func conflictAs(err error, message string) error {
	if _, ok := err.(domain.ConflictError); ok {
		return domain.ConflictError{Message: message}
	}
	return err
}
