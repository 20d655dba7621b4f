package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/totegamma/foodgram/internal/domain"
	"github.com/totegamma/foodgram/internal/infra/database/models"
)

type ShoppingListRepository struct {
	db *gorm.DB
}

func NewShoppingListRepository(db *gorm.DB) *ShoppingListRepository {
	return &ShoppingListRepository{db: db}
}

// Aggregate sums the ingredient amounts of every recipe in userID's cart,
// grouped by (name, unit) and ordered by name.
func (r *ShoppingListRepository) Aggregate(ctx context.Context, userID int64) ([]domain.ShoppingListItem, error) {
	var items []domain.ShoppingListItem
	err := r.db.WithContext(ctx).
		Table("recipe_ingredients AS ri").
		Select("i.name AS name, i.measurement_unit AS measurement_unit, SUM(ri.amount) AS total_amount").
		Joins("JOIN ingredients i ON i.id = ri.ingredient_id").
		Joins("JOIN carts c ON c.recipe_id = ri.recipe_id").
		Where("c.user_id = ?", userID).
		Group("i.name, i.measurement_unit").
		Order("i.name ASC, i.measurement_unit ASC").
		Scan(&items).Error
	if err != nil {
		return nil, translate(err, "shopping list", "ShoppingListRepository.Aggregate")
	}
	return items, nil
}

// CartExists reports whether userID has at least one recipe in the cart.
func (r *ShoppingListRepository) CartExists(ctx context.Context, userID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("user_id = ?", userID).
		Limit(1).
		Count(&n).Error
	if err != nil {
		return false, translate(err, "cart", "ShoppingListRepository.CartExists")
	}
	return n > 0, nil
}
