package usecase

import (
	"context"

	"github.com/totegamma/foodgram/internal/domain"
	"github.com/totegamma/foodgram/policy"
)

// UserRepository defines persistence for accounts.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	Get(ctx context.Context, id int64) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	List(ctx context.Context, p domain.Pagination) (domain.Page[domain.User], error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
}

// FollowRepository defines persistence for subscriptions.
type FollowRepository interface {
	Create(ctx context.Context, userID, authorID int64) error
	Delete(ctx context.Context, userID, authorID int64) (bool, error)
	Following(ctx context.Context, userID int64, authorIDs []int64) (map[int64]bool, error)
	ListAuthors(ctx context.Context, userID int64, p domain.Pagination) (domain.Page[domain.User], error)
}

// CatalogRepository defines lookups for tags and ingredients.
type CatalogRepository interface {
	ListTags(ctx context.Context) ([]domain.Tag, error)
	GetTag(ctx context.Context, id int64) (domain.Tag, error)
	SearchIngredients(ctx context.Context, prefix string) ([]domain.Ingredient, error)
	GetIngredient(ctx context.Context, id int64) (domain.Ingredient, error)
	ExistingTagIDs(ctx context.Context, ids []int64) (map[int64]bool, error)
	ExistingIngredientIDs(ctx context.Context, ids []int64) (map[int64]bool, error)
}

// RecipeRepository defines persistence for recipes and their links.
type RecipeRepository interface {
	Create(ctx context.Context, recipe domain.Recipe) (domain.Recipe, error)
	Update(ctx context.Context, recipe domain.Recipe, withTags, withIngredients bool) (domain.Recipe, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (domain.Recipe, error)
	List(ctx context.Context, filter domain.RecipeFilter, p domain.Pagination) (domain.Page[domain.Recipe], error)
	ListByAuthors(ctx context.Context, authorIDs []int64, limit int) (map[int64][]domain.Recipe, error)
	CountByAuthors(ctx context.Context, authorIDs []int64) (map[int64]int64, error)
}

// ActivityRepository defines persistence for favorites and cart membership.
type ActivityRepository interface {
	AddFavorite(ctx context.Context, userID, recipeID int64) error
	RemoveFavorite(ctx context.Context, userID, recipeID int64) (bool, error)
	AddToCart(ctx context.Context, userID, recipeID int64) error
	RemoveFromCart(ctx context.Context, userID, recipeID int64) (bool, error)
	Marks(ctx context.Context, userID int64, recipeIDs []int64) (favorited, inCart map[int64]bool, err error)
}

// ShoppingListRepository aggregates the ingredients of a user's cart.
type ShoppingListRepository interface {
	CartExists(ctx context.Context, userID int64) (bool, error)
	Aggregate(ctx context.Context, userID int64) ([]domain.ShoppingListItem, error)
}

// ImageStorage persists uploaded images.
type ImageStorage interface {
	Save(ctx context.Context, key string, img domain.Image) error
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(hash, password string) error
}

// TokenService issues and revokes auth tokens.
type TokenService interface {
	Issue(ctx context.Context, user domain.User) (string, error)
	Revoke(ctx context.Context, token string) error
}

// Authorizer decides policy actions.
type Authorizer interface {
	Allowed(ctx policy.RequestContext, action string) (bool, error)
}
