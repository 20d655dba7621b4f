package domain

type ctxKey string

const (
	RequesterCtxKey ctxKey = "fg-requester"
	TokenCtxKey     ctxKey = "fg-token"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	ShoppingListFilename = "Shopping_list.txt"
	RecipeImagePrefix    = "recipes/images/"
	MaxNameLength        = 200
	MaxUserFieldLength   = 150
	MaxEmailLength       = 254
	MinPasswordLength    = 8
	MinCookingTime       = 1
	MinIngredientAmount  = 1
	ReservedUsername     = "me"
)
