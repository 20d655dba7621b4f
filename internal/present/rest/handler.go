package rest

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/totegamma/foodgram/internal/domain"
	"github.com/totegamma/foodgram/internal/logger"
	"github.com/totegamma/foodgram/internal/present/rest/middleware"
	"github.com/totegamma/foodgram/internal/present/rest/presenter"
	"github.com/totegamma/foodgram/internal/usecase"
)

type Handler struct {
	config       domain.Config
	log          *logger.Logger
	user         *usecase.UserUsecase
	subscription *usecase.SubscriptionUsecase
	catalog      *usecase.CatalogUsecase
	recipe       *usecase.RecipeUsecase
	shoppingList *usecase.ShoppingListUsecase
}

func NewHandler(
	config domain.Config,
	log *logger.Logger,
	user *usecase.UserUsecase,
	subscription *usecase.SubscriptionUsecase,
	catalog *usecase.CatalogUsecase,
	recipe *usecase.RecipeUsecase,
	shoppingList *usecase.ShoppingListUsecase,
) *Handler {
	return &Handler{
		config:       config,
		log:          log.With("component", "rest"),
		user:         user,
		subscription: subscription,
		catalog:      catalog,
		recipe:       recipe,
		shoppingList: shoppingList,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	auth := middleware.RequireAuth

	api.POST("/auth/token/login/", h.handleLogin)
	api.POST("/auth/token/logout/", h.handleLogout, auth)

	api.GET("/users/", h.handleUserList)
	api.POST("/users/", h.handleUserCreate)
	api.GET("/users/me/", h.handleUserMe, auth)
	api.POST("/users/set_password/", h.handleSetPassword, auth)
	api.GET("/users/subscriptions/", h.handleSubscriptions, auth)
	api.GET("/users/:id/", h.handleUserGet)
	api.POST("/users/:id/subscribe/", h.handleSubscribe, auth)
	api.DELETE("/users/:id/subscribe/", h.handleUnsubscribe, auth)

	api.GET("/tags/", h.handleTagList)
	api.GET("/tags/:id/", h.handleTagGet)
	api.GET("/ingredients/", h.handleIngredientList)
	api.GET("/ingredients/:id/", h.handleIngredientGet)

	api.GET("/recipes/", h.handleRecipeList)
	api.POST("/recipes/", h.handleRecipeCreate, auth)
	api.GET("/recipes/download_shopping_cart/", h.handleDownloadShoppingCart, auth)
	api.GET("/recipes/:id/", h.handleRecipeGet)
	api.PATCH("/recipes/:id/", h.handleRecipeUpdate, auth)
	api.DELETE("/recipes/:id/", h.handleRecipeDelete, auth)
	api.POST("/recipes/:id/favorite/", h.handleFavoriteAdd, auth)
	api.DELETE("/recipes/:id/favorite/", h.handleFavoriteRemove, auth)
	api.POST("/recipes/:id/shopping_cart/", h.handleCartAdd, auth)
	api.DELETE("/recipes/:id/shopping_cart/", h.handleCartRemove, auth)
}

// fail renders err and logs it when it is not a known domain error.
func (h *Handler) fail(c echo.Context, err error) error {
	unexpected, rerr := presenter.Error(c, err)
	if unexpected {
		h.log.Error("request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
	}
	return rerr
}

func (h *Handler) pagination(c echo.Context) (domain.Pagination, error) {
	return presenter.ParsePagination(c, h.config)
}

func pathID(c echo.Context, resource string) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, domain.NotFoundError{Resource: resource}
	}
	return id, nil
}

// queryInt parses an optional integer query parameter; malformed values
// count as absent.
func queryInt(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return n
}
