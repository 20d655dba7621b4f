package rest

import (
	"context"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/totegamma/foodgram"
	"github.com/totegamma/foodgram/internal/domain"
	"github.com/totegamma/foodgram/internal/present/rest/presenter"
	"github.com/totegamma/foodgram/internal/usecase"
)

func (h *Handler) handleRecipeList(c echo.Context) error {
	ctx := c.Request().Context()

	p, err := h.pagination(c)
	if err != nil {
		return h.fail(c, err)
	}

	input := usecase.RecipeListInput{
		Tags:             c.QueryParams()["tags"],
		IsFavorited:      queryBool(c, "is_favorited"),
		IsInShoppingCart: queryBool(c, "is_in_shopping_cart"),
	}
	if raw := c.QueryParam("author"); raw != "" {
		author, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return presenter.BadRequestMessage(c, "invalid author parameter")
		}
		input.AuthorID = &author
	}

	page, err := h.recipe.List(ctx, input, p)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.Paginated(c, p, page.Count, presenter.Recipes(c, h.config, page.Results))
}

func (h *Handler) handleRecipeGet(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "recipe")
	if err != nil {
		return h.fail(c, err)
	}

	detail, err := h.recipe.Get(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.OK(c, presenter.Recipe(c, h.config, detail))
}

func (h *Handler) handleRecipeCreate(c echo.Context) error {
	ctx := c.Request().Context()

	input, err := bindRecipeWrite(c)
	if err != nil {
		return h.fail(c, err)
	}

	detail, err := h.recipe.Create(ctx, input)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.Created(c, presenter.Recipe(c, h.config, detail))
}

func (h *Handler) handleRecipeUpdate(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "recipe")
	if err != nil {
		return h.fail(c, err)
	}

	input, err := bindRecipeWrite(c)
	if err != nil {
		return h.fail(c, err)
	}

	detail, err := h.recipe.Update(ctx, id, input)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.OK(c, presenter.Recipe(c, h.config, detail))
}

func (h *Handler) handleRecipeDelete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "recipe")
	if err != nil {
		return h.fail(c, err)
	}

	if err := h.recipe.Delete(ctx, id); err != nil {
		return h.fail(c, err)
	}
	return presenter.NoContent(c)
}

func (h *Handler) handleFavoriteAdd(c echo.Context) error {
	return h.markRecipe(c, h.recipe.AddFavorite)
}

func (h *Handler) handleFavoriteRemove(c echo.Context) error {
	return h.unmarkRecipe(c, h.recipe.RemoveFavorite)
}

func (h *Handler) handleCartAdd(c echo.Context) error {
	return h.markRecipe(c, h.recipe.AddToCart)
}

func (h *Handler) handleCartRemove(c echo.Context) error {
	return h.unmarkRecipe(c, h.recipe.RemoveFromCart)
}

func (h *Handler) handleDownloadShoppingCart(c echo.Context) error {
	ctx := c.Request().Context()

	list, err := h.shoppingList.Build(ctx)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.Attachment(c, domain.ShoppingListFilename, list.Render())
}

func (h *Handler) markRecipe(c echo.Context, mark func(ctx context.Context, id int64) (domain.Recipe, error)) error {
	id, err := pathID(c, "recipe")
	if err != nil {
		return h.fail(c, err)
	}

	recipe, err := mark(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.Created(c, presenter.RecipeShort(c, h.config, recipe))
}

func (h *Handler) unmarkRecipe(c echo.Context, unmark func(ctx context.Context, id int64) error) error {
	id, err := pathID(c, "recipe")
	if err != nil {
		return h.fail(c, err)
	}

	if err := unmark(c.Request().Context(), id); err != nil {
		return h.fail(c, err)
	}
	return presenter.NoContent(c)
}

// bindRecipeWrite decodes the body of a recipe create or update,
// including the base64 image.
func bindRecipeWrite(c echo.Context) (domain.RecipeWrite, error) {
	var req foodgram.RecipeWriteRequest
	if err := c.Bind(&req); err != nil {
		v := &domain.ValidationError{}
		v.Add("non_field_errors", "malformed request body")
		return domain.RecipeWrite{}, v
	}

	input := domain.RecipeWrite{
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Tags:        req.Tags,
	}
	if req.Ingredients != nil {
		ingredients := make([]domain.IngredientInput, 0, len(*req.Ingredients))
		for _, i := range *req.Ingredients {
			ingredients = append(ingredients, domain.IngredientInput{ID: i.ID, Amount: i.Amount})
		}
		input.Ingredients = &ingredients
	}
	if req.Image != nil {
		contentType, ext, data, err := foodgram.ParseImageDataURL(*req.Image)
		if err != nil {
			v := &domain.ValidationError{}
			v.Add("image", err.Error())
			return domain.RecipeWrite{}, v
		}
		input.Image = &domain.Image{ContentType: contentType, Extension: ext, Data: data}
	}
	return input, nil
}

func queryBool(c echo.Context, name string) bool {
	switch c.QueryParam(name) {
	case "1", "true", "True":
		return true
	default:
		return false
	}
}
