package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/totegamma/foodgram/internal/present/rest/presenter"
)

func (h *Handler) handleTagList(c echo.Context) error {
	ctx := c.Request().Context()

	tags, err := h.catalog.ListTags(ctx)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.OK(c, presenter.Tags(tags))
}

func (h *Handler) handleTagGet(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "tag")
	if err != nil {
		return h.fail(c, err)
	}

	tag, err := h.catalog.GetTag(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.OK(c, presenter.Tag(tag))
}

func (h *Handler) handleIngredientList(c echo.Context) error {
	ctx := c.Request().Context()

	ingredients, err := h.catalog.SearchIngredients(ctx, c.QueryParam("name"))
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.OK(c, presenter.Ingredients(ingredients))
}

func (h *Handler) handleIngredientGet(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "ingredient")
	if err != nil {
		return h.fail(c, err)
	}

	ingredient, err := h.catalog.GetIngredient(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.OK(c, presenter.Ingredient(ingredient))
}
