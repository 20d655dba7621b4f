package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/totegamma/foodgram"
	"github.com/totegamma/foodgram/internal/present/rest/presenter"
	"github.com/totegamma/foodgram/internal/usecase"
)

func (h *Handler) handleUserCreate(c echo.Context) error {
	ctx := c.Request().Context()

	var req foodgram.UserCreateRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequestMessage(c, "malformed request body")
	}

	user, err := h.user.Register(ctx, usecase.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.Created(c, presenter.UserCreated(user))
}

func (h *Handler) handleUserList(c echo.Context) error {
	ctx := c.Request().Context()

	p, err := h.pagination(c)
	if err != nil {
		return h.fail(c, err)
	}

	page, err := h.user.List(ctx, p)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.Paginated(c, p, page.Count, presenter.Users(page.Results))
}

func (h *Handler) handleUserGet(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "user")
	if err != nil {
		return h.fail(c, err)
	}

	profile, err := h.user.Get(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.OK(c, presenter.User(profile.User, profile.IsSubscribed))
}

func (h *Handler) handleUserMe(c echo.Context) error {
	ctx := c.Request().Context()

	profile, err := h.user.Me(ctx)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.OK(c, presenter.User(profile.User, profile.IsSubscribed))
}

func (h *Handler) handleSetPassword(c echo.Context) error {
	ctx := c.Request().Context()

	var req foodgram.SetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequestMessage(c, "malformed request body")
	}

	if err := h.user.SetPassword(ctx, req.CurrentPassword, req.NewPassword); err != nil {
		return h.fail(c, err)
	}
	return presenter.NoContent(c)
}

func (h *Handler) handleLogin(c echo.Context) error {
	ctx := c.Request().Context()

	var req foodgram.LoginRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequestMessage(c, "malformed request body")
	}

	token, err := h.user.Login(ctx, req.Email, req.Password)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.OK(c, foodgram.TokenResponse{AuthToken: token})
}

func (h *Handler) handleLogout(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.user.Logout(ctx); err != nil {
		return h.fail(c, err)
	}
	return presenter.NoContent(c)
}

func (h *Handler) handleSubscriptions(c echo.Context) error {
	ctx := c.Request().Context()

	p, err := h.pagination(c)
	if err != nil {
		return h.fail(c, err)
	}

	page, err := h.subscription.List(ctx, p, queryInt(c, "recipes_limit"))
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.Paginated(c, p, page.Count, presenter.Subscriptions(c, h.config, page.Results))
}

func (h *Handler) handleSubscribe(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "user")
	if err != nil {
		return h.fail(c, err)
	}

	sub, err := h.subscription.Subscribe(ctx, id, queryInt(c, "recipes_limit"))
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.Created(c, presenter.Subscription(c, h.config, sub))
}

func (h *Handler) handleUnsubscribe(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "user")
	if err != nil {
		return h.fail(c, err)
	}

	if err := h.subscription.Unsubscribe(ctx, id); err != nil {
		return h.fail(c, err)
	}
	return presenter.NoContent(c)
}
