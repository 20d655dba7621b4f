package presenter

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/totegamma/foodgram"
	"github.com/totegamma/foodgram/internal/domain"
)

// OK wraps a successful response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

func Created(c echo.Context, payload any) error {
	return c.JSON(http.StatusCreated, payload)
}

func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// Attachment sends body as a downloadable plain-text file.
func Attachment(c echo.Context, filename string, body []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, body)
}

func BadRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, foodgram.ErrorResponse{Error: err.Error()})
}

func BadRequestMessage(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, foodgram.ErrorResponse{Error: msg})
}

// Invalid reports per-field validation messages.
func Invalid(c echo.Context, v *domain.ValidationError) error {
	return c.JSON(http.StatusBadRequest, v.Fields)
}

func Unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, foodgram.ErrorResponse{Error: domain.ErrUnauthorized.Error()})
}

func Forbidden(c echo.Context) error {
	return c.JSON(http.StatusForbidden, foodgram.ErrorResponse{Error: domain.ErrPermissionDenied.Error()})
}

func NotFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, foodgram.ErrorResponse{Error: msg})
}

// InternalError hides err from the client; callers log it.
func InternalError(c echo.Context, err error) error {
	return c.JSON(http.StatusInternalServerError, foodgram.ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)})
}

// Error maps domain errors onto responses. It reports whether err was
// unexpected so the caller can log it.
func Error(c echo.Context, err error) (bool, error) {
	var validation *domain.ValidationError
	var notFound domain.NotFoundError
	var conflict domain.ConflictError

	switch {
	case errors.As(err, &validation):
		return false, Invalid(c, validation)
	case errors.As(err, &notFound):
		return false, NotFound(c, notFound.Error())
	case errors.As(err, &conflict):
		return false, BadRequest(c, conflict)
	case errors.Is(err, domain.ErrEmptyCart):
		return false, BadRequest(c, domain.ErrEmptyCart)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return false, BadRequest(c, domain.ErrInvalidCredentials)
	case errors.Is(err, domain.ErrUnauthorized):
		return false, Unauthorized(c)
	case errors.Is(err, domain.ErrPermissionDenied):
		return false, Forbidden(c)
	default:
		return true, InternalError(c, err)
	}
}
