package presenter

import (
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/totegamma/foodgram"
	"github.com/totegamma/foodgram/internal/domain"
)

// ParsePagination reads the page and limit query parameters.
func ParsePagination(c echo.Context, conf domain.Config) (domain.Pagination, error) {
	p := domain.Pagination{Page: 1, Limit: conf.PageSize}

	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return p, domain.NotFoundError{Resource: "page"}
		}
		p.Page = page
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err == nil && limit > 0 {
			p.Limit = min(limit, conf.MaxPageSize)
		}
	}
	return p, nil
}

// Paginated writes results with count and absolute next/previous links.
// A page past the last one is not found.
func Paginated[T any](c echo.Context, p domain.Pagination, count int64, results []T) error {
	if p.Page > 1 && int64(p.Offset()) >= count {
		return NotFound(c, "invalid page")
	}
	if results == nil {
		results = []T{}
	}

	page := foodgram.Page[T]{Count: count, Results: results}
	if int64(p.Offset()+len(results)) < count {
		page.Next = pageLink(c, p.Page+1)
	}
	if p.Page > 1 {
		page.Previous = pageLink(c, p.Page-1)
	}
	return OK(c, page)
}

func pageLink(c echo.Context, page int) *string {
	u := url.URL{
		Scheme:   c.Scheme(),
		Host:     c.Request().Host,
		Path:     c.Request().URL.Path,
		RawQuery: c.Request().URL.RawQuery,
	}
	q := u.Query()
	if page == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()

	link := u.String()
	return &link
}
