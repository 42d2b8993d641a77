package params

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// QueryParams carries pagination parameters parsed from the request.
type QueryParams struct {
	PageNumber int
	PageSize   int
}

func NewQueryParams(c echo.Context) *QueryParams {
	p := &QueryParams{PageNumber: 1, PageSize: 20}
	if n, err := strconv.Atoi(c.QueryParam("page")); err == nil && n > 0 {
		p.PageNumber = n
	}
	if n, err := strconv.Atoi(c.QueryParam("limit")); err == nil && n > 0 && n <= 100 {
		p.PageSize = n
	}
	return p
}
