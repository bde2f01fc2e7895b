package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// listQuery is the common pagination/sorting query surface of list routes.
type listQuery struct {
	Search    string
	SortField string
	Ascending bool
	Page      int
	Limit     int
}

// parseListQuery reads search/sort/dir/page/limit query params. Out-of-range
// values fall through to the service layer, which clamps them.
func parseListQuery(c echo.Context) listQuery {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	return listQuery{
		Search:    c.QueryParam("search"),
		SortField: c.QueryParam("sort"),
		Ascending: c.QueryParam("dir") == "asc",
		Page:      page,
		Limit:     limit,
	}
}

// listResponse is the canonical envelope of paginated list routes.
type listResponse struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}
