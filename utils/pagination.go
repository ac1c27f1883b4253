// utils/pagination.go
package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/oausconnect/backend/models"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// ParsePagination reads page/limit query parameters and clamps them to sane
// bounds (page >= 1, 1 <= limit <= 100).
func ParsePagination(c echo.Context) (page, limit int) {
	page = defaultPage
	limit = defaultLimit

	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p >= 1 {
		page = p
	}
	if l, err := strconv.Atoi(c.QueryParam("limit")); err == nil && l >= 1 {
		limit = l
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// NewPagination builds the pagination envelope for a list response.
func NewPagination(page, limit int, total int64) models.Pagination {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Skip returns the document offset for the current page.
func Skip(page, limit int) int64 {
	return int64(page-1) * int64(limit)
}
