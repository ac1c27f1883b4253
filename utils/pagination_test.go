package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paginationContext(query string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 20},
		{"explicit values", "page=3&limit=50", 3, 50},
		{"limit clamped to max", "limit=1000", 1, 100},
		{"zero page falls back", "page=0", 1, 20},
		{"negative values fall back", "page=-2&limit=-5", 1, 20},
		{"garbage falls back", "page=abc&limit=xyz", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := ParsePagination(paginationContext(tt.query))
			if page != tt.wantPage || limit != tt.wantLimit {
				t.Errorf("ParsePagination(%q) = (%d, %d), want (%d, %d)",
					tt.query, page, limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		total          int64
		limit          int
		wantTotalPages int64
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 10, 10},
	}

	for _, tt := range tests {
		p := NewPagination(1, tt.limit, tt.total)
		if p.TotalPages != tt.wantTotalPages {
			t.Errorf("NewPagination(total=%d, limit=%d).TotalPages = %d, want %d",
				tt.total, tt.limit, p.TotalPages, tt.wantTotalPages)
		}
	}
}

func TestSkip(t *testing.T) {
	if got := Skip(1, 20); got != 0 {
		t.Errorf("Skip(1, 20) = %d, want 0", got)
	}
	if got := Skip(3, 25); got != 50 {
		t.Errorf("Skip(3, 25) = %d, want 50", got)
	}
}
