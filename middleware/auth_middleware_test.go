package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func optionalAuthContext(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestOptionalAuthWithValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	userID := "64f1b2c3d4e5f6a7b8c9d0e1"
	access, _, err := GenerateJWT(userID, "student@oau.edu.ng", "user")
	if err != nil {
		t.Fatal(err)
	}

	c, _ := optionalAuthContext("Bearer " + access)

	called := false
	handler := OptionalAuth()(func(c echo.Context) error {
		called = true
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("OptionalAuth returned error: %v", err)
	}
	if !called {
		t.Fatal("next handler not invoked")
	}
	if got, _ := c.Get("userId").(string); got != userID {
		t.Errorf("userId in context = %q, want %q", got, userID)
	}
	if got, _ := c.Get("role").(string); got != "user" {
		t.Errorf("role in context = %q, want %q", got, "user")
	}
}

func TestOptionalAuthAnonymousPassThrough(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	for _, header := range []string{"", "Bearer garbage", "Basic abc"} {
		c, _ := optionalAuthContext(header)

		called := false
		handler := OptionalAuth()(func(c echo.Context) error {
			called = true
			return nil
		})
		if err := handler(c); err != nil {
			t.Fatalf("header %q: OptionalAuth returned error: %v", header, err)
		}
		if !called {
			t.Errorf("header %q: next handler not invoked", header)
		}
		if c.Get("userId") != nil {
			t.Errorf("header %q: userId unexpectedly set", header)
		}
	}
}

func TestOptionalAuthIgnoresBlacklistedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	access, _, err := GenerateJWT("64f1b2c3d4e5f6a7b8c9d0e1", "a@b.co", "user")
	if err != nil {
		t.Fatal(err)
	}
	BlacklistToken(access, time.Now().Add(time.Hour))

	c, _ := optionalAuthContext("Bearer " + access)
	handler := OptionalAuth()(func(c echo.Context) error { return nil })
	if err := handler(c); err != nil {
		t.Fatalf("OptionalAuth returned error: %v", err)
	}
	if c.Get("userId") != nil {
		t.Error("blacklisted token must be treated as anonymous")
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		allowed    []string
		wantStatus int
		wantNext   bool
	}{
		{"matching role passes", "admin", []string{"admin"}, http.StatusOK, true},
		{"one of several passes", "moderator", []string{"admin", "moderator"}, http.StatusOK, true},
		{"wrong role forbidden", "user", []string{"admin"}, http.StatusForbidden, false},
		{"missing role unauthorized", "", []string{"admin"}, http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.role != "" {
				c.Set("role", tt.role)
			}

			called := false
			handler := RequireRole(tt.allowed...)(func(c echo.Context) error {
				called = true
				return c.NoContent(http.StatusOK)
			})
			if err := handler(c); err != nil {
				t.Fatalf("RequireRole returned error: %v", err)
			}
			if called != tt.wantNext {
				t.Errorf("next called = %v, want %v", called, tt.wantNext)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
