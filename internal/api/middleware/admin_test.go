package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", "admin")

	called := false
	handler := RequireAdmin()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

// A non-admin session and no session at all must be indistinguishable.
func TestRequireAdmin_RejectsNonAdminWithSame401(t *testing.T) {
	e := echo.New()

	for _, role := range []any{"user", "", nil} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		if role != nil {
			c.Set("role", role)
		}

		handler := RequireAdmin()(func(c echo.Context) error {
			t.Fatalf("should not reach next for role %v", role)
			return nil
		})
		assertUnauthorized(t, handler(c))
	}
}
