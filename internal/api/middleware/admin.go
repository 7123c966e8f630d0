package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/opendev-studio/site-api/internal/core/domain"
)

// RequireAdmin gates a route group to admin accounts. A non-admin role gets
// the same 401 as a missing or invalid token, so probing cannot distinguish
// "not logged in" from "not allowed".
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if role != domain.RoleAdmin {
				return unauthorized
			}
			return next(c)
		}
	}
}
