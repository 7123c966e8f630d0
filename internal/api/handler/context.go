package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// actorID extracts the authenticated user id injected by the auth
// middleware. Its absence means the middleware did not run; reject with the
// same undifferentiated 401 the gate itself uses.
func actorID(c echo.Context) (string, error) {
	id, _ := c.Get("userId").(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return id, nil
}
