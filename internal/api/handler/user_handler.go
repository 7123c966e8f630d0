package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opendev-studio/site-api/internal/core/ports"
)

// UserHandler handles admin account management.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin user"`
}

type updateBanRequest struct {
	IsBanned *bool `json:"isBanned" validate:"required"`
}

// List handles GET /users (admin).
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Substring search over name, email"
// @Param        page    query     int     false  "Page (default 1)"
// @Param        limit   query     int     false  "Page size (default 10, max 100)"
// @Success      200     {object}  Envelope
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	page, err := h.users.List(c.Request().Context(), ports.ListUsersFilter{
		Search: c.QueryParam("search"),
		Page:   intQuery(c, "page"),
		Limit:  intQuery(c, "limit"),
	})
	if err != nil {
		return err
	}
	return respondOK(c, page)
}

// UpdateRole handles PUT /users/:id/role (admin).
//
// @Summary      Change a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateRoleRequest  true  "New role"
// @Success      200   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /users/{id}/role [put]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	adminID, err := actorID(c)
	if err != nil {
		return err
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.ChangeRole(c.Request().Context(), adminID, c.Param("id"), req.Role)
	if err != nil {
		return err
	}
	return respondOK(c, user)
}

// UpdateBan handles PUT /users/:id/ban (admin).
//
// @Summary      Ban or unban a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "User id"
// @Param        body  body      updateBanRequest  true  "Ban flag"
// @Success      200   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /users/{id}/ban [put]
func (h *UserHandler) UpdateBan(c echo.Context) error {
	adminID, err := actorID(c)
	if err != nil {
		return err
	}

	var req updateBanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.SetBanned(c.Request().Context(), adminID, c.Param("id"), *req.IsBanned)
	if err != nil {
		return err
	}
	return respondOK(c, user)
}

// Delete handles DELETE /users/:id (admin).
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "User id"
// @Success      200 {object}  Envelope
// @Failure      404 {object}  Envelope
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	adminID, err := actorID(c)
	if err != nil {
		return err
	}

	if err := h.users.Delete(c.Request().Context(), adminID, c.Param("id")); err != nil {
		return err
	}
	return respondMessage(c, nil, "User deleted")
}
