package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/opendev-studio/site-api/internal/core/ports"
)

// AdminActionHandler exposes the audit trail of privileged mutations.
type AdminActionHandler struct {
	audit ports.AuditLogger
}

func NewAdminActionHandler(audit ports.AuditLogger) *AdminActionHandler {
	return &AdminActionHandler{audit: audit}
}

// List handles GET /admin-actions (admin), newest first.
//
// @Summary      List recent admin actions
// @Tags         admin-actions
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max entries (default 50)"
// @Success      200    {object}  Envelope
// @Router       /admin-actions [get]
func (h *AdminActionHandler) List(c echo.Context) error {
	actions, err := h.audit.Recent(c.Request().Context(), intQuery(c, "limit"))
	if err != nil {
		return err
	}
	return respondOK(c, actions)
}
