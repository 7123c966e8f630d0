package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opendev-studio/site-api/internal/core/domain"
	"github.com/opendev-studio/site-api/internal/core/ports"
)

// ContentHandler handles the editable site copy singleton.
type ContentHandler struct {
	content ports.ContentService
}

func NewContentHandler(content ports.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// Get handles GET /content. The singleton is created with defaults on the
// first read.
//
// @Summary      Get the site content
// @Tags         content
// @Produce      json
// @Success      200  {object}  Envelope
// @Router       /content [get]
func (h *ContentHandler) Get(c echo.Context) error {
	content, err := h.content.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return respondOK(c, content)
}

// Update handles PUT /content (admin). The whole document is replaced.
//
// @Summary      Replace the site content
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.SiteContent  true  "Full site content"
// @Success      200   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Router       /content [put]
func (h *ContentHandler) Update(c echo.Context) error {
	adminID, err := actorID(c)
	if err != nil {
		return err
	}

	var req domain.SiteContent
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	content, err := h.content.Update(c.Request().Context(), adminID, &req)
	if err != nil {
		return err
	}
	return respondMessage(c, content, "Content updated")
}
