package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opendev-studio/site-api/internal/core/ports"
)

// ImageHandler handles HTTP requests for project gallery images.
type ImageHandler struct {
	catalog ports.CatalogService
}

func NewImageHandler(catalog ports.CatalogService) *ImageHandler {
	return &ImageHandler{catalog: catalog}
}

// List handles GET /project-images?projectId=.
//
// @Summary      List gallery images for a project
// @Tags         project-images
// @Produce      json
// @Param        projectId  query     string  true  "Project id"
// @Success      200        {object}  Envelope
// @Failure      400        {object}  Envelope
// @Router       /project-images [get]
func (h *ImageHandler) List(c echo.Context) error {
	projectID := c.QueryParam("projectId")
	if projectID == "" {
		return &ValidationError{Fields: []FieldError{
			{Field: "projectId", Message: "Ce champ est requis."},
		}}
	}

	images, err := h.catalog.ListProjectImages(c.Request().Context(), projectID)
	if err != nil {
		return err
	}
	return respondOK(c, images)
}

// Create handles POST /project-images (admin).
//
// @Summary      Attach a gallery image to a project
// @Tags         project-images
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addProjectImageRequest  true  "Image details"
// @Success      201   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /project-images [post]
func (h *ImageHandler) Create(c echo.Context) error {
	adminID, err := actorID(c)
	if err != nil {
		return err
	}

	var req addProjectImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	img, err := h.catalog.AddProjectImage(c.Request().Context(), adminID, req.ProjectID, req.ImageURL)
	if err != nil {
		return err
	}
	return respondCreated(c, img, "Image added")
}

// Delete handles DELETE /project-images/:id (admin).
//
// @Summary      Remove a gallery image
// @Tags         project-images
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Image id"
// @Success      200 {object}  Envelope
// @Failure      404 {object}  Envelope
// @Router       /project-images/{id} [delete]
func (h *ImageHandler) Delete(c echo.Context) error {
	adminID, err := actorID(c)
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteProjectImage(c.Request().Context(), adminID, c.Param("id")); err != nil {
		return err
	}
	return respondMessage(c, nil, "Image deleted")
}
