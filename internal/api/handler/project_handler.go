package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opendev-studio/site-api/internal/api/metrics"
	"github.com/opendev-studio/site-api/internal/core/domain"
	"github.com/opendev-studio/site-api/internal/core/fallback"
	"github.com/opendev-studio/site-api/internal/core/ports"
)

// ProjectHandler handles HTTP requests for the project portfolio.
type ProjectHandler struct {
	catalog       ports.CatalogService
	allowFallback bool
}

func NewProjectHandler(catalog ports.CatalogService, allowFallback bool) *ProjectHandler {
	return &ProjectHandler{catalog: catalog, allowFallback: allowFallback}
}

// List handles GET /projects.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Param        preview  query     bool  false  "Include archived entries"
// @Success      200      {object}  Envelope
// @Router       /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	preview := c.QueryParam("preview") == "true"

	projects, err := h.catalog.ListProjects(c.Request().Context(), preview)
	if err != nil {
		if h.allowFallback {
			metrics.FallbackServedTotal.WithLabelValues("projects").Inc()
			return respondFallback(c, fallback.Projects(), fallback.Notice, fallbackReason)
		}
		return err
	}
	return respondOK(c, projects)
}

// Get handles GET /projects/:id.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        id  path      string  true  "Project id"
// @Success      200 {object}  Envelope
// @Failure      404 {object}  Envelope
// @Router       /projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	id := c.Param("id")

	project, err := h.catalog.GetProject(c.Request().Context(), id)
	if err != nil {
		if h.allowFallback && !errors.Is(err, domain.ErrProjectNotFound) && !errors.Is(err, domain.ErrInvalidID) {
			if p := fallback.FindProject(id); p != nil {
				metrics.FallbackServedTotal.WithLabelValues("projects").Inc()
				return respondFallback(c, p, fallback.Notice, fallbackReason)
			}
		}
		return err
	}
	return respondOK(c, project)
}

// Create handles POST /projects (admin).
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Router       /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	adminID, err := actorID(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	project, err := h.catalog.CreateProject(c.Request().Context(), adminID, ports.CreateProjectInput{
		Title:        req.Title,
		Category:     req.Category,
		Description:  req.Description,
		MainImage:    req.MainImage,
		ExternalLink: req.ExternalLink,
	})
	if err != nil {
		return err
	}
	return respondCreated(c, project, "Project created")
}

// Update handles PUT /projects/:id (admin).
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Project id"
// @Param        body  body      updateProjectRequest  true  "Fields to update"
// @Success      200   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	adminID, err := actorID(c)
	if err != nil {
		return err
	}

	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	project, err := h.catalog.UpdateProject(c.Request().Context(), adminID, c.Param("id"), ports.UpdateProjectInput{
		Title:        req.Title,
		Category:     req.Category,
		Description:  req.Description,
		MainImage:    req.MainImage,
		ExternalLink: req.ExternalLink,
		IsArchived:   req.IsArchived,
	})
	if err != nil {
		return err
	}
	return respondOK(c, project)
}

// Delete handles DELETE /projects/:id (admin). Gallery images cascade.
//
// @Summary      Delete a project and its gallery images
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Project id"
// @Success      200 {object}  Envelope
// @Failure      404 {object}  Envelope
// @Router       /projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	adminID, err := actorID(c)
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteProject(c.Request().Context(), adminID, c.Param("id")); err != nil {
		return err
	}
	return respondMessage(c, nil, "Project deleted")
}
