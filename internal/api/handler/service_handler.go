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

const fallbackReason = "database_unavailable"

// ServiceHandler handles HTTP requests for the service catalog. Public reads
// degrade to the static fallback dataset when allowFallback is set and the
// store is unreachable.
type ServiceHandler struct {
	catalog       ports.CatalogService
	allowFallback bool
}

func NewServiceHandler(catalog ports.CatalogService, allowFallback bool) *ServiceHandler {
	return &ServiceHandler{catalog: catalog, allowFallback: allowFallback}
}

// List handles GET /services.
//
// @Summary      List services
// @Tags         services
// @Produce      json
// @Param        preview  query     bool  false  "Include archived entries"
// @Success      200      {object}  Envelope
// @Router       /services [get]
func (h *ServiceHandler) List(c echo.Context) error {
	preview := c.QueryParam("preview") == "true"

	services, err := h.catalog.ListServices(c.Request().Context(), preview)
	if err != nil {
		if h.allowFallback {
			metrics.FallbackServedTotal.WithLabelValues("services").Inc()
			return respondFallback(c, fallback.Services(), fallback.Notice, fallbackReason)
		}
		return err
	}
	return respondOK(c, services)
}

// Get handles GET /services/:id, accepting an ObjectID or a slug.
//
// @Summary      Get a service by id or slug
// @Tags         services
// @Produce      json
// @Param        id  path      string  true  "Service id or slug"
// @Success      200 {object}  Envelope
// @Failure      404 {object}  Envelope
// @Router       /services/{id} [get]
func (h *ServiceHandler) Get(c echo.Context) error {
	ref := c.Param("id")

	svc, err := h.catalog.GetService(c.Request().Context(), ref)
	if err != nil {
		if h.allowFallback && !errors.Is(err, domain.ErrServiceNotFound) && !errors.Is(err, domain.ErrInvalidID) {
			if s := fallback.FindService(ref); s != nil {
				metrics.FallbackServedTotal.WithLabelValues("services").Inc()
				return respondFallback(c, s, fallback.Notice, fallbackReason)
			}
		}
		return err
	}
	return respondOK(c, svc)
}

// Create handles POST /services (admin).
//
// @Summary      Create a service
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createServiceRequest  true  "Service details"
// @Success      201   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Router       /services [post]
func (h *ServiceHandler) Create(c echo.Context) error {
	adminID, err := actorID(c)
	if err != nil {
		return err
	}

	var req createServiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	svc, err := h.catalog.CreateService(c.Request().Context(), adminID, ports.CreateServiceInput{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Slug:        req.Slug,
	})
	if err != nil {
		return err
	}
	return respondCreated(c, svc, "Service created")
}

// Update handles PUT /services/:id (admin).
//
// @Summary      Update a service
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Service id"
// @Param        body  body      updateServiceRequest  true  "Fields to update"
// @Success      200   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /services/{id} [put]
func (h *ServiceHandler) Update(c echo.Context) error {
	adminID, err := actorID(c)
	if err != nil {
		return err
	}

	var req updateServiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	svc, err := h.catalog.UpdateService(c.Request().Context(), adminID, c.Param("id"), ports.UpdateServiceInput{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Slug:        req.Slug,
		IsArchived:  req.IsArchived,
	})
	if err != nil {
		return err
	}
	return respondOK(c, svc)
}

// Delete handles DELETE /services/:id (admin).
//
// @Summary      Delete a service
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Service id"
// @Success      200 {object}  Envelope
// @Failure      404 {object}  Envelope
// @Router       /services/{id} [delete]
func (h *ServiceHandler) Delete(c echo.Context) error {
	adminID, err := actorID(c)
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteService(c.Request().Context(), adminID, c.Param("id")); err != nil {
		return err
	}
	return respondMessage(c, nil, "Service deleted")
}
