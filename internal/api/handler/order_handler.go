package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/opendev-studio/site-api/internal/core/ports"
)

// OrderHandler handles HTTP requests for orders: the public intake form and
// the admin listing with its filter engine.
type OrderHandler struct {
	orders ports.OrderService
}

func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type createOrderRequest struct {
	ServiceID string `json:"serviceId" validate:"required"`
	Name      string `json:"name"      validate:"required,min=2"`
	Email     string `json:"email"     validate:"required,email"`
	Message   string `json:"message"   validate:"required,min=10"`
	FileURL   string `json:"fileUrl"   validate:"omitempty,url"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Create handles POST /orders.
//
// @Summary      Submit an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      createOrderRequest  true  "Order details"
// @Success      201   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.orders.Create(c.Request().Context(), ports.CreateOrderInput{
		ServiceID: req.ServiceID,
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		FileURL:   req.FileURL,
	})
	if err != nil {
		return err
	}
	return respondCreated(c, order, "Votre demande a bien été envoyée.")
}

// List handles GET /orders (admin), the query/filter/pagination engine.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status     query     string  false  "Status filter"
// @Param        serviceId  query     string  false  "Service filter"
// @Param        q          query     string  false  "Substring search over name, email, message"
// @Param        from       query     string  false  "Inclusive lower bound (YYYY-MM-DD or RFC3339)"
// @Param        to         query     string  false  "Inclusive upper bound (YYYY-MM-DD or RFC3339)"
// @Param        page       query     int     false  "Page (default 1)"
// @Param        limit      query     int     false  "Page size (default 10, max 100)"
// @Success      200        {object}  Envelope
// @Failure      400        {object}  Envelope
// @Router       /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	f := ports.ListOrdersFilter{
		Status:    c.QueryParam("status"),
		ServiceID: c.QueryParam("serviceId"),
		Search:    c.QueryParam("q"),
		Page:      intQuery(c, "page"),
		Limit:     intQuery(c, "limit"),
	}

	var fields []FieldError
	if raw := c.QueryParam("from"); raw != "" {
		t, _, err := parseDateParam(raw)
		if err != nil {
			fields = append(fields, FieldError{Field: "from", Message: "Doit être une date valide."})
		} else {
			f.DateFrom = t
		}
	}
	if raw := c.QueryParam("to"); raw != "" {
		t, dateOnly, err := parseDateParam(raw)
		if err != nil {
			fields = append(fields, FieldError{Field: "to", Message: "Doit être une date valide."})
		} else {
			// A bare date as the upper bound means "through that whole day".
			if dateOnly {
				t = t.Add(24*time.Hour - time.Nanosecond)
			}
			f.DateTo = t
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	page, err := h.orders.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return respondOK(c, page)
}

// Get handles GET /orders/:id (admin).
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Order id"
// @Success      200 {object}  Envelope
// @Failure      404 {object}  Envelope
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.orders.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respondOK(c, order)
}

// UpdateStatus handles PUT /orders/:id (admin). Setting the current status
// again succeeds.
//
// @Summary      Update an order's status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Order id"
// @Param        body  body      updateOrderStatusRequest  true  "New status"
// @Success      200   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /orders/{id} [put]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	adminID, err := actorID(c)
	if err != nil {
		return err
	}

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.orders.UpdateStatus(c.Request().Context(), adminID, c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return respondOK(c, order)
}

// Delete handles DELETE /orders/:id (admin).
//
// @Summary      Delete an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Order id"
// @Success      200 {object}  Envelope
// @Failure      404 {object}  Envelope
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	adminID, err := actorID(c)
	if err != nil {
		return err
	}

	if err := h.orders.Delete(c.Request().Context(), adminID, c.Param("id")); err != nil {
		return err
	}
	return respondMessage(c, nil, "Order deleted")
}

// intQuery parses an integer query parameter, returning 0 (meaning "use the
// default") when absent or unparseable.
func intQuery(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return n
}

// parseDateParam accepts a bare date or a full RFC 3339 timestamp. The
// second return reports the bare-date form so upper bounds can be widened to
// the end of the day.
func parseDateParam(raw string) (time.Time, bool, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), true, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return t.UTC(), false, nil
}
