package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opendev-studio/site-api/internal/api/metrics"
	"github.com/opendev-studio/site-api/internal/core/ports"
)

// enqueuer hands notifications to the async dispatcher.
type enqueuer interface {
	Enqueue(n ports.Notification)
}

// ContactHandler handles the public contact form. The message is relayed by
// email only; nothing is persisted.
type ContactHandler struct {
	notifier enqueuer
}

func NewContactHandler(notifier enqueuer) *ContactHandler {
	return &ContactHandler{notifier: notifier}
}

type contactRequest struct {
	Name    string `json:"name"    validate:"required,min=2"`
	Email   string `json:"email"   validate:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required,min=10"`
}

// Create handles POST /contact. Delivery is fire-and-forget: the response
// never depends on the email's fate.
//
// @Summary      Send a contact message
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body      contactRequest  true  "Message details"
// @Success      200   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Router       /contact [post]
func (h *ContactHandler) Create(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	metrics.ContactMessagesTotal.Inc()
	h.notifier.Enqueue(ports.Notification{
		Kind:          ports.NotifyContact,
		CustomerName:  req.Name,
		CustomerEmail: req.Email,
		Subject:       req.Subject,
		Message:       req.Message,
	})

	return respondMessage(c, nil, "Votre message a bien été envoyé.")
}
