package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the uniform response shape for every endpoint, success or
// failure. Data carries the payload, Message a human-readable note, Errors
// the per-field validation details, and Meta out-of-band flags such as
// fallback mode.
type Envelope struct {
	Success bool         `json:"success"`
	Data    any          `json:"data,omitempty"`
	Message string       `json:"message,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
	Meta    *Meta        `json:"meta,omitempty"`
}

// FieldError is a single validation failure, addressed to one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Meta carries response flags that are not part of the payload itself.
type Meta struct {
	Fallback bool   `json:"fallback"`
	Reason   string `json:"reason,omitempty"`
}

func respondOK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func respondCreated(c echo.Context, data any, message string) error {
	return c.JSON(http.StatusCreated, Envelope{Success: true, Data: data, Message: message})
}

func respondMessage(c echo.Context, data any, message string) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Message: message})
}

// respondFallback serves static placeholder data with the fallback marker so
// clients can tell it apart from live data.
func respondFallback(c echo.Context, data any, notice, reason string) error {
	return c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Message: notice,
		Meta:    &Meta{Fallback: true, Reason: reason},
	})
}
