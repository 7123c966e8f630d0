package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/opendev-studio/site-api/internal/api/handler"
	"github.com/opendev-studio/site-api/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Renders validation failures itemized per field.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders everything in the standard envelope with success=false.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *handler.ValidationError
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusBadRequest, handler.Envelope{
				Success: false,
				Message: "Données invalides.",
				Errors:  ve.Fields,
			})
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, handler.Envelope{Success: false, Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes. Authentication
	// messages are French: they surface directly on the public forms.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Identifiants incorrects."
	case errors.Is(err, domain.ErrAccountBanned):
		return http.StatusForbidden, "Ce compte a été suspendu. Contactez un administrateur."
	case errors.Is(err, domain.ErrEmailNotVerified):
		return http.StatusForbidden, "Veuillez vérifier votre email avant de vous connecter."
	case errors.Is(err, domain.ErrVerificationToken):
		return http.StatusBadRequest, "Lien de vérification invalide ou expiré."
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "Un compte existe déjà avec cet email."
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, domain.ErrServiceNotFound):
		return http.StatusNotFound, "Service not found"
	case errors.Is(err, domain.ErrProjectNotFound):
		return http.StatusNotFound, "Project not found"
	case errors.Is(err, domain.ErrProjectImageNotFound):
		return http.StatusNotFound, "Project image not found"
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, "Order not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrContentNotFound):
		return http.StatusNotFound, "Content not found"
	case errors.Is(err, domain.ErrSlugExists):
		return http.StatusBadRequest, "Service with this slug already exists"
	case errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest, "Invalid id"
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest, "Invalid order status"
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, "Invalid role"
	}

	// Unexpected error: log it and attach the cause for diagnostics.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, fmt.Sprintf("internal server error: %v", err)
}
