package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/opendev-studio/site-api/internal/api/handler"
	"github.com/opendev-studio/site-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (*httptest.ResponseRecorder, handler.Envelope) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var env handler.Envelope
	if uerr := json.Unmarshal(rec.Body.Bytes(), &env); uerr != nil {
		t.Fatalf("invalid json: %v", uerr)
	}
	return rec, env
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err     error
		code    int
		message string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Identifiants incorrects."},
		{domain.ErrAccountBanned, http.StatusForbidden, "Ce compte a été suspendu. Contactez un administrateur."},
		{domain.ErrUserExists, http.StatusConflict, "Un compte existe déjà avec cet email."},
		{domain.ErrServiceNotFound, http.StatusNotFound, "Service not found"},
		{domain.ErrOrderNotFound, http.StatusNotFound, "Order not found"},
		{domain.ErrSlugExists, http.StatusBadRequest, "Service with this slug already exists"},
		{domain.ErrInvalidID, http.StatusBadRequest, "Invalid id"},
		{domain.ErrInvalidStatus, http.StatusBadRequest, "Invalid order status"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	}

	for _, tc := range cases {
		rec, env := renderError(t, tc.err)
		if rec.Code != tc.code {
			t.Fatalf("%v: code = %d, want %d", tc.err, rec.Code, tc.code)
		}
		if env.Success {
			t.Fatalf("%v: success must be false", tc.err)
		}
		if env.Message != tc.message {
			t.Fatalf("%v: message = %q, want %q", tc.err, env.Message, tc.message)
		}
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("find order"), domain.ErrOrderNotFound)

	rec, _ := renderError(t, wrapped)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("wrapped domain error lost its mapping: %d", rec.Code)
	}
}

func TestErrorHandler_ValidationItemized(t *testing.T) {
	err := &handler.ValidationError{Fields: []handler.FieldError{
		{Field: "email", Message: "Doit être un email valide."},
		{Field: "name", Message: "Ce champ est requis."},
	}}

	rec, env := renderError(t, err)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", rec.Code)
	}
	if env.Message != "Données invalides." {
		t.Fatalf("message = %q", env.Message)
	}
	if len(env.Errors) != 2 || env.Errors[0].Field != "email" {
		t.Fatalf("errors not itemized: %+v", env.Errors)
	}
}

func TestErrorHandler_EchoHTTPErrorPassthrough(t *testing.T) {
	rec, env := renderError(t, echo.NewHTTPError(http.StatusTeapot, "short and stout"))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("code = %d", rec.Code)
	}
	if env.Message != "short and stout" {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestErrorHandler_UnexpectedErrorCarriesCause(t *testing.T) {
	rec, env := renderError(t, errors.New("socket was unexpectedly closed"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d", rec.Code)
	}
	if env.Message != "internal server error: socket was unexpectedly closed" {
		t.Fatalf("message = %q", env.Message)
	}
}
