package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError aggregates per-field failures so the error handler can
// render them itemized in the envelope.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validator.New()}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fields := make([]FieldError, 0, len(ve))
			for _, fe := range ve {
				fields = append(fields, FieldError{
					Field:   strings.ToLower(fe.Field()),
					Message: fieldMessage(fe),
				})
			}
			return &ValidationError{Fields: fields}
		}
		return err
	}
	return nil
}

// fieldMessage converts a single ValidationError into the French message
// shown on the public forms.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Ce champ est requis."
	case "email":
		return "Doit être un email valide."
	case "url":
		return "Doit être une URL valide."
	case "min":
		return fmt.Sprintf("Doit contenir au moins %s caractères.", fe.Param())
	case "max":
		return fmt.Sprintf("Doit contenir au plus %s caractères.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Doit être l'une des valeurs : %s.", fe.Param())
	default:
		return fmt.Sprintf("Valeur invalide (%s).", fe.Tag())
	}
}
