package exceptions

import (
	"fmt"
	"strings"
	"tablepoll-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

// FormatFirstValidationError maps the first validator.v10 failure to a client
// friendly sentence. Unknown tags fall back to a generic message.
func FormatFirstValidationError(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return constvars.ErrClientCannotProcessRequest
	}

	first := validationErrors[0]
	field := strings.ToLower(first.Field())

	message, found := constvars.CustomValidationErrorMessages[first.Tag()]
	if !found {
		return fmt.Sprintf("%s is invalid", field)
	}

	if constvars.TagsWithParams[first.Tag()] {
		message = fmt.Sprintf(message, first.Param())
	}

	return fmt.Sprintf("%s %s", field, message)
}
