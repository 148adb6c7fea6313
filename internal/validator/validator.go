package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/cinema-tickets/internal/domain"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("ticket_type", validateTicketType)

	return validator
}

func validateTicketType(fl validator.FieldLevel) bool {
	ticketType, ok := fl.Field().Interface().(domain.TicketType)
	if !ok {
		return false
	}

	return ticketType.Valid()
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must contain at least %s item(s)", err.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "ticket_type":
		return "must be ADULT, CHILD or INFANT"
	default:
		return "is invalid"
	}
}

// Describe flattens a validation error into a single line such as
// "[1].Count must be greater than 0". Errors that are not validation errors are
// returned as-is.
func Describe(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err.Error()
	}

	issues := make([]string, len(validationErrs))
	for i, fe := range validationErrs {
		issues[i] = fmt.Sprintf("%s %s", fieldPath(fe), ValidationMessage(fe))
	}

	return strings.Join(issues, "; ")
}

// fieldPath strips the top-level name that validator.Var leaves empty, keeping the
// slice index and field name.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "["); i > 0 {
		return ns[i:]
	}

	if ns == "" {
		return "request"
	}

	return ns
}
