// Package validation checks request payloads against their `validate` struct
// tags and reports the first violation as a client-facing message.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error is the first rule violation found in a payload. It unwraps to the
// domain error kind the caller asked for.
type Error struct {
	Field   string
	Rule    string
	Message string
	kind    error
}

// NewError builds a violation for rules checked outside struct tags.
func NewError(field, rule, message string, kind error) *Error {
	return &Error{Field: field, Rule: rule, Message: message, kind: kind}
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.kind }

// Validator wraps a shared validator instance. It is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

// New constructs a Validator that names fields after their JSON keys.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

// Struct validates s. A rule violation is returned as *Error wrapping kind;
// any other failure (for example a non-struct argument) is returned as is.
func (v *Validator) Struct(s any, kind error) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) || len(violations) == 0 {
		return fmt.Errorf("validate: %w", err)
	}

	first := violations[0]
	return &Error{
		Field:   first.Field(),
		Rule:    first.Tag(),
		Message: message(first),
		kind:    kind,
	}
}

func message(fe validator.FieldError) string {
	field := strconv.Quote(fe.Field())
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		if isString {
			return fmt.Sprintf("%s length must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s length must be less than or equal to %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed the %q rule", field, fe.Tag())
	}
}
