package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/target/boxoffice/internal/errors"
)

// newValidator returns a validator that reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(fld.Name)
		}
		return name
	})
	return v
}

//nolint:gochecknoglobals // validator caches struct metadata and is safe for concurrent use
var inputValidator = newValidator()

// ValidateInput checks a create/update payload against its validate tags and
// returns the first failure as a field-scoped validation error.
func ValidateInput(v any) error {
	return validationError(inputValidator.Struct(v))
}

// validationError converts the first validator failure into a field-scoped AppError.
func validationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.Validation("Invalid input.")
	}
	fe := verrs[0]
	field := fe.Field()
	label := humanize(field)
	var msg string
	switch fe.Tag() {
	case "required":
		msg = label + " is required."
	case "email":
		msg = "Enter a valid email address."
	case "max":
		msg = fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			msg = fmt.Sprintf("Select at least %s %s.", fe.Param(), strings.ToLower(label))
		} else {
			msg = fmt.Sprintf("%s must be at least %s.", label, fe.Param())
		}
	case "gte":
		msg = fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "gtfield":
		msg = fmt.Sprintf("%s must be after %s.", label, humanize(toSnake(fe.Param())))
	case "url":
		msg = label + " must be a valid URL."
	case "oneof":
		msg = fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		msg = label + " is invalid."
	}
	return apperrors.ValidationField(field, msg)
}

// humanize turns "starts_at" into "Starts at" and "price_tiers[0].price" into "Price".
func humanize(field string) string {
	if i := strings.LastIndex(field, "."); i >= 0 {
		field = field[i+1:]
	}
	field = strings.ReplaceAll(field, "_", " ")
	if field == "" {
		return "Value"
	}
	return strings.ToUpper(field[:1]) + field[1:]
}

// toSnake converts a Go field name such as StartsAt to starts_at.
func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
