package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// US certification codes plus the TV ratings TMDB sometimes reports for
// direct-to-streaming titles.
var certificationRgx = regexp.MustCompile(`^(G|PG|PG-13|R|NC-17|NR|TV-(Y|Y7|G|PG|14|MA))$`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("certification", validateCertification)
	validator.RegisterCustomTypeFunc(decimalValue, decimal.NullDecimal{}, decimal.Decimal{})

	return validator
}

func validateCertification(fl validator.FieldLevel) bool {
	return certificationRgx.MatchString(fl.Field().String())
}

// decimalValue exposes decimals to numeric tags such as gte and lte. A null
// decimal yields nil so that omitempty skips it.
func decimalValue(field reflect.Value) any {
	switch v := field.Interface().(type) {
	case decimal.NullDecimal:
		if !v.Valid {
			return nil
		}
		return v.Decimal.InexactFloat64()
	case decimal.Decimal:
		return v.InexactFloat64()
	}

	return nil
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", err.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", err.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", err.Param())
	case "url":
		return "must be a valid URL"
	case "datetime":
		return fmt.Sprintf("must be a date in the %s format", err.Param())
	case "certification":
		return "must be a known certification code"
	default:
		return "is invalid"
	}
}

// Describe flattens a validation failure into a single line listing every
// offending field.
func Describe(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}

	parts := make([]string, len(errs))
	for i, fe := range errs {
		parts[i] = fe.Field() + " " + ValidationMessage(fe)
	}

	return strings.Join(parts, "; ")
}
