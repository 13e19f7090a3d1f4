// Package validation turns struct tags into per-field error messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Errors maps a JSON field name to a human-readable message.
type Errors map[string]string

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, e[f])
	}
	return strings.Join(parts, " ")
}

// Add records a message for field unless one is already present.
func (e Errors) Add(field, message string) {
	if _, ok := e[field]; !ok {
		e[field] = message
	}
}

// Err returns nil when no field failed.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		// Money bounds are compared as decimals, never through float64.
		if err := validate.RegisterValidation("decimal_gte", decimalGTE); err != nil {
			panic(err)
		}
	})
	return validate
}

// decimalGTE implements `decimal_gte=<n>` for decimal.Decimal and
// *decimal.Decimal fields.
func decimalGTE(fl validator.FieldLevel) bool {
	bound, err := decimal.NewFromString(fl.Param())
	if err != nil {
		return false
	}
	switch d := fl.Field().Interface().(type) {
	case decimal.Decimal:
		return d.GreaterThanOrEqual(bound)
	case *decimal.Decimal:
		return d != nil && d.GreaterThanOrEqual(bound)
	default:
		return false
	}
}

// Struct validates s against its `validate` tags. A nil return means valid;
// otherwise the error is an Errors value.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validation: %w", err)
	}

	out := Errors{}
	for _, fe := range fieldErrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	field := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid. Allowed values: %s.", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s must be at least %s characters.", field, fe.Param())
		}
		return fmt.Sprintf("The %s must be at least %s.", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s may not be greater than %s characters.", field, fe.Param())
		}
		return fmt.Sprintf("The %s may not be greater than %s.", field, fe.Param())
	case "gte", "decimal_gte":
		return fmt.Sprintf("The %s must be greater than or equal to %s.", field, fe.Param())
	case "gt":
		return fmt.Sprintf("The %s must be greater than %s.", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("The %s is not a valid date (expected YYYY-MM-DD).", field)
	case "eqfield":
		return fmt.Sprintf("The %s does not match.", field)
	default:
		return fmt.Sprintf("The %s is invalid.", field)
	}
}
