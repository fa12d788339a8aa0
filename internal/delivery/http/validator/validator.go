// Package validator plugs go-playground/validator into echo's c.Validate.
package validator

import (
	"reflect"
	"strconv"
	"strings"

	"nexus/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// New creates a validator that reports fields by their json names.
func New() echo.Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})
	// Registration only fails on a duplicate or malformed tag name.
	_ = validate.RegisterValidation("maxbytes", maxBytes)

	return &CustomValidator{validate: validate}
}

// maxBytes is "max" measured in bytes rather than runes, for limits imposed by encodings.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}

	return len(fl.Field().String()) <= limit
}

// Validate validates a struct using its `validate` tags.
func (v *CustomValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// Describe flattens validation errors into "field: rule" pairs for the response details.
func Describe(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return ""
	}

	parts := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		parts = append(parts, fieldErr.Field()+": "+fieldErr.Tag())
	}

	return strings.Join(parts, ", ")
}
