package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes a single violated field in a request payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json names instead of Go field names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Check validates a tagged request struct. A non-empty slice means the input
// failed validation; a non-nil error means validation itself could not run.
func Check(payload any) ([]FieldError, error) {
	err := validate.Struct(payload)
	if err == nil {
		return nil, nil
	}
	violations, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, err
	}
	fields := make([]FieldError, 0, len(violations))
	for _, violation := range violations {
		fields = append(fields, FieldError{
			Field:   violation.Field(),
			Message: describe(violation),
		})
	}
	return fields, nil
}

func describe(violation validator.FieldError) string {
	switch violation.Tag() {
	case "required", "notblank":
		return violation.Field() + " is required"
	case "email":
		return "invalid email format"
	case "max":
		return violation.Field() + " is too long"
	case "min":
		return violation.Field() + " is too short"
	case "oneof":
		return violation.Field() + " must be one of " + violation.Param()
	case "url":
		return "invalid URL"
	default:
		return violation.Field() + " is invalid"
	}
}
