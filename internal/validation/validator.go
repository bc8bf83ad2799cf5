// Package validation wraps go-playground/validator so struct validation
// failures come back as common.ValidationError keyed by JSON field names.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/hackinpovo/inventory/internal/common"
)

// Validator is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator that reports fields by their json tag.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// notblank rejects whitespace-only strings.
	_ = v.RegisterValidation("notblank", validators.NotBlank)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		switch name {
		case "":
			return fld.Name
		case "-":
			return ""
		}
		return name
	})

	return &Validator{v: v}
}

// Validate checks s and returns a *common.ValidationError on failure.
func (v *Validator) Validate(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = friendlyMessage(fe)
	}
	return &common.ValidationError{Message: "validation failed", Fields: fields}
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", e.Param())
		}
		return "must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", e.Param())
		}
		return "must not exceed " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "hexcolor":
		return "must be a hex color such as #1a2b3c"
	case "notblank":
		return "must not be blank"
	default:
		return "is invalid"
	}
}
