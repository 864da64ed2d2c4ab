// Package validation schema-checks request payloads before they reach
// persistence. Each function returns nil or a *domain.ValidationError
// describing the first field that failed.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/leadbook/crm-api/internal/core/domain"
	"github.com/leadbook/crm-api/internal/core/ports"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON name so messages match the payload.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Register checks a registration payload.
func Register(in ports.RegisterInput) error {
	return check(in)
}

// Login checks a login payload. The password length is not checked here.
func Login(in ports.LoginInput) error {
	return check(in)
}

// Customer checks a customer create/update payload.
func Customer(in ports.CustomerInput) error {
	return check(in)
}

// Lead checks a lead create/update payload.
func Lead(in ports.LeadInput) error {
	return check(in)
}

func check(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		return &domain.ValidationError{Field: fe.Field(), Message: fieldError(fe)}
	}
	return err
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s cannot be more than %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.String && fe.Param() == "1" {
			return field + " is not allowed to be empty"
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
