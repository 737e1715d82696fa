// Package validation configures the struct validator shared by the HTTP
// handlers and the CLI commands.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"jobboard/internal/models"

	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// New returns a validator that reports json field names and knows the
// username and application_status tags.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Registration only fails for an empty tag or a nil func.
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("application_status", func(fl validator.FieldLevel) bool {
		return models.ApplicationStatus(fl.Field().String()).IsValid()
	})

	return v
}

// FormatValidationErrors turns validator errors into a field -> message map.
func FormatValidationErrors(err error) map[string]string {
	errorsMap := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errorsMap["error"] = "Invalid validation error type"
		return errorsMap
	}
	for _, fieldError := range validationErrors {
		fieldName := fieldError.Field()
		switch fieldError.Tag() {
		case "required":
			errorsMap[fieldName] = "This field is required."
		case "email":
			errorsMap[fieldName] = "Enter a valid email address."
		case "url":
			errorsMap[fieldName] = "Enter a valid URL."
		case "min":
			errorsMap[fieldName] = fmt.Sprintf("Ensure this value has at least %s characters.", fieldError.Param())
		case "max":
			errorsMap[fieldName] = fmt.Sprintf("Ensure this value has at most %s characters.", fieldError.Param())
		case "username":
			errorsMap[fieldName] = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
		case "application_status":
			errorsMap[fieldName] = "Invalid status."
		default:
			errorsMap[fieldName] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fieldName, fieldError.Tag())
		}
	}
	return errorsMap
}
