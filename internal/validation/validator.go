// package validation checks loaded configuration against its `validate` tags.
// It uses the go-playground/validator library and registers the rules the
// filter needs on top of the built-in ones.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// init registers custom validation rules with the validator instance.
func init() {
	// "abs_prefix" accepts only absolute path prefixes such as "/usr".
	// Relative prefixes would match arbitrary project paths.
	err := validate.RegisterValidation("abs_prefix", func(fl validator.FieldLevel) bool {
		if fl.Field().String() == "" {
			// Allow empty strings to be handled by the 'required' tag.
			return true
		}

		return strings.HasPrefix(fl.Field().String(), "/")
	})
	if err != nil {
		panic(fmt.Sprintf("failed to register custom validation: %v", err))
	}
}

// ValidationError is a custom error type that holds a slice of validation error messages.
type ValidationError struct {
	Errors []string
}

// Error returns a single string concatenating all validation error messages.
func (v *ValidationError) Error() string {
	return strings.Join(v.Errors, ", ")
}

// ValidateStruct performs validation on a given struct based on its validation tags.
// If validation fails, it returns a *ValidationError with user-friendly messages.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("validate struct: %w", err)
	}

	messages := make([]string, 0, len(fieldErrors))

	for _, fe := range fieldErrors {
		var message string

		switch fe.Tag() {
		case "abs_prefix":
			message = fmt.Sprintf("field '%s' must be an absolute path prefix", fe.Field())
		case "oneof":
			message = fmt.Sprintf("field '%s' must be one of [%s]", fe.Field(), fe.Param())
		default:
			message = fmt.Sprintf(
				"field '%s' failed on the '%s' tag",
				fe.Field(),
				fe.Tag(),
			)
		}

		messages = append(messages, message)
	}

	return &ValidationError{Errors: messages}
}
