package domain

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	apperrors "grocidish-client/pkg/errors"
)

var (
	validatorInstance *validator.Validate
	validatorOnce     sync.Once
)

// getValidator returns the shared validator with custom rules registered.
func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		// Report json tag names in error messages.
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		if err := v.RegisterValidation("strongpassword", strongPassword); err != nil {
			panic(err)
		}

		validatorInstance = v
	})
	return validatorInstance
}

// strongPassword enforces the signup password rule: minimum 8 characters
// with at least one lowercase letter, one uppercase letter, one digit, and
// one symbol.
func strongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}

	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// Validate checks an input struct against its validate tags and returns a
// user-renderable validation error, or nil.
func Validate(input any) error {
	if err := getValidator().Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if ok := errors.As(err, &fieldErrs); ok && len(fieldErrs) > 0 {
			return apperrors.NewValidationError(messageFor(fieldErrs[0])).WithCause(err)
		}
		return apperrors.NewValidationError("invalid input").WithCause(err)
	}
	return nil
}

// messageFor renders the first field error the way the app's alerts word
// them.
func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "All fields are required!"
	case "email":
		return "Please enter a valid email address"
	case "strongpassword":
		return "Password must be at least 8 characters and include upper, lower, number and special character"
	case "gte", "lte":
		if fe.Field() == "budget" {
			return "Please enter a budget between 20000 and 100000 PKR"
		}
		return "Value is out of range"
	case "oneof":
		return "Invalid selection"
	default:
		return "Invalid input"
	}
}
