package utils

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var basicEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsBasicEmail accepts anything shaped like local@domain.tld.
func IsBasicEmail(email string) bool {
	return basicEmail.MatchString(email)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with the "basicemail" tag registered.
// Field names in errors come from the form/json tags.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"form", "json"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
		_ = validate.RegisterValidation("basicemail", func(fl validator.FieldLevel) bool {
			return IsBasicEmail(fl.Field().String())
		})
	})
	return validate
}

// SplitValidationErrors separates fields that failed "required" from fields
// that failed any other rule.
func SplitValidationErrors(err error) (missing, invalid []string) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, nil
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
			continue
		}
		invalid = append(invalid, fe.Field())
	}
	return missing, invalid
}

// ValidationMessage renders field errors as one client message: missing
// fields are listed together, otherwise the first malformed one is named.
func ValidationMessage(missing, invalid []string) string {
	if len(missing) > 0 {
		return "Missing fields: " + strings.Join(missing, ", ")
	}
	if len(invalid) > 0 {
		return "Invalid " + invalid[0]
	}
	return "Invalid input"
}
