// Package validation holds request validation helpers: input
// sanitization, identifier checks, and the custom rules wired into the
// gin binding validator.
package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/questlog/quest-service/ecode"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerRules(v)
	}
}

// registerRules wires custom rules and JSON field names into the
// binding validator.
func registerRules(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("password", validPassword)
	_ = v.RegisterValidation("username", validUsername)
}

// Sanitize strips angle brackets from free-text input and trims
// surrounding whitespace. This is a minimal XSS mitigation, not full
// HTML sanitization.
func Sanitize(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if r == '<' || r == '>' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// IsUUID reports whether s is a syntactically valid UUID.
func IsUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// RequestError translates a body binding failure into a validation
// error naming the first offending field when it can be determined.
func RequestError(err error) *ecode.Error {
	const message = "Invalid request body"

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if field := verrs[0].Field(); field != "" {
			return ecode.Validation(message, field)
		}
		return ecode.Validation(message)
	}

	var terr *json.UnmarshalTypeError
	if errors.As(err, &terr) && terr.Field != "" {
		return ecode.Validation(message, terr.Field)
	}

	return ecode.Validation(message)
}

// validPassword requires at least one lowercase letter, one uppercase
// letter and one digit. Length is enforced separately by a min rule.
func validPassword(fl validator.FieldLevel) bool {
	var hasLower, hasUpper, hasDigit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}

// validUsername allows letters, digits, underscores and hyphens only.
func validUsername(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}
