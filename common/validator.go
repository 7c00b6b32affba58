package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// ruleMessages lists the custom rules by precedence. When several fields
// fail, the message of the earliest rule in this list is reported.
var ruleMessages = []struct {
	tag     string
	message string
}{
	{"required", "Missing required fields"},
	{"emailaddr", "Email address is invalid!"},
	{"nefield", "Can't use the email address as password."},
	{"min", "Password must be at least 8 characters long"},
	{"hasupper", "Password must contain at least one uppercase letter"},
	{"haslower", "Password must contain at least one lowercase letter"},
	{"hasdigit", "Password must contain at least one number"},
	{"eqfield", "Passwords do not match"},
	{"oneof", "Published must be either published or draft"},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "emailaddr", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "hasupper", runeCheck(unicode.IsUpper))
	mustRegister(v, "haslower", runeCheck(unicode.IsLower))
	mustRegister(v, "hasdigit", runeCheck(unicode.IsDigit))

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

func runeCheck(pred func(rune) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if pred(r) {
				return true
			}
		}
		return false
	}
}

// Validate checks payload against its validate tags and returns a 422
// AppError carrying the highest precedence failure message.
func Validate(payload any) *AppError {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return NewAppError(http.StatusInternalServerError, "Could not validate request", err)
	}

	return NewAppError(http.StatusUnprocessableEntity, validationMessage(validationErrors), err)
}

func validationMessage(errs validator.ValidationErrors) string {
	for _, rule := range ruleMessages {
		for _, fe := range errs {
			if fe.Tag() == rule.tag {
				return rule.message
			}
		}
	}
	return fmt.Sprintf("Invalid value for %s", errs[0].Field())
}

// ValidateAndDecode decodes the JSON body into payload and validates it.
func ValidateAndDecode(r *http.Request, payload any) *AppError {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		return NewAppError(http.StatusBadRequest, "Invalid request body", err)
	}
	return Validate(payload)
}
