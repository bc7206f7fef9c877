package handler

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("payment_method", validatePaymentMethod)
	_ = v.RegisterValidation("museum_section", validateSection)
	_ = v.RegisterValidation("user_id", validateUserID)
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// ValidateVar validates a single value against a tag
func (v *Validator) ValidateVar(field interface{}, tag string) error {
	return v.validate.Var(field, tag)
}

// userIDRules constrains user ids taken from paths and bodies
const userIDRules = "required,max=100,user_id"

// FormatValidationError formats validation errors into a user-friendly map
// without leaking internal struct names
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "payment_method":
			errs[field] = "Must be one of crypto, card, gcash"
		case "museum_section":
			errs[field] = "Must be one of " + strings.Join(domain.Sections, ", ")
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "gt":
			errs[field] = fmt.Sprintf("Must be greater than %s", e.Param())
		case "user_id":
			errs[field] = "Contains invalid characters"
		case "gte", "lte":
			errs[field] = "Out of range"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	method := fl.Field().String()
	if method == "" {
		return true
	}
	return domain.PaymentMethod(strings.ToLower(method)).Valid()
}

func validateSection(fl validator.FieldLevel) bool {
	section := fl.Field().String()
	if section == "" {
		return true
	}
	return slices.Contains(domain.Sections, strings.ToLower(section))
}

// validateUserID rejects whitespace, control characters and path separators
func validateUserID(fl validator.FieldLevel) bool {
	return !strings.ContainsFunc(fl.Field().String(), func(r rune) bool {
		return r == '/' || unicode.IsSpace(r) || unicode.IsControl(r)
	})
}
