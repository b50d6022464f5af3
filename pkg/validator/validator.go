package validator

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/ghuser/stockroom/pkg/httpx"
)

// DateLayouts are the accepted encodings for the "isodate" tag, tried in order.
var DateLayouts = []string{time.DateOnly, time.RFC3339, time.RFC3339Nano}

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name so messages line up with the request.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// isodate: string parses as a calendar date in one of DateLayouts.
	_ = validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})

	// money: string parses as a decimal amount that is not negative.
	_ = validate.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && !d.IsNegative()
	})
}

// ParseDate parses s with the first matching layout in DateLayouts.
func ParseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range DateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("parse date %q: %w", s, lastErr)
}

// Validate runs struct-level validation using go-playground/validator tags.
func Validate(s any) error {
	return validate.Struct(s)
}

// FieldError is one field-scoped failure in declaration order.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Message string
}

// Fields flattens validator.ValidationErrors into FieldErrors, preserving the
// struct's field order. Returns nil for nil or non-validation errors.
func Fields(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		out = append(out, FieldError{
			Field:   e.Field(),
			Tag:     e.Tag(),
			Param:   e.Param(),
			Message: formatFieldError(e),
		})
	}
	return out
}

// FormatValidationErrors converts validator.ValidationErrors into a map of
// field name to message.
func FormatValidationErrors(err error) map[string]string {
	errs := make(map[string]string)
	for _, fe := range Fields(err) {
		errs[fe.Field] = fe.Message
	}
	return errs
}

// messages maps a tag to its client-facing text. Param-taking tags format
// the param in.
var messages = map[string]func(param string) string{
	"required": fixed("This field is required"),
	"uuid":     fixed("Must be a valid UUID"),
	"uuid4":    fixed("Must be a valid UUID"),
	"numeric":  fixed("Must be a numeric value"),
	"number":   fixed("Must be a whole number"),
	"isodate":  fixed("Must be a valid date (YYYY-MM-DD)"),
	"money":    fixed("Must be a non-negative amount"),
	"min":      func(p string) string { return "Minimum length is " + p },
	"max":      func(p string) string { return "Maximum length is " + p },
	"gte":      func(p string) string { return "Must be greater than or equal to " + p },
	"lte":      func(p string) string { return "Must be less than or equal to " + p },
}

func fixed(msg string) func(string) string {
	return func(string) string { return msg }
}

func formatFieldError(e validator.FieldError) string {
	if m, ok := messages[e.Tag()]; ok {
		return m(e.Param())
	}
	return fmt.Sprintf("Validation failed on '%s'", e.Tag())
}

// ValidateRequest decodes the JSON request body into T, validates it, and
// writes an appropriate error response if either step fails.
// Returns (parsedStruct, true) on success or (nil, false) on failure.
func ValidateRequest[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	var req T
	if !httpx.DecodeJSON(w, r, &req) {
		return nil, false
	}
	if err := Validate(&req); err != nil {
		httpx.JSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "Validation failed",
			"fields": FormatValidationErrors(err),
		})
		return nil, false
	}
	return &req, true
}
