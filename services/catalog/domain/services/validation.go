// Package services contains stateless domain services for the catalog bounded
// context: field validation and the deletion guard. They operate on domain
// types and reach persistence only through the narrow interfaces declared here.
package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgvalidator "github.com/ghuser/stockroom/pkg/validator"
	"github.com/ghuser/stockroom/services/catalog/domain"
	"github.com/ghuser/stockroom/services/catalog/domain/models"
)

// CategoryInput is a raw category submission.
type CategoryInput struct {
	Name        string `json:"name"        validate:"min=3,max=50"`
	Description string `json:"description" validate:"min=5"`
}

// ItemInput is a raw item submission. Numeric and date fields arrive as text
// and are coerced only after every rule has been checked.
type ItemInput struct {
	Name        string `json:"name"        validate:"min=3,max=80"`
	Description string `json:"description" validate:"omitempty,min=3,max=500"`
	Category    string `json:"category"    validate:"required,uuid"`
	Price       string `json:"price"       validate:"omitempty,money"`
	NIS         string `json:"nis"         validate:"required,number"`
	DAdded      string `json:"d_added"     validate:"omitempty,isodate"`
}

// messages maps "field" or "field.tag" to the text shown to the requester.
type messages map[string]string

func (m messages) lookup(fe pkgvalidator.FieldError) string {
	if msg, ok := m[fe.Field+"."+fe.Tag]; ok {
		return msg
	}
	if msg, ok := m[fe.Field]; ok {
		return msg
	}
	return fe.Message
}

var categoryMessages = messages{
	"name":        "Category name must contain between 3 and 50 characters.",
	"description": "Category description must contain at least 5 characters.",
}

var itemMessages = messages{
	"name":              "Item name must contain between 3 and 80 characters.",
	"description":       "Item description must contain between 3 and 500 characters.",
	"category.required": "Category is required.",
	"category":          "Category must be a valid identifier.",
	"price":             "Price must be a non-negative amount.",
	"nis.required":      "Stock number is required.",
	"nis":               "Stock number must be a whole number.",
	"d_added":           "Invalid date.",
}

// ValidateCategory trims the submission and checks every category rule,
// returning the normalized input or a *domain.ValidationError listing all
// violations.
func ValidateCategory(in CategoryInput) (CategoryInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	fields := collect(pkgvalidator.Validate(&in), categoryMessages)
	fields = checkPrintable(fields, "name", in.Name, "Category name must not contain control characters.")

	if len(fields) > 0 {
		return in, &domain.ValidationError{Fields: fields}
	}
	return in, nil
}

// ValidateItem trims the submission, checks every item rule and coerces the
// text fields into an ItemFields value. A blank d_added yields a zero date,
// which models.NewItem turns into the creation date.
func ValidateItem(in ItemInput) (models.ItemFields, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	in.Price = strings.TrimSpace(in.Price)
	in.NIS = strings.TrimSpace(in.NIS)
	in.DAdded = strings.TrimSpace(in.DAdded)

	fields := collect(pkgvalidator.Validate(&in), itemMessages)
	fields = checkPrintable(fields, "name", in.Name, "Item name must not contain control characters.")

	var out models.ItemFields
	out.Name = in.Name
	out.Description = in.Description

	if !hasField(fields, "category") {
		out.CategoryID = uuid.MustParse(in.Category)
	}
	if in.Price != "" && !hasField(fields, "price") {
		out.Price = decimal.NewNullDecimal(decimal.RequireFromString(in.Price))
	}
	if !hasField(fields, "nis") {
		nis, err := strconv.ParseInt(in.NIS, 10, 64)
		if err != nil {
			fields = append(fields, domain.FieldError{Field: "nis", Message: "Stock number is too large."})
		}
		out.NIS = nis
	}
	if in.DAdded != "" && !hasField(fields, "d_added") {
		d, err := pkgvalidator.ParseDate(in.DAdded)
		if err != nil {
			return models.ItemFields{}, fmt.Errorf("parse validated date: %w", err)
		}
		// the calendar day as written, whatever offset came with it
		y, m, day := d.Date()
		out.DAdded = time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	}

	if len(fields) > 0 {
		return models.ItemFields{}, &domain.ValidationError{Fields: fields}
	}
	return out, nil
}

// Today is the default shown in date inputs for a new item.
func Today() string {
	return time.Now().UTC().Format(time.DateOnly)
}

func collect(err error, msgs messages) []domain.FieldError {
	var out []domain.FieldError
	for _, fe := range pkgvalidator.Fields(err) {
		out = append(out, domain.FieldError{Field: fe.Field, Message: msgs.lookup(fe)})
	}
	return out
}

// checkPrintable rejects control characters in a field that has no other
// violation, keeping one message per field.
func checkPrintable(fields []domain.FieldError, field, value, msg string) []domain.FieldError {
	if hasField(fields, field) {
		return fields
	}
	for _, r := range value {
		if unicode.IsControl(r) {
			return append(fields, domain.FieldError{Field: field, Message: msg})
		}
	}
	return fields
}

func hasField(fields []domain.FieldError, field string) bool {
	for _, f := range fields {
		if f.Field == field {
			return true
		}
	}
	return false
}
