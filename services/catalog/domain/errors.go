package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ghuser/stockroom/services/catalog/domain/models"
)

// Sentinel errors for the catalog domain. Use errors.Is() to check these.
var (
	// ErrCategoryNotFound indicates the requested category does not exist.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrCategoryNameTaken indicates another category already uses the name.
	ErrCategoryNameTaken = errors.New("category name already exists")

	// ErrCategoryMissing indicates an item references a category that does not exist.
	ErrCategoryMissing = errors.New("referenced category does not exist")

	// ErrCategoryHasDependents is returned by stores when a category delete
	// loses a race against an item insert.
	ErrCategoryHasDependents = errors.New("category has dependent items")

	// ErrInvalidInput indicates one or more submitted fields failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDeletionDenied indicates the deletion guard refused a delete.
	ErrDeletionDenied = errors.New("deletion denied")
)

// FieldError is a single field-scoped validation message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field violation of one submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Has reports whether field has at least one violation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// ConflictError reports a category create or rename onto an existing name.
// Existing is nil when the clash was detected by the store's unique index.
type ConflictError struct {
	Name     string
	Existing *models.Category
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %q", ErrCategoryNameTaken, e.Name)
}

func (e *ConflictError) Unwrap() error { return ErrCategoryNameTaken }

// IntegrityError reports an item referencing a category that does not exist.
type IntegrityError struct {
	CategoryID string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCategoryMissing, e.CategoryID)
}

func (e *IntegrityError) Unwrap() error { return ErrCategoryMissing }

// DenialReason explains why the deletion guard refused a delete.
type DenialReason string

const (
	ReasonHasDependents DenialReason = "has dependents"
	ReasonUnauthorized  DenialReason = "unauthorized"
)

// DenialError carries every reason a delete was refused plus the items that
// block it, if any.
type DenialError struct {
	Kind       models.Kind
	ID         string
	Reasons    []DenialReason
	Dependents []*models.Item
}

func (e *DenialError) Error() string {
	reasons := make([]string, len(e.Reasons))
	for i, r := range e.Reasons {
		reasons[i] = string(r)
	}
	return fmt.Sprintf("%s: %s %s: %s", ErrDeletionDenied, e.Kind, e.ID, strings.Join(reasons, ", "))
}

func (e *DenialError) Unwrap() error { return ErrDeletionDenied }

// HasReason reports whether r is among the denial reasons.
func (e *DenialError) HasReason(r DenialReason) bool {
	for _, got := range e.Reasons {
		if got == r {
			return true
		}
	}
	return false
}
