package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/services/catalog/domain"
)

func TestValidateCategory(t *testing.T) {
	tests := []struct {
		name       string
		input      CategoryInput
		wantFields []string
	}{
		{"valid", CategoryInput{Name: "Tools", Description: "Hand tools"}, nil},
		{"minimum lengths", CategoryInput{Name: "abc", Description: "abcde"}, nil},
		{"maximum name", CategoryInput{Name: strings.Repeat("n", 50), Description: "valid text"}, nil},
		{"name too short", CategoryInput{Name: "ab", Description: "valid text"}, []string{"name"}},
		{"name too long", CategoryInput{Name: strings.Repeat("n", 51), Description: "valid text"}, []string{"name"}},
		{"padding does not count", CategoryInput{Name: "  ab  ", Description: "  abcd  "}, []string{"name", "description"}},
		{"both empty", CategoryInput{}, []string{"name", "description"}},
		{"control character", CategoryInput{Name: "Too\x00ls", Description: "valid text"}, []string{"name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateCategory(tt.input)
			assertFields(t, err, tt.wantFields)
		})
	}
}

func TestValidateCategory_TrimsInput(t *testing.T) {
	out, err := ValidateCategory(CategoryInput{Name: "  Tools  ", Description: "\tHand tools\n"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Name != "Tools" || out.Description != "Hand tools" {
		t.Fatalf("expected trimmed values, got %q / %q", out.Name, out.Description)
	}
}

func TestValidateCategory_Messages(t *testing.T) {
	_, err := ValidateCategory(CategoryInput{Name: "ab", Description: "abc"})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %v", err)
	}
	want := map[string]string{
		"name":        "Category name must contain between 3 and 50 characters.",
		"description": "Category description must contain at least 5 characters.",
	}
	for _, f := range ve.Fields {
		if want[f.Field] != f.Message {
			t.Errorf("field %s: got %q, want %q", f.Field, f.Message, want[f.Field])
		}
	}
}

func validItem() ItemInput {
	return ItemInput{
		Name:     "Hammer",
		Category: uuid.NewString(),
		NIS:      "4",
	}
}

func TestValidateItem(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*ItemInput)
		wantFields []string
	}{
		{"valid minimal", func(*ItemInput) {}, nil},
		{"valid full", func(in *ItemInput) {
			in.Description = "Claw hammer"
			in.Price = "12.50"
			in.DAdded = "2024-03-01"
		}, nil},
		{"zero stock", func(in *ItemInput) { in.NIS = "0" }, nil},
		{"zero price", func(in *ItemInput) { in.Price = "0" }, nil},
		{"name too short", func(in *ItemInput) { in.Name = "ab" }, []string{"name"}},
		{"name too long", func(in *ItemInput) { in.Name = strings.Repeat("n", 81) }, []string{"name"}},
		{"description too short", func(in *ItemInput) { in.Description = "ab" }, []string{"description"}},
		{"description too long", func(in *ItemInput) { in.Description = strings.Repeat("d", 501) }, []string{"description"}},
		{"missing category", func(in *ItemInput) { in.Category = "" }, []string{"category"}},
		{"malformed category", func(in *ItemInput) { in.Category = "abc123" }, []string{"category"}},
		{"negative price", func(in *ItemInput) { in.Price = "-1" }, []string{"price"}},
		{"non-numeric price", func(in *ItemInput) { in.Price = "cheap" }, []string{"price"}},
		{"missing stock", func(in *ItemInput) { in.NIS = "" }, []string{"nis"}},
		{"fractional stock", func(in *ItemInput) { in.NIS = "1.5" }, []string{"nis"}},
		{"negative stock", func(in *ItemInput) { in.NIS = "-2" }, []string{"nis"}},
		{"overflowing stock", func(in *ItemInput) { in.NIS = "99999999999999999999" }, []string{"nis"}},
		{"invalid date", func(in *ItemInput) { in.DAdded = "not-a-date" }, []string{"d_added"}},
		{"everything wrong", func(in *ItemInput) {
			in.Name = ""
			in.Category = ""
			in.NIS = ""
			in.Price = "x"
			in.DAdded = "x"
		}, []string{"name", "category", "price", "nis", "d_added"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validItem()
			tt.mutate(&in)
			_, err := ValidateItem(in)
			assertFields(t, err, tt.wantFields)
		})
	}
}

func TestValidateItem_Coerces(t *testing.T) {
	catID := uuid.New()
	out, err := ValidateItem(ItemInput{
		Name:        "  Hammer ",
		Description: " Claw hammer ",
		Category:    catID.String(),
		Price:       "12.50",
		NIS:         " 7 ",
		DAdded:      "2024-03-01",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Name != "Hammer" || out.Description != "Claw hammer" {
		t.Errorf("expected trimmed text, got %q / %q", out.Name, out.Description)
	}
	if out.CategoryID != catID {
		t.Errorf("category: got %s, want %s", out.CategoryID, catID)
	}
	if !out.Price.Valid || out.Price.Decimal.String() != "12.5" {
		t.Errorf("price: got %+v", out.Price)
	}
	if out.NIS != 7 {
		t.Errorf("nis: got %d", out.NIS)
	}
	if !out.DAdded.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("d_added: got %v", out.DAdded)
	}
}

func TestValidateItem_UppercaseCategoryID(t *testing.T) {
	catID := uuid.New()
	in := validItem()
	in.Category = strings.ToUpper(catID.String())

	out, err := ValidateItem(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.CategoryID != catID {
		t.Errorf("category: got %s, want %s", out.CategoryID, catID)
	}
}

func TestValidateItem_DateKeepsWrittenDay(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-01T22:00:00-05:00", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-03-01T01:00:00+09:00", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-03-01T23:59:59Z", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			in := validItem()
			in.DAdded = tt.in
			out, err := ValidateItem(in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !out.DAdded.Equal(tt.want) {
				t.Errorf("d_added: got %v, want %v", out.DAdded, tt.want)
			}
		})
	}
}

func TestValidateItem_BlankOptionalFields(t *testing.T) {
	out, err := ValidateItem(validItem())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Price.Valid {
		t.Error("expected absent price")
	}
	if !out.DAdded.IsZero() {
		t.Errorf("expected zero d_added for blank input, got %v", out.DAdded)
	}
}

func TestToday_IsDateOnly(t *testing.T) {
	if _, err := time.Parse(time.DateOnly, Today()); err != nil {
		t.Fatalf("Today() = %q is not YYYY-MM-DD: %v", Today(), err)
	}
}

func assertFields(t *testing.T, err error, want []string) {
	t.Helper()
	if len(want) == 0 {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return
	}

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %v", err)
	}
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatal("expected error to wrap ErrInvalidInput")
	}
	if len(ve.Fields) != len(want) {
		t.Fatalf("got fields %+v, want %v", ve.Fields, want)
	}
	for _, f := range want {
		if !ve.Has(f) {
			t.Errorf("expected violation on %q, got %+v", f, ve.Fields)
		}
	}
}
