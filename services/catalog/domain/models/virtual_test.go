package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestResourcePath(t *testing.T) {
	tests := []struct {
		kind Kind
		id   string
		want string
	}{
		{KindItem, "abc123", "/items/abc123"},
		{KindCategory, "xyz789", "/categories/xyz789"},
	}
	for _, tt := range tests {
		if got := ResourcePath(tt.kind, tt.id); got != tt.want {
			t.Errorf("ResourcePath(%s, %s) = %q, want %q", tt.kind, tt.id, got, tt.want)
		}
	}
}

func TestURL(t *testing.T) {
	id := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")

	c := &Category{ID: id}
	if got := c.URL(); got != "/categories/550e8400-e29b-41d4-a716-446655440000" {
		t.Fatalf("unexpected category url %q", got)
	}

	i := &Item{ID: id}
	if got := i.URL(); got != "/items/550e8400-e29b-41d4-a716-446655440000" {
		t.Fatalf("unexpected item url %q", got)
	}
}

func TestDateAdded(t *testing.T) {
	i := &Item{DAdded: time.Date(1983, time.October, 14, 0, 0, 0, 0, time.UTC)}

	if got := i.DateAdded(); got != "Oct 14, 1983" {
		t.Errorf("DateAdded() = %q", got)
	}
	if got := i.DAddedYYYYMMDD(); got != "1983-10-14" {
		t.Errorf("DAddedYYYYMMDD() = %q", got)
	}
}

func TestDateAdded_ZeroDate(t *testing.T) {
	i := &Item{}
	if i.DateAdded() != "" || i.DAddedYYYYMMDD() != "" {
		t.Fatal("expected empty renderings for zero date")
	}
}
