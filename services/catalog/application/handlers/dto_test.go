package handlers

import (
	"encoding/json"
	"testing"
)

func TestFlexString_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want flexString
	}{
		{"string", `{"nis":"42"}`, "42"},
		{"integer", `{"nis":42}`, "42"},
		{"decimal keeps its text", `{"nis":12.50}`, "12.50"},
		{"negative", `{"nis":-1}`, "-1"},
		{"null", `{"nis":null}`, ""},
		{"absent", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v struct {
				NIS flexString `json:"nis"`
			}
			if err := json.Unmarshal([]byte(tt.in), &v); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v.NIS != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, v.NIS)
			}
		})
	}
}

func TestFlexString_RejectsObjects(t *testing.T) {
	var v struct {
		NIS flexString `json:"nis"`
	}
	if err := json.Unmarshal([]byte(`{"nis":{"n":1}}`), &v); err == nil {
		t.Fatal("expected error for object value")
	}
}
