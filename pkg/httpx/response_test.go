package httpx_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/stockroom/pkg/httpx"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid JSON"}`, w.Body.String())
}

func TestCreated(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.Created(w, "/categories/42", map[string]string{"name": "Tools"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/categories/42", w.Header().Get("Location"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "Tools", body["name"])
}

func TestNoContent(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.NoContent(w)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestSafeError(t *testing.T) {
	err := errors.New(`pq: relation "items" does not exist`)

	assert.Equal(t, "Internal Server Error", httpx.SafeError(err, http.StatusInternalServerError, true))
	assert.Equal(t, err.Error(), httpx.SafeError(err, http.StatusInternalServerError, false))
	assert.Equal(t, err.Error(), httpx.SafeError(err, http.StatusConflict, true))
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name       string
		body       string
		limit      int64
		wantOK     bool
		wantStatus int
	}{
		{"valid body", `{"name":"Tools"}`, 1 << 10, true, http.StatusOK},
		{"malformed body", `{"name":`, 1 << 10, false, http.StatusBadRequest},
		{"empty body", ``, 1 << 10, false, http.StatusBadRequest},
		{"oversized body", `{"name":"` + strings.Repeat("x", 64) + `"}`, 16, false, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			r.Body = http.MaxBytesReader(w, r.Body, tt.limit)

			var p payload
			ok := httpx.DecodeJSON(w, r, &p)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStatus, w.Code)
			if ok {
				assert.Equal(t, "Tools", p.Name)
			}
		})
	}
}
