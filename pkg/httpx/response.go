package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
)

// JSON writes v with status. Encoding errors are dropped: the header is
// already sent by then.
func JSON(w http.ResponseWriter, status int, v any) {
	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError writes {"error": message}.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// Created answers 201 with the canonical URL of the new resource in Location.
func Created(w http.ResponseWriter, location string, v any) {
	w.Header().Set("Location", location)
	JSON(w, http.StatusCreated, v)
}

// NoContent answers 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// SafeError is the client-facing message for err. Production hides the text
// of 5xx errors behind the status text.
func SafeError(err error, status int, isProduction bool) string {
	if isProduction && status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}

// DecodeJSON decodes the request body into v. On failure it writes 413 for
// bodies over the RequestBodyLimit cap and 400 otherwise, and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		JSONError(w, http.StatusRequestEntityTooLarge, "Request body too large")
	} else {
		JSONError(w, http.StatusBadRequest, "Invalid JSON")
	}
	return false
}
