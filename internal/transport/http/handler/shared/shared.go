// Package shared holds response helpers used by every handler group.
package shared

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// DateLayout is the query parameter format for dates.
const DateLayout = "2006-01-02"

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteJSONError writes a JSON error response.
func WriteJSONError(w http.ResponseWriter, message string, status int) {
	WriteJSON(w, map[string]any{
		"error": map[string]any{
			"message": message,
			"code":    status,
		},
	}, status)
}

// QueryDate parses a YYYY-MM-DD query parameter; invalid or missing values
// yield nil.
func QueryDate(r *http.Request, name string) *time.Time {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return nil
	}
	return &t
}

// QueryInt parses an integer query parameter, returning def when missing or
// below min.
func QueryInt(r *http.Request, name string, def, min int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < min {
		return def
	}
	return n
}
