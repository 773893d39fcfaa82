package httpapi

import (
	"encoding/json"
	"net/http"
)

// envelope is the standard response shape for auth and user endpoints:
// {"success": bool, "message": string, ...payload}.
type envelope map[string]any

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// fail writes a non-2xx envelope; success is always false.
func fail(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, envelope{"success": false, "message": message})
}

// failValidation writes the itemized 400 produced by schema validation.
func failValidation(w http.ResponseWriter, errs []string) {
	writeJSON(w, http.StatusBadRequest, envelope{
		"success": false,
		"message": "Validation failed",
		"errors":  errs,
	})
}

// decodeBody parses the JSON request body into a generic map so it can
// be schema-checked before field extraction. An unreadable or
// non-object body yields ok=false with the 400 already written.
func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var m map[string]any
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	return m, true
}

func bodyString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func bodyNumber(m map[string]any, key string) float64 {
	n, _ := m[key].(float64)
	return n
}
