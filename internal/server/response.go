package server

import (
	"encoding/json"
	"net/http"
)

// writeJSON is the single success-response path; keeping encoding in one
// place keeps the API shape consistent.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeMessage writes the {"message": ...} envelope used by every failure
// response (and by the not-found reads).
func writeMessage(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"message": message})
}
