// Package httputil centralizes the JSON response envelope so every
// endpoint answers with the same shape: {"data": ...} / {"message": ...}
// on success, {"error": code, "message": ...} on failure.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "velora/pkg/domain-errors"
)

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteData wraps the payload in the data envelope.
func WriteData(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, map[string]any{"data": data})
}

// WriteMessage writes a bare message envelope.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"message": message})
}

// WriteError translates a domain error into the error envelope. Causes
// wrapped inside the error never reach the body; only the code and the
// user-facing message do.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	body := map[string]string{"error": string(code)}
	if msg := dErrors.MessageOf(err); msg != "" {
		body["message"] = msg
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code), body)
}
