package goerror

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// WriteJSON writes e as the response: its status and its JSON Body.
func WriteJSON(w http.ResponseWriter, e *Error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.StatusCode())
	if err := json.NewEncoder(w).Encode(e.Body()); err != nil {
		slog.Error("server: failed to encode error to json", "error", err)
	}
}
