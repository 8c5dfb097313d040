// File: internal/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/niksalehi/go-visionchat/internal/services/chat"
)

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeChatError maps a chat service failure to its HTTP status. Only the
// top-level message is surfaced; internals stay in the logs.
func writeChatError(w http.ResponseWriter, err error) {
	var chatErr *chat.ChatError
	if errors.As(err, &chatErr) {
		switch chatErr.Type {
		case chat.ErrTypeNotFound:
			writeError(w, "Chat not found", http.StatusNotFound)
			return
		case chat.ErrTypeValidation:
			writeError(w, chatErr.Message, http.StatusBadRequest)
			return
		case chat.ErrTypeGateway:
			writeError(w, "Completion service unavailable: "+chatErr.Error(), http.StatusBadGateway)
			return
		}
	}
	writeError(w, "Internal server error", http.StatusInternalServerError)
}
