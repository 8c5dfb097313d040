// File: internal/handlers/system_handler.go
package handlers

import (
	"net/http"

	"github.com/niksalehi/go-visionchat/internal/config"
)

// SystemHandler serves the liveness and key-status probes.
type SystemHandler struct {
	Config *config.Config
}

func NewSystemHandler(cfg *config.Config) *SystemHandler {
	return &SystemHandler{Config: cfg}
}

// Root answers the bare liveness check.
func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Chatbot API running"})
}

// TestKey reports whether a gateway API key is configured, without ever
// echoing the key itself.
func (h *SystemHandler) TestKey(w http.ResponseWriter, r *http.Request) {
	if h.Config.OpenRouterAPIKey == "" {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"message": "No API key found",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "API key loaded successfully",
	})
}
