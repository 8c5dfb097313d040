// File: internal/handlers/chat_handler.go
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/niksalehi/go-visionchat/internal/dtos"
	"github.com/niksalehi/go-visionchat/internal/middleware"
	"github.com/niksalehi/go-visionchat/internal/services"
)

// maxImageUploadBytes bounds the multipart body for image analysis.
const maxImageUploadBytes = 10 << 20

type ChatHandler struct {
	ChatService *services.ChatService
}

func NewChatHandler(cs *services.ChatService) *ChatHandler {
	return &ChatHandler{ChatService: cs}
}

// GetUserChats handles the request to list all chats for the caller.
func (h *ChatHandler) GetUserChats(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	chats, err := h.ChatService.GetUserChats(r.Context(), principal)
	if err != nil {
		writeChatError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"chats": dtos.ToChatSummaries(chats)})
}

// CreateChat handles the request to create a new empty chat.
func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	chat, err := h.ChatService.CreateChat(r.Context(), principal)
	if err != nil {
		writeChatError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, chat)
}

// GetChat returns the title and full transcript of one owned chat.
func (h *ChatHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	chatID, ok := chatIDFromPath(r)
	if !ok {
		// Malformed ids fail exactly like unknown ones.
		writeError(w, "Chat not found", http.StatusNotFound)
		return
	}

	transcript, err := h.ChatService.GetChat(r.Context(), principal, chatID)
	if err != nil {
		writeChatError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transcript)
}

// DeleteChat removes an owned chat and its messages.
func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	chatID, ok := chatIDFromPath(r)
	if !ok {
		writeError(w, "Chat not found", http.StatusNotFound)
		return
	}

	if err := h.ChatService.DeleteChat(r.Context(), principal, chatID); err != nil {
		writeChatError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Chat deleted"})
}

// SendMessage handles a text exchange against an optional chat.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req dtos.ChatRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	reply, err := h.ChatService.SendText(r.Context(), principal, req.ChatID, req.Query)
	if err != nil {
		writeChatError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.ChatResponseDTO{Response: reply})
}

// AnalyzeImage handles a multipart image exchange against an optional chat.
func (h *ChatHandler) AnalyzeImage(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageUploadBytes)
	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		writeError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, "Image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		writeError(w, "Could not read image file", http.StatusBadRequest)
		return
	}

	prompt := r.FormValue("prompt")

	var chatID uint
	if rawID := r.FormValue("chat_id"); rawID != "" {
		parsed, err := strconv.ParseUint(rawID, 10, 32)
		if err != nil {
			writeError(w, "Chat not found", http.StatusNotFound)
			return
		}
		chatID = uint(parsed)
	}

	reply, err := h.ChatService.SendImage(r.Context(), principal, chatID, prompt, image)
	if err != nil {
		writeChatError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.ChatResponseDTO{Response: reply})
}

// chatIDFromPath parses the {id} path variable. The router already constrains
// it to digits; the parse guard keeps out-of-range values from panicking.
func chatIDFromPath(r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	chatID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil || chatID == 0 {
		return 0, false
	}
	return uint(chatID), true
}
