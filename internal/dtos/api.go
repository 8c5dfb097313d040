// File: internal/dtos/api.go
package dtos

import "github.com/niksalehi/go-visionchat/internal/domain"

// SignupRequestDTO represents the expected payload to create a new account.
type SignupRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequestDTO represents the login payload.
type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponseDTO represents the login response.
type LoginResponseDTO struct {
	Token string `json:"token"`
}

// ChatSummaryDTO is the minimal chat projection used for listings: no
// messages, just enough to render a sidebar.
type ChatSummaryDTO struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// ChatRequestDTO represents a text exchange payload. ChatID of zero means the
// reply is not persisted into any chat.
type ChatRequestDTO struct {
	Query  string `json:"query"`
	ChatID uint   `json:"chat_id,omitempty"`
}

// ChatResponseDTO carries the assistant reply.
type ChatResponseDTO struct {
	Response string `json:"response"`
}

// ToChatSummaries maps chats to their listing projection.
func ToChatSummaries(chats []domain.Chat) []ChatSummaryDTO {
	summaries := make([]ChatSummaryDTO, len(chats))
	for i, c := range chats {
		summaries[i] = ChatSummaryDTO{ID: c.ID, Title: c.Title}
	}
	return summaries
}
