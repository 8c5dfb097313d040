// File: internal/repository/message/interface.go
package message

import (
	"context"

	"github.com/niksalehi/go-visionchat/internal/domain"
)

// MessageRepository persists the append-only message log of a chat.
type MessageRepository interface {
	FindByChatID(ctx context.Context, chatID uint) ([]domain.Message, error)
	// AppendExchange appends a user message immediately followed by a bot
	// message. Either both are persisted or neither is.
	AppendExchange(ctx context.Context, chatID uint, userText, botText string) error
}
