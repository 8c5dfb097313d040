// File: internal/repository/chat/interface.go
package chat

import (
	"context"

	"github.com/niksalehi/go-visionchat/internal/domain"
)

// ChatRepository persists chat documents. Every read and write that takes a
// userID is owner-scoped: a chat that exists but belongs to someone else is
// indistinguishable from one that does not exist.
type ChatRepository interface {
	Create(ctx context.Context, chat *domain.Chat) (*domain.Chat, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Chat, error)
	FindByIDAndUserID(ctx context.Context, chatID, userID uint) (*domain.Chat, error)
	Delete(ctx context.Context, chatID, userID uint) error
	SetTitleIfDefault(ctx context.Context, chatID uint, title string) error
}
