// File: internal/repository/message/message_repository.go
package message

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/niksalehi/go-visionchat/internal/domain"
)

type gormMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

// FindByChatID returns the full transcript of a chat in insertion order.
func (r *gormMessageRepository) FindByChatID(ctx context.Context, chatID uint) ([]domain.Message, error) {
	if chatID == 0 {
		return nil, errors.New("invalid chat ID")
	}

	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("id ASC").
		Find(&messages).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error fetching messages for chat ID %d: %v", chatID, err)
		return nil, errors.New("database error fetching messages")
	}

	return messages, nil
}

// AppendExchange writes the [user, bot] message pair in a single transaction
// so a failure can never leave a partial pair in the transcript.
func (r *gormMessageRepository) AppendExchange(ctx context.Context, chatID uint, userText, botText string) error {
	if chatID == 0 {
		return errors.New("invalid chat ID")
	}
	if userText == "" || botText == "" {
		return errors.New("exchange requires both a user and a bot message")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userMsg := &domain.Message{ChatID: chatID, Sender: domain.SenderUser, Text: userText}
		if err := tx.Create(userMsg).Error; err != nil {
			return err
		}

		botMsg := &domain.Message{ChatID: chatID, Sender: domain.SenderBot, Text: botText}
		return tx.Create(botMsg).Error
	})
	if err != nil {
		log.Printf("[MessageRepository] Database error appending exchange to chat ID %d: %v", chatID, err)
		return errors.New("database error appending messages")
	}

	return nil
}
