// File: internal/repository/chat/chat_repository.go
package chat

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/niksalehi/go-visionchat/internal/domain"
)

var ErrChatNotFound = errors.New("chat not found")

type gormChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &gormChatRepository{db: db}
}

// Create inserts a new empty chat with the sentinel title.
func (r *gormChatRepository) Create(ctx context.Context, chat *domain.Chat) (*domain.Chat, error) {
	if chat.UserID == 0 {
		return nil, errors.New("invalid user ID")
	}
	if chat.Title == "" {
		chat.Title = domain.DefaultChatTitle
	}

	if err := r.db.WithContext(ctx).Create(chat).Error; err != nil {
		log.Printf("[ChatRepository] Database error during chat creation for user ID %d: %v", chat.UserID, err)
		return nil, errors.New("database error creating chat")
	}

	log.Printf("[ChatRepository] Chat created successfully with ID: %d for user: %d", chat.ID, chat.UserID)
	return chat, nil
}

// FindByUserID returns all chats owned by userID in creation order.
func (r *gormChatRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Chat, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}

	var chats []domain.Chat
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&chats).Error
	if err != nil {
		log.Printf("[ChatRepository] Database error finding chats for user ID %d: %v", userID, err)
		return nil, errors.New("database error fetching chats")
	}

	return chats, nil
}

// FindByIDAndUserID loads a chat only if it is owned by userID. Absent and
// non-owned chats fail identically with ErrChatNotFound.
func (r *gormChatRepository) FindByIDAndUserID(ctx context.Context, chatID, userID uint) (*domain.Chat, error) {
	if chatID == 0 || userID == 0 {
		return nil, ErrChatNotFound
	}

	var chat domain.Chat
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", chatID, userID).
		First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		log.Printf("[ChatRepository] Database error finding chat ID %d for user ID %d: %v", chatID, userID, err)
		return nil, errors.New("database error finding chat")
	}

	return &chat, nil
}

// Delete removes a chat and its messages in one transaction. The owner filter
// on the delete itself means a non-owner gets ErrChatNotFound, never a hint
// that the chat exists.
func (r *gormChatRepository) Delete(ctx context.Context, chatID, userID uint) error {
	if chatID == 0 || userID == 0 {
		return ErrChatNotFound
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", chatID, userID).Delete(&domain.Chat{})
		if result.Error != nil {
			log.Printf("[ChatRepository] Database error deleting chat ID %d for user ID %d: %v", chatID, userID, result.Error)
			return errors.New("database error deleting chat")
		}
		if result.RowsAffected == 0 {
			return ErrChatNotFound
		}

		if err := tx.Where("chat_id = ?", chatID).Delete(&domain.Message{}).Error; err != nil {
			log.Printf("[ChatRepository] Database error deleting messages for chat ID %d: %v", chatID, err)
			return errors.New("database error deleting chat messages")
		}

		log.Printf("[ChatRepository] Chat deleted successfully: ID %d for user %d", chatID, userID)
		return nil
	})
}

// SetTitleIfDefault rewrites the title only while it still equals the sentinel
// default. The guard lives in the WHERE clause, so derivation fires at most
// once per chat even when two exchanges race.
func (r *gormChatRepository) SetTitleIfDefault(ctx context.Context, chatID uint, title string) error {
	if chatID == 0 {
		return ErrChatNotFound
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Chat{}).
		Where("id = ? AND title = ?", chatID, domain.DefaultChatTitle).
		Update("title", title)
	if result.Error != nil {
		log.Printf("[ChatRepository] Database error updating title for chat ID %d: %v", chatID, result.Error)
		return errors.New("database error updating chat title")
	}

	// RowsAffected == 0 just means the title was already derived; not an error.
	return nil
}
