// File: internal/services/chat_service.go
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/niksalehi/go-visionchat/internal/domain"
	chatrepo "github.com/niksalehi/go-visionchat/internal/repository/chat"
	"github.com/niksalehi/go-visionchat/internal/repository/message"
	"github.com/niksalehi/go-visionchat/internal/services/ai"
	chatservice "github.com/niksalehi/go-visionchat/internal/services/chat"
)

// ChatTranscript is the full view of one chat returned to its owner.
type ChatTranscript struct {
	Title    string           `json:"title"`
	Messages []domain.Message `json:"messages"`
}

// ChatService orchestrates chat CRUD and the exchange flow: ownership check,
// gateway call, paired append, title derivation.
type ChatService struct {
	chatRepo    chatrepo.ChatRepository
	messageRepo message.MessageRepository
	provider    ai.Provider
	retryConfig *ai.RetryConfig
	logger      Logger
}

func NewChatService(
	chatRepo chatrepo.ChatRepository,
	messageRepo message.MessageRepository,
	provider ai.Provider,
	logger Logger,
) (*ChatService, error) {
	if chatRepo == nil {
		return nil, chatservice.NewValidationError("constructor", "chat repository is required")
	}
	if messageRepo == nil {
		return nil, chatservice.NewValidationError("constructor", "message repository is required")
	}
	if provider == nil {
		return nil, chatservice.NewValidationError("constructor", "completion provider is required")
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}

	return &ChatService{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		provider:    provider,
		retryConfig: ai.DefaultRetryConfig(),
		logger:      logger,
	}, nil
}

// CreateChat inserts an empty chat owned by the principal.
func (s *ChatService) CreateChat(ctx context.Context, principal domain.Principal) (*domain.Chat, error) {
	newChat := &domain.Chat{UserID: principal.UserID, Title: domain.DefaultChatTitle}
	createdChat, err := s.chatRepo.Create(ctx, newChat)
	if err != nil {
		return nil, chatservice.NewStorageError("create_chat", err)
	}

	s.logger.Info("chat created", "chat_id", createdChat.ID, "user_id", principal.UserID)
	return createdChat, nil
}

// GetUserChats returns all chats owned by the principal, in creation order,
// without their messages.
func (s *ChatService) GetUserChats(ctx context.Context, principal domain.Principal) ([]domain.Chat, error) {
	chats, err := s.chatRepo.FindByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, chatservice.NewStorageError("list_chats", err)
	}
	return chats, nil
}

// GetChat returns the title and transcript of an owned chat.
func (s *ChatService) GetChat(ctx context.Context, principal domain.Principal, chatID uint) (*ChatTranscript, error) {
	chatRecord, err := s.chatRepo.FindByIDAndUserID(ctx, chatID, principal.UserID)
	if err != nil {
		if errors.Is(err, chatrepo.ErrChatNotFound) {
			return nil, chatservice.NewNotFoundError(principal.UserID, chatID)
		}
		return nil, chatservice.NewStorageError("get_chat", err)
	}

	messages, err := s.messageRepo.FindByChatID(ctx, chatID)
	if err != nil {
		return nil, chatservice.NewStorageError("get_chat", err)
	}

	return &ChatTranscript{Title: chatRecord.Title, Messages: messages}, nil
}

// DeleteChat removes an owned chat and its messages.
func (s *ChatService) DeleteChat(ctx context.Context, principal domain.Principal, chatID uint) error {
	err := s.chatRepo.Delete(ctx, chatID, principal.UserID)
	if err != nil {
		if errors.Is(err, chatrepo.ErrChatNotFound) {
			return chatservice.NewNotFoundError(principal.UserID, chatID)
		}
		return chatservice.NewStorageError("delete_chat", err)
	}

	s.logger.Info("chat deleted", "chat_id", chatID, "user_id", principal.UserID)
	return nil
}

// SendText runs a text exchange. Ownership is checked before the gateway is
// called so a bad chat id never wastes an external call; messages are only
// appended after the reply is fully received, so a gateway failure leaves the
// transcript untouched. The title is derived from the first query, once.
func (s *ChatService) SendText(ctx context.Context, principal domain.Principal, chatID uint, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", chatservice.NewValidationError("send_text", "query cannot be empty")
	}

	// chatID == 0 means a chat-less exchange: the reply is returned but not
	// persisted anywhere.
	if chatID != 0 {
		if _, err := s.chatRepo.FindByIDAndUserID(ctx, chatID, principal.UserID); err != nil {
			if errors.Is(err, chatrepo.ErrChatNotFound) {
				return "", chatservice.NewNotFoundError(principal.UserID, chatID)
			}
			return "", chatservice.NewStorageError("send_text", err)
		}
	}

	var reply string
	err := ai.RetryWithBackoff(ctx, s.retryConfig, func(ctx context.Context) error {
		var callErr error
		reply, callErr = s.provider.Complete(ctx, query)
		return callErr
	})
	if err != nil {
		s.logger.Warn("text completion failed", "chat_id", chatID, "user_id", principal.UserID, "error", err)
		return "", chatservice.NewGatewayError("send_text", err)
	}

	if chatID != 0 {
		if err := s.messageRepo.AppendExchange(ctx, chatID, query, reply); err != nil {
			return "", chatservice.NewStorageError("send_text", err)
		}

		if err := s.chatRepo.SetTitleIfDefault(ctx, chatID, domain.DeriveTitle(query)); err != nil {
			// The exchange itself is already committed; log and move on.
			s.logger.Warn("title derivation failed", "chat_id", chatID, "error", err)
		}
	}

	s.logger.Info("text exchange completed", "chat_id", chatID, "user_id", principal.UserID)
	return reply, nil
}

// SendImage runs an image-analysis exchange with the same ownership and
// append contract as SendText. Image exchanges never touch the title.
func (s *ChatService) SendImage(ctx context.Context, principal domain.Principal, chatID uint, prompt string, image []byte) (string, error) {
	if len(image) == 0 {
		return "", chatservice.NewValidationError("send_image", "image is required")
	}
	if strings.TrimSpace(prompt) == "" {
		prompt = "Describe this image."
	}

	if chatID != 0 {
		if _, err := s.chatRepo.FindByIDAndUserID(ctx, chatID, principal.UserID); err != nil {
			if errors.Is(err, chatrepo.ErrChatNotFound) {
				return "", chatservice.NewNotFoundError(principal.UserID, chatID)
			}
			return "", chatservice.NewStorageError("send_image", err)
		}
	}

	var reply string
	err := ai.RetryWithBackoff(ctx, s.retryConfig, func(ctx context.Context) error {
		var callErr error
		reply, callErr = s.provider.AnalyzeImage(ctx, prompt, image)
		return callErr
	})
	if err != nil {
		s.logger.Warn("image analysis failed", "chat_id", chatID, "user_id", principal.UserID, "error", err)
		return "", chatservice.NewGatewayError("send_image", err)
	}

	if chatID != 0 {
		if err := s.messageRepo.AppendExchange(ctx, chatID, prompt, reply); err != nil {
			return "", chatservice.NewStorageError("send_image", err)
		}
	}

	s.logger.Info("image exchange completed", "chat_id", chatID, "user_id", principal.UserID)
	return reply, nil
}
