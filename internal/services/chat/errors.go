// File: internal/services/chat/errors.go
package chat

import "fmt"

type ErrorType string

const (
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
	ErrTypeGateway    ErrorType = "GATEWAY"
	ErrTypeStorage    ErrorType = "STORAGE"
)

type ChatError struct {
	Type      ErrorType
	Operation string
	Message   string
	ChatID    uint
	UserID    uint
	Cause     error
}

func (e *ChatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("chat %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("chat %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *ChatError) Unwrap() error { return e.Cause }

func NewValidationError(operation, msg string) *ChatError {
	return &ChatError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

// NewNotFoundError covers both a truly absent chat and one owned by someone
// else; the two are deliberately indistinguishable.
func NewNotFoundError(userID, chatID uint) *ChatError {
	return &ChatError{
		Type:      ErrTypeNotFound,
		Operation: "authorization",
		Message:   "chat not found",
		UserID:    userID,
		ChatID:    chatID,
	}
}

func NewGatewayError(operation string, cause error) *ChatError {
	return &ChatError{Type: ErrTypeGateway, Operation: operation, Message: "completion gateway failed", Cause: cause}
}

func NewStorageError(operation string, cause error) *ChatError {
	return &ChatError{Type: ErrTypeStorage, Operation: operation, Message: "storage failure", Cause: cause}
}
