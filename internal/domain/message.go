// File: internal/domain/message.go
package domain

import "time"

// Message sender roles. The transcript only ever contains these two.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message represents a single message within a chat. Messages are append-only:
// once written they are never edited or removed individually.
type Message struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ChatID    uint      `json:"chat_id" gorm:"not null;index"`
	Sender    string    `json:"sender" gorm:"not null"` // "user" or "bot"
	Text      string    `json:"text" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
