// File: internal/domain/chat.go
package domain

import "time"

// DefaultChatTitle is the sentinel title given to a newly created chat.
// Title auto-derivation only fires while the title still equals this value.
const DefaultChatTitle = "Untitled Chat"

// titlePreviewLength is how much of the first query becomes the chat title.
const titlePreviewLength = 30

// Chat represents a single conversation thread owned by one user.
type Chat struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Title     string    `json:"title" gorm:"not null;default:'Untitled Chat'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeriveTitle produces a chat title from the first user query: the first 30
// characters, with an ellipsis marker iff the query was truncated.
func DeriveTitle(query string) string {
	runes := []rune(query)
	if len(runes) <= titlePreviewLength {
		return query
	}
	return string(runes[:titlePreviewLength]) + "..."
}
