// File: internal/domain/message.go
package domain

import "time"

// Message roles. Replies are attributed to the character rather than a
// generic assistant.
const (
	RoleUser      = "user"
	RoleCharacter = "character"
)

// Message is a single utterance within a conversation. Messages are
// append-only and ordered by creation time.
type Message struct {
	ID             uint         `json:"id" gorm:"primarykey"`
	ConversationID uint         `json:"conversation_id" gorm:"not null;index"`
	Conversation   Conversation `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Role           string       `json:"role" gorm:"not null;size:20"`
	Content        string       `json:"content" gorm:"not null"`
	CreatedAt      time.Time    `json:"created_at"`
}
