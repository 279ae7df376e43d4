// File: internal/domain/conversation.go
package domain

import "time"

// Conversation is a chat thread between one browser session and one
// character. There is at most one conversation per (character, session)
// pair; it is created lazily on the first chat visit.
type Conversation struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	CharacterID uint      `json:"character_id" gorm:"not null;uniqueIndex:idx_character_session"`
	Character   Character `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	// UserSession is the opaque per-browser session identifier. It is not
	// a user account; two browsers talking to the same character hold two
	// distinct conversations.
	UserSession string    `json:"-" gorm:"not null;size:100;uniqueIndex:idx_character_session"`
	CreatedAt   time.Time `json:"created_at"`
}
