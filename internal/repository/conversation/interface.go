// File: internal/repository/conversation/interface.go
package conversation

import (
	"context"
	"errors"

	"literarychat/internal/domain"
)

var ErrConversationNotFound = errors.New("conversation not found")

// ConversationRepository persists conversations keyed by (character,
// session).
type ConversationRepository interface {
	// GetOrCreate returns the conversation for the pair, creating it on
	// first visit. The boolean reports whether a row was created.
	GetOrCreate(ctx context.Context, characterID uint, session string) (*domain.Conversation, bool, error)
	// FindByID loads the conversation with its character and the
	// character's book.
	FindByID(ctx context.Context, id uint) (*domain.Conversation, error)
	// Delete removes the conversation and all of its messages.
	Delete(ctx context.Context, id uint) error
}
