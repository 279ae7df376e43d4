// File: internal/repository/message/interface.go
package message

import (
	"context"

	"literarychat/internal/domain"
)

// MessageRepository persists the append-only message history of a
// conversation.
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) (*domain.Message, error)
	// FindByConversationID returns messages in timestamp order.
	FindByConversationID(ctx context.Context, conversationID uint) ([]domain.Message, error)
	CountByConversationID(ctx context.Context, conversationID uint) (int64, error)
}
