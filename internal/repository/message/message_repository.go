// File: internal/repository/message/message_repository.go
package message

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"literarychat/internal/domain"
)

type gormMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

func (r *gormMessageRepository) Create(ctx context.Context, m *domain.Message) (*domain.Message, error) {
	if m.ConversationID == 0 {
		return nil, errors.New("message must belong to a conversation")
	}
	if m.Role != domain.RoleUser && m.Role != domain.RoleCharacter {
		return nil, errors.New("invalid message role")
	}
	if m.Content == "" {
		return nil, errors.New("message content cannot be empty")
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		log.Printf("[MessageRepository] Database error creating message for conversation ID %d: %v", m.ConversationID, err)
		return nil, errors.New("database error creating message")
	}
	return m, nil
}

func (r *gormMessageRepository) FindByConversationID(ctx context.Context, conversationID uint) ([]domain.Message, error) {
	if conversationID == 0 {
		return nil, errors.New("invalid conversation ID")
	}
	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error fetching messages for conversation ID %d: %v", conversationID, err)
		return nil, errors.New("database error fetching messages")
	}
	return messages, nil
}

func (r *gormMessageRepository) CountByConversationID(ctx context.Context, conversationID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("conversation_id = ?", conversationID).
		Count(&count).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error counting messages for conversation ID %d: %v", conversationID, err)
		return 0, errors.New("database error counting messages")
	}
	return count, nil
}
