// File: internal/repository/conversation/conversation_repository.go
package conversation

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"literarychat/internal/domain"
)

type gormConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &gormConversationRepository{db: db}
}

func (r *gormConversationRepository) GetOrCreate(ctx context.Context, characterID uint, session string) (*domain.Conversation, bool, error) {
	if characterID == 0 || session == "" {
		return nil, false, errors.New("invalid character ID or session")
	}

	var conv domain.Conversation
	result := r.db.WithContext(ctx).
		Where(domain.Conversation{CharacterID: characterID, UserSession: session}).
		FirstOrCreate(&conv)
	if result.Error != nil {
		log.Printf("[ConversationRepository] Database error in get-or-create for character ID %d: %v", characterID, result.Error)
		return nil, false, errors.New("database error fetching conversation")
	}
	return &conv, result.RowsAffected > 0, nil
}

func (r *gormConversationRepository) FindByID(ctx context.Context, id uint) (*domain.Conversation, error) {
	if id == 0 {
		return nil, ErrConversationNotFound
	}
	var conv domain.Conversation
	err := r.db.WithContext(ctx).
		Preload("Character").
		Preload("Character.Book").
		First(&conv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		log.Printf("[ConversationRepository] Database error finding conversation ID %d: %v", id, err)
		return nil, errors.New("database error fetching conversation")
	}
	return &conv, nil
}

func (r *gormConversationRepository) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrConversationNotFound
	}

	// The message delete runs inside the same transaction so a
	// conversation never survives with orphaned history, regardless of
	// whether the driver enforces foreign-key cascades.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).Delete(&domain.Message{}).Error; err != nil {
			log.Printf("[ConversationRepository] Database error deleting messages for conversation ID %d: %v", id, err)
			return errors.New("database error deleting messages")
		}
		result := tx.Delete(&domain.Conversation{}, id)
		if result.Error != nil {
			log.Printf("[ConversationRepository] Database error deleting conversation ID %d: %v", id, result.Error)
			return errors.New("database error deleting conversation")
		}
		if result.RowsAffected == 0 {
			return ErrConversationNotFound
		}
		return nil
	})
}
