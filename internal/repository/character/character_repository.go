// File: internal/repository/character/character_repository.go
package character

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"literarychat/internal/domain"
)

type gormCharacterRepository struct {
	db *gorm.DB
}

func NewCharacterRepository(db *gorm.DB) CharacterRepository {
	return &gormCharacterRepository{db: db}
}

func (r *gormCharacterRepository) Create(ctx context.Context, c *domain.Character) (*domain.Character, error) {
	if err := c.IsValid(); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		log.Printf("[CharacterRepository] Database error creating character %q: %v", c.Name, err)
		return nil, errors.New("database error creating character")
	}
	return c, nil
}

func (r *gormCharacterRepository) FindByID(ctx context.Context, id uint) (*domain.Character, error) {
	if id == 0 {
		return nil, ErrCharacterNotFound
	}
	var c domain.Character
	err := r.db.WithContext(ctx).Preload("Book").First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCharacterNotFound
	}
	if err != nil {
		log.Printf("[CharacterRepository] Database error finding character ID %d: %v", id, err)
		return nil, errors.New("database error fetching character")
	}
	return &c, nil
}

func (r *gormCharacterRepository) FindByBookID(ctx context.Context, bookID uint) ([]domain.Character, error) {
	if bookID == 0 {
		return nil, errors.New("invalid book ID")
	}
	var characters []domain.Character
	err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("name ASC").
		Find(&characters).Error
	if err != nil {
		log.Printf("[CharacterRepository] Database error listing characters for book ID %d: %v", bookID, err)
		return nil, errors.New("database error fetching characters")
	}
	return characters, nil
}
