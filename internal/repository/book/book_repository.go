// File: internal/repository/book/book_repository.go
package book

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"literarychat/internal/domain"
)

type gormBookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &gormBookRepository{db: db}
}

func (r *gormBookRepository) Create(ctx context.Context, b *domain.Book) (*domain.Book, error) {
	if err := b.IsValid(); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		log.Printf("[BookRepository] Database error creating book %q: %v", b.Title, err)
		return nil, errors.New("database error creating book")
	}
	return b, nil
}

func (r *gormBookRepository) FindByID(ctx context.Context, id uint) (*domain.Book, error) {
	if id == 0 {
		return nil, ErrBookNotFound
	}
	var b domain.Book
	err := r.db.WithContext(ctx).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		log.Printf("[BookRepository] Database error finding book ID %d: %v", id, err)
		return nil, errors.New("database error fetching book")
	}
	return &b, nil
}

func (r *gormBookRepository) FindProcessed(ctx context.Context) ([]domain.Book, error) {
	var books []domain.Book
	err := r.db.WithContext(ctx).
		Where("is_processed = ?", true).
		Order("created_at DESC, id DESC").
		Find(&books).Error
	if err != nil {
		log.Printf("[BookRepository] Database error listing processed books: %v", err)
		return nil, errors.New("database error fetching books")
	}
	return books, nil
}

func (r *gormBookRepository) FindAll(ctx context.Context) ([]domain.Book, error) {
	var books []domain.Book
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&books).Error
	if err != nil {
		log.Printf("[BookRepository] Database error listing books: %v", err)
		return nil, errors.New("database error fetching books")
	}
	return books, nil
}

func (r *gormBookRepository) MarkProcessed(ctx context.Context, id uint, vectorStorePath string) error {
	if id == 0 {
		return ErrBookNotFound
	}
	result := r.db.WithContext(ctx).
		Model(&domain.Book{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_processed":      true,
			"vector_store_path": vectorStorePath,
		})
	if result.Error != nil {
		log.Printf("[BookRepository] Database error marking book ID %d processed: %v", id, result.Error)
		return errors.New("database error updating book")
	}
	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}
