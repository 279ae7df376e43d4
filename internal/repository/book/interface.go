// File: internal/repository/book/interface.go
package book

import (
	"context"
	"errors"

	"literarychat/internal/domain"
)

var ErrBookNotFound = errors.New("book not found")

// BookRepository persists books and their indexing state.
type BookRepository interface {
	Create(ctx context.Context, b *domain.Book) (*domain.Book, error)
	FindByID(ctx context.Context, id uint) (*domain.Book, error)
	// FindProcessed lists the books whose index is ready, newest first.
	FindProcessed(ctx context.Context) ([]domain.Book, error)
	// FindAll lists every book, newest first, for the admin surface.
	FindAll(ctx context.Context) ([]domain.Book, error)
	// MarkProcessed records a successful indexing run: the locator and the
	// processed flag flip together.
	MarkProcessed(ctx context.Context, id uint, vectorStorePath string) error
}
