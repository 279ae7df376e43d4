// File: internal/domain/book.go
package domain

import (
	"errors"
	"strings"
	"time"
)

// Book is a literary work whose text can be indexed for retrieval.
// Chat is only offered for books with IsProcessed set.
type Book struct {
	ID              uint   `json:"id" gorm:"primarykey"`
	Title           string `json:"title" gorm:"not null"`
	Author          string `json:"author" gorm:"not null"`
	PublicationYear *int   `json:"publication_year,omitempty"`
	Description     string `json:"description"`
	// TextFilePath points at the source text asset on local disk.
	TextFilePath   string    `json:"-" gorm:"not null"`
	CoverImagePath string    `json:"cover_image,omitempty"`
	IsProcessed    bool      `json:"is_processed" gorm:"not null;default:false"`
	// VectorStorePath locates the persisted vector index for this book.
	// Its exact shape is owned by the vector store backend (a filesystem
	// path for the local backend, a namespace for pinecone).
	VectorStorePath string    `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
}

func (b *Book) IsValid() error {
	if strings.TrimSpace(b.Title) == "" {
		return errors.New("book title is required")
	}
	if strings.TrimSpace(b.Author) == "" {
		return errors.New("book author is required")
	}
	if strings.TrimSpace(b.TextFilePath) == "" {
		return errors.New("book text file path is required")
	}
	return nil
}
