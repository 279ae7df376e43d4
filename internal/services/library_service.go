package services

import (
	"context"
	"fmt"

	"literarychat/internal/domain"
	bookrepo "literarychat/internal/repository/book"
	characterrepo "literarychat/internal/repository/character"
)

// LibraryService serves the catalog: which books are open for chat, which
// characters belong to them, and the administrative create operations.
type LibraryService struct {
	bookRepo      bookrepo.BookRepository
	characterRepo characterrepo.CharacterRepository
	logger        Logger
}

func NewLibraryService(bookRepo bookrepo.BookRepository, characterRepo characterrepo.CharacterRepository, logger Logger) (*LibraryService, error) {
	if bookRepo == nil || characterRepo == nil {
		return nil, fmt.Errorf("library service repositories cannot be nil")
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}
	return &LibraryService{bookRepo: bookRepo, characterRepo: characterRepo, logger: logger}, nil
}

// ListIndexedBooks returns the books visitors can browse. Unprocessed books
// stay hidden until an indexing run completes.
func (s *LibraryService) ListIndexedBooks(ctx context.Context) ([]domain.Book, error) {
	return s.bookRepo.FindProcessed(ctx)
}

// GetIndexedBook returns an indexed book and its characters. A book that
// exists but is not indexed yet is reported as not found, same as a missing
// one.
func (s *LibraryService) GetIndexedBook(ctx context.Context, bookID uint) (*domain.Book, []domain.Character, error) {
	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, nil, err
	}
	if !book.IsProcessed {
		return nil, nil, bookrepo.ErrBookNotFound
	}
	characters, err := s.characterRepo.FindByBookID(ctx, bookID)
	if err != nil {
		return nil, nil, err
	}
	return book, characters, nil
}

// ListAllBooks is the admin view: every book with its indexing state.
func (s *LibraryService) ListAllBooks(ctx context.Context) ([]domain.Book, error) {
	return s.bookRepo.FindAll(ctx)
}

// CreateBook registers a book. It starts unprocessed; chatting requires an
// indexing run first.
func (s *LibraryService) CreateBook(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	book.IsProcessed = false
	book.VectorStorePath = ""
	created, err := s.bookRepo.Create(ctx, book)
	if err != nil {
		return nil, err
	}
	s.logger.Info("book created", "book_id", created.ID, "title", created.Title)
	return created, nil
}

// CreateCharacter attaches a character to an existing book.
func (s *LibraryService) CreateCharacter(ctx context.Context, character *domain.Character) (*domain.Character, error) {
	if _, err := s.bookRepo.FindByID(ctx, character.BookID); err != nil {
		return nil, err
	}
	created, err := s.characterRepo.Create(ctx, character)
	if err != nil {
		return nil, err
	}
	s.logger.Info("character created", "character_id", created.ID, "book_id", created.BookID, "name", created.Name)
	return created, nil
}
