package services

import (
	"context"
	"errors"
	"testing"

	"literarychat/internal/domain"
	bookrepo "literarychat/internal/repository/book"
	characterrepo "literarychat/internal/repository/character"
)

func newLibraryService(t *testing.T) (*LibraryService, bookrepo.BookRepository, characterrepo.CharacterRepository) {
	t.Helper()
	db := newTestDB(t)
	books := bookrepo.NewBookRepository(db)
	characters := characterrepo.NewCharacterRepository(db)
	svc, err := NewLibraryService(books, characters, &NoOpLogger{})
	if err != nil {
		t.Fatalf("NewLibraryService failed: %v", err)
	}
	return svc, books, characters
}

func TestListIndexedBooksHidesUnprocessed(t *testing.T) {
	svc, books, _ := newLibraryService(t)
	ctx := context.Background()

	ready, err := books.Create(ctx, &domain.Book{Title: "Persuasion", Author: "Jane Austen", TextFilePath: "/tmp/p.txt"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := books.MarkProcessed(ctx, ready.ID, "book_1"); err != nil {
		t.Fatalf("MarkProcessed failed: %v", err)
	}
	if _, err := svc.CreateBook(ctx, &domain.Book{Title: "Emma", Author: "Jane Austen", TextFilePath: "/tmp/e.txt"}); err != nil {
		t.Fatalf("CreateBook failed: %v", err)
	}

	listed, err := svc.ListIndexedBooks(ctx)
	if err != nil {
		t.Fatalf("ListIndexedBooks failed: %v", err)
	}
	if len(listed) != 1 || listed[0].Title != "Persuasion" {
		t.Fatalf("expected only the indexed book, got %+v", listed)
	}

	all, err := svc.ListAllBooks(ctx)
	if err != nil {
		t.Fatalf("ListAllBooks failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin listing should see both books, got %d", len(all))
	}
}

func TestGetIndexedBookRejectsUnprocessed(t *testing.T) {
	svc, _, _ := newLibraryService(t)
	ctx := context.Background()

	book, err := svc.CreateBook(ctx, &domain.Book{Title: "Emma", Author: "Jane Austen", TextFilePath: "/tmp/e.txt"})
	if err != nil {
		t.Fatalf("CreateBook failed: %v", err)
	}

	if _, _, err := svc.GetIndexedBook(ctx, book.ID); !errors.Is(err, bookrepo.ErrBookNotFound) {
		t.Fatalf("unindexed book should read as not found, got %v", err)
	}
	if _, _, err := svc.GetIndexedBook(ctx, 999); !errors.Is(err, bookrepo.ErrBookNotFound) {
		t.Fatalf("missing book should be not found, got %v", err)
	}
}

func TestGetIndexedBookListsCharacters(t *testing.T) {
	svc, books, _ := newLibraryService(t)
	ctx := context.Background()

	book, _ := svc.CreateBook(ctx, &domain.Book{Title: "Persuasion", Author: "Jane Austen", TextFilePath: "/tmp/p.txt"})
	if err := books.MarkProcessed(ctx, book.ID, "book_1"); err != nil {
		t.Fatalf("MarkProcessed failed: %v", err)
	}
	for _, name := range []string{"Anne Elliot", "Captain Wentworth"} {
		if _, err := svc.CreateCharacter(ctx, &domain.Character{
			BookID:            book.ID,
			Name:              name,
			Description:       "a character",
			PersonalityTraits: "steadfast",
			Voice:             domain.DefaultVoice,
		}); err != nil {
			t.Fatalf("CreateCharacter(%s) failed: %v", name, err)
		}
	}

	got, characters, err := svc.GetIndexedBook(ctx, book.ID)
	if err != nil {
		t.Fatalf("GetIndexedBook failed: %v", err)
	}
	if got.ID != book.ID {
		t.Fatalf("got book %d, want %d", got.ID, book.ID)
	}
	if len(characters) != 2 || characters[0].Name != "Anne Elliot" {
		t.Fatalf("expected characters ordered by name, got %+v", characters)
	}
}

func TestCreateCharacterRequiresExistingBook(t *testing.T) {
	svc, _, _ := newLibraryService(t)

	_, err := svc.CreateCharacter(context.Background(), &domain.Character{
		BookID:            42,
		Name:              "Ghost",
		Description:       "no book",
		PersonalityTraits: "lost",
		Voice:             domain.DefaultVoice,
	})
	if !errors.Is(err, bookrepo.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}

func TestCreateCharacterRejectsUnknownVoice(t *testing.T) {
	svc, _, _ := newLibraryService(t)
	ctx := context.Background()

	book, _ := svc.CreateBook(ctx, &domain.Book{Title: "Emma", Author: "Jane Austen", TextFilePath: "/tmp/e.txt"})
	_, err := svc.CreateCharacter(ctx, &domain.Character{
		BookID:            book.ID,
		Name:              "Emma Woodhouse",
		Description:       "handsome, clever, and rich",
		PersonalityTraits: "confident",
		Voice:             "en-GB-Wavenet-Z",
	})
	if err == nil {
		t.Fatal("expected voice validation error")
	}
}
