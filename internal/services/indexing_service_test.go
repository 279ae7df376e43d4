package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"literarychat/internal/domain"
	bookrepo "literarychat/internal/repository/book"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:services_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.Book{}, &domain.Character{}, &domain.Conversation{}, &domain.Message{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func writeBookText(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.txt")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("failed to write book text: %v", err)
	}
	return path
}

func createTestBook(t *testing.T, db *gorm.DB, textPath string) *domain.Book {
	t.Helper()
	repo := bookrepo.NewBookRepository(db)
	book, err := repo.Create(context.Background(), &domain.Book{
		Title:        "Pride and Prejudice",
		Author:       "Jane Austen",
		TextFilePath: textPath,
	})
	if err != nil {
		t.Fatalf("failed to create book: %v", err)
	}
	return book
}

func TestProcessBookMarksProcessed(t *testing.T) {
	db := newTestDB(t)
	repo := bookrepo.NewBookRepository(db)
	book := createTestBook(t, db, writeBookText(t, strings.Repeat("It is a truth universally acknowledged. ", 50)))

	provider := &fakeAIProvider{embedding: []float32{0.1, 0.2}}
	store := &fakeStore{}
	svc, err := NewIndexingService(repo, provider, store, &NoOpLogger{})
	if err != nil {
		t.Fatalf("NewIndexingService failed: %v", err)
	}

	if err := svc.ProcessBook(context.Background(), book.ID); err != nil {
		t.Fatalf("ProcessBook failed: %v", err)
	}

	got, err := repo.FindByID(context.Background(), book.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if !got.IsProcessed {
		t.Fatal("book should be marked processed")
	}
	if got.VectorStorePath == "" {
		t.Fatal("book should record its index locator")
	}
	if len(store.saved[book.ID]) == 0 {
		t.Fatal("chunks should be saved to the vector store")
	}
}

func TestProcessBookMissingTextFile(t *testing.T) {
	db := newTestDB(t)
	repo := bookrepo.NewBookRepository(db)
	book := createTestBook(t, db, filepath.Join(t.TempDir(), "missing.txt"))

	svc, _ := NewIndexingService(repo, &fakeAIProvider{embedding: []float32{1}}, &fakeStore{}, &NoOpLogger{})

	if err := svc.ProcessBook(context.Background(), book.ID); err == nil {
		t.Fatal("expected error for missing text file")
	}

	got, _ := repo.FindByID(context.Background(), book.ID)
	if got.IsProcessed {
		t.Fatal("book must stay unprocessed after a failed run")
	}
}

func TestProcessBookInvalidUTF8(t *testing.T) {
	db := newTestDB(t)
	repo := bookrepo.NewBookRepository(db)
	path := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x41}, 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	book := createTestBook(t, db, path)

	provider := &fakeAIProvider{embedding: []float32{1}}
	svc, _ := NewIndexingService(repo, provider, &fakeStore{}, &NoOpLogger{})

	if err := svc.ProcessBook(context.Background(), book.ID); err == nil {
		t.Fatal("expected error for invalid UTF-8")
	}
	if provider.embedCalls != 0 {
		t.Fatal("no embedding calls expected for invalid text")
	}
}

func TestProcessBookEmbeddingFailureLeavesBookUntouched(t *testing.T) {
	db := newTestDB(t)
	repo := bookrepo.NewBookRepository(db)
	book := createTestBook(t, db, writeBookText(t, "Some perfectly fine prose."))

	provider := &fakeAIProvider{embedErr: errors.New("embedding api down")}
	store := &fakeStore{}
	svc, _ := NewIndexingService(repo, provider, store, &NoOpLogger{})

	if err := svc.ProcessBook(context.Background(), book.ID); err == nil {
		t.Fatal("expected error when embedding fails")
	}

	got, _ := repo.FindByID(context.Background(), book.ID)
	if got.IsProcessed || got.VectorStorePath != "" {
		t.Fatal("book must stay unprocessed when embedding fails")
	}
	if len(store.saved) != 0 {
		t.Fatal("nothing should reach the vector store when embedding fails")
	}
}

func TestProcessBookReindexIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := bookrepo.NewBookRepository(db)
	book := createTestBook(t, db, writeBookText(t, "A short volume."))

	store := &fakeStore{}
	svc, _ := NewIndexingService(repo, &fakeAIProvider{embedding: []float32{1}}, store, &NoOpLogger{})

	if err := svc.ProcessBook(context.Background(), book.ID); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	first, _ := repo.FindByID(context.Background(), book.ID)

	if err := svc.ProcessBook(context.Background(), book.ID); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	second, _ := repo.FindByID(context.Background(), book.ID)

	if !second.IsProcessed || second.VectorStorePath != first.VectorStorePath {
		t.Fatalf("reindex changed the book's state: %+v vs %+v", first, second)
	}
}

func TestProcessBooksReportsPerBookFailures(t *testing.T) {
	db := newTestDB(t)
	repo := bookrepo.NewBookRepository(db)
	good := createTestBook(t, db, writeBookText(t, "Readable text."))
	bad := createTestBook(t, db, filepath.Join(t.TempDir(), "absent.txt"))

	svc, _ := NewIndexingService(repo, &fakeAIProvider{embedding: []float32{1}}, &fakeStore{}, &NoOpLogger{})

	report := svc.ProcessBooks(context.Background(), []uint{good.ID, bad.ID})
	if report.Processed != 1 {
		t.Fatalf("expected 1 processed, got %d", report.Processed)
	}
	if len(report.Errors) != 1 || !strings.Contains(report.Errors[0], fmt.Sprintf("book %d", bad.ID)) {
		t.Fatalf("expected one error naming the failed book, got %v", report.Errors)
	}
}
