package services

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	bookrepo "literarychat/internal/repository/book"
	"literarychat/internal/services/ai"
	"literarychat/internal/services/chunker"
	"literarychat/internal/services/vectorstore"
)

// embeddingBatchSize bounds one embedding request; large books are embedded
// in consecutive batches with chunk order preserved.
const embeddingBatchSize = 100

// IndexingService turns a book's source text into a queryable vector index.
// A book is only marked processed after the whole pipeline has succeeded, so
// a failed run leaves it exactly as it was.
type IndexingService struct {
	bookRepo bookrepo.BookRepository
	embedder ai.EmbeddingProvider
	store    vectorstore.Store
	splitter *chunker.Splitter
	logger   Logger
}

func NewIndexingService(bookRepo bookrepo.BookRepository, embedder ai.EmbeddingProvider, store vectorstore.Store, logger Logger) (*IndexingService, error) {
	if bookRepo == nil {
		return nil, fmt.Errorf("book repository cannot be nil")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedding provider cannot be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("vector store cannot be nil")
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}
	return &IndexingService{
		bookRepo: bookRepo,
		embedder: embedder,
		store:    store,
		splitter: chunker.New(chunker.DefaultChunkSize, chunker.DefaultOverlap),
		logger:   logger,
	}, nil
}

// ProcessBook reads the book's text file, chunks it, embeds every chunk, and
// persists the index. Reprocessing an already processed book rebuilds its
// index in place.
func (s *IndexingService) ProcessBook(ctx context.Context, bookID uint) error {
	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return err
	}
	if book.TextFilePath == "" {
		return fmt.Errorf("book %d has no text file", bookID)
	}

	raw, err := os.ReadFile(book.TextFilePath)
	if err != nil {
		s.logger.Error("failed to read book text", "book_id", bookID, "path", book.TextFilePath, "error", err)
		return fmt.Errorf("failed to read book text: %w", err)
	}
	if !utf8.Valid(raw) {
		return fmt.Errorf("book text is not valid UTF-8: %s", book.TextFilePath)
	}

	chunks := s.splitter.Split(string(raw))
	if len(chunks) == 0 {
		return fmt.Errorf("book text produced no chunks: %s", book.TextFilePath)
	}
	s.logger.Info("book text chunked", "book_id", bookID, "chunks", len(chunks))

	vectors := make([][]float32, 0, len(chunks))
	for start := 0; start < len(chunks); start += embeddingBatchSize {
		end := start + embeddingBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch, err := s.embedder.CreateEmbeddings(ctx, chunks[start:end])
		if err != nil {
			s.logger.Error("chunk embedding failed", "book_id", bookID, "batch_start", start, "error", err)
			return fmt.Errorf("failed to embed chunks: %w", err)
		}
		vectors = append(vectors, batch...)
	}

	locator, err := s.store.Save(ctx, book.ID, chunks, vectors)
	if err != nil {
		s.logger.Error("vector index save failed", "book_id", bookID, "error", err)
		return fmt.Errorf("failed to save vector index: %w", err)
	}

	if err := s.bookRepo.MarkProcessed(ctx, book.ID, locator); err != nil {
		return err
	}

	s.logger.Info("book processed", "book_id", bookID, "title", book.Title, "chunks", len(chunks), "locator", locator)
	return nil
}

// ProcessReport summarizes a bulk indexing run.
type ProcessReport struct {
	Processed int
	Errors    []string
}

// ProcessBooks indexes each book in turn. One book failing does not stop the
// run; every failure is recorded in the report.
func (s *IndexingService) ProcessBooks(ctx context.Context, bookIDs []uint) ProcessReport {
	var report ProcessReport
	for _, id := range bookIDs {
		if err := s.ProcessBook(ctx, id); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("book %d: %v", id, err))
			continue
		}
		report.Processed++
	}
	return report
}
