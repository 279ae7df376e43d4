// File: internal/services/vectorstore/local.go
package vectorstore

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
)

// localIndex is the serialized form of a book's index: every chunk's text
// and vector, enough to rebuild the similarity search from the file alone.
type localIndex struct {
	Dim     int
	Chunks  []string
	Vectors [][]float32
}

// LocalStore is a brute-force cosine-similarity index persisted as one gob
// blob per book under dir. The index is small enough per book that it is
// re-read from disk on every query rather than cached across requests.
type LocalStore struct {
	dir    string
	logger Logger
}

func NewLocalStore(dir string, logger Logger) (*LocalStore, error) {
	if dir == "" {
		return nil, NewConfigError("vector store directory is required")
	}
	return &LocalStore{dir: dir, logger: logger}, nil
}

func (s *LocalStore) path(bookID uint) string {
	return filepath.Join(s.dir, fmt.Sprintf("book_%d", bookID))
}

func (s *LocalStore) Save(ctx context.Context, bookID uint, chunks []string, vectors [][]float32) (string, error) {
	if len(chunks) == 0 || len(chunks) != len(vectors) {
		return "", NewOperationError("chunks and vectors length mismatch", nil)
	}
	dim := len(vectors[0])
	for _, v := range vectors {
		if len(v) != dim {
			return "", NewOperationError("inconsistent vector dimensions", nil)
		}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", NewOperationError("could not create vector store directory", err)
	}

	path := s.path(bookID)
	f, err := os.Create(path)
	if err != nil {
		return "", NewOperationError("could not create index file", err)
	}
	defer f.Close()

	idx := localIndex{Dim: dim, Chunks: chunks, Vectors: vectors}
	if err := gob.NewEncoder(f).Encode(&idx); err != nil {
		return "", NewOperationError("could not serialize index", err)
	}

	s.logger.Info("vector index saved", "book_id", bookID, "path", path, "chunks", len(chunks))
	return path, nil
}

func (s *LocalStore) Query(ctx context.Context, locator string, vector []float32, topK int) ([]Match, error) {
	if locator == "" {
		return nil, ErrIndexMissing
	}
	f, err := os.Open(locator)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrIndexMissing
		}
		return nil, NewOperationError("could not open index file", err)
	}
	defer f.Close()

	var idx localIndex
	if err := gob.NewDecoder(f).Decode(&idx); err != nil {
		return nil, NewOperationError("could not deserialize index", err)
	}
	if len(vector) != idx.Dim {
		return nil, NewOperationError("query vector dimension mismatch", nil)
	}

	if topK <= 0 {
		topK = 3
	}
	matches := make([]Match, len(idx.Chunks))
	for i := range idx.Chunks {
		matches[i] = Match{Text: idx.Chunks[i], Score: cosine(idx.Vectors[i], vector)}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if topK < len(matches) {
		matches = matches[:topK]
	}
	return matches, nil
}

// cosine computes cosine similarity with float64 accumulators.
func cosine(a, b []float32) float32 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
