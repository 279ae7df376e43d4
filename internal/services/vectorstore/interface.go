// File: internal/services/vectorstore/interface.go
package vectorstore

import (
	"context"
	"errors"
)

// ErrIndexMissing is returned when a query addresses a book whose index was
// never built or whose locator no longer resolves. Callers must treat this
// as an error, not as an empty result.
var ErrIndexMissing = errors.New("vector index missing")

// Match is one retrieved chunk with its similarity score, higher is closer.
type Match struct {
	Text  string
	Score float32
}

// Store persists per-book chunk vectors and answers nearest-neighbor
// queries over them.
//
// Save builds (or rebuilds) the index for a book and returns an opaque
// locator that is stored on the Book record; Query resolves that locator
// fresh on every call. The locator's shape is owned by the backend.
type Store interface {
	Save(ctx context.Context, bookID uint, chunks []string, vectors [][]float32) (string, error)
	Query(ctx context.Context, locator string, vector []float32, topK int) ([]Match, error)
}

// Logger mirrors the service logging interface without importing it.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}
