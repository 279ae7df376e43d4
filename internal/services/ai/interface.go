// File: internal/services/ai/interface.go
package ai

import "context"

// EmbeddingProvider converts text into vector representations. Indexing
// and querying must go through the same provider so the model identity
// matches on both sides.
type EmbeddingProvider interface {
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
	CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// CompletionProvider generates reply text from a fully composed prompt.
type CompletionProvider interface {
	GetCompletion(ctx context.Context, prompt string) (string, error)
}

// Provider combines embedding and completion capabilities.
type Provider interface {
	EmbeddingProvider
	CompletionProvider
}
