// File: internal/services/vectorstore/pinecone.go
package vectorstore

import (
	"context"
	"fmt"

	"github.com/pinecone-io/go-pinecone/v4/pinecone"
	"google.golang.org/protobuf/types/known/structpb"
)

const upsertBatchSize = 100

// PineconeStore keeps each book's vectors in its own namespace of one
// Pinecone index. The locator stored on the Book record is the namespace
// name, so queries can reconnect without knowing the book id.
type PineconeStore struct {
	client    *pinecone.Client
	indexHost string
	logger    Logger
}

func NewPineconeStore(apiKey, indexHost string, logger Logger) (*PineconeStore, error) {
	if apiKey == "" {
		return nil, NewConfigError("pinecone API key is required")
	}
	if indexHost == "" {
		return nil, NewConfigError("pinecone index host is required")
	}
	client, err := pinecone.NewClient(pinecone.NewClientParams{ApiKey: apiKey})
	if err != nil {
		return nil, NewOperationError("could not create pinecone client", err)
	}
	return &PineconeStore{client: client, indexHost: indexHost, logger: logger}, nil
}

func (s *PineconeStore) connect(namespace string) (*pinecone.IndexConnection, error) {
	conn, err := s.client.Index(pinecone.NewIndexConnParams{
		Host:      s.indexHost,
		Namespace: namespace,
	})
	if err != nil {
		return nil, NewOperationError("could not connect to pinecone index", err)
	}
	return conn, nil
}

func (s *PineconeStore) Save(ctx context.Context, bookID uint, chunks []string, vectors [][]float32) (string, error) {
	if len(chunks) == 0 || len(chunks) != len(vectors) {
		return "", NewOperationError("chunks and vectors length mismatch", nil)
	}

	namespace := fmt.Sprintf("book_%d", bookID)
	conn, err := s.connect(namespace)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	// Reindexing replaces the namespace wholesale. A fresh namespace makes
	// this a no-op, so the error is only logged.
	if err := conn.DeleteAllVectorsInNamespace(ctx); err != nil {
		s.logger.Warn("could not clear namespace before reindex", "namespace", namespace, "error", err)
	}

	records := make([]*pinecone.Vector, len(chunks))
	for i := range chunks {
		metadata, err := structpb.NewStruct(map[string]interface{}{
			"text":    chunks[i],
			"book_id": float64(bookID),
			"chunk":   float64(i),
		})
		if err != nil {
			return "", NewOperationError("could not build chunk metadata", err)
		}
		values := vectors[i]
		records[i] = &pinecone.Vector{
			Id:       fmt.Sprintf("book_%d_chunk_%d", bookID, i),
			Values:   &values,
			Metadata: metadata,
		}
	}

	for start := 0; start < len(records); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(records) {
			end = len(records)
		}
		if _, err := conn.UpsertVectors(ctx, records[start:end]); err != nil {
			return "", NewOperationError("could not upsert vectors", err)
		}
	}

	s.logger.Info("vector index saved", "book_id", bookID, "namespace", namespace, "chunks", len(chunks))
	return namespace, nil
}

func (s *PineconeStore) Query(ctx context.Context, locator string, vector []float32, topK int) ([]Match, error) {
	if locator == "" {
		return nil, ErrIndexMissing
	}
	if topK <= 0 {
		topK = 3
	}

	conn, err := s.connect(locator)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	resp, err := conn.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          vector,
		TopK:            uint32(topK),
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, NewOperationError("pinecone query failed", err)
	}
	if len(resp.Matches) == 0 {
		return nil, ErrIndexMissing
	}

	matches := make([]Match, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		if m == nil || m.Vector == nil || m.Vector.Metadata == nil {
			continue
		}
		text := m.Vector.Metadata.Fields["text"].GetStringValue()
		if text == "" {
			continue
		}
		matches = append(matches, Match{Text: text, Score: m.Score})
	}
	return matches, nil
}
