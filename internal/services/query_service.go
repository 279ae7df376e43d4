package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"literarychat/internal/domain"
	"literarychat/internal/services/ai"
	"literarychat/internal/services/chat"
	"literarychat/internal/services/persona"
	"literarychat/internal/services/vectorstore"
)

// QueryService produces grounded character replies: it embeds the user
// message, retrieves the most relevant book passages, and asks the
// completion model to answer in the character's voice.
type QueryService struct {
	config   *chat.Config
	provider ai.Provider
	store    vectorstore.Store
	logger   Logger
}

func NewQueryService(config *chat.Config, provider ai.Provider, store vectorstore.Store, logger Logger) (*QueryService, error) {
	if config == nil {
		config = chat.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chat config: %w", err)
	}
	if provider == nil {
		return nil, fmt.Errorf("AI provider cannot be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("vector store cannot be nil")
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}
	return &QueryService{
		config:   config,
		provider: provider,
		store:    store,
		logger:   logger,
	}, nil
}

// QueryCharacter runs one retrieval-augmented reply attempt. The outcome is
// tagged rather than collapsed into an error so the caller can decide how a
// degraded turn surfaces to the user. The character must be loaded with its
// book. History, when supplied, is rendered into the prompt oldest first.
func (s *QueryService) QueryCharacter(ctx context.Context, character *domain.Character, userMessage string, history []domain.Message) chat.Reply {
	message := strings.TrimSpace(userMessage)
	if message == "" {
		return chat.Reply{Kind: chat.ReplyEmptyInput, Err: chat.ErrEmptyMessage}
	}

	book := &character.Book
	if !book.IsProcessed || book.VectorStorePath == "" {
		s.logger.Warn("query against unindexed book", "book_id", book.ID, "character_id", character.ID)
		return chat.Reply{
			Kind: chat.ReplyIndexMissing,
			Err:  chat.NewRetrievalError("query", "book has no vector index", vectorstore.ErrIndexMissing),
		}
	}

	vector, err := s.provider.CreateEmbedding(ctx, message)
	if err != nil {
		s.logger.Error("message embedding failed", "character_id", character.ID, "error", err)
		return chat.Reply{
			Kind: chat.ReplyServiceError,
			Err:  chat.NewRetrievalError("query", "failed to embed message", err),
		}
	}

	matches, err := s.store.Query(ctx, book.VectorStorePath, vector, s.config.RetrievalTopK)
	if err != nil {
		if errors.Is(err, vectorstore.ErrIndexMissing) {
			s.logger.Warn("vector index missing at query time", "book_id", book.ID, "locator", book.VectorStorePath)
			return chat.Reply{
				Kind: chat.ReplyIndexMissing,
				Err:  chat.NewRetrievalError("query", "vector index missing", err),
			}
		}
		s.logger.Error("passage retrieval failed", "book_id", book.ID, "error", err)
		return chat.Reply{
			Kind: chat.ReplyServiceError,
			Err:  chat.NewRetrievalError("query", "failed to retrieve passages", err),
		}
	}

	passages := make([]string, 0, len(matches))
	for _, m := range matches {
		passages = append(passages, m.Text)
	}

	prompt := persona.BuildPrompt(persona.PromptInput{
		Character:   character,
		Book:        book,
		Passages:    passages,
		History:     history,
		UserMessage: message,
	})

	text, err := s.provider.GetCompletion(ctx, prompt)
	if err != nil {
		s.logger.Error("chat completion failed", "character_id", character.ID, "error", err)
		return chat.Reply{
			Kind: chat.ReplyServiceError,
			Err:  chat.NewCompletionError("query", "failed to generate reply", err),
		}
	}

	s.logger.Debug("grounded reply generated",
		"character_id", character.ID, "passages", len(passages), "reply_len", len(text))
	return chat.Reply{Kind: chat.ReplyOK, Text: strings.TrimSpace(text)}
}
