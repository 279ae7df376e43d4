// Package chat holds the configuration and outcome types shared by the
// conversation services.
package chat

import "fmt"

// ApologyReply is sent to the user whenever a grounded reply cannot be
// produced, regardless of the underlying cause.
const ApologyReply = "I apologize, but I seem to be having difficulty responding at the moment."

// Config carries the tunables of a chat turn.
type Config struct {
	// RetrievalTopK is the number of passages retrieved per user message.
	RetrievalTopK int

	// MaxMessageRunes caps the length of an incoming user message.
	// Zero disables the cap.
	MaxMessageRunes int
}

func DefaultConfig() *Config {
	return &Config{
		RetrievalTopK:   3,
		MaxMessageRunes: 4000,
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("chat config cannot be nil")
	}
	if c.RetrievalTopK <= 0 {
		return fmt.Errorf("retrieval top-k must be positive, got %d", c.RetrievalTopK)
	}
	if c.MaxMessageRunes < 0 {
		return fmt.Errorf("max message length cannot be negative, got %d", c.MaxMessageRunes)
	}
	return nil
}
