// File: internal/services/ai/config.go
package ai

import (
	"fmt"
	"time"
)

type Config struct {
	// Embedding Configuration
	EmbeddingKey     string
	EmbeddingBaseURL string
	EmbeddingModel   string

	// LLM Configuration
	LLMKey     string
	LLMBaseURL string
	ChatModel  string

	// Performance Configuration
	Timeout time.Duration

	// Model Parameters
	Temperature float32
	TopP        float32
}

func (c *Config) Validate() error {
	if c.EmbeddingKey == "" {
		return fmt.Errorf("embedding API key is required")
	}
	if c.LLMKey == "" {
		return fmt.Errorf("LLM API key is required")
	}
	if c.EmbeddingModel == "" {
		return fmt.Errorf("embedding model name is required")
	}
	if c.ChatModel == "" {
		return fmt.Errorf("chat model name is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:     2 * time.Minute,
		Temperature: 0.7,
		TopP:        0.9,
	}
}
