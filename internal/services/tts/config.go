// File: internal/services/tts/config.go
package tts

import (
	"errors"
	"time"
)

type Config struct {
	APIKey       string
	DefaultVoice string

	// Synthesis parameters, fixed for all characters.
	SpeakingRate float64
	Pitch        float64

	Timeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		DefaultVoice: "en-GB-Neural2-A",
		SpeakingRate: 0.95, // slightly slower than neutral reads better for period dialogue
		Pitch:        0.0,
		Timeout:      30 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("TTS API key is required")
	}
	if c.DefaultVoice == "" {
		return errors.New("default voice is required")
	}
	return nil
}
