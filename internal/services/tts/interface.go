// File: internal/services/tts/interface.go
package tts

import "context"

// Voice is a fully resolved voice selection for one synthesis call.
type Voice struct {
	Name         string
	LanguageCode string
	Gender       string // "FEMALE" or "MALE"
}

// Provider converts text into compressed audio bytes (MP3).
type Provider interface {
	Synthesize(ctx context.Context, text string, voice Voice) ([]byte, error)
}
