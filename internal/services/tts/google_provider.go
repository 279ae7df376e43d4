// File: internal/services/tts/google_provider.go
package tts

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"google.golang.org/api/option"
	texttospeech "google.golang.org/api/texttospeech/v1"
)

// GoogleProvider synthesizes speech with the Google Cloud Text-to-Speech
// REST API, authenticated by API key.
type GoogleProvider struct {
	config  *Config
	service *texttospeech.Service
}

func NewGoogleProvider(ctx context.Context, config *Config) (*GoogleProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	service, err := texttospeech.NewService(ctx, option.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("could not create text-to-speech service: %w", err)
	}
	return &GoogleProvider{config: config, service: service}, nil
}

func (p *GoogleProvider) Synthesize(ctx context.Context, text string, voice Voice) ([]byte, error) {
	if text == "" {
		return nil, errors.New("nothing to synthesize")
	}

	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	req := &texttospeech.SynthesizeSpeechRequest{
		Input: &texttospeech.SynthesisInput{Text: text},
		Voice: &texttospeech.VoiceSelectionParams{
			LanguageCode: voice.LanguageCode,
			Name:         voice.Name,
			SsmlGender:   voice.Gender,
		},
		AudioConfig: &texttospeech.AudioConfig{
			AudioEncoding: "MP3",
			SpeakingRate:  p.config.SpeakingRate,
			Pitch:         p.config.Pitch,
		},
	}

	resp, err := p.service.Text.Synthesize(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}

	audio, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("could not decode audio content: %w", err)
	}
	return audio, nil
}
