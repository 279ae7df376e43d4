// File: internal/services/speech_service.go
package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"literarychat/internal/services/tts"
)

const ttsCacheSubdir = "tts_cache"

// markupReplacer strips characters that TTS engines would otherwise
// vocalize (markdown emphasis, quotation marks).
var markupReplacer = strings.NewReplacer("*", "", "_", "", `"`, "", "'", "")

// CleanText normalizes reply text for synthesis: markup characters are
// removed and whitespace runs collapse to single spaces. The cleaned text
// is also the cache key, so replies differing only in stripped characters
// share one audio file.
func CleanText(text string) string {
	return strings.Join(strings.Fields(markupReplacer.Replace(text)), " ")
}

// SpeechService produces playable audio for reply text, caching results
// under <mediaRoot>/tts_cache keyed by an MD5 of the cleaned text. The
// cache is unbounded and never evicted.
type SpeechService struct {
	provider     tts.Provider
	mediaRoot    string
	defaultVoice string
	logger       Logger
}

func NewSpeechService(provider tts.Provider, mediaRoot, defaultVoice string, logger Logger) *SpeechService {
	if defaultVoice == "" {
		defaultVoice = "en-GB-Neural2-A"
	}
	return &SpeechService{
		provider:     provider,
		mediaRoot:    mediaRoot,
		defaultVoice: defaultVoice,
		logger:       logger,
	}
}

// SpeechForText returns the relative URL path of an MP3 for text, spoken
// with voiceName (or the default voice when empty). On a cache hit no
// network call is made. Failures are logged and reported to the caller,
// who must treat missing audio as non-fatal to the chat turn.
func (s *SpeechService) SpeechForText(ctx context.Context, text, voiceName string) (string, error) {
	cleaned := CleanText(text)
	if cleaned == "" {
		return "", nil
	}

	sum := md5.Sum([]byte(cleaned))
	filename := hex.EncodeToString(sum[:]) + ".mp3"
	cacheDir := filepath.Join(s.mediaRoot, ttsCacheSubdir)
	cachePath := filepath.Join(cacheDir, filename)
	relPath := "media/" + ttsCacheSubdir + "/" + filename

	if _, err := os.Stat(cachePath); err == nil {
		s.logger.Debug("tts cache hit", "file", filename)
		return relPath, nil
	}

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		s.logger.Error("could not create tts cache directory", "dir", cacheDir, "error", err)
		return "", fmt.Errorf("could not create tts cache directory: %w", err)
	}

	voice := tts.ResolveVoice(voiceName, s.defaultVoice)
	audio, err := s.provider.Synthesize(ctx, cleaned, voice)
	if err != nil {
		s.logger.Error("speech synthesis failed", "voice", voice.Name, "error", err)
		return "", err
	}

	if err := os.WriteFile(cachePath, audio, 0o644); err != nil {
		s.logger.Error("could not write audio file", "path", cachePath, "error", err)
		return "", fmt.Errorf("could not write audio file: %w", err)
	}

	s.logger.Info("generated tts audio", "voice", voice.Name, "file", filename)
	return relPath, nil
}
