package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"literarychat/internal/services/tts"
)

type fakeTTSProvider struct {
	calls int
	audio []byte
	err   error
}

func (f *fakeTTSProvider) Synthesize(ctx context.Context, text string, voice tts.Voice) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.audio, nil
}

var audioPathPattern = regexp.MustCompile(`^media/tts_cache/[0-9a-f]{32}\.mp3$`)

func TestCleanTextStripsMarkupAndCollapsesWhitespace(t *testing.T) {
	got := CleanText("  *Hello*,   \"dear\"  _reader_ \n it's  me  ")
	want := "Hello, dear reader its me"
	if got != want {
		t.Fatalf("CleanText = %q, want %q", got, want)
	}
}

func TestSpeechForTextCachesByCleanedText(t *testing.T) {
	provider := &fakeTTSProvider{audio: []byte("mp3-bytes")}
	svc := NewSpeechService(provider, t.TempDir(), "", &NoOpLogger{})

	first, err := svc.SpeechForText(context.Background(), "Hi*!", "en-GB-Neural2-A")
	if err != nil {
		t.Fatalf("first synthesis failed: %v", err)
	}
	if !audioPathPattern.MatchString(first) {
		t.Fatalf("unexpected audio path %q", first)
	}

	// Differs only in stripped markup, so it must hit the cache.
	second, err := svc.SpeechForText(context.Background(), "Hi!", "en-GB-Neural2-A")
	if err != nil {
		t.Fatalf("second synthesis failed: %v", err)
	}
	if second != first {
		t.Fatalf("expected identical cached path, got %q then %q", first, second)
	}
	if provider.calls != 1 {
		t.Fatalf("expected exactly one provider call, got %d", provider.calls)
	}
}

func TestSpeechForTextWritesAudioFile(t *testing.T) {
	provider := &fakeTTSProvider{audio: []byte("mp3-bytes")}
	root := t.TempDir()
	svc := NewSpeechService(provider, root, "", &NoOpLogger{})

	rel, err := svc.SpeechForText(context.Background(), "Good evening.", "en-US-Neural2-J")
	if err != nil {
		t.Fatalf("synthesis failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "tts_cache", filepath.Base(rel)))
	if err != nil {
		t.Fatalf("cached file missing: %v", err)
	}
	if string(data) != "mp3-bytes" {
		t.Fatalf("cached file holds %q", data)
	}
}

func TestSpeechForTextEmptyAfterCleaning(t *testing.T) {
	provider := &fakeTTSProvider{audio: []byte("x")}
	svc := NewSpeechService(provider, t.TempDir(), "", &NoOpLogger{})

	rel, err := svc.SpeechForText(context.Background(), `*"_'`, "en-GB-Neural2-A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rel != "" {
		t.Fatalf("expected empty path for markup-only text, got %q", rel)
	}
	if provider.calls != 0 {
		t.Fatalf("provider should not be called for empty text, got %d calls", provider.calls)
	}
}

func TestSpeechForTextProviderFailure(t *testing.T) {
	provider := &fakeTTSProvider{err: errors.New("quota exceeded")}
	root := t.TempDir()
	svc := NewSpeechService(provider, root, "", &NoOpLogger{})

	rel, err := svc.SpeechForText(context.Background(), "Hello there.", "en-GB-Neural2-A")
	if err == nil {
		t.Fatal("expected error from failing provider")
	}
	if rel != "" {
		t.Fatalf("expected empty path on failure, got %q", rel)
	}

	entries, _ := os.ReadDir(filepath.Join(root, "tts_cache"))
	if len(entries) != 0 {
		t.Fatalf("no file should be cached on failure, found %d", len(entries))
	}
}
