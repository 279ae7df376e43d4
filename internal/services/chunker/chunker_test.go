package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitShortTextIsSingleChunk(t *testing.T) {
	s := New(100, 20)
	got := s.Split("a very short passage")
	if len(got) != 1 || got[0] != "a very short passage" {
		t.Fatalf("expected single unchanged chunk, got %v", got)
	}
}

func TestSplitEmptyText(t *testing.T) {
	s := New(100, 20)
	if got := s.Split("   \n\n  "); got != nil {
		t.Fatalf("expected no chunks for whitespace input, got %v", got)
	}
}

func TestSplitOnWordBoundaries(t *testing.T) {
	s := New(10, 3)
	got := s.Split("aaaa bbbb cccc")
	want := []string{"aaaa bbbb", "cccc"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("chunk %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestSplitCarriesOverlap(t *testing.T) {
	s := New(10, 5)
	got := s.Split("aa bb cc dd ee")
	if len(got) != 2 {
		t.Fatalf("expected 2 chunks, got %v", got)
	}
	if got[0] != "aa bb cc" || got[1] != "cc dd ee" {
		t.Fatalf("expected overlap of %q carried into the second chunk, got %v", "cc", got)
	}
}

func TestSplitPrefersParagraphBoundary(t *testing.T) {
	s := New(12, 0)
	got := s.Split("para1 line\n\npara2 line")
	if len(got) != 2 {
		t.Fatalf("expected split at the paragraph break, got %v", got)
	}
	if got[0] != "para1 line" || got[1] != "para2 line" {
		t.Fatalf("unexpected chunks %v", got)
	}
}

func TestSplitHardSplitsUnbreakableText(t *testing.T) {
	s := New(10, 0)
	got := s.Split(strings.Repeat("x", 25))
	want := []string{strings.Repeat("x", 10), strings.Repeat("x", 10), strings.Repeat("x", 5)}
	if len(got) != len(want) {
		t.Fatalf("expected %d chunks, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("chunk %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestSplitChunksStayWithinChunkSize(t *testing.T) {
	s := New(50, 10)
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 40)
	for i, c := range s.Split(text) {
		if n := utf8.RuneCountInString(c); n > 50 {
			t.Fatalf("chunk %d has %d runes, limit is 50: %q", i, n, c)
		}
	}
}

func TestSplitReassemblesFullCoverage(t *testing.T) {
	s := New(30, 0)
	text := "One sentence here. Another sentence there. A third one closes."
	joined := strings.Join(s.Split(text), " ")
	for _, word := range strings.Fields(text) {
		if !strings.Contains(joined, strings.Trim(word, ".")) {
			t.Fatalf("word %q missing from chunks %q", word, joined)
		}
	}
}
