// File: internal/services/chunker/chunker.go
package chunker

import (
	"strings"
	"unicode/utf8"
)

const (
	DefaultChunkSize = 1000
	DefaultOverlap   = 200
)

// defaultSeparators are tried in order: paragraph, line, sentence, word.
// The empty string is the hard rune-split fallback.
var defaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// Splitter breaks text into overlapping chunks of roughly chunkSize runes,
// preferring natural boundaries before falling back to hard splits.
type Splitter struct {
	chunkSize  int
	overlap    int
	separators []string
}

func New(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = chunkSize / 5
	}
	return &Splitter{
		chunkSize:  chunkSize,
		overlap:    overlap,
		separators: defaultSeparators,
	}
}

// Split returns the chunks of text, trimmed, with empty chunks dropped.
func (s *Splitter) Split(text string) []string {
	var chunks []string
	for _, c := range s.split(text, s.separators) {
		c = strings.TrimSpace(c)
		if c != "" {
			chunks = append(chunks, c)
		}
	}
	return chunks
}

func (s *Splitter) split(text string, separators []string) []string {
	if utf8.RuneCountInString(text) <= s.chunkSize {
		return []string{text}
	}

	// Pick the first separator that actually occurs in the text.
	sep := ""
	var rest []string
	for i, sp := range separators {
		if sp == "" {
			break
		}
		if strings.Contains(text, sp) {
			sep = sp
			rest = separators[i+1:]
			break
		}
	}
	if sep == "" {
		return s.hardSplit(text)
	}

	// SplitAfter keeps the separator on each piece, so joining pieces
	// reconstructs the original text exactly.
	pieces := strings.SplitAfter(text, sep)

	var out []string
	var parts []string
	flush := func() {
		if len(parts) > 0 {
			out = append(out, s.merge(parts)...)
			parts = nil
		}
	}
	for _, piece := range pieces {
		if utf8.RuneCountInString(piece) > s.chunkSize {
			// An oversized piece gets split on its own with finer
			// separators; it is never merged with its neighbors.
			flush()
			out = append(out, s.split(piece, rest)...)
			continue
		}
		parts = append(parts, piece)
	}
	flush()
	return out
}

// merge greedily joins parts up to chunkSize, carrying a tail of at most
// overlap runes into the next chunk.
func (s *Splitter) merge(parts []string) []string {
	var chunks []string
	var buf []string
	total := 0

	for _, p := range parts {
		plen := utf8.RuneCountInString(p)
		if total+plen > s.chunkSize && len(buf) > 0 {
			chunks = append(chunks, strings.Join(buf, ""))
			for total > s.overlap && len(buf) > 1 {
				total -= utf8.RuneCountInString(buf[0])
				buf = buf[1:]
			}
			if total > s.overlap {
				buf = nil
				total = 0
			}
		}
		buf = append(buf, p)
		total += plen
	}
	if len(buf) > 0 {
		chunks = append(chunks, strings.Join(buf, ""))
	}
	return chunks
}

// hardSplit slices text into fixed rune windows when no separator helps.
func (s *Splitter) hardSplit(text string) []string {
	runes := []rune(text)
	if len(runes) <= s.chunkSize {
		return []string{text}
	}
	step := s.chunkSize - s.overlap
	if step < 1 {
		step = s.chunkSize
	}
	var out []string
	for start := 0; start < len(runes); start += step {
		end := start + s.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return out
}
