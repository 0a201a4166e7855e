package chunker

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
)

var (
	spaceRuns   = regexp.MustCompile(`[^\S\n]+`)
	newlineRuns = regexp.MustCompile(`\n{3,}`)
)

// Normalize collapses runs of horizontal whitespace to a single space,
// collapses three or more consecutive newlines to exactly two, and trims
// leading and trailing whitespace. All chunk offsets refer to the
// normalized text, not the raw input.
func Normalize(text string) string {
	text = spaceRuns.ReplaceAllString(text, " ")
	text = newlineRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Splitter splits text into bounded, overlapping chunks, snapping chunk
// ends to sentence and paragraph boundaries where possible.
type Splitter struct {
	opts Options
}

// NewSplitter creates a Splitter with the given options.
func NewSplitter(opts Options) (*Splitter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chunk options: %w", err)
	}
	return &Splitter{opts: opts}, nil
}

// Split segments text into chunks. Empty or whitespace-only input yields an
// empty sequence. Ordered by StartIndex, the chunks cover the normalized
// text with no gaps; consecutive chunks may overlap by up to OverlapChars.
func (s *Splitter) Split(text string) []Chunk {
	norm := Normalize(text)
	if norm == "" {
		return nil
	}

	nonce := time.Now().UnixNano()

	// Fast path: the whole text fits in a single chunk.
	if wordCount(norm) <= s.opts.MaxWords && len(norm) <= s.opts.MaxChars {
		return []Chunk{newChunk(norm, 0, len(norm), 0, nonce)}
	}

	var chunks []Chunk
	cursor := 0
	total := len(norm)

	for cursor < total && len(chunks) < maxChunks {
		end := cursor + s.opts.MaxChars
		if end > total {
			end = total
		}
		candidate := norm[cursor:end]

		// Snap to the last sentence end if it falls late enough in the
		// candidate that we do not leave a tiny trailing chunk.
		if s.opts.PreserveSentences && end < total {
			if cut := lastSentenceEnd(candidate); cut > int(float64(len(candidate))*0.7) {
				end = cursor + cut
				candidate = norm[cursor:end]
			}
		}

		// Paragraph breaks win over sentence ends when late enough.
		if s.opts.PreserveParagraphs && end < total {
			if cut := strings.LastIndex(candidate, "\n\n"); cut > int(float64(len(candidate))*0.6) {
				end = cursor + cut
				candidate = norm[cursor:end]
			}
		}

		// Character bounds alone can still admit too many short words.
		if wordCount(candidate) > s.opts.MaxWords {
			end = cursor + wordBoundary(candidate, s.opts.MaxWords)
			candidate = norm[cursor:end]
		}

		chunks = append(chunks, newChunk(candidate, cursor, end, len(chunks), nonce))

		if end >= total {
			break
		}

		overlap := s.opts.OverlapChars
		if cap30 := int(float64(end-cursor) * 0.3); overlap > cap30 {
			overlap = cap30
		}
		next := end - overlap
		// The cursor must strictly increase or a misconfigured overlap
		// could stall the loop.
		if next <= cursor {
			next = end
		}
		cursor = next
	}

	return chunks
}

func newChunk(raw string, start, end, index int, nonce int64) Chunk {
	content := strings.TrimSpace(raw)
	return Chunk{
		ID:         fmt.Sprintf("chunk-%d-%x", index, nonce),
		Content:    content,
		StartIndex: start,
		EndIndex:   end,
		WordCount:  wordCount(content),
	}
}

// lastSentenceEnd returns the index just past the last '.', '!' or '?'
// that is followed by whitespace, or 0 if there is none.
func lastSentenceEnd(s string) int {
	for i := len(s) - 2; i >= 0; i-- {
		switch s[i] {
		case '.', '!', '?':
			if isSpaceByte(s[i+1]) {
				return i + 1
			}
		}
	}
	return 0
}

// wordBoundary returns the index at which s has exactly maxWords words
// before it, so truncation lands on a word boundary rather than mid-word.
func wordBoundary(s string, maxWords int) int {
	inWord := false
	words := 0
	for i, r := range s {
		if unicode.IsSpace(r) {
			inWord = false
			continue
		}
		if !inWord {
			inWord = true
			words++
			if words > maxWords {
				return i
			}
		}
	}
	return len(s)
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
