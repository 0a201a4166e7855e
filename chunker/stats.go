package chunker

import "strings"

// Stats summarizes a chunk sequence.
type Stats struct {
	Count    int
	AvgWords float64
	MinWords int
	MaxWords int
	AvgChars float64
	MinChars int
	MaxChars int
}

// Analyze returns summary statistics for a non-empty chunk sequence.
func Analyze(chunks []Chunk) (Stats, error) {
	if len(chunks) == 0 {
		return Stats{}, ErrNoChunks
	}

	st := Stats{
		Count:    len(chunks),
		MinWords: chunks[0].WordCount,
		MaxWords: chunks[0].WordCount,
		MinChars: len(chunks[0].Content),
		MaxChars: len(chunks[0].Content),
	}

	totalWords := 0
	totalChars := 0
	for _, c := range chunks {
		words := c.WordCount
		chars := len(c.Content)
		totalWords += words
		totalChars += chars
		if words < st.MinWords {
			st.MinWords = words
		}
		if words > st.MaxWords {
			st.MaxWords = words
		}
		if chars < st.MinChars {
			st.MinChars = chars
		}
		if chars > st.MaxChars {
			st.MaxChars = chars
		}
	}

	st.AvgWords = float64(totalWords) / float64(len(chunks))
	st.AvgChars = float64(totalChars) / float64(len(chunks))
	return st, nil
}

// dedupeThreshold is the Jaccard similarity above which a chunk is
// considered a near-duplicate of its predecessor.
const dedupeThreshold = 0.7

// Deduplicate removes chunks whose lowercase word set overlaps the
// previously kept chunk's word set with Jaccard similarity >= 0.7.
// The first chunk is always kept.
func Deduplicate(chunks []Chunk) []Chunk {
	if len(chunks) <= 1 {
		return chunks
	}

	kept := make([]Chunk, 0, len(chunks))
	kept = append(kept, chunks[0])
	prev := wordSet(chunks[0].Content)

	for _, c := range chunks[1:] {
		set := wordSet(c.Content)
		if jaccard(prev, set) >= dedupeThreshold {
			continue
		}
		kept = append(kept, c)
		prev = set
	}
	return kept
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	intersection := 0
	for w := range a {
		if _, ok := b[w]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
