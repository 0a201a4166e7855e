// Package chunker splits long documents into bounded, overlapping segments
// while trying to preserve sentence and paragraph boundaries.
package chunker

// Options holds configuration for text chunking behavior.
type Options struct {
	// MaxWords is the maximum number of whitespace-delimited words per chunk.
	// Default: 500
	MaxWords int

	// MaxChars is the maximum number of characters per chunk.
	// Default: 3000
	MaxChars int

	// OverlapChars is the desired overlap between consecutive chunks.
	// The effective overlap is capped at 30% of the chunk length and may
	// shrink further when a chunk snaps to a sentence or paragraph
	// boundary, so treat this as a soft upper bound.
	// Default: 50
	OverlapChars int

	// PreserveParagraphs snaps chunk ends to the last paragraph break when
	// it falls in the final 40% of the candidate chunk.
	// Default: true
	PreserveParagraphs bool

	// PreserveSentences snaps chunk ends to the last sentence-terminating
	// punctuation when it falls in the final 30% of the candidate chunk.
	// Default: true
	PreserveSentences bool
}

// Chunk represents a single segment of normalized text with its metadata.
type Chunk struct {
	// ID is unique within the chunking call that produced it.
	ID string

	// Content is the trimmed chunk text.
	Content string

	// StartIndex and EndIndex are half-open character offsets into the
	// normalized source text, taken before trimming.
	StartIndex int
	EndIndex   int

	// WordCount is the whitespace-delimited word count of Content.
	WordCount int
}

// maxChunks is a hard safety cap against runaway splitting loops caused by
// misconfigured overlap values.
const maxChunks = 100

// DefaultOptions returns the default chunking configuration.
func DefaultOptions() Options {
	return Options{
		MaxWords:           500,
		MaxChars:           3000,
		OverlapChars:       50,
		PreserveParagraphs: true,
		PreserveSentences:  true,
	}
}

// Validate checks if the chunking options are valid.
func (o Options) Validate() error {
	if o.MaxWords <= 0 {
		return ErrInvalidMaxWords
	}
	if o.MaxChars <= 0 {
		return ErrInvalidMaxChars
	}
	if o.OverlapChars < 0 {
		return ErrInvalidOverlap
	}
	return nil
}
