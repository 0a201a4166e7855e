package chunker

import "errors"

// Common chunker errors
var (
	// ErrInvalidMaxWords indicates the word limit is invalid (<=0)
	ErrInvalidMaxWords = errors.New("max words must be positive")

	// ErrInvalidMaxChars indicates the character limit is invalid (<=0)
	ErrInvalidMaxChars = errors.New("max chars must be positive")

	// ErrInvalidOverlap indicates overlap value is invalid (<0)
	ErrInvalidOverlap = errors.New("overlap must be non-negative")

	// ErrNoChunks indicates stats were requested for an empty chunk sequence
	ErrNoChunks = errors.New("no chunks to analyze")

	// ErrTokenizerFailed indicates tokenization failed
	ErrTokenizerFailed = errors.New("tokenization failed")
)
