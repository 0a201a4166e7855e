package chunker

import (
	"fmt"

	"github.com/tiktoken-go/tokenizer"
)

// TokenCounter counts tokens using tiktoken's cl100k_base encoding.
// Token counts give downstream consumers a model-aware size signal that
// word counts only approximate.
type TokenCounter struct {
	encoding tokenizer.Codec
}

// NewTokenCounter creates a TokenCounter.
func NewTokenCounter() (*TokenCounter, error) {
	enc, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tokenizer: %w", err)
	}
	return &TokenCounter{encoding: enc}, nil
}

// Count returns the number of tokens in text.
func (t *TokenCounter) Count(text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	ids, _, err := t.encoding.Encode(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTokenizerFailed, err)
	}
	return len(ids), nil
}
