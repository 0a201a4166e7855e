// Package quiz defines the quiz data model and question generation.
package quiz

import (
	"context"
	"time"

	"github.com/quizforge/quizforge/chunker"
)

// QuestionType distinguishes the supported question formats.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeTrueFalse      QuestionType = "true_false"
)

// Question represents a single quiz question.
type Question struct {
	ID            string       `json:"id"`
	Type          QuestionType `json:"type"`
	Text          string       `json:"text"`
	Options       []string     `json:"options"`
	CorrectAnswer int          `json:"correct_answer"` // 0-based index
	Explanation   string       `json:"explanation"`
	Topic         string       `json:"topic"`
	CreatedAt     time.Time    `json:"created_at"`
}

// Quiz represents a complete quiz with metadata.
type Quiz struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	SourceFile     string     `json:"source_file,omitempty"`
	Questions      []Question `json:"questions"`
	CreatedAt      time.Time  `json:"created_at"`
	TotalQuestions int        `json:"total_questions"`
}

// GenerationRequest represents a request to generate questions.
type GenerationRequest struct {
	Title        string         `json:"title"`
	SourceFile   string         `json:"source_file,omitempty"`
	NumQuestions int            `json:"num_questions"`
	Types        []QuestionType `json:"types,omitempty"` // empty means both
	Difficulty   string         `json:"difficulty,omitempty"`
}

// Generator produces a quiz from chunked source material.
type Generator interface {
	Generate(ctx context.Context, chunks []chunker.Chunk, req GenerationRequest) (*Quiz, error)
}
