package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quizforge/quiz"
)

func sampleQuiz() *quiz.Quiz {
	return &quiz.Quiz{
		ID:         "quiz-1",
		Title:      "Sample Quiz",
		SourceFile: "report.pdf",
		CreatedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Questions: []quiz.Question{
			{
				ID:            "q1",
				Type:          quiz.TypeMultipleChoice,
				Text:          "What is the main subject of the document?",
				Options:       []string{"Concepts", "Trivia", "Soup", "Sports"},
				CorrectAnswer: 0,
				Explanation:   "The document centers on its core concepts.",
			},
			{
				ID:            "q2",
				Type:          quiz.TypeTrueFalse,
				Text:          "The document provides supporting details.",
				Options:       []string{"True", "False"},
				CorrectAnswer: 0,
			},
		},
		TotalQuestions: 2,
	}
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleQuiz()))

	out := buf.String()
	assert.Contains(t, out, "Quiz: Sample Quiz")
	assert.Contains(t, out, "Source: report.pdf")
	assert.Contains(t, out, "1. What is the main subject of the document?")
	assert.Contains(t, out, "   A. Concepts")
	assert.Contains(t, out, "2. The document provides supporting details.")
	assert.Contains(t, out, "Answer Key")
	assert.Contains(t, out, "1. A - The document centers on its core concepts.")
	assert.Contains(t, out, "2. A")

	// Questions come before the answer key.
	assert.Less(t, strings.Index(out, "1. What"), strings.Index(out, "Answer Key"))
}

func TestPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, sampleQuiz()))

	assert.Greater(t, buf.Len(), 0)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "output should be a PDF document")
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "A", label(0))
	assert.Equal(t, "D", label(3))
	assert.Equal(t, "7", label(6), "indices past the label set fall back to numbers")
}
