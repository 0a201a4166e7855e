// Package export renders quizzes to plain text and PDF.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/quizforge/quizforge/quiz"
)

// optionLabels letters the answer options; indexes beyond F fall back to
// numbers.
var optionLabels = []string{"A", "B", "C", "D", "E", "F"}

// Text writes a human-readable rendering of the quiz, questions first and
// the answer key at the end.
func Text(w io.Writer, q *quiz.Quiz) error {
	var b strings.Builder

	b.WriteString("Quiz: " + q.Title + "\n")
	if q.SourceFile != "" {
		b.WriteString("Source: " + q.SourceFile + "\n")
	}
	b.WriteString(fmt.Sprintf("Questions: %d\n", q.TotalQuestions))
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", q.CreatedAt.Format("2006-01-02 15:04")))

	for i, question := range q.Questions {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, question.Text))
		for j, option := range question.Options {
			b.WriteString(fmt.Sprintf("   %s. %s\n", label(j), option))
		}
		b.WriteString("\n")
	}

	b.WriteString("Answer Key\n")
	b.WriteString("----------\n")
	for i, question := range q.Questions {
		b.WriteString(fmt.Sprintf("%d. %s", i+1, label(question.CorrectAnswer)))
		if question.Explanation != "" {
			b.WriteString(" - " + question.Explanation)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func label(i int) string {
	if i >= 0 && i < len(optionLabels) {
		return optionLabels[i]
	}
	return fmt.Sprintf("%d", i+1)
}
