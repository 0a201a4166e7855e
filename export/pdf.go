package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/quizforge/quizforge/quiz"
)

// PDF writes the quiz as a printable PDF document with the answer key on
// its own page.
func PDF(w io.Writer, q *quiz.Quiz) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(q.Title, true)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.MultiCell(0, 8, q.Title, "", "L", false)

	doc.SetFont("Helvetica", "", 10)
	if q.SourceFile != "" {
		doc.MultiCell(0, 5, "Source: "+q.SourceFile, "", "L", false)
	}
	doc.MultiCell(0, 5, fmt.Sprintf("Generated: %s", q.CreatedAt.Format("2006-01-02 15:04")), "", "L", false)
	doc.Ln(4)

	for i, question := range q.Questions {
		doc.SetFont("Helvetica", "B", 11)
		doc.MultiCell(0, 6, fmt.Sprintf("%d. %s", i+1, question.Text), "", "L", false)

		doc.SetFont("Helvetica", "", 11)
		for j, option := range question.Options {
			doc.MultiCell(0, 6, fmt.Sprintf("    %s. %s", label(j), option), "", "L", false)
		}
		doc.Ln(3)
	}

	doc.AddPage()
	doc.SetFont("Helvetica", "B", 14)
	doc.MultiCell(0, 8, "Answer Key", "", "L", false)
	doc.SetFont("Helvetica", "", 10)
	for i, question := range q.Questions {
		line := fmt.Sprintf("%d. %s", i+1, label(question.CorrectAnswer))
		if question.Explanation != "" {
			line += " - " + question.Explanation
		}
		doc.MultiCell(0, 5, line, "", "L", false)
	}

	return doc.Output(w)
}
