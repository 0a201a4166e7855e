// Package pdfext handles ingestion of uploaded PDF files. Text extraction
// is currently stubbed: the extractor measures the real file but returns
// canned sample text.
package pdfext

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Document is the result of ingesting a file.
type Document struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Text string `json:"text"`
}

// Extractor turns an uploaded file into document text.
type Extractor interface {
	Extract(ctx context.Context, r io.Reader, name string) (Document, error)
}

// StubExtractor consumes the input to measure its size and returns canned
// sample text in place of real PDF parsing.
type StubExtractor struct{}

// NewStubExtractor creates a StubExtractor.
func NewStubExtractor() *StubExtractor {
	return &StubExtractor{}
}

// Extract reads r to the end and returns the canned document text.
func (e *StubExtractor) Extract(ctx context.Context, r io.Reader, name string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	size, err := io.Copy(io.Discard, r)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read %s: %w", name, err)
	}

	return Document{
		Name: name,
		Size: size,
		Text: sampleText(name),
	}, nil
}

func sampleText(name string) string {
	var b strings.Builder
	b.WriteString("Introduction to " + name + "\n\n")
	b.WriteString("This document explores the foundational concepts of the subject matter. ")
	b.WriteString("It begins by defining the key terms and explaining why they matter in practice. ")
	b.WriteString("Each concept builds on the previous one, forming a coherent framework for understanding the field.\n\n")
	b.WriteString("The second section examines practical applications. ")
	b.WriteString("Real-world examples illustrate how the theory translates into day-to-day decisions. ")
	b.WriteString("Common pitfalls are highlighted along with strategies to avoid them.\n\n")
	b.WriteString("The final section summarizes the main findings and suggests directions for further study. ")
	b.WriteString("Readers are encouraged to test their understanding against the material presented here.")
	return b.String()
}
