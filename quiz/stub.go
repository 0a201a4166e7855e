package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quizforge/quizforge/chunker"
)

// ErrNoSource indicates generation was requested with no chunks.
var ErrNoSource = errors.New("no source chunks to generate from")

// sampleQuestion is a template drawn from the fixed generation pool.
type sampleQuestion struct {
	qtype         QuestionType
	text          string
	options       []string
	correctAnswer int
	explanation   string
}

// samplePool is the fixed pool of template questions the stub generator
// draws from. Question text interpolates the topic extracted from the
// source chunk so different documents still yield distinct-looking quizzes.
var samplePool = []sampleQuestion{
	{
		qtype:         TypeMultipleChoice,
		text:          "What is the main subject discussed in the section about %s?",
		options:       []string{"The core concepts and their definitions", "Unrelated historical trivia", "A recipe for soup", "Sports statistics"},
		correctAnswer: 0,
		explanation:   "The section focuses on introducing and defining its core concepts.",
	},
	{
		qtype:         TypeMultipleChoice,
		text:          "According to the passage about %s, which statement best summarizes the author's point?",
		options:       []string{"The topic is presented with supporting detail", "The author dismisses the topic entirely", "No conclusion is offered", "The passage is fictional"},
		correctAnswer: 0,
		explanation:   "The passage develops its point with supporting detail throughout.",
	},
	{
		qtype:         TypeMultipleChoice,
		text:          "Which of the following is most closely related to %s?",
		options:       []string{"The ideas introduced in this section", "An unrelated appendix", "The document's page numbering", "The file format"},
		correctAnswer: 0,
		explanation:   "The question targets the ideas introduced in the surrounding text.",
	},
	{
		qtype:         TypeTrueFalse,
		text:          "The section about %s provides supporting details for its main idea.",
		options:       []string{"True", "False"},
		correctAnswer: 0,
		explanation:   "Sections in the source develop their main idea with supporting details.",
	},
	{
		qtype:         TypeTrueFalse,
		text:          "The passage about %s contradicts everything stated earlier in the document.",
		options:       []string{"True", "False"},
		correctAnswer: 1,
		explanation:   "The passage builds on, rather than contradicts, the earlier material.",
	},
}

// tokensPerQuestion is the amount of source material a single question
// is assumed to need when a token counter is available.
const tokensPerQuestion = 40

// StubGenerator returns questions drawn from a fixed sample pool instead
// of calling a model. It honors the requested count and type mix and
// derives question topics from the chunk contents.
type StubGenerator struct {
	// Delay simulates generation latency per question batch. Zero means
	// no delay.
	Delay time.Duration

	// Counter, when set, bounds the question count by the token size of
	// the source so tiny documents do not yield padded quizzes.
	Counter *chunker.TokenCounter
}

// NewStubGenerator creates a StubGenerator.
func NewStubGenerator() *StubGenerator {
	return &StubGenerator{}
}

// Generate produces a quiz by cycling the sample pool across the chunks.
func (g *StubGenerator) Generate(ctx context.Context, chunks []chunker.Chunk, req GenerationRequest) (*Quiz, error) {
	if len(chunks) == 0 {
		return nil, ErrNoSource
	}

	count := req.NumQuestions
	if count <= 0 {
		count = 10
	}
	if limit, ok := g.tokenLimit(chunks); ok && count > limit {
		count = limit
	}

	pool := filterPool(req.Types)
	if len(pool) == 0 {
		return nil, fmt.Errorf("no sample questions match requested types %v", req.Types)
	}

	if g.Delay > 0 {
		select {
		case <-time.After(g.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	now := time.Now()
	questions := make([]Question, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tmpl := pool[i%len(pool)]
		chunk := chunks[i%len(chunks)]
		topic := topicOf(chunk)

		questions = append(questions, Question{
			ID:            uuid.NewString(),
			Type:          tmpl.qtype,
			Text:          fmt.Sprintf(tmpl.text, topic),
			Options:       append([]string(nil), tmpl.options...),
			CorrectAnswer: tmpl.correctAnswer,
			Explanation:   tmpl.explanation,
			Topic:         topic,
			CreatedAt:     now,
		})
	}

	title := req.Title
	if title == "" {
		title = "Generated Quiz"
	}

	return &Quiz{
		ID:             uuid.NewString(),
		Title:          title,
		SourceFile:     req.SourceFile,
		Questions:      questions,
		CreatedAt:      now,
		TotalQuestions: len(questions),
	}, nil
}

// tokenLimit derives the maximum sensible question count from the token
// size of the source chunks. It reports false when no counter is set or
// counting fails, in which case the requested count stands.
func (g *StubGenerator) tokenLimit(chunks []chunker.Chunk) (int, bool) {
	if g.Counter == nil {
		return 0, false
	}
	total := 0
	for _, c := range chunks {
		n, err := g.Counter.Count(c.Content)
		if err != nil {
			return 0, false
		}
		total += n
	}
	limit := total / tokensPerQuestion
	if limit < 1 {
		limit = 1
	}
	return limit, true
}

func filterPool(requested []QuestionType) []sampleQuestion {
	if len(requested) == 0 {
		return samplePool
	}
	want := make(map[QuestionType]bool, len(requested))
	for _, t := range requested {
		want[t] = true
	}
	var pool []sampleQuestion
	for _, q := range samplePool {
		if want[q.qtype] {
			pool = append(pool, q)
		}
	}
	return pool
}

// topicOf extracts a short topic phrase from the start of a chunk.
func topicOf(c chunker.Chunk) string {
	words := strings.Fields(c.Content)
	if len(words) > 5 {
		words = words[:5]
	}
	topic := strings.Join(words, " ")
	topic = strings.Trim(topic, ".,;:!?")
	if topic == "" {
		return "the document"
	}
	return "\"" + topic + "\""
}
