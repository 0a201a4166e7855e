// Command quizforge turns a PDF into a quiz and exports it as plain text
// or PDF. Extraction and generation are stubbed; chunking and caching are
// real.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/quizforge/quizforge/cache"
	"github.com/quizforge/quizforge/chunker"
	"github.com/quizforge/quizforge/export"
	"github.com/quizforge/quizforge/internal/config"
	"github.com/quizforge/quizforge/pdfext"
	"github.com/quizforge/quizforge/quiz"
)

func main() {
	_ = godotenv.Load()

	var (
		input        = flag.String("input", "", "Input PDF file (required)")
		output       = flag.String("output", "", "Output file (default: stdout for text)")
		format       = flag.String("format", "text", "Export format: text or pdf")
		numQuestions = flag.Int("questions", 0, "Number of questions (overrides config)")
		cfgPath      = flag.String("config", "config.yaml", "Path to YAML config file")
		redisAddr    = flag.String("redis", "", "Redis address (overrides config, enables redis backend)")
		verbose      = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	logger := charmlog.New(os.Stderr)
	if *verbose {
		logger.SetLevel(charmlog.DebugLevel)
	}

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: quizforge -input document.pdf [-output quiz.txt] [-format text|pdf]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Fatal("failed to load config", "path", *cfgPath, "err", err)
	}
	if *redisAddr != "" {
		cfg.Cache.Backend = "redis"
		cfg.Cache.RedisAddr = *redisAddr
	}
	if *numQuestions > 0 {
		cfg.Generation.NumQuestions = *numQuestions
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := run(ctx, cfg, logger, *input, *output, *format); err != nil {
		logger.Fatal("quiz generation failed", "err", err)
	}
}

func run(ctx context.Context, cfg *config.AppConfig, logger *charmlog.Logger, input, output, format string) error {
	// One cache instance per data category, wired explicitly.
	pdfCache, err := newCache[pdfext.Document](cfg.Cache, logger, "pdf:")
	if err != nil {
		return fmt.Errorf("failed to create pdf cache: %w", err)
	}
	defer pdfCache.Close()

	quizCache, err := newCache[quiz.Quiz](cfg.Cache, logger, "quiz:")
	if err != nil {
		return fmt.Errorf("failed to create quiz cache: %w", err)
	}
	defer quizCache.Close()

	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("failed to stat input: %w", err)
	}

	extractor := pdfext.NewStubExtractor()
	pdfKey := cache.PDFKey(filepath.Base(input), info.Size())
	doc, err := pdfCache.GetOrSet(ctx, pdfKey, func(ctx context.Context) (pdfext.Document, error) {
		logger.Info("extracting text", "file", input, "size", info.Size())
		f, err := os.Open(input)
		if err != nil {
			return pdfext.Document{}, err
		}
		defer f.Close()
		return extractor.Extract(ctx, f, filepath.Base(input))
	})
	if err != nil {
		return fmt.Errorf("failed to extract text: %w", err)
	}

	splitter, err := chunker.NewSplitter(chunker.Options{
		MaxWords:           cfg.Chunker.MaxWords,
		MaxChars:           cfg.Chunker.MaxChars,
		OverlapChars:       cfg.Chunker.OverlapChars,
		PreserveParagraphs: cfg.Chunker.PreserveParagraphs,
		PreserveSentences:  cfg.Chunker.PreserveSentences,
	})
	if err != nil {
		return err
	}

	chunks := chunker.Deduplicate(splitter.Split(doc.Text))
	if stats, err := chunker.Analyze(chunks); err == nil {
		logger.Debug("chunked document",
			"chunks", stats.Count,
			"avg_words", fmt.Sprintf("%.1f", stats.AvgWords),
			"max_chars", stats.MaxChars)
	}
	genReq := quiz.GenerationRequest{
		Title:        filepath.Base(input),
		SourceFile:   filepath.Base(input),
		NumQuestions: cfg.Generation.NumQuestions,
		Types:        questionTypes(cfg.Generation.Types),
		Difficulty:   cfg.Generation.Difficulty,
	}

	generator := quiz.NewStubGenerator()
	if counter, err := chunker.NewTokenCounter(); err == nil {
		generator.Counter = counter
		if tokens, err := counter.Count(doc.Text); err == nil {
			logger.Debug("document size", "tokens", tokens, "chars", len(doc.Text))
		}
	}
	quizKey := cache.ContentKey(doc.Text, genReq)
	result, err := quizCache.GetOrSet(ctx, quizKey, func(ctx context.Context) (quiz.Quiz, error) {
		logger.Info("generating quiz", "questions", genReq.NumQuestions)
		q, err := generator.Generate(ctx, chunks, genReq)
		if err != nil {
			return quiz.Quiz{}, err
		}
		return *q, nil
	})
	if err != nil {
		return fmt.Errorf("failed to generate quiz: %w", err)
	}

	return writeOutput(logger, &result, output, format)
}

func newCache[V any](cfg config.CacheConfig, logger *charmlog.Logger, namespace string) (*cache.Cache[V], error) {
	opts := []cache.Option[V]{
		cache.WithTTL[V](cfg.TTL()),
		cache.WithMaxEntries[V](cfg.MaxEntries),
		cache.WithSweepInterval[V](cfg.SweepInterval()),
		cache.WithLogger[V](logger.With("cache", namespace)),
	}
	if cfg.Backend == "redis" {
		opts = append(opts, cache.WithRedisBackend[V](cfg.RedisAddr, cfg.RedisDB, "quizforge:"+namespace))
	}
	return cache.New(opts...)
}

func questionTypes(names []string) []quiz.QuestionType {
	var out []quiz.QuestionType
	for _, n := range names {
		out = append(out, quiz.QuestionType(n))
	}
	return out
}

func writeOutput(logger *charmlog.Logger, q *quiz.Quiz, output, format string) error {
	var w *os.File
	if output == "" {
		if format == "pdf" {
			return fmt.Errorf("pdf export requires -output")
		}
		w = os.Stdout
	} else {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "text":
		if err := export.Text(w, q); err != nil {
			return err
		}
	case "pdf":
		if err := export.PDF(w, q); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (want text or pdf)", format)
	}

	if output != "" {
		logger.Info("quiz exported", "file", output, "format", format, "questions", q.TotalQuestions)
	}
	return nil
}
