package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Chunker.MaxWords != 500 || cfg.Chunker.MaxChars != 3000 || cfg.Chunker.OverlapChars != 50 {
		t.Errorf("unexpected chunker defaults: %+v", cfg.Chunker)
	}
	if !cfg.Chunker.PreserveSentences || !cfg.Chunker.PreserveParagraphs {
		t.Error("boundary preservation should default to true")
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("cache backend = %q, want memory", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL() != 30*time.Minute {
		t.Errorf("cache ttl = %v, want 30m", cfg.Cache.TTL())
	}
	if cfg.Cache.MaxEntries != 100 {
		t.Errorf("cache max entries = %d, want 100", cfg.Cache.MaxEntries)
	}
	if cfg.Cache.SweepInterval() != 5*time.Minute {
		t.Errorf("sweep interval = %v, want 5m", cfg.Cache.SweepInterval())
	}
	if cfg.Generation.NumQuestions != 10 {
		t.Errorf("num questions = %d, want 10", cfg.Generation.NumQuestions)
	}
}

func TestLoad_PartialFileGetsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
cache:
  backend: redis
  ttl_minutes: 60
generation:
  num_questions: 25
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Cache.Backend != "redis" {
		t.Errorf("backend = %q, want redis", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL() != time.Hour {
		t.Errorf("ttl = %v, want 1h", cfg.Cache.TTL())
	}
	if cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("redis addr = %q, want default localhost:6379", cfg.Cache.RedisAddr)
	}
	if cfg.Generation.NumQuestions != 25 {
		t.Errorf("num questions = %d, want 25", cfg.Generation.NumQuestions)
	}
	if cfg.Chunker.MaxWords != 500 {
		t.Errorf("chunker max words = %d, want default 500", cfg.Chunker.MaxWords)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("cache: [not: valid"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid yaml")
	}
}
