// Package config loads the application configuration from YAML.
package config

import (
	"errors"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ChunkerConfig configures how documents are split into chunks.
type ChunkerConfig struct {
	MaxWords           int  `yaml:"max_words"`
	MaxChars           int  `yaml:"max_chars"`
	OverlapChars       int  `yaml:"overlap_chars"`
	PreserveParagraphs bool `yaml:"preserve_paragraphs"`
	PreserveSentences  bool `yaml:"preserve_sentences"`
}

// CacheConfig configures the cache instances.
type CacheConfig struct {
	// Backend selects "memory" or "redis".
	Backend      string `yaml:"backend"`
	TTLMinutes   int    `yaml:"ttl_minutes"`
	MaxEntries   int    `yaml:"max_entries"`
	SweepMinutes int    `yaml:"sweep_minutes"`
	RedisAddr    string `yaml:"redis_addr,omitempty"`
	RedisDB      int    `yaml:"redis_db,omitempty"`
}

// TTL returns the configured entry time-to-live.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// SweepInterval returns the configured sweep interval.
func (c CacheConfig) SweepInterval() time.Duration {
	return time.Duration(c.SweepMinutes) * time.Minute
}

// GenerationConfig configures quiz generation.
type GenerationConfig struct {
	NumQuestions int      `yaml:"num_questions"`
	Types        []string `yaml:"types,omitempty"`
	Difficulty   string   `yaml:"difficulty,omitempty"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Chunker    ChunkerConfig    `yaml:"chunker"`
	Cache      CacheConfig      `yaml:"cache"`
	Generation GenerationConfig `yaml:"generation"`
}

// Load reads a config from path. If the file does not exist, defaults are
// returned.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	cfg := &AppConfig{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Chunker.MaxWords == 0 {
		cfg.Chunker.MaxWords = 500
		// Boundary preservation defaults only apply alongside the word
		// default; an explicit chunker section keeps what it says.
		cfg.Chunker.PreserveParagraphs = true
		cfg.Chunker.PreserveSentences = true
	}
	if cfg.Chunker.MaxChars == 0 {
		cfg.Chunker.MaxChars = 3000
	}
	if cfg.Chunker.OverlapChars == 0 {
		cfg.Chunker.OverlapChars = 50
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "memory"
	}
	if cfg.Cache.TTLMinutes == 0 {
		cfg.Cache.TTLMinutes = 30
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = 100
	}
	if cfg.Cache.SweepMinutes == 0 {
		cfg.Cache.SweepMinutes = 5
	}
	if cfg.Cache.Backend == "redis" && cfg.Cache.RedisAddr == "" {
		cfg.Cache.RedisAddr = "localhost:6379"
	}
	if cfg.Generation.NumQuestions == 0 {
		cfg.Generation.NumQuestions = 10
	}
}
