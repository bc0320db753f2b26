// Package config resolves the run configuration from built-in defaults, an
// optional YAML file, and the environment, in that order. Flag overrides
// are applied by the CLI on top of the loaded value.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/edgarlab/filingest/internal/chunker"
)

type Config struct {
	// Tickers is the allow-list of ticker directories to process. Empty
	// means every ticker found under FilingsDir.
	Tickers []string `yaml:"tickers"`

	// Directory layout
	FilingsDir string `yaml:"filings_dir"`
	LinksDir   string `yaml:"links_dir"`
	OutDir     string `yaml:"out_dir"`
	LogDir     string `yaml:"log_dir"`

	// Chunking
	ChunkSize int `yaml:"chunk_size"`

	// Worker pool
	Workers int `yaml:"workers"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Tickers: []string{
			"WMT", "AMZN", "UNH", "AAPL", "CVS", "BRK.B", "GOOGL", "XOM",
			"MCK", "COR", "JPM", "COST", "CI", "MSFT", "CAH",
		},
		FilingsDir: "filings/filings",
		LinksDir:   "links",
		OutDir:     "chunks",
		LogDir:     "logs",
		ChunkSize:  chunker.DefaultLimit,
		Workers:    1,
	}
}

// Load resolves the configuration: defaults, then the YAML file at path
// when one is given, then environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	// A set-but-empty TICKERS_TO_PROCESS yields one empty ticker, which
	// matches no directory. That is distinct from unset (use the list
	// loaded so far).
	if v, ok := os.LookupEnv("TICKERS_TO_PROCESS"); ok {
		cfg.Tickers = strings.Split(v, ",")
	}
	cfg.FilingsDir = envOr("FILINGS_DIR", cfg.FilingsDir)
	cfg.LinksDir = envOr("LINKS_DIR", cfg.LinksDir)
	cfg.OutDir = envOr("OUT_DIR", cfg.OutDir)
	cfg.LogDir = envOr("LOG_DIR", cfg.LogDir)
	cfg.ChunkSize = envInt("CHUNK_SIZE", cfg.ChunkSize)
	cfg.Workers = envInt("WORKERS", cfg.Workers)

	return cfg, nil
}

func (c Config) Validate() error {
	if c.FilingsDir == "" {
		return fmt.Errorf("filings_dir is required")
	}
	if c.LinksDir == "" {
		return fmt.Errorf("links_dir is required")
	}
	if c.OutDir == "" {
		return fmt.Errorf("out_dir is required")
	}
	if c.LogDir == "" {
		return fmt.Errorf("log_dir is required")
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
