package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_Values(t *testing.T) {
	cfg := Default()
	if cfg.ChunkSize != 512 {
		t.Errorf("expected chunk size 512, got %d", cfg.ChunkSize)
	}
	if cfg.Workers != 1 {
		t.Errorf("expected 1 worker, got %d", cfg.Workers)
	}
	if cfg.FilingsDir != "filings/filings" {
		t.Errorf("unexpected filings dir: %q", cfg.FilingsDir)
	}
	if len(cfg.Tickers) != 15 || cfg.Tickers[0] != "WMT" || cfg.Tickers[3] != "AAPL" {
		t.Errorf("unexpected ticker defaults: %v", cfg.Tickers)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "tickers: [AAPL, MSFT]\nchunk_size: 256\nout_dir: artifacts\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Tickers) != 2 || cfg.Tickers[0] != "AAPL" {
		t.Errorf("unexpected tickers: %v", cfg.Tickers)
	}
	if cfg.ChunkSize != 256 {
		t.Errorf("expected chunk size 256, got %d", cfg.ChunkSize)
	}
	if cfg.OutDir != "artifacts" {
		t.Errorf("expected out dir from file, got %q", cfg.OutDir)
	}
	// Untouched keys keep their defaults.
	if cfg.Workers != 1 || cfg.LinksDir != "links" {
		t.Errorf("defaults lost: workers=%d links=%q", cfg.Workers, cfg.LinksDir)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("chunk_size: 256\nworkers: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CHUNK_SIZE", "128")
	t.Setenv("OUT_DIR", "envout")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ChunkSize != 128 {
		t.Errorf("env should beat file, got %d", cfg.ChunkSize)
	}
	if cfg.OutDir != "envout" {
		t.Errorf("env should beat default, got %q", cfg.OutDir)
	}
	if cfg.Workers != 2 {
		t.Errorf("file value should survive when env is unset, got %d", cfg.Workers)
	}
}

func TestLoad_EmptyTickersEnv(t *testing.T) {
	t.Setenv("TICKERS_TO_PROCESS", "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Tickers) != 1 || cfg.Tickers[0] != "" {
		t.Fatalf("set-but-empty env must yield one empty ticker, got %v", cfg.Tickers)
	}
}

func TestLoad_TickersEnvSplit(t *testing.T) {
	t.Setenv("TICKERS_TO_PROCESS", "AAPL,MSFT,GOOGL")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"AAPL", "MSFT", "GOOGL"}
	if len(cfg.Tickers) != len(want) {
		t.Fatalf("expected %d tickers, got %v", len(want), cfg.Tickers)
	}
	for i, w := range want {
		if cfg.Tickers[i] != w {
			t.Errorf("ticker %d: expected %q, got %q", i, w, cfg.Tickers[i])
		}
	}
}

func TestLoad_BadEnvIntIgnored(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "not-a-number")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ChunkSize != 512 {
		t.Errorf("unparseable env int should fall back, got %d", cfg.ChunkSize)
	}
}

func TestLoad_MissingFileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for an explicit missing config file")
	}
}

func TestValidate_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"empty filings dir", func(c *Config) { c.FilingsDir = "" }},
		{"empty log dir", func(c *Config) { c.LogDir = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}
