package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRunLoggerWritesJSONFile(t *testing.T) {
	dir := t.TempDir()
	log, closeLog, err := NewRunLogger(dir, "abc-123")
	if err != nil {
		t.Fatalf("new run logger: %v", err)
	}
	log.Infow("section chunked", "section", "Cover Page", "chunks", 3)
	if err := closeLog(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "run_abc-123.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := strings.TrimSpace(string(data))
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, line)
	}
	if entry["msg"] != "section chunked" || entry["section"] != "Cover Page" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if entry["level"] != "info" {
		t.Errorf("expected info level, got %v", entry["level"])
	}
}

func TestNewRunLoggerCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs", "nested")
	_, closeLog, err := NewRunLogger(dir, "xyz")
	if err != nil {
		t.Fatalf("new run logger: %v", err)
	}
	if err := closeLog(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "run_xyz.log")); err != nil {
		t.Errorf("log file should exist: %v", err)
	}
}
