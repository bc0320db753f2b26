package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormsCommand(t *testing.T) {
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"forms"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("forms: %v", err)
	}

	got := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{"10-K", "10-Q", "3", "4", "5", "8-K", "DEF 14A"}
	if len(got) != len(want) {
		t.Fatalf("expected %d forms, got %v", len(want), got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("form %d: expected %q, got %q", i, w, got[i])
		}
	}
}

func TestParseCommandRequiresForm(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"parse"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error when --form is omitted")
	}
}

// Runs the parse command against one ownership filing, with the output
// directory supplied through a .env file in the working directory.
func TestParseCommandLoadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(oldWD) })

	// godotenv fills only unset variables; snapshot the outer value via
	// t.Setenv, then clear it so the .env entry wins.
	t.Setenv("OUT_DIR", "sentinel")
	os.Unsetenv("OUT_DIR")
	t.Setenv("LOG_DIR", filepath.Join(dir, "logs"))

	outDir := filepath.Join(dir, "envout")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("OUT_DIR="+outDir+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	filingsDir := filepath.Join(dir, "filings")
	yearDir := filepath.Join(filingsDir, "AAPL", "4", "2024")
	if err := os.MkdirAll(yearDir, 0o755); err != nil {
		t.Fatal(err)
	}
	body := `<?xml version="1.0"?>
<ownershipDocument>
  <documentType>4</documentType>
  <periodOfReport>2024-02-01</periodOfReport>
  <issuer>
    <issuerCik>0000320193</issuerCik>
    <issuerName>Apple Inc.</issuerName>
    <issuerTradingSymbol>AAPL</issuerTradingSymbol>
  </issuer>
</ownershipDocument>`
	if err := os.WriteFile(filepath.Join(yearDir, "apple_4_2024_0000320193-24-000002.xml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCmd()
	cmd.SetArgs([]string{
		"parse",
		"--form", "4",
		"--tickers", "AAPL",
		"--filings-dir", filingsDir,
		"--links-dir", filepath.Join(dir, "links"),
	})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("parse: %v", err)
	}

	artifact := filepath.Join(outDir, "AAPL", "4", "2024", "apple_4_2024_0000320193-24-000002_chunks.json")
	data, err := os.ReadFile(artifact)
	if err != nil {
		t.Fatalf("artifact should land under the .env out dir: %v", err)
	}
	var doc struct {
		Meta struct {
			Ticker    string `json:"ticker"`
			Accession string `json:"accession"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("artifact is not JSON: %v", err)
	}
	if doc.Meta.Ticker != "AAPL" || doc.Meta.Accession != "0000320193-24-000002" {
		t.Errorf("unexpected artifact meta: %+v", doc.Meta)
	}

	logs, err := filepath.Glob(filepath.Join(dir, "logs", "run_*.log"))
	if err != nil || len(logs) != 1 {
		t.Fatalf("expected one run log, got %v (err %v)", logs, err)
	}
}
