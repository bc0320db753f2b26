// Package pipeline runs one parse batch: it enumerates filing files on
// disk, fans them out to a worker pool, and aggregates per-file outcomes
// into a run summary. Files are independent, so a failure in one never
// stops the rest.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/edgarlab/filingest/internal/catalog"
	"github.com/edgarlab/filingest/internal/config"
	"github.com/edgarlab/filingest/internal/filing"
	"github.com/edgarlab/filingest/internal/links"
)

// Orchestrator drives one run over one form type.
type Orchestrator struct {
	cfg   config.Config
	cat   *catalog.Catalog
	runID string
	log   *zap.SugaredLogger
	stats *ParseStats
}

// Summary is the outcome of one run.
type Summary struct {
	RunID             string
	FormType          string
	Success           int
	Failed            int
	MissingSourceURLs []string
}

func New(cfg config.Config, cat *catalog.Catalog, runID string, log *zap.SugaredLogger) *Orchestrator {
	return &Orchestrator{
		cfg:   cfg,
		cat:   cat,
		runID: runID,
		log:   log,
		stats: NewParseStats(),
	}
}

// Run processes every matching filing and reports the aggregate outcome.
// Per-file failures are contained in the summary; only errors preparing
// the run itself (an unreadable root, a corrupt links file) abort it.
func (o *Orchestrator) Run(ctx context.Context) (Summary, error) {
	summary := Summary{RunID: o.runID, FormType: o.cat.Form}

	jobs, err := o.enumerate()
	if err != nil {
		return summary, err
	}
	if len(jobs) == 0 {
		o.log.Warnw("no filings found", "filings_dir", o.cfg.FilingsDir, "form", o.cat.Form)
		return summary, nil
	}
	o.log.Infow("filings discovered", "count", len(jobs))
	o.log.Infof("filing counts by ticker and year:\n%s", countsTable(jobs))

	workers := o.cfg.Workers
	if workers < 1 {
		workers = 1
	}

	queue := make(chan Job)
	results := make(chan Result)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := NewWorker(o.cat, o.cfg.OutDir, o.cfg.ChunkSize, o.log)
			for job := range queue {
				results <- w.Process(ctx, job)
			}
		}()
	}

	go func() {
		defer close(queue)
		for _, job := range jobs {
			select {
			case <-ctx.Done():
				return
			case queue <- job:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	missing := make(map[string]struct{})
	for res := range results {
		o.stats.Record(res.Duration)
		if res.Err != nil {
			summary.Failed++
			o.log.Errorw("filing failed",
				"ticker", res.Job.Ticker,
				"file", filepath.Base(res.Job.Path),
				"error", res.Err,
			)
			continue
		}
		summary.Success++
		if res.MissingURL {
			missing[res.Accession] = struct{}{}
		}
	}

	if err := ctx.Err(); err != nil {
		return summary, err
	}

	for acc := range missing {
		summary.MissingSourceURLs = append(summary.MissingSourceURLs, acc)
	}
	sort.Strings(summary.MissingSourceURLs)

	snap := o.stats.Snapshot()
	o.log.Infow("parse timings",
		"count", snap.Count,
		"min_ms", snap.MinMs,
		"max_ms", snap.MaxMs,
		"avg_ms", snap.AvgMs,
		"p50_ms", snap.P50Ms,
		"p95_ms", snap.P95Ms,
	)

	if len(summary.MissingSourceURLs) > 0 {
		o.log.Warnw("accessions with no source url",
			"count", len(summary.MissingSourceURLs),
			"accessions", summary.MissingSourceURLs,
		)
	}
	if summary.Failed == 0 {
		o.log.Infow("all filings processed successfully", "count", summary.Success)
	} else {
		o.log.Infow("run finished with failures",
			"success", summary.Success,
			"failed", summary.Failed,
		)
	}
	return summary, nil
}

// enumerate walks filings_root/<ticker>/<form>/<year>/<file> for every
// allowed ticker and resolves each file's source URL from the ticker's
// links table. An empty allow-list means every ticker directory present.
func (o *Orchestrator) enumerate() ([]Job, error) {
	tickers := o.cfg.Tickers
	if len(tickers) == 0 {
		entries, err := os.ReadDir(o.cfg.FilingsDir)
		if err != nil {
			return nil, fmt.Errorf("list filings root: %w", err)
		}
		for _, e := range entries {
			if e.IsDir() {
				tickers = append(tickers, e.Name())
			}
		}
	} else {
		tickers = append([]string(nil), tickers...)
	}
	sort.Strings(tickers)

	var jobs []Job
	for _, ticker := range tickers {
		table, err := links.Load(o.cfg.LinksDir, ticker, o.cat.Form)
		if err != nil {
			return nil, err
		}
		formDir := filepath.Join(o.cfg.FilingsDir, ticker, o.cat.Form)
		years, err := os.ReadDir(formDir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("list %s: %w", formDir, err)
		}
		for _, y := range years {
			if !y.IsDir() {
				continue
			}
			yearDir := filepath.Join(formDir, y.Name())
			files, err := os.ReadDir(yearDir)
			if err != nil {
				return nil, fmt.Errorf("list %s: %w", yearDir, err)
			}
			for _, f := range files {
				if f.IsDir() || !o.cat.AcceptsFile(f.Name()) {
					continue
				}
				path := filepath.Join(yearDir, f.Name())
				jobs = append(jobs, Job{
					Ticker: ticker,
					Year:   y.Name(),
					Path:   path,
					URL:    table[filing.AccessionFromPath(path)],
				})
			}
		}
	}
	return jobs, nil
}

// countsTable renders the discovered-file counts as a markdown table, one
// row per ticker, one column per year.
func countsTable(jobs []Job) string {
	counts := make(map[string]map[string]int)
	yearSet := make(map[string]struct{})
	for _, j := range jobs {
		if counts[j.Ticker] == nil {
			counts[j.Ticker] = make(map[string]int)
		}
		counts[j.Ticker][j.Year]++
		yearSet[j.Year] = struct{}{}
	}

	tickers := make([]string, 0, len(counts))
	for ticker := range counts {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	years := make([]string, 0, len(yearSet))
	for year := range yearSet {
		years = append(years, year)
	}
	sort.Strings(years)

	headers := append([]string{"Ticker"}, years...)
	rows := make([][]string, 0, len(tickers))
	for _, ticker := range tickers {
		row := make([]string, 0, len(headers))
		row = append(row, ticker)
		for _, year := range years {
			row = append(row, strconv.Itoa(counts[ticker][year]))
		}
		rows = append(rows, row)
	}
	return filing.TableRecord{Headers: headers, Rows: rows}.Markdown()
}
