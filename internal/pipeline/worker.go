package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/edgarlab/filingest/internal/catalog"
	"github.com/edgarlab/filingest/internal/chunker"
	"github.com/edgarlab/filingest/internal/filing"
	"github.com/edgarlab/filingest/internal/parser"
)

// Job is one filing file to process.
type Job struct {
	Ticker string
	Year   string
	Path   string
	URL    string // source URL from the links table, may be empty
}

// Result reports one processed job.
type Result struct {
	Job        Job
	Accession  string
	MissingURL bool
	Err        error
	Duration   time.Duration
}

// Worker parses, chunks, and writes one filing at a time. Workers share
// nothing but the logger; each file gets fresh document state.
type Worker struct {
	cat       *catalog.Catalog
	outDir    string
	chunkSize int
	log       *zap.SugaredLogger
}

func NewWorker(cat *catalog.Catalog, outDir string, chunkSize int, log *zap.SugaredLogger) *Worker {
	return &Worker{cat: cat, outDir: outDir, chunkSize: chunkSize, log: log}
}

// Process runs parse, chunk, write for one filing. Failures, including
// panics escaping the walker on pathological markup, are contained in the
// result so the batch continues.
func (w *Worker) Process(ctx context.Context, job Job) (res Result) {
	start := time.Now()
	res.Job = job
	res.Accession = filing.AccessionFromPath(job.Path)
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
		res.Duration = time.Since(start)
	}()

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	log := w.log.With("ticker", job.Ticker, "year", job.Year, "file", filepath.Base(job.Path))

	year, err := strconv.Atoi(job.Year)
	if err != nil {
		res.Err = fmt.Errorf("year directory %q is not numeric", job.Year)
		return res
	}

	doc := filing.NewDocument(filing.Meta{
		Ticker:     job.Ticker,
		FormType:   w.cat.Form,
		FiscalYear: year,
		Accession:  res.Accession,
		SourceURL:  job.URL,
		LocalPath:  job.Path,
		ParsedAt:   time.Now().UTC().Format(time.RFC3339),
	}, w.cat.Labels)

	f, err := os.Open(job.Path)
	if err != nil {
		res.Err = fmt.Errorf("open filing: %w", err)
		return res
	}
	parseErr := parser.ForForm(w.cat).Parse(f, doc)
	f.Close()
	if parseErr != nil {
		res.Err = fmt.Errorf("parse %s: %w", filepath.Base(job.Path), parseErr)
		return res
	}

	w.chunk(doc, &res, log)

	if err := w.write(doc, job); err != nil {
		res.Err = err
		return res
	}
	log.Infow("artifact written", "accession", res.Accession)
	return res
}

// chunk fills every detected section's chunks. The missing-URL flag is set
// through the meta callback, so only files whose sections actually emit
// chunks are reported.
func (w *Worker) chunk(doc *filing.Document, res *Result, log *zap.SugaredLogger) {
	filingDate := filing.FilingDate(doc.Meta.Accession)
	overlap := chunker.Overlap(w.chunkSize)
	for _, label := range doc.Labels() {
		st := doc.Section(label)
		if st.Missing {
			log.Infow("section missing", "section", label)
			continue
		}
		tags := chunker.ExtractTags(label)
		meta := func(start, end int) filing.ChunkMeta {
			if doc.Meta.SourceURL == "" {
				res.MissingURL = true
			}
			return filing.ChunkMeta{
				Section:    label,
				StartToken: start,
				EndToken:   end,
				TokenCount: end - start,
				Accession:  doc.Meta.Accession,
				FilingDate: filingDate,
				Ticker:     doc.Meta.Ticker,
				SourceURL:  doc.Meta.SourceURL,
				Tags:       tags,
			}
		}
		st.Chunks = chunker.Split(st.FlattenText(), w.chunkSize, overlap, meta)
		log.Infow("section chunked", "section", label, "chunks", len(st.Chunks))
	}
}

func (w *Worker) write(doc *filing.Document, job Job) error {
	stem := strings.TrimSuffix(filepath.Base(job.Path), filepath.Ext(job.Path))
	dir := filepath.Join(w.outDir, job.Ticker, w.cat.Form, job.Year)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	out, err := os.Create(filepath.Join(dir, stem+"_chunks.json"))
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	if err := doc.Encode(out); err != nil {
		out.Close()
		return fmt.Errorf("encode artifact: %w", err)
	}
	return out.Close()
}
