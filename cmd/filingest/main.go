package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/edgarlab/filingest/internal/catalog"
	"github.com/edgarlab/filingest/internal/config"
	"github.com/edgarlab/filingest/internal/logging"
	"github.com/edgarlab/filingest/internal/pipeline"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "filingest",
		Short:         "Split SEC filings into canonical sections and token-bounded chunks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newParseCmd(), newFormsCmd())
	return root
}

func newParseCmd() *cobra.Command {
	var (
		form       string
		configPath string
		tickers    []string
		filingsDir string
		linksDir   string
		outDir     string
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse downloaded filings of one form type into chunk artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Optional .env; its values participate as plain environment
			// overrides.
			_ = godotenv.Load()

			cat, err := catalog.ForForm(form)
			if err != nil {
				return err
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("tickers") {
				cfg.Tickers = tickers
			}
			if cmd.Flags().Changed("filings-dir") {
				cfg.FilingsDir = filingsDir
			}
			if cmd.Flags().Changed("links-dir") {
				cfg.LinksDir = linksDir
			}
			if cmd.Flags().Changed("out-dir") {
				cfg.OutDir = outDir
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			runID := uuid.NewString()
			log, closeLog, err := logging.NewRunLogger(cfg.LogDir, runID)
			if err != nil {
				return err
			}
			defer closeLog()

			log = log.With("run_id", runID, "form", cat.Form)
			log.Infow("run starting",
				"tickers", cfg.Tickers,
				"workers", cfg.Workers,
				"chunk_size", cfg.ChunkSize,
			)

			summary, err := pipeline.New(cfg, cat, runID, log).Run(cmd.Context())
			if err != nil {
				return err
			}
			if summary.Failed == 0 {
				fmt.Printf("Finished. All %d filings processed successfully.\n", summary.Success)
			} else {
				fmt.Printf("Finished.  Successful: %d   Failed: %d\n", summary.Success, summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&form, "form", "", "form type to parse (see 'filingest forms')")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().StringSliceVar(&tickers, "tickers", nil, "tickers to process (default: configured list)")
	cmd.Flags().StringVar(&filingsDir, "filings-dir", "", "root directory of downloaded filings")
	cmd.Flags().StringVar(&linksDir, "links-dir", "", "root directory of per-ticker links.json files")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "root directory for chunk artifacts")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker pool size")
	_ = cmd.MarkFlagRequired("form")
	return cmd
}

func newFormsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forms",
		Short: "List supported form types",
		Run: func(cmd *cobra.Command, args []string) {
			for _, form := range catalog.Forms() {
				fmt.Fprintln(cmd.OutOrStdout(), form)
			}
		},
	}
}
