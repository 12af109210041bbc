// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/axe/internal/batch"
	"github.com/pdiddy/axe/internal/config"
	"github.com/pdiddy/axe/internal/convert"
	"github.com/pdiddy/axe/internal/fetch"
	"github.com/pdiddy/axe/internal/history"
	"github.com/pdiddy/axe/internal/render"
	"github.com/pdiddy/axe/internal/stats"
	"github.com/pdiddy/axe/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultDelay     = 1 * time.Second
	defaultUserAgent = "axe/1.0"
)

var convertCmd = &cobra.Command{
	Use:   "convert <target>",
	Short: "Convert arXiv papers to text and Markdown",
	Long: `Convert processes a target through the conversion pipeline. The target can
be a PDF file, a directory of PDFs, an arXiv URL or ID, "." for the current
directory, or "path" for the configured input directory.

Individual failures never abort the batch; the run always completes and its
tally is folded into the persistent statistics.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("format", "f", "", "output format: text, markdown, or both (default: configured format)")
	convertCmd.Flags().String("out", "", "output directory for this run (default: configured output path)")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	dataDir, err := resolveDataDir()
	if err != nil {
		return err
	}
	cfgStore := config.NewStore(dataDir)
	statsStore := stats.NewStore(dataDir)

	cfg, err := cfgStore.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (using defaults)\n", err)
	}

	format := cfg.DefaultFormat
	if s, _ := cmd.Flags().GetString("format"); s != "" {
		format, err = types.ParseFormat(s)
		if err != nil {
			return err
		}
	}

	outDir := cfg.OutputPath
	if s, _ := cmd.Flags().GetString("out"); s != "" {
		outDir = s
	}

	return runBatch(cmd.Context(), dataDir, cfgStore, statsStore, args[0], format, outDir)
}

// runBatch expands the target, drives the conversion, prints the summary,
// and merges the run into persistent statistics exactly once. Per-item
// failures are reported in the tally, not through the error return, so the
// exit code stays zero for partially failed batches.
func runBatch(ctx context.Context, dataDir string, cfgStore *config.Store, statsStore *stats.Store, target string, format types.Format, outDir string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := cfgStore.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (using defaults)\n", err)
	}

	items, err := batch.Expand(target, cfg)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Printf("No PDF files found for target %q\n", target)
		return nil
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	orch := &batch.Orchestrator{
		Driver: convert.NewDriver(newFetcher(), textBackend(format), markdownBackend(format)),
		Delay:  defaultDelay,
	}

	if hist, histErr := history.Open(dataDir); histErr != nil {
		fmt.Fprintf(os.Stderr, "warning: history unavailable: %v\n", histErr)
	} else {
		defer hist.Close()
		orch.Recorder = hist
	}

	fmt.Printf("Converting %d item(s) to %s in %s\n\n", len(items), format, outDir)
	result := orch.Run(ctx, items, outDir, format, os.Stdout)

	fmt.Println(render.RunSummary(result))

	if _, err := statsStore.Merge(result); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save statistics: %v\n", err)
	}
	return nil
}

func newFetcher() *fetch.Client {
	return fetch.NewClient(types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   defaultTimeout,
			UserAgent: defaultUserAgent,
		},
	})
}

// textBackend returns the pdftotext converter, or a failing stand-in when
// the binary is absent so affected items count as failed rather than
// aborting the run. Formats outside the request get no backend at all.
func textBackend(format types.Format) convert.Converter {
	if format == types.FormatMarkdown {
		return nil
	}
	c, err := convert.NewPdftotextConverter()
	if err != nil {
		return convert.Unavailable(err)
	}
	return c
}

func markdownBackend(format types.Format) convert.Converter {
	if format == types.FormatText {
		return nil
	}
	c, err := convert.NewMarkitdownConverter()
	if err != nil {
		return convert.Unavailable(err)
	}
	return c
}
