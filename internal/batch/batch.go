// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch expands conversion targets into item sequences and drives
// them through the conversion driver, tallying outcomes.
package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pdiddy/axe/internal/convert"
	"github.com/pdiddy/axe/internal/resolve"
	"github.com/pdiddy/axe/pkg/types"
)

// TargetConfigured selects the configured input path as the batch target.
const TargetConfigured = "path"

// Driver processes one resolved input. Implemented by convert.Driver; faked
// in tests.
type Driver interface {
	Process(ctx context.Context, in resolve.Input, outDir string, format types.Format, w io.Writer) convert.Outcome
}

// Recorder appends processed items to the history log. Append failures are
// reported as warnings, never as batch failures.
type Recorder interface {
	Append(rec types.ItemRecord) error
}

// Orchestrator runs batches sequentially: resolve, process, classify,
// continue. A single item never aborts the batch.
type Orchestrator struct {
	// Driver processes each resolved input.
	Driver Driver

	// Delay is the courtesy pause before each remote download after the
	// first processed item. Local files are never delayed.
	Delay time.Duration

	// Recorder, when non-nil, receives one ItemRecord per processed item.
	Recorder Recorder
}

// Expand turns a target into the ordered raw input sequence. "." expands to
// the current directory, TargetConfigured to cfg.InputPath; an existing
// directory lists its PDF files in sorted order; anything else is a single
// item, validated as resolvable so an entirely unrecognized target errors
// out before the batch starts.
func Expand(target string, cfg types.Config) ([]string, error) {
	switch target {
	case ".":
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving current directory: %w", err)
		}
		return listPDFs(cwd)
	case TargetConfigured:
		return listPDFs(cfg.InputPath)
	}

	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return listPDFs(target)
	}

	if _, err := resolve.Resolve(target); err != nil {
		return nil, err
	}
	return []string{target}, nil
}

// listPDFs returns the PDF files in dir, sorted by name.
func listPDFs(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Run processes items in order and returns the run tally. Resolution errors
// count as skipped, driver failures as failed, success and partial success
// as success. The caller folds the result into persistent statistics exactly
// once per invocation.
func (o *Orchestrator) Run(ctx context.Context, items []string, outDir string, format types.Format, w io.Writer) types.RunResult {
	start := time.Now()
	var result types.RunResult

	for i, item := range items {
		in, err := resolve.Resolve(item)
		if err != nil {
			fmt.Fprintf(w, "skipped: %s (%v)\n", item, err)
			result.Skipped++
			o.record(w, item, "unresolved", "skipped")
			continue
		}

		if in.Kind == resolve.KindArxivID && i > 0 && o.Delay > 0 {
			time.Sleep(o.Delay)
		}

		outcome := o.Driver.Process(ctx, in, outDir, format, w)
		switch outcome {
		case convert.OutcomeSuccess, convert.OutcomePartial:
			result.Success++
		case convert.OutcomeFailed:
			result.Failed++
		case convert.OutcomeSkipped:
			result.Skipped++
		}
		o.record(w, item, in.Kind.String(), outcome.String())
	}

	result.Duration = time.Since(start)
	fmt.Fprintf(w, "\nBatch summary: %d succeeded, %d failed, %d skipped (total: %d)\n",
		result.Success, result.Failed, result.Skipped, result.Total())
	return result
}

func (o *Orchestrator) record(w io.Writer, input, kind, outcome string) {
	if o.Recorder == nil {
		return
	}
	rec := types.ItemRecord{When: time.Now(), Input: input, Kind: kind, Outcome: outcome}
	if err := o.Recorder.Append(rec); err != nil {
		fmt.Fprintf(w, "  warning: could not record history: %v\n", err)
	}
}
