// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns one resolved input into text and/or Markdown output
// files, delegating the PDF extraction itself to pluggable backends.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/axe/internal/resolve"
	"github.com/pdiddy/axe/pkg/types"
)

// Converter transforms a PDF file into one output format. Different backends
// (pdftotext, markitdown) implement this interface.
type Converter interface {
	// Convert reads the PDF at pdfPath and returns the converted content.
	Convert(pdfPath string) (string, error)
}

// Outcome classifies the processing result for one input.
type Outcome int

const (
	// OutcomeSuccess: every requested format was written.
	OutcomeSuccess Outcome = iota
	// OutcomePartial: at least one format was written, at least one failed.
	OutcomePartial
	// OutcomeFailed: the fetch failed or every requested format failed.
	OutcomeFailed
	// OutcomeSkipped: the local file was unreadable.
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomePartial:
		return "partial"
	case OutcomeFailed:
		return "failed"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Unavailable returns a Converter whose conversions always fail with err.
// Used when a backend cannot be constructed (missing binary, no container
// runtime), so affected items count as failures instead of aborting the run.
func Unavailable(err error) Converter {
	return unavailableConverter{err: err}
}

type unavailableConverter struct {
	err error
}

func (u unavailableConverter) Convert(string) (string, error) {
	return "", u.err
}

// Fetcher downloads a remote input and returns its paper record. Implemented
// by fetch.Client; faked in tests.
type Fetcher interface {
	Fetch(ctx context.Context, in resolve.Input, destDir string, w io.Writer) (*types.Paper, error)
}

// Driver processes resolved inputs: fetching or locating the PDF, running
// each requested format through its backend, and writing the outputs.
type Driver struct {
	fetcher  Fetcher
	backends map[string]Converter // keyed by output extension
}

// NewDriver creates a driver with the given fetcher and per-extension
// backends ("txt" and "md").
func NewDriver(fetcher Fetcher, text, markdown Converter) *Driver {
	return &Driver{
		fetcher: fetcher,
		backends: map[string]Converter{
			"txt": text,
			"md":  markdown,
		},
	}
}

// Process handles one input: remote inputs are downloaded into outDir, local
// files used in place. Each requested format converts independently; one
// format failing does not abort the others. Outputs land at
// outDir/<base>.<ext>, overwriting pre-existing files.
func (d *Driver) Process(ctx context.Context, in resolve.Input, outDir string, format types.Format, w io.Writer) Outcome {
	var pdfPath string

	switch in.Kind {
	case resolve.KindLocalFile:
		f, err := os.Open(in.Path)
		if err != nil {
			fmt.Fprintf(w, "skipped: %s (unreadable: %v)\n", in.Path, err)
			return OutcomeSkipped
		}
		f.Close()
		pdfPath = in.Path
	case resolve.KindArxivID:
		paper, err := d.fetcher.Fetch(ctx, in, outDir, w)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", in.String(), err)
			return OutcomeFailed
		}
		pdfPath = paper.PDFPath
	default:
		fmt.Fprintf(w, "skipped: %s (unknown input kind)\n", in.String())
		return OutcomeSkipped
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", in.String(), err)
		return OutcomeFailed
	}

	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))

	var written, failed int
	for _, ext := range format.Extensions() {
		backend, ok := d.backends[ext]
		if !ok || backend == nil {
			fmt.Fprintf(w, "failed:  %s.%s (no backend for format)\n", base, ext)
			failed++
			continue
		}

		content, err := backend.Convert(pdfPath)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s.%s (%v)\n", base, ext, err)
			failed++
			continue
		}

		outPath := filepath.Join(outDir, base+"."+ext)
		if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
			fmt.Fprintf(w, "failed:  %s.%s (%v)\n", base, ext, err)
			failed++
			continue
		}

		fmt.Fprintf(w, "created: %s\n", filepath.Base(outPath))
		written++
	}

	switch {
	case written == 0:
		return OutcomeFailed
	case failed > 0:
		return OutcomePartial
	default:
		return OutcomeSuccess
	}
}
