// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/axe/internal/resolve"
	"github.com/pdiddy/axe/pkg/types"
)

// fakeConverter implements Converter for testing. It returns canned content
// or an error, depending on configuration.
type fakeConverter struct {
	output string
	err    error
}

func (f *fakeConverter) Convert(pdfPath string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

// fakeFetcher implements Fetcher without network access.
type fakeFetcher struct {
	err error
}

func (f *fakeFetcher) Fetch(_ context.Context, in resolve.Input, destDir string, _ io.Writer) (*types.Paper, error) {
	if f.err != nil {
		return nil, f.err
	}
	pdfPath := filepath.Join(destDir, in.String()+".pdf")
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(pdfPath, []byte("fake pdf"), 0o644); err != nil {
		return nil, err
	}
	return &types.Paper{ID: in.ID, Version: in.Version, PDFPath: pdfPath}, nil
}

func localPDF(t *testing.T) resolve.Input {
	t.Helper()
	path := filepath.Join(t.TempDir(), "2103.15538.pdf")
	if err := os.WriteFile(path, []byte("fake pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	return resolve.Input{Kind: resolve.KindLocalFile, Path: path}
}

func TestProcessLocalFile(t *testing.T) {
	tests := []struct {
		name        string
		format      types.Format
		text        *fakeConverter
		markdown    *fakeConverter
		wantOutcome Outcome
		wantFiles   []string
		absentFiles []string
	}{
		{
			name:        "markdown success",
			format:      types.FormatMarkdown,
			text:        &fakeConverter{output: "unused"},
			markdown:    &fakeConverter{output: "# Title"},
			wantOutcome: OutcomeSuccess,
			wantFiles:   []string{"2103.15538.md"},
			absentFiles: []string{"2103.15538.txt"},
		},
		{
			name:        "text success",
			format:      types.FormatText,
			text:        &fakeConverter{output: "plain text"},
			markdown:    &fakeConverter{err: errors.New("unused")},
			wantOutcome: OutcomeSuccess,
			wantFiles:   []string{"2103.15538.txt"},
		},
		{
			name:        "both success",
			format:      types.FormatBoth,
			text:        &fakeConverter{output: "plain text"},
			markdown:    &fakeConverter{output: "# Title"},
			wantOutcome: OutcomeSuccess,
			wantFiles:   []string{"2103.15538.txt", "2103.15538.md"},
		},
		{
			// Markdown fails, text succeeds: partial, .txt present, no .md.
			name:        "both with markdown failure",
			format:      types.FormatBoth,
			text:        &fakeConverter{output: "plain text"},
			markdown:    &fakeConverter{err: errors.New("unsupported structure")},
			wantOutcome: OutcomePartial,
			wantFiles:   []string{"2103.15538.txt"},
			absentFiles: []string{"2103.15538.md"},
		},
		{
			name:        "all formats fail",
			format:      types.FormatBoth,
			text:        &fakeConverter{err: errors.New("malformed PDF")},
			markdown:    &fakeConverter{err: errors.New("malformed PDF")},
			wantOutcome: OutcomeFailed,
			absentFiles: []string{"2103.15538.txt", "2103.15538.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outDir := t.TempDir()
			d := NewDriver(&fakeFetcher{}, tt.text, tt.markdown)

			var log bytes.Buffer
			got := d.Process(context.Background(), localPDF(t), outDir, tt.format, &log)

			if got != tt.wantOutcome {
				t.Errorf("outcome = %v, want %v", got, tt.wantOutcome)
			}
			for _, name := range tt.wantFiles {
				if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
					t.Errorf("expected output %s: %v", name, err)
				}
			}
			for _, name := range tt.absentFiles {
				if _, err := os.Stat(filepath.Join(outDir, name)); err == nil {
					t.Errorf("unexpected output %s", name)
				}
			}
		})
	}
}

func TestProcessUnreadableLocalFileSkips(t *testing.T) {
	in := resolve.Input{Kind: resolve.KindLocalFile, Path: filepath.Join(t.TempDir(), "missing.pdf")}
	d := NewDriver(&fakeFetcher{}, &fakeConverter{output: "x"}, &fakeConverter{output: "x"})

	var log bytes.Buffer
	got := d.Process(context.Background(), in, t.TempDir(), types.FormatBoth, &log)

	if got != OutcomeSkipped {
		t.Errorf("outcome = %v, want OutcomeSkipped", got)
	}
	if !strings.Contains(log.String(), "skipped:") {
		t.Errorf("log = %q", log.String())
	}
}

func TestProcessFetchFailure(t *testing.T) {
	in := resolve.Input{Kind: resolve.KindArxivID, ID: "2103.15538"}
	d := NewDriver(&fakeFetcher{err: errors.New("HTTP 404")}, &fakeConverter{output: "x"}, &fakeConverter{output: "x"})

	var log bytes.Buffer
	got := d.Process(context.Background(), in, t.TempDir(), types.FormatMarkdown, &log)

	if got != OutcomeFailed {
		t.Errorf("outcome = %v, want OutcomeFailed", got)
	}
	if !strings.Contains(log.String(), "failed:") {
		t.Errorf("log = %q", log.String())
	}
}

func TestProcessRemoteInput(t *testing.T) {
	outDir := t.TempDir()
	in := resolve.Input{Kind: resolve.KindArxivID, ID: "2103.15538", Version: 2}
	d := NewDriver(&fakeFetcher{}, &fakeConverter{output: "text"}, &fakeConverter{output: "# md"})

	got := d.Process(context.Background(), in, outDir, types.FormatBoth, io.Discard)
	if got != OutcomeSuccess {
		t.Fatalf("outcome = %v, want OutcomeSuccess", got)
	}

	// Output basename derives from the downloaded PDF name.
	for _, name := range []string{"2103.15538v2.pdf", "2103.15538v2.txt", "2103.15538v2.md"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
}

func TestProcessOverwritesExistingOutput(t *testing.T) {
	outDir := t.TempDir()
	stale := filepath.Join(outDir, "2103.15538.md")
	if err := os.WriteFile(stale, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	d := NewDriver(&fakeFetcher{}, nil, &fakeConverter{output: "# fresh"})
	got := d.Process(context.Background(), localPDF(t), outDir, types.FormatMarkdown, io.Discard)
	if got != OutcomeSuccess {
		t.Fatalf("outcome = %v", got)
	}

	data, err := os.ReadFile(stale)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "# fresh" {
		t.Errorf("content = %q, want overwritten output", data)
	}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeSuccess, "success"},
		{OutcomePartial, "partial"},
		{OutcomeFailed, "failed"},
		{OutcomeSkipped, "skipped"},
	}
	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.outcome, got, tt.want)
		}
	}
}
