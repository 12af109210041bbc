// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads arXiv PDFs and their metadata records.
package fetch

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/axe/internal/httputil"
	"github.com/pdiddy/axe/internal/resolve"
	"github.com/pdiddy/axe/pkg/types"
)

// metadataDir is the subdirectory under the output directory for YAML
// metadata sidecars.
const metadataDir = "metadata"

// Base URLs for arXiv endpoints. Declared as vars so tests can substitute
// httptest servers.
var (
	arxivPDFBase = "https://arxiv.org/pdf/"
	arxivAPIBase = "https://export.arxiv.org/api/query"
)

// Error reports a failed paper download (network failure, missing paper,
// or unwritable destination).
type Error struct {
	ID  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.ID, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Client downloads papers from arXiv.
type Client struct {
	http *http.Client
	cfg  types.FetchConfig
}

// NewClient creates a fetch client with the given settings.
func NewClient(cfg types.FetchConfig) *Client {
	return &Client{
		http: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
	}
}

// Fetch downloads the PDF for an arXiv input into destDir and returns the
// Paper record. The download goes to a temp file and is renamed on success,
// so an interrupted fetch leaves no partial PDF behind. Title, authors, and
// abstract are filled from the arXiv API; a metadata failure is only a
// warning, and the record is still written as a YAML sidecar under
// destDir/metadata/.
func (c *Client) Fetch(ctx context.Context, in resolve.Input, destDir string, w io.Writer) (*types.Paper, error) {
	slug := in.String()
	pdfURL := arxivPDFBase + slug
	pdfPath := filepath.Join(destDir, slug+".pdf")

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, &Error{ID: slug, Err: err}
	}

	fmt.Fprintf(w, "downloading: %s\n", slug)
	if err := c.download(ctx, pdfURL, pdfPath, w); err != nil {
		return nil, &Error{ID: slug, Err: err}
	}

	paper := &types.Paper{
		ID:        in.ID,
		Version:   in.Version,
		SourceURL: pdfURL,
		PDFPath:   pdfPath,
	}

	if err := c.fetchMetadata(ctx, in.ID, paper); err != nil {
		fmt.Fprintf(w, "  warning: arXiv metadata fetch failed: %v\n", err)
	}

	if err := writeMetadata(paper, destDir); err != nil {
		fmt.Fprintf(w, "  warning: could not write metadata: %v\n", err)
	}

	return paper, nil
}

// download fetches url to destPath using a temporary file.
func (c *Client) download(ctx context.Context, url, destPath string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.cfg.MaxRetries, w)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	Title     string        `xml:"title"`
	Summary   string        `xml:"summary"`
	Published string        `xml:"published"`
	Authors   []arxivAuthor `xml:"author"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

// fetchMetadata fills paper from the arXiv Atom API.
func (c *Client) fetchMetadata(ctx context.Context, arxivID string, paper *types.Paper) error {
	apiURL := fmt.Sprintf("%s?id_list=%s", arxivAPIBase, arxivID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return fmt.Errorf("parsing arXiv response: %w", err)
	}

	if len(feed.Entries) == 0 {
		return fmt.Errorf("no entries found for arXiv ID %s", arxivID)
	}

	entry := feed.Entries[0]
	paper.Title = strings.TrimSpace(entry.Title)
	paper.Abstract = strings.TrimSpace(entry.Summary)

	for _, a := range entry.Authors {
		paper.Authors = append(paper.Authors, strings.TrimSpace(a.Name))
	}

	if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
		paper.Date = t
	}
	return nil
}

// writeMetadata writes the Paper record to destDir/metadata/<slug>.yaml.
func writeMetadata(paper *types.Paper, destDir string) error {
	dir := filepath.Join(destDir, metadataDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating metadata directory: %w", err)
	}

	data, err := yaml.Marshal(paper)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}

	slug := paper.ID
	if paper.Version > 0 {
		slug = fmt.Sprintf("%sv%d", paper.ID, paper.Version)
	}
	return os.WriteFile(filepath.Join(dir, slug+".yaml"), data, 0o644)
}
