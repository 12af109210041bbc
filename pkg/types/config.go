// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared records of the axe CLI: user configuration,
// statistics, per-run tallies, and paper metadata.
package types

import (
	"fmt"
	"strings"
	"time"
)

// ConfigVersion is written into every saved configuration file.
const ConfigVersion = "1.0.0"

// Format selects the conversion output format.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatBoth     Format = "both"
)

// ParseFormat validates a user-supplied format string (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText:
		return FormatText, nil
	case FormatMarkdown:
		return FormatMarkdown, nil
	case FormatBoth:
		return FormatBoth, nil
	}
	return "", fmt.Errorf("invalid format %q: must be text, markdown, or both", s)
}

// Extensions returns the output file extensions the format produces,
// in conversion order.
func (f Format) Extensions() []string {
	switch f {
	case FormatText:
		return []string{"txt"}
	case FormatMarkdown:
		return []string{"md"}
	case FormatBoth:
		return []string{"txt", "md"}
	}
	return nil
}

// Config holds the persisted user settings.
type Config struct {
	// InputPath is the default directory scanned by "axe convert path".
	InputPath string `json:"input_path"`

	// OutputPath is the default directory for converted output.
	OutputPath string `json:"output_path"`

	// DefaultFormat is used when --format is not given.
	DefaultFormat Format `json:"default_format"`

	// Version is the config file schema version.
	Version string `json:"version"`
}

// HTTPConfig holds shared HTTP settings for network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "axe/1.0").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for downloading papers.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxRetries caps retry attempts on HTTP 429 responses.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}
