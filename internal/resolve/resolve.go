// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve normalizes user-supplied targets into local files or
// canonical arXiv identifiers.
package resolve

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Kind classifies a resolved input.
type Kind int

const (
	KindLocalFile Kind = iota
	KindArxivID
)

func (k Kind) String() string {
	switch k {
	case KindLocalFile:
		return "file"
	case KindArxivID:
		return "arxiv"
	default:
		return "unknown"
	}
}

// Input is the normalized form of a raw target: exactly one variant is
// populated. For KindLocalFile only Path is set; for KindArxivID, ID holds
// the canonical identifier and Version the requested version (0 when the
// input carried none).
type Input struct {
	Kind    Kind
	Path    string
	ID      string
	Version int
}

// String returns the canonical form of the input: the path for local files,
// the identifier (with version suffix when present) for arXiv inputs.
func (in Input) String() string {
	if in.Kind == KindLocalFile {
		return in.Path
	}
	if in.Version > 0 {
		return fmt.Sprintf("%sv%d", in.ID, in.Version)
	}
	return in.ID
}

// ResolutionError reports a target that matched no recognized form.
type ResolutionError struct {
	Raw string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("unrecognized input: %q (not a file, arXiv URL, or arXiv ID)", e.Raw)
}

// urlPattern matches arXiv abstract and PDF URLs:
// "https://arxiv.org/abs/2103.15538", "arxiv.org/pdf/2103.15538v2.pdf".
var urlPattern = regexp.MustCompile(`(?i)arxiv\.org/(?:abs|pdf)/(\d{4}\.\d{4,5})(v\d+)?`)

// idPattern matches bare identifiers: "2103.15538", "arXiv:2103.15538v2".
var idPattern = regexp.MustCompile(`^(?:arXiv:)?(\d{4}\.\d{4,5})(v\d+)?$`)

// Resolve classifies raw and returns the normalized Input. An existing local
// path wins over identifier forms; otherwise arXiv URLs and bare identifiers
// are recognized. Anything else is a ResolutionError.
func Resolve(raw string) (Input, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Input{}, &ResolutionError{Raw: raw}
	}

	if info, err := os.Stat(raw); err == nil && !info.IsDir() {
		return Input{Kind: KindLocalFile, Path: raw}, nil
	}

	if m := urlPattern.FindStringSubmatch(raw); m != nil {
		return Input{Kind: KindArxivID, ID: m[1], Version: parseVersion(m[2])}, nil
	}

	if m := idPattern.FindStringSubmatch(raw); m != nil {
		return Input{Kind: KindArxivID, ID: m[1], Version: parseVersion(m[2])}, nil
	}

	return Input{}, &ResolutionError{Raw: raw}
}

// parseVersion converts a "v2" suffix capture to its number, 0 when absent.
func parseVersion(suffix string) int {
	if suffix == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(suffix, "v"))
	if err != nil {
		return 0
	}
	return n
}
