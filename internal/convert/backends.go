// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
)

const (
	binPdftotext = "pdftotext"
	binDocker    = "docker"
	binPodman    = "podman"

	imageMarkitdown = "markitdown:latest"
)

// commandRunner abstracts external command execution for testing.
type commandRunner interface {
	lookPath(file string) (string, error)
	runSilent(name string, args ...string) error
	runPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error
}

// execRunner is the production runner backed by os/exec.
type execRunner struct{}

func (execRunner) lookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (execRunner) runSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (execRunner) runPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	return cmd.Run()
}

var defaultRunner = execRunner{}

// PdftotextConverter produces plain text via the pdftotext binary.
type PdftotextConverter struct {
	runner commandRunner
}

// NewPdftotextConverter verifies that pdftotext is on PATH and returns the
// text backend.
func NewPdftotextConverter() (*PdftotextConverter, error) {
	return newPdftotextConverter(defaultRunner)
}

func newPdftotextConverter(r commandRunner) (*PdftotextConverter, error) {
	if _, err := r.lookPath(binPdftotext); err != nil {
		return nil, fmt.Errorf("%s not found on PATH: %w", binPdftotext, err)
	}
	return &PdftotextConverter{runner: r}, nil
}

// Convert runs "pdftotext <pdf> -" and returns the extracted text.
func (p *PdftotextConverter) Convert(pdfPath string) (string, error) {
	var out bytes.Buffer
	if err := p.runner.runPiped(binPdftotext, []string{pdfPath, "-"}, nil, &out); err != nil {
		return "", fmt.Errorf("converting %s with %s: %w", pdfPath, binPdftotext, err)
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("%s produced empty output for %s", binPdftotext, pdfPath)
	}
	return out.String(), nil
}

// MarkitdownConverter produces Markdown by piping the PDF through the
// markitdown container image, run under docker or podman.
type MarkitdownConverter struct {
	runner commandRunner
	bin    string
}

// NewMarkitdownConverter detects a container runtime (docker first, then
// podman), verifies the markitdown image exists locally, and returns the
// Markdown backend.
func NewMarkitdownConverter() (*MarkitdownConverter, error) {
	return newMarkitdownConverter(defaultRunner)
}

func newMarkitdownConverter(r commandRunner) (*MarkitdownConverter, error) {
	bin, imageCheck, err := detectContainerRuntime(r)
	if err != nil {
		return nil, err
	}
	if err := r.runSilent(bin, append(imageCheck, imageMarkitdown)...); err != nil {
		return nil, fmt.Errorf("image %s not found in %s: %w", imageMarkitdown, bin, err)
	}
	return &MarkitdownConverter{runner: r, bin: bin}, nil
}

// detectContainerRuntime returns the available container binary and its
// image-existence subcommand. Docker and podman differ only in the check.
func detectContainerRuntime(r commandRunner) (bin string, imageCheck []string, err error) {
	if _, lerr := r.lookPath(binDocker); lerr == nil && r.runSilent(binDocker, "info") == nil {
		return binDocker, []string{"image", "inspect"}, nil
	}
	if _, lerr := r.lookPath(binPodman); lerr == nil && r.runSilent(binPodman, "info") == nil {
		return binPodman, []string{"image", "exists"}, nil
	}
	return "", nil, fmt.Errorf(
		"no container runtime available: neither %s nor %s found or operational",
		binDocker, binPodman,
	)
}

// Convert pipes the PDF through the markitdown container and returns the
// resulting Markdown.
func (m *MarkitdownConverter) Convert(pdfPath string) (string, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	var out bytes.Buffer
	args := []string{"run", "--rm", "-i", imageMarkitdown}
	if err := m.runner.runPiped(m.bin, args, f, &out); err != nil {
		return "", fmt.Errorf("converting %s with markitdown: %w", pdfPath, err)
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("markitdown produced empty output for %s", pdfPath)
	}
	return out.String(), nil
}
