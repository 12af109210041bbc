// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config persists user settings as JSON in the axe data directory.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/axe/pkg/types"
)

const fileName = "config.json"

// DefaultDataDir returns ~/.axe, the per-user location for config,
// statistics, and history files.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".axe"), nil
}

// Default returns the configuration used on first run: current directory as
// input, ./axe_output as output, Markdown format.
func Default() types.Config {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return types.Config{
		InputPath:     cwd,
		OutputPath:    filepath.Join(cwd, "axe_output"),
		DefaultFormat: types.FormatMarkdown,
		Version:       types.ConfigVersion,
	}
}

// Store reads and writes the configuration file.
type Store struct {
	path string
}

// NewStore creates a store rooted at dataDir.
func NewStore(dataDir string) *Store {
	return &Store{path: filepath.Join(dataDir, fileName)}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted configuration. A missing file yields defaults
// with no error; an unreadable or unparsable file yields defaults plus the
// underlying error so the caller can warn. Load never fails the invocation.
func (s *Store) Load() (types.Config, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("reading %s: %w", s.path, err)
	}

	var cfg types.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing %s: %w", s.path, err)
	}

	// Fill gaps left by older or hand-edited files.
	def := Default()
	if cfg.InputPath == "" {
		cfg.InputPath = def.InputPath
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = def.OutputPath
	}
	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = def.DefaultFormat
	}
	if cfg.Version == "" {
		cfg.Version = def.Version
	}
	return cfg, nil
}

// Save atomically overwrites the configuration file: the record is written
// to a temp file in the same directory and renamed into place.
func (s *Store) Save(cfg types.Config) error {
	return WriteJSON(s.path, cfg)
}

// WriteJSON marshals v with indentation and atomically replaces path via a
// temp file in the same directory. The statistics store shares it.
func WriteJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(append(data, '\n'))
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", filepath.Base(path), writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
