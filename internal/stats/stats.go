// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stats persists lifetime run counters as JSON in the axe data
// directory and folds per-run results into them.
package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/axe/internal/config"
	"github.com/pdiddy/axe/pkg/types"
)

const fileName = "stats.json"

// now is stubbed in tests.
var now = time.Now

// Store reads and writes the statistics file.
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

// Load returns the persisted statistics. A missing file yields a zero record
// with no error; an unreadable or unparsable file yields a zero record plus
// the underlying error so the caller can warn.
func (s *Store) Load() (types.Stats, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.Stats{}, nil
		}
		return types.Stats{}, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var st types.Stats
	if err := json.Unmarshal(data, &st); err != nil {
		return types.Stats{}, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return st, nil
}

// Save atomically overwrites the statistics file.
func (s *Store) Save(st types.Stats) error {
	return config.WriteJSON(s.path, st)
}

// Merge folds one run result into the persisted statistics: counters add,
// total_runs increments by one, last_run is set to the current time, and
// first_run is set only when absent. It returns the updated record.
func (s *Store) Merge(run types.RunResult) (types.Stats, error) {
	st, loadErr := s.Load()
	if loadErr != nil {
		// Corrupt file: start over from zero rather than lose the run.
		st = types.Stats{}
	}

	st.TotalSuccess += run.Success
	st.TotalFailed += run.Failed
	st.TotalSkipped += run.Skipped
	st.TotalRuns++

	ts := now().UTC()
	if st.FirstRun == nil {
		st.FirstRun = &ts
	}
	st.LastRun = &ts

	if err := s.Save(st); err != nil {
		return st, err
	}
	return st, nil
}

// Reset clears all counters and both timestamps.
func (s *Store) Reset() error {
	return s.Save(types.Stats{})
}
