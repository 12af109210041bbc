// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Stats holds lifetime counters accumulated across runs. The timestamps are
// nil until the first run is recorded.
type Stats struct {
	TotalSuccess int        `json:"total_success"`
	TotalFailed  int        `json:"total_failed"`
	TotalSkipped int        `json:"total_skipped"`
	TotalRuns    int        `json:"total_runs"`
	FirstRun     *time.Time `json:"first_run"`
	LastRun      *time.Time `json:"last_run"`
}

// TotalProcessed returns the lifetime item count across all outcomes.
func (s Stats) TotalProcessed() int {
	return s.TotalSuccess + s.TotalFailed + s.TotalSkipped
}

// SuccessRate returns the lifetime success percentage, or 0 when nothing
// has been processed.
func (s Stats) SuccessRate() float64 {
	total := s.TotalProcessed()
	if total == 0 {
		return 0
	}
	return float64(s.TotalSuccess) / float64(total) * 100
}

// RunResult tallies the outcome of a single batch invocation. It is folded
// into Stats exactly once per run and then discarded.
type RunResult struct {
	Success  int
	Failed   int
	Skipped  int
	Duration time.Duration
}

// Total returns the number of items processed in the run.
func (r RunResult) Total() int {
	return r.Success + r.Failed + r.Skipped
}

// HasFailures reports whether any item failed.
func (r RunResult) HasFailures() bool {
	return r.Failed > 0
}

// ItemRecord is one processed input in the run history log.
type ItemRecord struct {
	// When is the time the item finished processing.
	When time.Time

	// Input is the raw user-supplied target string.
	Input string

	// Kind is the resolved input kind ("file", "arxiv", or "unresolved").
	Kind string

	// Outcome is the classified result ("success", "partial", "failed",
	// or "skipped").
	Outcome string
}
