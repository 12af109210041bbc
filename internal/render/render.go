// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render formats run results, statistics, and configuration as
// terminal tables.
package render

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/pdiddy/axe/pkg/types"
)

// timestampLayout is used for first/last run display.
const timestampLayout = "2006-01-02 15:04"

// renderTable builds a rounded two-plus column table with left-aligned
// headers and the given per-column alignment.
func renderTable(title string, headers []string, rows [][]string, rightAligned ...int) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if title != "" {
		tw.SetTitle(title)
	}

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		tw.AppendRow(r)
	}

	right := make(map[int]bool, len(rightAligned))
	for _, col := range rightAligned {
		right[col] = true
	}
	configs := make([]table.ColumnConfig, 0, len(headers))
	for i := range headers {
		align := text.AlignLeft
		if right[i] {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// RunSummary renders the tally of a finished batch.
func RunSummary(r types.RunResult) string {
	rows := [][]string{
		{"Successful", fmt.Sprintf("%d", r.Success)},
		{"Failed", fmt.Sprintf("%d", r.Failed)},
		{"Skipped", fmt.Sprintf("%d", r.Skipped)},
		{"Total Processed", fmt.Sprintf("%d", r.Total())},
		{"Duration", fmt.Sprintf("%.2fs", r.Duration.Seconds())},
	}
	return renderTable("Run Statistics", []string{"Metric", "Count"}, rows, 1)
}

// Lifetime renders the persistent statistics, with "Never" for absent
// timestamps.
func Lifetime(s types.Stats) string {
	rows := [][]string{
		{"Total Runs", fmt.Sprintf("%d", s.TotalRuns)},
		{"Total Successful", fmt.Sprintf("%d", s.TotalSuccess)},
		{"Total Failed", fmt.Sprintf("%d", s.TotalFailed)},
		{"Total Skipped", fmt.Sprintf("%d", s.TotalSkipped)},
		{"Total Processed", fmt.Sprintf("%d", s.TotalProcessed())},
		{"Success Rate", fmt.Sprintf("%.1f%%", s.SuccessRate())},
		{"First Run", formatTimestamp(s.FirstRun)},
		{"Last Run", formatTimestamp(s.LastRun)},
	}
	return renderTable("Statistics", []string{"Metric", "Value"}, rows, 1)
}

// Paths renders the configured directories and default format.
func Paths(cfg types.Config) string {
	rows := [][]string{
		{"Input Path", cfg.InputPath},
		{"Output Path", cfg.OutputPath},
		{"Default Format", string(cfg.DefaultFormat)},
	}
	return renderTable("Path Configuration", []string{"Setting", "Value"}, rows)
}

// History renders recent per-item outcomes, newest first.
func History(records []types.ItemRecord) string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.When.Local().Format(timestampLayout),
			rec.Input,
			rec.Kind,
			rec.Outcome,
		})
	}
	return renderTable("Recent Items", []string{"Time", "Input", "Kind", "Outcome"}, rows)
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return "Never"
	}
	return t.Local().Format(timestampLayout)
}
