// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package menu implements the interactive mode as a finite state machine
// over named menu states. Each state renders its prompt, reads one choice,
// and returns the next state; the loop ends at stateExit.
package menu

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/axe/internal/config"
	"github.com/pdiddy/axe/internal/render"
	"github.com/pdiddy/axe/internal/stats"
	"github.com/pdiddy/axe/pkg/types"
)

type state int

const (
	stateMain state = iota
	stateConvert
	statePaths
	stateStats
	stateHelp
	stateExit
)

// handler renders one menu state and returns the next.
type handler func(*Menu) state

// transitions maps each state to its handler. stateExit has none; reaching
// it stops the loop.
var transitions = map[state]handler{
	stateMain:    (*Menu).mainMenu,
	stateConvert: (*Menu).convertMenu,
	statePaths:   (*Menu).pathsMenu,
	stateStats:   (*Menu).statsMenu,
	stateHelp:    (*Menu).helpMenu,
}

// ConvertFunc runs one conversion batch. The menu stays decoupled from HTTP
// and container wiring by calling through this.
type ConvertFunc func(target string, format types.Format, outDir string) error

// Menu drives the interactive session.
type Menu struct {
	cfgStore   *config.Store
	statsStore *stats.Store
	runConvert ConvertFunc

	in  *bufio.Reader
	out io.Writer

	cfg types.Config
	eof bool
}

// New creates a menu reading choices from in and writing prompts to out.
func New(cfgStore *config.Store, statsStore *stats.Store, runConvert ConvertFunc, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		cfgStore:   cfgStore,
		statsStore: statsStore,
		runConvert: runConvert,
		in:         bufio.NewReader(in),
		out:        out,
	}
}

// Run executes the state machine until exit. Persistence warnings are
// printed but never abort the session.
func (m *Menu) Run() error {
	cfg, err := m.cfgStore.Load()
	if err != nil {
		fmt.Fprintf(m.out, "warning: %v (using defaults)\n", err)
	}
	m.cfg = cfg

	fmt.Fprintln(m.out, "AXE - arXiv extraction tool (interactive mode)")

	for s := stateMain; s != stateExit && !m.eof; {
		h, ok := transitions[s]
		if !ok {
			break
		}
		s = h(m)
	}

	fmt.Fprintln(m.out, "Goodbye.")
	return nil
}

func (m *Menu) mainMenu() state {
	fmt.Fprint(m.out, `
Main menu
  1. Convert papers
  2. Configure paths
  3. View statistics
  4. Help
  5. Exit
`)
	switch m.prompt("Choose an option", "1") {
	case "1":
		return stateConvert
	case "2":
		return statePaths
	case "3":
		return stateStats
	case "4":
		return stateHelp
	case "5", "":
		return stateExit
	default:
		fmt.Fprintln(m.out, "Please choose 1-5.")
		return stateMain
	}
}

func (m *Menu) convertMenu() state {
	fmt.Fprint(m.out, `
Convert papers
  1. Process current directory
  2. Process configured input path
  3. Process a specific file or directory
  4. Process an arXiv URL or ID
  5. Back
`)
	var target string
	switch m.prompt("Choose operation", "1") {
	case "1":
		target = "."
	case "2":
		target = "path"
	case "3":
		target = m.prompt("Enter file or directory path", "")
	case "4":
		target = m.prompt("Enter arXiv URL or ID", "")
	default:
		return stateMain
	}
	if target == "" {
		fmt.Fprintln(m.out, "No target given.")
		return stateMain
	}

	format, err := types.ParseFormat(m.prompt("Output format (text/markdown/both)", string(m.cfg.DefaultFormat)))
	if err != nil {
		fmt.Fprintln(m.out, err)
		return stateMain
	}

	outDir := m.cfg.OutputPath
	if !m.confirm(fmt.Sprintf("Use default output path? (%s)", outDir), true) {
		outDir = m.prompt("Enter output directory path", outDir)
	}

	if err := m.runConvert(target, format, outDir); err != nil {
		fmt.Fprintf(m.out, "error: %v\n", err)
	}
	return stateMain
}

func (m *Menu) pathsMenu() state {
	fmt.Fprint(m.out, `
Path configuration
  1. Set input path
  2. Set output path
  3. View current paths
  4. Reset to defaults
  5. Back
`)
	switch m.prompt("Choose operation", "3") {
	case "1":
		path := m.prompt("Enter input directory path", m.cfg.InputPath)
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			fmt.Fprintf(m.out, "error: not an existing directory: %s\n", path)
			return statePaths
		}
		m.cfg.InputPath = path
		m.saveConfig()
	case "2":
		path := m.prompt("Enter output directory path", m.cfg.OutputPath)
		if err := os.MkdirAll(path, 0o755); err != nil {
			fmt.Fprintf(m.out, "error: %v\n", err)
			return statePaths
		}
		m.cfg.OutputPath = path
		m.saveConfig()
	case "3":
		fmt.Fprintln(m.out, render.Paths(m.cfg))
	case "4":
		if m.confirm("Reset paths to defaults?", false) {
			def := config.Default()
			m.cfg.InputPath = def.InputPath
			m.cfg.OutputPath = def.OutputPath
			m.saveConfig()
		}
	default:
		return stateMain
	}
	return statePaths
}

func (m *Menu) statsMenu() state {
	fmt.Fprint(m.out, `
Statistics
  1. View statistics
  2. Reset statistics
  3. Back
`)
	switch m.prompt("Choose operation", "1") {
	case "1":
		st, err := m.statsStore.Load()
		if err != nil {
			fmt.Fprintf(m.out, "warning: %v\n", err)
		}
		fmt.Fprintln(m.out, render.Lifetime(st))
	case "2":
		if m.confirm("Are you sure you want to reset all statistics?", false) {
			if err := m.statsStore.Reset(); err != nil {
				fmt.Fprintf(m.out, "error: %v\n", err)
			} else {
				fmt.Fprintln(m.out, "Statistics reset.")
			}
		}
	default:
		return stateMain
	}
	return stateStats
}

func (m *Menu) helpMenu() state {
	fmt.Fprint(m.out, `
AXE converts arXiv papers to text and Markdown.

Direct commands:
  axe convert .               process the current directory
  axe convert path            process the configured input path
  axe convert <file|dir|id>   process a specific target
  axe path --in <dir>         set the input directory
  axe stats --show            show statistics

Supported inputs: local PDF files, arXiv URLs (abs or pdf), arXiv IDs
(e.g. 2103.15538 or 2103.15538v2).
`)
	m.prompt("Press Enter to continue", "")
	return stateMain
}

// prompt prints the label and reads one trimmed line; an empty line or EOF
// yields fallback.
func (m *Menu) prompt(label, fallback string) string {
	if fallback != "" {
		fmt.Fprintf(m.out, "%s [%s]: ", label, fallback)
	} else {
		fmt.Fprintf(m.out, "%s: ", label)
	}
	line, err := m.in.ReadString('\n')
	if err != nil && line == "" {
		// Closed input ends the session instead of looping forever.
		m.eof = true
		return fallback
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback
	}
	return line
}

func (m *Menu) confirm(label string, fallback bool) bool {
	def := "y/N"
	if fallback {
		def = "Y/n"
	}
	answer := strings.ToLower(m.prompt(fmt.Sprintf("%s (%s)", label, def), ""))
	if answer == "" {
		return fallback
	}
	return answer == "y" || answer == "yes"
}

func (m *Menu) saveConfig() {
	if err := m.cfgStore.Save(m.cfg); err != nil {
		fmt.Fprintf(m.out, "warning: could not save configuration: %v\n", err)
		return
	}
	fmt.Fprintf(m.out, "Saved: input=%s output=%s\n",
		m.cfg.InputPath, filepath.Clean(m.cfg.OutputPath))
}
