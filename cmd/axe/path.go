// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/axe/internal/config"
	"github.com/pdiddy/axe/internal/render"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Manage input and output directory paths",
	Long: `Path shows or updates the default input and output directories used by
convert. The input path must be an existing directory; the output path is
created if needed.`,
	RunE: runPath,
}

func init() {
	pathCmd.Flags().String("in", "", "set the default input directory")
	pathCmd.Flags().String("out", "", "set the default output directory")
	pathCmd.Flags().Bool("show", false, "show the current path configuration")

	rootCmd.AddCommand(pathCmd)
}

func runPath(cmd *cobra.Command, args []string) error {
	dataDir, err := resolveDataDir()
	if err != nil {
		return err
	}
	store := config.NewStore(dataDir)

	cfg, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (using defaults)\n", err)
	}

	show, _ := cmd.Flags().GetBool("show")
	inPath, _ := cmd.Flags().GetString("in")
	outPath, _ := cmd.Flags().GetString("out")

	if show {
		fmt.Println(render.Paths(cfg))
		return nil
	}

	if inPath == "" && outPath == "" {
		fmt.Println("No options given. Use --in, --out, or --show.")
		return nil
	}

	if inPath != "" {
		abs, err := filepath.Abs(inPath)
		if err != nil {
			return fmt.Errorf("resolving input path: %w", err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("input path does not exist: %s", abs)
		}
		if !info.IsDir() {
			return fmt.Errorf("input path must be a directory: %s", abs)
		}
		cfg.InputPath = abs
		fmt.Printf("Input path set to: %s\n", abs)
	}

	if outPath != "" {
		abs, err := filepath.Abs(outPath)
		if err != nil {
			return fmt.Errorf("resolving output path: %w", err)
		}
		if err := os.MkdirAll(abs, 0o755); err != nil {
			return fmt.Errorf("creating output path: %w", err)
		}
		cfg.OutputPath = abs
		fmt.Printf("Output path set to: %s\n", abs)
	}

	return store.Save(cfg)
}
