// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the axe CLI: it downloads arXiv papers,
// converts them to text and Markdown, and tracks conversion statistics.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/axe/internal/config"
	"github.com/pdiddy/axe/internal/menu"
	"github.com/pdiddy/axe/internal/stats"
	"github.com/pdiddy/axe/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command. With no subcommand it launches the
// interactive menu.
var rootCmd = &cobra.Command{
	Use:   "axe",
	Short: "Download and convert arXiv papers",
	Long: `axe downloads arXiv papers and converts them to text and Markdown.

Run without arguments for the interactive menu, or use the convert, path,
and stats subcommands directly. Conversion is delegated to pdftotext (text)
and the markitdown container image (Markdown).`,
	RunE: runInteractive,
}

func runInteractive(cmd *cobra.Command, args []string) error {
	fd := os.Stdin.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return fmt.Errorf("interactive mode needs a terminal; run \"axe help\" for direct commands")
	}

	dataDir, err := resolveDataDir()
	if err != nil {
		return err
	}
	cfgStore := config.NewStore(dataDir)
	statsStore := stats.NewStore(dataDir)

	m := menu.New(cfgStore, statsStore,
		func(target string, format types.Format, outDir string) error {
			return runBatch(cmd.Context(), dataDir, cfgStore, statsStore, target, format, outDir)
		},
		os.Stdin, os.Stdout)
	return m.Run()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./axe.yaml or ~/.config/axe/axe.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("axe")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "axe"))
		}
	}

	viper.SetEnvPrefix("AXE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// resolveDataDir returns the directory holding config.json, stats.json, and
// history.db. The viper key "data_dir" (flag file or AXE_DATA_DIR) overrides
// the ~/.axe default.
func resolveDataDir() (string, error) {
	if dir := viper.GetString("data_dir"); dir != "" {
		return dir, nil
	}
	return config.DefaultDataDir()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
