package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmc/arxivtex/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "arxivtex",
	Short: "Mine tables and their referencing paragraphs from an arXiv corpus",
	Long: `arxivtex is a set of offline batch tools over an arXiv corpus.

The pipeline includes:
  - papers:  filter the metadata snapshot by category and submission year
  - tables:  extract labeled tables and the paragraphs that reference them
  - refonce: keep tables referenced by exactly one paragraph
  - index:   load table records into SQLite and search them`,
	SilenceUsage: true,
	Version:      version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./arxivtex.yaml or ~/.arxivtex/arxivtex.yaml)",
	)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose console logging")

	rootCmd.AddCommand(papersCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(refonceCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the configuration with the given flags of cmd bound to
// config keys.
func loadConfig(cmd *cobra.Command, bindings map[string]string) (*config.Config, error) {
	m, err := config.NewManager(cfgFile)
	if err != nil {
		return nil, err
	}
	for key, name := range bindings {
		if err := m.BindFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return nil, fmt.Errorf("flag --%s: %w", name, err)
		}
	}
	return m.Load()
}

func consoleLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}
