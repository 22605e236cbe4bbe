package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmc/arxivtex"
	"github.com/tmc/arxivtex/internal/runlog"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Extract tables and the paragraphs that reference them",
	Long: `Scan every matching TeX file directly inside the input folder.

For each table or table* environment with a \label{tab:...} and a
\caption{...}, collect the paragraphs that cite the label with \ref,
\autoref or \cref. One record per label is written to the output file,
and per-file statistics go to a log file in the log directory.

Examples:
  arxivtex tables --input ./all_tex_files_2018 --output-name sample_table_paragraphs_2018.json
  arxivtex tables --pattern '*.tex'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, map[string]string{
			"tables.input_dir":   "input",
			"tables.output_dir":  "output-dir",
			"tables.output_name": "output-name",
			"tables.log_dir":     "log-dir",
			"tables.pattern":     "pattern",
		})
		if err != nil {
			return err
		}
		tc := cfg.Tables

		if err := os.MkdirAll(tc.OutputDir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		rl, err := runlog.Open(tc.LogPath(), slog.LevelInfo)
		if err != nil {
			return err
		}
		defer rl.Close()

		corpus, stats, err := arxivtex.Aggregate(cmd.Context(), tc.InputDir, &arxivtex.AggregateOptions{
			Pattern:   tc.Pattern,
			Encodings: tc.Encodings,
			Extract: arxivtex.ExtractOptions{
				LabelPrefixes: tc.LabelPrefixes,
				RefCommands:   tc.RefCommands,
			},
			Logger: rl.Logger,
			Progress: func(done, total int) {
				fmt.Fprintf(os.Stderr, "\rProcessing LaTeX files: %d / %d", done, total)
				if done == total {
					fmt.Fprintln(os.Stderr)
				}
			},
		})
		if err != nil {
			return err
		}

		if err := arxivtex.WriteRecordsFile(tc.OutputPath(), corpus.Records()); err != nil {
			return fmt.Errorf("write output: %w", err)
		}

		fmt.Printf("Json file contains %d unique tables.\n", corpus.Len())
		fmt.Printf("There are %d tables that are referenced only once.\n", corpus.ReferencedOnce())
		if stats.Skipped > 0 {
			fmt.Printf("Skipped %d undecodable file(s); see %s\n", stats.Skipped, rl.Path)
		}
		if stats.Collisions > 0 {
			fmt.Printf("%d label(s) were defined in more than one file; see %s\n", stats.Collisions, rl.Path)
		}
		return nil
	},
}

func init() {
	tablesCmd.Flags().String("input", "", "folder of TeX files")
	tablesCmd.Flags().String("output-dir", "", "output directory")
	tablesCmd.Flags().String("output-name", "", "output file name")
	tablesCmd.Flags().String("log-dir", "", "log directory")
	tablesCmd.Flags().String("pattern", "", "file name glob (default *.tex)")
}
