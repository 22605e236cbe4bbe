package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tmc/arxivtex"
)

var papersCmd = &cobra.Command{
	Use:   "papers",
	Short: "Filter the metadata snapshot by category and submission year",
	Long: `Filter a JSON-lines arXiv metadata snapshot.

A record is kept when at least one of its categories is whitelisted and
its first version was created in the target year. Malformed lines are
skipped. The output is a pretty-printed JSON array.

Examples:
  arxivtex papers --year 2017
  arxivtex papers --input snapshot.json --output cs_2018.json --year 2018
  arxivtex papers --categories cs.CL,cs.LG`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, map[string]string{
			"papers.input":      "input",
			"papers.output":     "output",
			"papers.year":       "year",
			"papers.categories": "categories",
		})
		if err != nil {
			return err
		}
		pc := cfg.Papers

		in, err := os.Open(pc.Input)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer in.Close()

		if dir := filepath.Dir(pc.Output); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}
		out, err := os.Create(pc.Output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer out.Close()

		stats, err := arxivtex.FilterPapers(cmd.Context(), in, out, &arxivtex.FilterOptions{
			Year:       pc.Year,
			Categories: pc.Categories,
			Logger:     consoleLogger(),
		})
		if err != nil {
			return fmt.Errorf("filter: %w", err)
		}
		if err := out.Close(); err != nil {
			return err
		}

		fmt.Printf("Papers in %d saved to %s\n", pc.Year, pc.Output)
		fmt.Printf("Total number of papers in %d: %d\n", pc.Year, stats.Kept)
		if stats.Malformed > 0 {
			fmt.Printf("Skipped %d malformed line(s)\n", stats.Malformed)
		}
		return nil
	},
}

func init() {
	papersCmd.Flags().String("input", "", "JSON-lines metadata snapshot")
	papersCmd.Flags().String("output", "", "output JSON array")
	papersCmd.Flags().Int("year", 0, "first-version submission year to keep")
	papersCmd.Flags().StringSlice("categories", nil, "category whitelist (default: all cs.*)")
}
