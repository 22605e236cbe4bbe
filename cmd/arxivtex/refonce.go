package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmc/arxivtex"
)

var refonceCmd = &cobra.Command{
	Use:   "refonce",
	Short: "Keep tables referenced by exactly one paragraph",
	Long: `Filter each year's table records to those with exactly one
referencing paragraph, writing one file per year and a combined file in
ascending year order. Years without an input file are skipped.

Examples:
  arxivtex refonce
  arxivtex refonce --from 2019 --to 2021`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, map[string]string{
			"refonce.input_template": "input",
			"refonce.output_dir":     "output-dir",
			"refonce.from_year":      "from",
			"refonce.to_year":        "to",
		})
		if err != nil {
			return err
		}
		rc := cfg.RefOnce

		res, err := arxivtex.FilterYears(cmd.Context(), &arxivtex.YearsOptions{
			FromYear:       rc.FromYear,
			ToYear:         rc.ToYear,
			InputTemplate:  rc.InputTemplate,
			OutputTemplate: rc.OutputTemplatePath(),
			CombinedPath:   rc.CombinedPath(),
			Logger:         consoleLogger(),
		})
		if res != nil {
			for _, y := range res.Years {
				if y.Missing {
					fmt.Printf(" Warning: %s not found. Skipping.\n", y.Input)
					continue
				}
				fmt.Printf(" Year %d: %d entries saved to %s\n", y.Year, y.Kept, y.Output)
			}
		}
		if err != nil {
			return err
		}

		fmt.Printf("\nAll done! Combined %d entries saved to %s\n", res.Combined, rc.CombinedPath())
		return nil
	},
}

func init() {
	refonceCmd.Flags().String("input", "", "per-year input template with {year}")
	refonceCmd.Flags().String("output-dir", "", "output directory")
	refonceCmd.Flags().Int("from", 0, "first year")
	refonceCmd.Flags().Int("to", 0, "last year")
}
