package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tmc/arxivtex"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Load table records into SQLite and search them",
}

var indexLoadCmd = &cobra.Command{
	Use:   "load <year> <records.json> [<year> <records.json>...]",
	Short: "Load table record files into the index",
	Example: `  arxivtex index load 2018 sample_table_paragraphs_output/sample_table_paragraphs_2018.json
  arxivtex index load --refonce`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, map[string]string{"index.path": "db"})
		if err != nil {
			return err
		}

		type input struct {
			year int
			path string
		}
		var inputs []input
		if fromRefOnce, _ := cmd.Flags().GetBool("refonce"); fromRefOnce {
			rc := cfg.RefOnce
			for y := rc.FromYear; y <= rc.ToYear; y++ {
				inputs = append(inputs, input{y, arxivtex.ExpandYear(rc.OutputTemplatePath(), y)})
			}
		} else {
			if len(args) == 0 || len(args)%2 != 0 {
				return fmt.Errorf("expected <year> <file> pairs")
			}
			for i := 0; i < len(args); i += 2 {
				y, err := strconv.Atoi(args[i])
				if err != nil {
					return fmt.Errorf("invalid year %q", args[i])
				}
				inputs = append(inputs, input{y, args[i+1]})
			}
		}

		idx, err := arxivtex.OpenIndex(cfg.Index.Path)
		if err != nil {
			return fmt.Errorf("open index: %w", err)
		}
		defer idx.Close()

		for _, in := range inputs {
			records, err := arxivtex.ReadRecordsFile(in.path)
			if err != nil {
				fmt.Printf(" Warning: %v. Skipping.\n", err)
				continue
			}
			if err := idx.LoadRecords(cmd.Context(), in.year, records); err != nil {
				return fmt.Errorf("load %s: %w", in.path, err)
			}
			fmt.Printf(" Year %d: %d tables loaded from %s\n", in.year, len(records), in.path)
		}
		return nil
	},
}

var indexSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search captions and referencing paragraphs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, map[string]string{"index.path": "db"})
		if err != nil {
			return err
		}
		year, _ := cmd.Flags().GetInt("year")
		once, _ := cmd.Flags().GetBool("once")
		limit, _ := cmd.Flags().GetInt("limit")

		idx, err := arxivtex.OpenIndex(cfg.Index.Path)
		if err != nil {
			return fmt.Errorf("open index: %w", err)
		}
		defer idx.Close()

		results, err := idx.Search(cmd.Context(), strings.Join(args, " "), &arxivtex.SearchOptions{
			Year:           year,
			ReferencedOnce: once,
			Limit:          limit,
		})
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}
		if len(results) == 0 {
			fmt.Println("No results found.")
			return nil
		}
		for _, t := range results {
			fmt.Printf("[%d %s] %s\n", t.Year, t.Label, t.Filename)
			if t.PaperID != "" {
				fmt.Printf("  Paper:   %s\n", t.PaperID)
			}
			fmt.Printf("  Caption: %s\n", t.Caption)
			fmt.Printf("  Referenced in %d paragraph(s)\n\n", len(t.ReferencingParagraphs))
		}
		return nil
	},
}

var indexStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, map[string]string{"index.path": "db"})
		if err != nil {
			return err
		}
		idx, err := arxivtex.OpenIndex(cfg.Index.Path)
		if err != nil {
			return fmt.Errorf("open index: %w", err)
		}
		defer idx.Close()

		if rebuild, _ := cmd.Flags().GetBool("rebuild"); rebuild {
			if err := idx.RebuildFTS(cmd.Context()); err != nil {
				return fmt.Errorf("rebuild fts: %w", err)
			}
		}

		stats, err := idx.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("stats: %w", err)
		}
		fmt.Printf("Index: %s\n", idx.Path())
		fmt.Printf("Tables:          %d\n", stats.Tables)
		fmt.Printf("Referenced once: %d\n", stats.ReferencedOnce)
		fmt.Printf("Unreferenced:    %d\n", stats.Unreferenced)
		fmt.Printf("Papers:          %d\n", stats.Papers)
		fmt.Printf("Years:           %d\n", stats.Years)
		fmt.Printf("Full-text:       %v\n", idx.HasFTS())
		return nil
	},
}

func init() {
	indexCmd.PersistentFlags().String("db", "", "index database path")

	indexLoadCmd.Flags().Bool("refonce", false, "load the per-year refonce outputs from the config")
	indexSearchCmd.Flags().Int("year", 0, "restrict to one year")
	indexSearchCmd.Flags().Bool("once", false, "only tables referenced exactly once")
	indexSearchCmd.Flags().Int("limit", 20, "max results")
	indexStatsCmd.Flags().Bool("rebuild", false, "rebuild the full-text index first")

	indexCmd.AddCommand(indexLoadCmd)
	indexCmd.AddCommand(indexSearchCmd)
	indexCmd.AddCommand(indexStatsCmd)
}
