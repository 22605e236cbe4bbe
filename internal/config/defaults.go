package config

import (
	"github.com/tmc/arxivtex"
)

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() *Config {
	extract := arxivtex.DefaultExtractOptions()
	return &Config{
		Papers: PapersConfig{
			Input:      "../arxiv-metadata-oai-snapshot.json",
			Output:     "cs_papers__2017.json",
			Year:       2017,
			Categories: append([]string(nil), arxivtex.CSCategories...),
		},
		Tables: TablesConfig{
			InputDir:      "./all_tex_files_2018",
			OutputDir:     "sample_table_paragraphs_output",
			OutputName:    "sample_table_paragraphs_2018.json",
			LogDir:        "sample_table_paragraphs_logs",
			Pattern:       "*.tex",
			Encodings:     append([]string(nil), arxivtex.DefaultEncodings...),
			RefCommands:   extract.RefCommands,
			LabelPrefixes: extract.LabelPrefixes,
		},
		RefOnce: RefOnceConfig{
			InputTemplate:  "./sample_table_paragraphs_output/sample_table_paragraphs_{year}.json",
			OutputDir:      "json_files_after_filter",
			OutputTemplate: "referenced_once_tables_{year}.json",
			CombinedName:   "referenced_once_tables_combined.json",
			FromYear:       2017,
			ToYear:         2023,
		},
		Index: IndexConfig{
			Path: "tables.db",
		},
	}
}

// defaultValues flattens DefaultConfig into viper keys.
func defaultValues() map[string]any {
	d := DefaultConfig()
	return map[string]any{
		"papers.input":      d.Papers.Input,
		"papers.output":     d.Papers.Output,
		"papers.year":       d.Papers.Year,
		"papers.categories": d.Papers.Categories,

		"tables.input_dir":      d.Tables.InputDir,
		"tables.output_dir":     d.Tables.OutputDir,
		"tables.output_name":    d.Tables.OutputName,
		"tables.log_dir":        d.Tables.LogDir,
		"tables.pattern":        d.Tables.Pattern,
		"tables.encodings":      d.Tables.Encodings,
		"tables.ref_commands":   d.Tables.RefCommands,
		"tables.label_prefixes": d.Tables.LabelPrefixes,

		"refonce.input_template":  d.RefOnce.InputTemplate,
		"refonce.output_dir":      d.RefOnce.OutputDir,
		"refonce.output_template": d.RefOnce.OutputTemplate,
		"refonce.combined_name":   d.RefOnce.CombinedName,
		"refonce.from_year":       d.RefOnce.FromYear,
		"refonce.to_year":         d.RefOnce.ToYear,

		"index.path": d.Index.Path,
	}
}
