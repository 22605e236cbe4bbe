/*
arxivtex mines tables and the paragraphs that cite them from an offline
arXiv corpus.

# Usage

	arxivtex <command> [options]

# Commands

	papers     Filter the metadata snapshot by category and submission year
	tables     Extract tables and their referencing paragraphs from TeX files
	refonce    Keep tables referenced by exactly one paragraph
	index      Load table records into SQLite and search them
	config     Write or show the configuration
	version    Print version information

# Configuration

Settings come from built-in defaults, then arxivtex.yaml (in the working
directory or ~/.arxivtex, or --config), then ARXIVTEX_* environment
variables, then command-line flags:

	arxivtex config init                # write arxivtex.yaml with defaults
	ARXIVTEX_PAPERS_YEAR=2018 arxivtex papers

# Pipeline

	arxivtex papers --year 2017 --output cs_papers__2017.json
	# assemble all_tex_files_<year>/ from the selected papers' sources
	arxivtex tables --input ./all_tex_files_2018 --output-name sample_table_paragraphs_2018.json
	arxivtex refonce --from 2017 --to 2023
	arxivtex index load --refonce
	arxivtex index search "ablation"

# Outputs

The tables command writes one record per table label:

	{
	  "filename": "1801.00001.tex",
	  "table_label": "tab:results",
	  "table_caption": "Results on the test set.",
	  "table_content": "\\begin{table}...\\end{table}",
	  "referencing_paragraphs": ["As shown in Table~\\ref{tab:results}, ..."]
	}

and logs per-file counts to <log_dir>/process_<output name>.log.
*/
package main
