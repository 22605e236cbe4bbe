// Package arxivtex provides batch tools for mining tables out of an offline
// arXiv corpus.
//
// This package implements:
//   - Filtering a JSON-lines metadata snapshot by category and submission year
//   - Extracting labeled, captioned table environments from TeX sources
//   - Finding the paragraphs that reference each table via \ref, \autoref or \cref
//   - Keeping tables that are referenced by exactly one paragraph
//   - A local SQLite index with full-text search over captions and paragraphs
//
// Every stage is a run-to-completion transform from files to files and runs
// on a single goroutine.
//
// Basic usage:
//
//	corpus, stats, err := arxivtex.Aggregate(ctx, "./all_tex_files_2018", &arxivtex.AggregateOptions{
//		Logger: logger,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%d tables in %d files\n", corpus.Len(), stats.Files)
//
//	// Keep tables referenced once
//	once := arxivtex.FilterReferencedOnce(corpus.Records())
package arxivtex
