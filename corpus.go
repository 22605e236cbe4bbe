package arxivtex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// TableRecord is the aggregated output for one table label.
type TableRecord struct {
	Filename              string   `json:"filename"`
	Label                 string   `json:"table_label"`
	Caption               string   `json:"table_caption"`
	Content               string   `json:"table_content"`
	ReferencingParagraphs []string `json:"referencing_paragraphs"`
}

// Corpus accumulates table records across files, keyed by label and kept
// in the order labels were first seen.
type Corpus struct {
	records map[string]*TableRecord
	order   []string
}

// NewCorpus returns an empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{records: make(map[string]*TableRecord)}
}

// Len returns the number of unique labels.
func (c *Corpus) Len() int { return len(c.order) }

// Get returns the record for label.
func (c *Corpus) Get(label string) (*TableRecord, bool) {
	r, ok := c.records[label]
	return r, ok
}

// Records returns copies of all records in first-seen order.
func (c *Corpus) Records() []TableRecord {
	out := make([]TableRecord, 0, len(c.order))
	for _, l := range c.order {
		r := *c.records[l]
		r.ReferencingParagraphs = append([]string{}, r.ReferencingParagraphs...)
		out = append(out, r)
	}
	return out
}

// ReferencedOnce counts records with exactly one referencing paragraph.
func (c *Corpus) ReferencedOnce() int {
	n := 0
	for _, r := range c.records {
		if len(r.ReferencingParagraphs) == 1 {
			n++
		}
	}
	return n
}

// Merge folds the tables and references of one file into the corpus. A
// label already present takes the new file's name, caption and content,
// and keeps its earlier paragraphs followed by the new ones. It returns the
// file that previously owned the label for each collision.
func (c *Corpus) Merge(filename string, tables *TableSet, refs map[string][]string) map[string]string {
	var collisions map[string]string
	for _, t := range tables.Entries() {
		rec, ok := c.records[t.Label]
		if !ok {
			rec = &TableRecord{Label: t.Label, ReferencingParagraphs: []string{}}
			c.records[t.Label] = rec
			c.order = append(c.order, t.Label)
		} else if rec.Filename != filename {
			if collisions == nil {
				collisions = make(map[string]string)
			}
			collisions[t.Label] = rec.Filename
		}
		rec.Filename = filename
		rec.Caption = t.Caption
		rec.Content = t.Content
		rec.ReferencingParagraphs = append(rec.ReferencingParagraphs, refs[t.Label]...)
	}
	return collisions
}

// AggregateOptions configures Aggregate.
type AggregateOptions struct {
	// Pattern selects files by base name (doublestar syntax, default "*.tex").
	Pattern string

	// Encodings is the fallback decoding order (default DefaultEncodings).
	Encodings []string

	Extract ExtractOptions

	// Logger receives per-file and per-label statistics.
	Logger *slog.Logger

	// Progress is called after each file.
	Progress func(done, total int)
}

// AggregateStats summarizes an Aggregate run.
type AggregateStats struct {
	Files       int
	Skipped     int
	Tables      int
	Referenced  int
	Collisions  int
	SkippedList []string
}

// Aggregate extracts tables and their referencing paragraphs from every
// matching file directly inside dir. Files that cannot be decoded are
// logged and skipped.
func Aggregate(ctx context.Context, dir string, opts *AggregateOptions) (*Corpus, *AggregateStats, error) {
	if opts == nil {
		opts = &AggregateOptions{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	pattern := opts.Pattern
	if pattern == "" {
		pattern = "*.tex"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, nil, fmt.Errorf("invalid file pattern %q", pattern)
	}

	dec, err := NewDecoder(opts.Encodings)
	if err != nil {
		return nil, nil, err
	}

	files, err := listFiles(dir, pattern)
	if err != nil {
		return nil, nil, err
	}

	corpus := NewCorpus()
	stats := &AggregateStats{}
	for i, name := range files {
		select {
		case <-ctx.Done():
			return corpus, stats, ctx.Err()
		default:
		}

		text, _, err := dec.ReadFile(filepath.Join(dir, name))
		if err != nil {
			if !errors.Is(err, ErrUndecodable) {
				return corpus, stats, fmt.Errorf("read %s: %w", name, err)
			}
			logger.Warn(fmt.Sprintf("[%s] skipped: %v", name, err))
			stats.Skipped++
			stats.SkippedList = append(stats.SkippedList, name)
			if opts.Progress != nil {
				opts.Progress(i+1, len(files))
			}
			continue
		}

		tables := ExtractTables(text, opts.Extract)
		refs := ReferencingParagraphs(StripInlineComments(text), tables, opts.Extract)

		referenced := 0
		for _, l := range tables.Labels() {
			if len(refs[l]) > 0 {
				referenced++
			}
		}
		logger.Info(fmt.Sprintf("[%s] Tables found: %d, Referenced: %d", name, tables.Len(), referenced))
		for _, l := range tables.Labels() {
			if n := len(refs[l]); n > 0 {
				logger.Info(fmt.Sprintf("  ↳ %s was referenced in %d paragraph(s)", l, n))
			} else {
				logger.Info(fmt.Sprintf("  ↳ %s was not referenced", l))
			}
		}

		collisions := corpus.Merge(name, tables, refs)
		for _, label := range tables.Labels() {
			if prev, ok := collisions[label]; ok {
				logger.Warn(fmt.Sprintf("  ↳ %s also defined in %s; keeping %s", label, prev, name))
				stats.Collisions++
			}
		}

		stats.Files++
		stats.Tables += tables.Len()
		stats.Referenced += referenced
		if opts.Progress != nil {
			opts.Progress(i+1, len(files))
		}
	}
	return corpus, stats, nil
}

func listFiles(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ok, err := doublestar.Match(pattern, e.Name())
		if err != nil {
			return nil, fmt.Errorf("match %q: %w", pattern, err)
		}
		if ok {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
