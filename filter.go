package arxivtex

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

const maxLineSize = 64 << 20

// FilterOptions configures FilterPapers.
type FilterOptions struct {
	// Year is the first-version submission year to keep.
	Year int

	// Categories is the whitelist; a record needs at least one (default CSCategories).
	Categories []string

	// Logger receives one warning per skipped malformed line.
	Logger *slog.Logger
}

// FilterStats counts what FilterPapers did with each line.
type FilterStats struct {
	Lines       int
	Malformed   int
	OffCategory int
	NoDate      int
	BadDate     int
	OtherYear   int
	Kept        int
}

// FilterPapers copies the records of r that match the category whitelist
// and target year to w as a JSON array, one indented record at a time.
// Malformed lines are skipped.
func FilterPapers(ctx context.Context, r io.Reader, w io.Writer, opts *FilterOptions) (*FilterStats, error) {
	if opts == nil {
		opts = &FilterOptions{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	cats := opts.Categories
	if len(cats) == 0 {
		cats = CSCategories
	}
	whitelist := make(map[string]bool, len(cats))
	for _, c := range cats {
		whitelist[c] = true
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("[\n"); err != nil {
		return nil, err
	}

	stats := &FilterStats{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1<<20), maxLineSize)
	var buf bytes.Buffer
	for sc.Scan() {
		if stats.Lines%1000 == 0 {
			select {
			case <-ctx.Done():
				return stats, ctx.Err()
			default:
			}
		}
		stats.Lines++

		line := bytes.TrimSpace(sc.Bytes())
		paper, err := ParsePaperRecord(line)
		if err != nil {
			stats.Malformed++
			logger.Warn("skipping malformed line", "line", stats.Lines, "error", err)
			continue
		}
		if !paper.InCategories(whitelist) {
			stats.OffCategory++
			continue
		}
		created, err := paper.Created()
		if errors.Is(err, ErrNoCreated) {
			stats.NoDate++
			continue
		}
		if err != nil {
			stats.BadDate++
			continue
		}
		if created.Year() != opts.Year {
			stats.OtherYear++
			continue
		}

		buf.Reset()
		if err := json.Indent(&buf, line, "", "    "); err != nil {
			stats.Malformed++
			continue
		}
		if stats.Kept > 0 {
			if _, err := bw.WriteString(",\n"); err != nil {
				return stats, err
			}
		}
		if _, err := bw.Write(buf.Bytes()); err != nil {
			return stats, err
		}
		stats.Kept++
	}
	if err := sc.Err(); err != nil {
		return stats, fmt.Errorf("read input: %w", err)
	}

	if _, err := bw.WriteString("\n]\n"); err != nil {
		return stats, err
	}
	return stats, bw.Flush()
}
