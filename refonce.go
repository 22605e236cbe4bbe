package arxivtex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// YearPlaceholder is replaced by the year in path templates.
const YearPlaceholder = "{year}"

// FilterReferencedOnce returns the records cited by exactly one paragraph,
// in their original order.
func FilterReferencedOnce(records []TableRecord) []TableRecord {
	out := []TableRecord{}
	for _, r := range records {
		if len(r.ReferencingParagraphs) == 1 {
			out = append(out, r)
		}
	}
	return out
}

// ReadRecords decodes a JSON array of table records.
func ReadRecords(r io.Reader) ([]TableRecord, error) {
	var records []TableRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ReferencingParagraphs == nil {
			records[i].ReferencingParagraphs = []string{}
		}
	}
	return records, nil
}

// ReadRecordsFile reads a table record file.
func ReadRecordsFile(path string) ([]TableRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	records, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return records, nil
}

// WriteRecords encodes records as an indented JSON array. Non-ASCII and
// HTML characters are written as is.
func WriteRecords(w io.Writer, records []TableRecord) error {
	if records == nil {
		records = []TableRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// WriteRecordsFile writes records to path, replacing any existing file.
func WriteRecordsFile(path string, records []TableRecord) error {
	var buf bytes.Buffer
	if err := WriteRecords(&buf, records); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// ExpandYear substitutes year into a path template.
func ExpandYear(template string, year int) string {
	return strings.ReplaceAll(template, YearPlaceholder, strconv.Itoa(year))
}

// YearsOptions configures FilterYears.
type YearsOptions struct {
	// FromYear and ToYear bound the inclusive range of years.
	FromYear, ToYear int

	// InputTemplate is the per-year table record file.
	InputTemplate string

	// OutputTemplate is the per-year filtered file.
	OutputTemplate string

	// CombinedPath receives all years' filtered records.
	CombinedPath string

	Logger *slog.Logger
}

// YearResult is the outcome for one year.
type YearResult struct {
	Year    int
	Input   string
	Output  string
	Kept    int
	Missing bool
}

// YearsResult summarizes FilterYears.
type YearsResult struct {
	Years    []YearResult
	Combined int
}

// FilterYears applies FilterReferencedOnce to each year's record file and
// writes per-year and combined outputs. Missing inputs are skipped with a
// warning.
func FilterYears(ctx context.Context, opts *YearsOptions) (*YearsResult, error) {
	if opts == nil {
		return nil, errors.New("years options required")
	}
	if opts.FromYear > opts.ToYear {
		return nil, fmt.Errorf("invalid year range %d-%d", opts.FromYear, opts.ToYear)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	result := &YearsResult{}
	combined := []TableRecord{}
	for year := opts.FromYear; year <= opts.ToYear; year++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		yr := YearResult{
			Year:   year,
			Input:  ExpandYear(opts.InputTemplate, year),
			Output: ExpandYear(opts.OutputTemplate, year),
		}
		records, err := ReadRecordsFile(yr.Input)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("input not found, skipping", "year", year, "path", yr.Input)
			yr.Missing = true
			result.Years = append(result.Years, yr)
			continue
		}
		if err != nil {
			return result, err
		}

		filtered := FilterReferencedOnce(records)
		if err := WriteRecordsFile(yr.Output, filtered); err != nil {
			return result, fmt.Errorf("write %s: %w", yr.Output, err)
		}
		yr.Kept = len(filtered)
		combined = append(combined, filtered...)
		result.Years = append(result.Years, yr)
		logger.Info("filtered year", "year", year, "kept", yr.Kept, "of", len(records))
	}

	if err := WriteRecordsFile(opts.CombinedPath, combined); err != nil {
		return result, fmt.Errorf("write %s: %w", opts.CombinedPath, err)
	}
	result.Combined = len(combined)
	return result, nil
}
