package arxivtex

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// Errors returned by ExtractBraced.
var (
	ErrNoOpenBrace      = errors.New("expected '{' at start index")
	ErrUnbalancedBraces = errors.New("unbalanced braces")
)

var (
	tableBlockPattern = regexp.MustCompile(`(?s)\\begin\{table\*?\}(.*?)\\end\{table\*?\}`)

	// The global stripper. RE2 has no lookbehind, so the character before
	// the percent is captured and put back.
	commentPattern = regexp.MustCompile(`(?m)(^|[^\\])%.*`)
)

// ExtractOptions controls which labels and reference commands are recognized.
type ExtractOptions struct {
	// LabelPrefixes are the label namespaces treated as tables (default "tab").
	LabelPrefixes []string

	// RefCommands are the reference macros searched for in paragraphs
	// (default ref, autoref, cref).
	RefCommands []string
}

// DefaultExtractOptions returns the options used when none are given.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		LabelPrefixes: []string{"tab"},
		RefCommands:   []string{"ref", "autoref", "cref"},
	}
}

func (o ExtractOptions) withDefaults() ExtractOptions {
	d := DefaultExtractOptions()
	if len(o.LabelPrefixes) == 0 {
		o.LabelPrefixes = d.LabelPrefixes
	}
	if len(o.RefCommands) == 0 {
		o.RefCommands = d.RefCommands
	}
	return o
}

func (o ExtractOptions) labelPattern() *regexp.Regexp {
	return patterns.compile(`\\label\{((?:` + quoteAll(o.LabelPrefixes) + `):[^}]+)\}`)
}

func (o ExtractOptions) refPattern() *regexp.Regexp {
	return patterns.compile(`\\(?:` + quoteAll(o.RefCommands) + `)\{((?:` + quoteAll(o.LabelPrefixes) + `):[^\}]+)\}`)
}

func quoteAll(parts []string) string {
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return strings.Join(quoted, "|")
}

// ExtractBraced returns the text strictly inside the brace group opening at
// start, and the index just past its closing brace. Nested groups are kept
// verbatim. Braces are ASCII, so byte indexes are safe on UTF-8 input.
func ExtractBraced(text string, start int) (string, int, error) {
	if start < 0 || start >= len(text) || text[start] != '{' {
		return "", 0, ErrNoOpenBrace
	}
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start+1 : i], i + 1, nil
			}
		}
	}
	return "", 0, ErrUnbalancedBraces
}

// TableEntry is a labeled, captioned table found in one document.
type TableEntry struct {
	Label   string
	Content string
	Caption string
}

// TableSet holds the tables of one document keyed by label, in the order
// the labels were first seen.
type TableSet struct {
	byLabel map[string]TableEntry
	order   []string
}

func newTableSet() *TableSet {
	return &TableSet{byLabel: make(map[string]TableEntry)}
}

// Len returns the number of tables.
func (s *TableSet) Len() int { return len(s.order) }

// Get returns the table with the given label.
func (s *TableSet) Get(label string) (TableEntry, bool) {
	t, ok := s.byLabel[label]
	return t, ok
}

// Labels returns the labels in discovery order.
func (s *TableSet) Labels() []string {
	return append([]string(nil), s.order...)
}

// Entries returns the tables in discovery order.
func (s *TableSet) Entries() []TableEntry {
	out := make([]TableEntry, 0, len(s.order))
	for _, l := range s.order {
		out = append(out, s.byLabel[l])
	}
	return out
}

// Has reports whether label is in the set.
func (s *TableSet) Has(label string) bool {
	_, ok := s.byLabel[label]
	return ok
}

func (s *TableSet) add(t TableEntry) {
	if _, ok := s.byLabel[t.Label]; ok {
		return
	}
	s.byLabel[t.Label] = t
	s.order = append(s.order, t.Label)
}

// ExtractTables finds every table and table* environment in text that has
// both a table label and a caption. Blocks missing either, or whose caption
// braces never balance, are skipped. The first block wins when a label
// repeats.
func ExtractTables(text string, opts ExtractOptions) *TableSet {
	opts = opts.withDefaults()
	labelRe := opts.labelPattern()

	tables := newTableSet()
	for _, m := range tableBlockPattern.FindAllStringSubmatch(text, -1) {
		block := m[1]

		lm := labelRe.FindStringSubmatch(block)
		if lm == nil {
			continue
		}
		label := lm[1]

		ci := strings.Index(block, `\caption`)
		if ci == -1 {
			continue
		}
		bi := strings.IndexByte(block[ci:], '{')
		if bi == -1 {
			continue
		}
		caption, _, err := ExtractBraced(block, ci+bi)
		if err != nil {
			continue
		}

		tables.add(TableEntry{
			Label:   label,
			Content: `\begin{table}` + block + `\end{table}`,
			Caption: strings.TrimSpace(caption),
		})
	}
	return tables
}

// StripInlineComments removes trailing % comments line by line. Lines that
// are entirely a comment (after leading whitespace) are kept unchanged, and
// \% is a literal percent.
func StripInlineComments(text string) string {
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 1 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.HasPrefix(strings.TrimLeftFunc(line, unicode.IsSpace), "%") {
			lines[i] = line
			continue
		}
		lines[i] = cutComment(line)
	}
	return strings.Join(lines, "\n")
}

func cutComment(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] == '%' && (i == 0 || line[i-1] != '\\') {
			return line[:i]
		}
	}
	return line
}

// StripComments removes every unescaped % and the rest of its line,
// including full-line comments.
func StripComments(text string) string {
	return commentPattern.ReplaceAllString(text, "$1")
}
