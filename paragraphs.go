package arxivtex

import (
	"regexp"
	"strings"
)

var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// SplitParagraphs splits text on blank lines.
func SplitParagraphs(text string) []string {
	return paragraphBreak.Split(text, -1)
}

// ReferencingParagraphs maps each label in labels to the paragraphs of text
// that reference it. Comments are stripped first. A paragraph is recorded
// once per label, trimmed, in order of first appearance. Labels that are
// never referenced are absent from the result.
func ReferencingParagraphs(text string, labels LabelSet, opts ExtractOptions) map[string][]string {
	opts = opts.withDefaults()
	refRe := opts.refPattern()

	refs := make(map[string][]string)
	seen := make(map[string]map[string]bool)
	for _, para := range SplitParagraphs(StripComments(text)) {
		matches := refRe.FindAllStringSubmatch(para, -1)
		if len(matches) == 0 {
			continue
		}
		trimmed := strings.TrimSpace(para)
		for _, m := range matches {
			label := m[1]
			if !labels.Has(label) {
				continue
			}
			if seen[label] == nil {
				seen[label] = make(map[string]bool)
			}
			if seen[label][trimmed] {
				continue
			}
			seen[label][trimmed] = true
			refs[label] = append(refs[label], trimmed)
		}
	}
	return refs
}

// LabelSet is a set of known labels.
type LabelSet interface {
	Has(label string) bool
}

// Labels is a LabelSet over a fixed list.
type Labels map[string]bool

// NewLabels builds a Labels set.
func NewLabels(labels ...string) Labels {
	s := make(Labels, len(labels))
	for _, l := range labels {
		s[l] = true
	}
	return s
}

// Has reports whether label is in the set.
func (l Labels) Has(label string) bool { return l[label] }
