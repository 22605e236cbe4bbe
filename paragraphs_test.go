package arxivtex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitParagraphs(t *testing.T) {
	text := "one\nstill one\n\ntwo\n   \t\n\nthree"
	assert.Equal(t, []string{"one\nstill one", "two", "three"}, SplitParagraphs(text))
}

func TestReferencingParagraphs(t *testing.T) {
	text := `Intro without references.

See Table~\ref{tab:a} and \cref{tab:b}.

Only \autoref{tab:a} here, twice: \ref{tab:a}.

See Table~\ref{tab:a} and \cref{tab:b}.

Unknown \ref{tab:zzz} and a figure \ref{fig:a}.

% \ref{tab:b} in a comment line

Escaped 50\% with \ref{tab:b} % and \ref{tab:a} in a comment
`
	labels := NewLabels("tab:a", "tab:b")
	refs := ReferencingParagraphs(text, labels, ExtractOptions{})

	both := `See Table~\ref{tab:a} and \cref{tab:b}.`
	assert.Equal(t, []string{
		both,
		`Only \autoref{tab:a} here, twice: \ref{tab:a}.`,
	}, refs["tab:a"])
	assert.Equal(t, []string{
		both,
		`Escaped 50\% with \ref{tab:b}`,
	}, refs["tab:b"])
	assert.NotContains(t, refs, "tab:zzz")
	assert.NotContains(t, refs, "fig:a")
}

func TestReferencingParagraphsUnreferenced(t *testing.T) {
	refs := ReferencingParagraphs("No citations at all.", NewLabels("tab:a"), ExtractOptions{})
	assert.Empty(t, refs)
}

func TestReferencingParagraphsCommands(t *testing.T) {
	text := `\pageref{tab:a}

\Cref{tab:a}

\vref{tab:a}`
	refs := ReferencingParagraphs(text, NewLabels("tab:a"), ExtractOptions{})
	assert.Empty(t, refs)

	refs = ReferencingParagraphs(text, NewLabels("tab:a"), ExtractOptions{RefCommands: []string{"Cref", "vref"}})
	assert.Equal(t, []string{`\Cref{tab:a}`, `\vref{tab:a}`}, refs["tab:a"])
}

func TestReferencingParagraphsWithTableSet(t *testing.T) {
	doc := `\begin{table}\caption{X}\label{tab:x}\end{table}

Table \ref{tab:x} shows it.`
	tables := ExtractTables(doc, ExtractOptions{})
	refs := ReferencingParagraphs(doc, tables, ExtractOptions{})
	assert.Equal(t, []string{`Table \ref{tab:x} shows it.`}, refs["tab:x"])
}
