package arxivtex

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(label string, paras ...string) TableRecord {
	if paras == nil {
		paras = []string{}
	}
	return TableRecord{
		Filename:              label + ".tex",
		Label:                 label,
		Caption:               "caption " + label,
		Content:               `\begin{table}\end{table}`,
		ReferencingParagraphs: paras,
	}
}

func TestFilterReferencedOnce(t *testing.T) {
	records := []TableRecord{
		record("tab:zero"),
		record("tab:one", "p1"),
		record("tab:two", "p1", "p2"),
		record("tab:also-one", "q"),
	}
	got := FilterReferencedOnce(records)
	require.Len(t, got, 2)
	assert.Equal(t, "tab:one", got[0].Label)
	assert.Equal(t, "tab:also-one", got[1].Label)

	assert.NotNil(t, FilterReferencedOnce(nil))
}

func TestWriteRecords(t *testing.T) {
	var buf bytes.Buffer
	r := record("tab:x", `See <Table> \ref{tab:x} & ü`)
	require.NoError(t, WriteRecords(&buf, []TableRecord{r}))
	out := buf.String()
	assert.Contains(t, out, `"referencing_paragraphs": [`)
	assert.Contains(t, out, `See <Table> \\ref{tab:x} & ü`)

	buf.Reset()
	require.NoError(t, WriteRecords(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())

	got, err := ReadRecords(strings.NewReader(`[{"table_label":"tab:n","referencing_paragraphs":null}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotNil(t, got[0].ReferencingParagraphs)
}

func TestFilterYears(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in", "tables_{year}.json")
	out := filepath.Join(dir, "out")

	require.NoError(t, WriteRecordsFile(ExpandYear(in, 2017), []TableRecord{
		record("tab:a", "p"),
		record("tab:b"),
	}))
	require.NoError(t, WriteRecordsFile(ExpandYear(in, 2019), []TableRecord{
		record("tab:c", "p", "q"),
		record("tab:d", "p"),
		record("tab:e", "r"),
	}))

	res, err := FilterYears(context.Background(), &YearsOptions{
		FromYear:       2017,
		ToYear:         2019,
		InputTemplate:  in,
		OutputTemplate: filepath.Join(out, "once_{year}.json"),
		CombinedPath:   filepath.Join(out, "once_combined.json"),
	})
	require.NoError(t, err)

	require.Len(t, res.Years, 3)
	assert.Equal(t, 1, res.Years[0].Kept)
	assert.True(t, res.Years[1].Missing)
	assert.Equal(t, 2, res.Years[2].Kept)
	assert.Equal(t, 3, res.Combined)

	y2017, err := ReadRecordsFile(filepath.Join(out, "once_2017.json"))
	require.NoError(t, err)
	assert.Len(t, y2017, 1)

	_, err = os.Stat(filepath.Join(out, "once_2018.json"))
	assert.True(t, os.IsNotExist(err))

	combined, err := ReadRecordsFile(filepath.Join(out, "once_combined.json"))
	require.NoError(t, err)
	require.Len(t, combined, res.Years[0].Kept+res.Years[2].Kept)
	assert.Equal(t, []string{"tab:a", "tab:d", "tab:e"}, []string{combined[0].Label, combined[1].Label, combined[2].Label})
}

func TestFilterYearsBadInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "tables_{year}.json")
	require.NoError(t, os.WriteFile(ExpandYear(in, 2020), []byte("{not json"), 0644))

	_, err := FilterYears(context.Background(), &YearsOptions{
		FromYear:       2020,
		ToYear:         2020,
		InputTemplate:  in,
		OutputTemplate: filepath.Join(dir, "out_{year}.json"),
		CombinedPath:   filepath.Join(dir, "combined.json"),
	})
	assert.Error(t, err)
}

func TestFilterYearsAllMissing(t *testing.T) {
	dir := t.TempDir()
	res, err := FilterYears(context.Background(), &YearsOptions{
		FromYear:       2017,
		ToYear:         2018,
		InputTemplate:  filepath.Join(dir, "missing_{year}.json"),
		OutputTemplate: filepath.Join(dir, "out_{year}.json"),
		CombinedPath:   filepath.Join(dir, "combined.json"),
	})
	require.NoError(t, err)
	assert.Zero(t, res.Combined)

	data, err := os.ReadFile(filepath.Join(dir, "combined.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestFilterYearsInvalidRange(t *testing.T) {
	_, err := FilterYears(context.Background(), &YearsOptions{FromYear: 2020, ToYear: 2019})
	assert.Error(t, err)
}

func TestExpandYear(t *testing.T) {
	assert.Equal(t, "out/tables_2018.json", ExpandYear("out/tables_{year}.json", 2018))
	assert.Equal(t, "static.json", ExpandYear("static.json", 2018))
}
