package arxivtex

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapshot = `{"id":"1701.00001","categories":"cs.LG stat.ML","versions":[{"version":"v1","created":"Mon, 2 Jan 2017 10:00:00 GMT"},{"version":"v2","created":"Tue, 3 Jan 2018 10:00:00 GMT"}]}
{"id":"1701.00002","categories":"math.CO","versions":[{"version":"v1","created":"Mon, 2 Jan 2017 10:00:00 GMT"}]}
not json at all
{"id":"1612.00003","categories":"cs.AI","versions":[{"version":"v1","created":"Sat, 31 Dec 2016 23:59:59 GMT"}]}
{"id":"1705.00004","categories":["cs.CV","eess.IV"],"versions":[{"version":"v1","created":"Wed, 10 May 2017 08:15:00 GMT"}]}
{"id":"1705.00005","categories":"cs.CL","versions":[]}
{"id":"1705.00006","categories":"cs.CL","versions":[{"version":"v1","created":"2017-05-10"}]}

{"id":"1712.00007","abstract":"Uses <b>tags</b> & ünïcode","categories":"cs.DB","versions":[{"version":"v1","created":"Fri, 29 Dec 2017 12:00:00 GMT"}]}
`

func TestFilterPapers(t *testing.T) {
	var out bytes.Buffer
	stats, err := FilterPapers(context.Background(), strings.NewReader(snapshot), &out, &FilterOptions{Year: 2017})
	require.NoError(t, err)

	assert.Equal(t, &FilterStats{
		Lines:       9,
		Malformed:   2,
		OffCategory: 1,
		NoDate:      1,
		BadDate:     1,
		OtherYear:   1,
		Kept:        3,
	}, stats)

	var papers []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &papers))
	require.Len(t, papers, 3)
	assert.Equal(t, "1701.00001", papers[0]["id"])
	assert.Equal(t, "1705.00004", papers[1]["id"])
	assert.Equal(t, "1712.00007", papers[2]["id"])
	assert.Equal(t, "Uses <b>tags</b> & ünïcode", papers[2]["abstract"])
}

func TestFilterPapersFormat(t *testing.T) {
	in := `{"b":1,"a":[1,2]}` + "\n" + `{"categories": "cs.SE", "versions": [{"created": "Mon, 2 Jan 2017 10:00:00 GMT"}]}` + "\n"
	var out bytes.Buffer
	_, err := FilterPapers(context.Background(), strings.NewReader(in), &out, &FilterOptions{Year: 2017})
	require.NoError(t, err)

	want := `[
{
    "categories": "cs.SE",
    "versions": [
        {
            "created": "Mon, 2 Jan 2017 10:00:00 GMT"
        }
    ]
}
]
`
	assert.Equal(t, want, out.String())
}

func TestFilterPapersSeparators(t *testing.T) {
	line := `{"categories":"cs.SE","versions":[{"created":"Mon, 2 Jan 2017 10:00:00 GMT"}]}`
	var out bytes.Buffer
	_, err := FilterPapers(context.Background(), strings.NewReader(line+"\n"+line), &out, &FilterOptions{Year: 2017})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out.String(), "},\n{"))
}

func TestFilterPapersEmpty(t *testing.T) {
	var out bytes.Buffer
	stats, err := FilterPapers(context.Background(), strings.NewReader(""), &out, &FilterOptions{Year: 2017})
	require.NoError(t, err)
	assert.Zero(t, stats.Kept)
	assert.Equal(t, "[\n\n]\n", out.String())
}

func TestFilterPapersCategories(t *testing.T) {
	in := `{"categories":"math.CO","versions":[{"created":"Mon, 2 Jan 2017 10:00:00 GMT"}]}`
	var out bytes.Buffer
	stats, err := FilterPapers(context.Background(), strings.NewReader(in), &out, &FilterOptions{
		Year:       2017,
		Categories: []string{"math.CO"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Kept)
}

func TestFilterPapersDeterministic(t *testing.T) {
	run := func() string {
		var out bytes.Buffer
		_, err := FilterPapers(context.Background(), strings.NewReader(snapshot), &out, &FilterOptions{Year: 2017})
		require.NoError(t, err)
		return out.String()
	}
	assert.Equal(t, run(), run())
}

func TestParsePaperRecord(t *testing.T) {
	p, err := ParsePaperRecord([]byte(`{"categories":"  cs.AI   cs.LG ","versions":[{"created":"Sun, 1 Jan 2017 00:00:00 GMT"}]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"cs.AI", "cs.LG"}, p.CategoryList())
	assert.Equal(t, "cs.AI", p.PrimaryCategory())
	created, err := p.Created()
	require.NoError(t, err)
	assert.Equal(t, 2017, created.Year())

	p, err = ParsePaperRecord([]byte(`{"categories":["cs.AI"],"versions":[{"created":"Sun, 01 Jan 2017 00:00:00 GMT"}]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"cs.AI"}, p.CategoryList())
	_, err = p.Created()
	assert.NoError(t, err)

	p, err = ParsePaperRecord([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, p.CategoryList())
	_, err = p.Created()
	assert.ErrorIs(t, err, ErrNoCreated)

	_, err = ParsePaperRecord([]byte(`{"categories":42}`))
	assert.Error(t, err)
	_, err = ParsePaperRecord([]byte(`[1,2]`))
	assert.Error(t, err)
}
