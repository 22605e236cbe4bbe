package arxivtex

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// CreatedLayout is the timestamp format of a version's "created" field,
// e.g. "Mon, 2 Apr 2007 19:18:42 GMT".
const CreatedLayout = "Mon, 2 Jan 2006 15:04:05 MST"

// ErrNoCreated is returned when a record has no first-version created date.
var ErrNoCreated = errors.New("no created date")

// CSCategories are the arXiv computer science subject classes.
var CSCategories = []string{
	"cs.AI", "cs.AR", "cs.CC", "cs.CE", "cs.CG",
	"cs.CL", "cs.CR", "cs.CV", "cs.CY", "cs.DB",
	"cs.DC", "cs.DL", "cs.DM", "cs.DS", "cs.ET",
	"cs.FL", "cs.GL", "cs.GR", "cs.GT", "cs.HC",
	"cs.IR", "cs.IT", "cs.LG", "cs.LO", "cs.MA",
	"cs.MM", "cs.MS", "cs.NA", "cs.NE", "cs.NI",
	"cs.OH", "cs.OS", "cs.PF", "cs.PL", "cs.RO",
	"cs.SC", "cs.SD", "cs.SE", "cs.SI", "cs.SY",
}

// PaperRecord is one line of an arXiv metadata snapshot. Only the fields
// used for filtering are decoded; Raw holds the line as read.
type PaperRecord struct {
	Raw json.RawMessage

	categories []string
	versions   []paperVersion
}

type paperVersion struct {
	Version string `json:"version"`
	Created string `json:"created"`
}

type paperFields struct {
	Categories json.RawMessage `json:"categories"`
	Versions   []paperVersion  `json:"versions"`
}

// ParsePaperRecord decodes a metadata line. Categories may be a
// space-separated string or a list of strings.
func ParsePaperRecord(line []byte) (*PaperRecord, error) {
	var f paperFields
	if err := json.Unmarshal(line, &f); err != nil {
		return nil, err
	}
	cats, err := parseCategories(f.Categories)
	if err != nil {
		return nil, err
	}
	return &PaperRecord{
		Raw:        json.RawMessage(line),
		categories: cats,
		versions:   f.Versions,
	}, nil
}

func parseCategories(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.Fields(s), nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CategoryList returns the record's categories.
func (p *PaperRecord) CategoryList() []string {
	return p.categories
}

// PrimaryCategory returns the first category.
func (p *PaperRecord) PrimaryCategory() string {
	if len(p.categories) == 0 {
		return ""
	}
	return p.categories[0]
}

// InCategories reports whether any of the record's categories is in set.
func (p *PaperRecord) InCategories(set map[string]bool) bool {
	for _, c := range p.categories {
		if set[c] {
			return true
		}
	}
	return false
}

// Created parses the first version's created timestamp.
func (p *PaperRecord) Created() (time.Time, error) {
	if len(p.versions) == 0 || p.versions[0].Created == "" {
		return time.Time{}, ErrNoCreated
	}
	return time.Parse(CreatedLayout, p.versions[0].Created)
}
