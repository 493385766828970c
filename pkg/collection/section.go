// Package collection projects the entry list into the searchable, month
// grouped view shown in the sidebar.
package collection

import (
	"strings"
	"time"

	"tableflip.dev/freewrite/pkg/entry"
)

// Section is a month of entries, newest first.
type Section struct {
	Title   string         `json:"title"`
	Entries []*entry.Entry `json:"entries"`
}

// Filter keeps entries whose display date or preview contains query, ignoring
// case. A blank query keeps everything.
func Filter(entries []*entry.Entry, query string) []*entry.Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]*entry.Entry(nil), entries...)
	}
	out := make([]*entry.Entry, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		if strings.Contains(strings.ToLower(e.DisplayDate()), q) ||
			strings.Contains(strings.ToLower(e.Preview), q) {
			out = append(out, e)
		}
	}
	return out
}

// Since keeps entries created at or after t. A zero t keeps everything.
func Since(entries []*entry.Entry, t time.Time) []*entry.Entry {
	if t.IsZero() {
		return entries
	}
	out := make([]*entry.Entry, 0, len(entries))
	for _, e := range entries {
		if e != nil && !e.Created.Before(t) {
			out = append(out, e)
		}
	}
	return out
}

// Sections filters entries by query and groups them by month and year.
// Sections appear in the order their first entry appears in the input, and
// each keeps the input order.
func Sections(entries []*entry.Entry, query string) []Section {
	filtered := Filter(entries, query)
	index := make(map[string]int)
	sections := make([]Section, 0)
	for _, e := range filtered {
		if e == nil {
			continue
		}
		title := e.Section()
		i, ok := index[title]
		if !ok {
			i = len(sections)
			index[title] = i
			sections = append(sections, Section{Title: title})
		}
		sections[i].Entries = append(sections[i].Entries, e)
	}
	return sections
}

// Count is the number of entries across sections.
func Count(sections []Section) int {
	n := 0
	for _, s := range sections {
		n += len(s.Entries)
	}
	return n
}
