// Package pick prompts for an entry when a command was not given one.
package pick

import (
	"errors"
	"io"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/freewrite/pkg/entry"
)

// ErrNoEntries is returned when there is nothing to choose from.
var ErrNoEntries = errors.New("no entries to choose from")

// Entry asks the user to choose one of entries, newest first.
func Entry(label string, entries []*entry.Entry, in io.Reader, out io.Writer) (*entry.Entry, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .DisplayDate | bold }} {{ .Preview | green }}",
		Inactive: "   {{ .DisplayDate }} {{ .Preview | cyan }}",
		Selected: "{{ .DisplayDate | bold }} {{ .Preview }}",
		Details: `
--------- Entry ----------
{{ .ID }}
{{ .Filename }}
`,
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     label,
		Items:     entries,
		Templates: templates,
		Size:      10,
		Searcher:  Searcher(entries),
		Stdin:     io.NopCloser(in),
		Stdout:    nopCloser{out},
	}

	i, _, err := prompt.Run()
	if err != nil {
		return nil, err
	}
	return entries[i], nil
}

// Searcher matches the typed text against an entry's preview and date,
// ignoring case and spaces.
func Searcher(entries []*entry.Entry) func(input string, index int) bool {
	return func(input string, index int) bool {
		e := entries[index]
		haystack := squash(e.DisplayDate() + e.Preview)
		return strings.Contains(haystack, squash(input))
	}
}

func squash(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
