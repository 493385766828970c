// Package printers renders entries for the terminal.
package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/freewrite/pkg/collection"
	"tableflip.dev/freewrite/pkg/entry"
)

type PrettyPrint struct {
	ShowID bool
	Out    io.Writer
}

var (
	spacing = strings.Repeat(" ", len("00000000-0000-0000-0000-000000000000  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Sections prints each month heading followed by its entries.
func (pp *PrettyPrint) Sections(sections ...collection.Section) {
	if len(sections) == 0 {
		pp.Entries()
		return
	}
	for _, s := range sections {
		pp.TitleWithCount(s.Title, len(s.Entries))
		pp.Entries(s.Entries...)
	}
}

func (pp *PrettyPrint) Entries(entries ...*entry.Entry) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(pp.out(), spacing)
		}
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	d := color.New(color.Bold)
	p := color.New()
	e := color.New(color.Faint, color.Italic)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	for _, en := range entries {
		if pp.ShowID {
			_, _ = y.Fprint(pp.out(), en.ID)
			if pad := len(spacing) - len(en.ID); pad > 0 {
				_, _ = y.Fprint(pp.out(), strings.Repeat(" ", pad))
			}
		}
		_, _ = d.Fprintf(pp.out(), "%-6s ", en.DisplayDate())
		if en.Preview == "" {
			_, _ = e.Fprintln(pp.out(), "empty")
		} else {
			_, _ = p.Fprintln(pp.out(), en.Preview)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Entry prints a heading for e followed by its full content.
func (pp *PrettyPrint) Entry(e *entry.Entry, content string) {
	h := color.New(color.Bold, color.Underline)
	f := color.New(color.Faint)

	_, _ = h.Fprintln(pp.out(), e.Created.Format("Monday, January 2 2006 15:04"))
	if pp.ShowID {
		_, _ = f.Fprintln(pp.out(), e.ID)
	}
	_, _ = fmt.Fprintln(pp.out(), strings.TrimRight(content, "\n"))
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Details prints aligned key/value rows.
func (pp *PrettyPrint) Details(rows [][2]string) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, r := range rows {
		tbl.AddRow(bold.Sprint(r[0]), r[1])
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(pp.out(), tbl)
}
