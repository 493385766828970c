package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/freewrite/pkg/collection"
	"tableflip.dev/freewrite/pkg/entry"
)

func init() {
	color.NoColor = true
}

func TestSections(t *testing.T) {
	a := entry.New("a", time.Date(2025, time.January, 20, 8, 0, 0, 0, time.Local))
	a.SetContent("morning pages")
	b := entry.New("b", time.Date(2025, time.January, 5, 8, 0, 0, 0, time.Local))

	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Sections(collection.Sections([]*entry.Entry{a, b}, "")...)

	got := buf.String()
	for _, want := range []string{"January 2025 - 2 entries", "Jan 20 morning pages", "Jan 5  empty"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestSectionsEmpty(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Sections()
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("expected none marker, got %q", buf.String())
	}
}

func TestMonthCounts(t *testing.T) {
	feb := time.Date(2024, time.February, 1, 1, 0, 0, 0, time.Local)
	e1 := entry.New("a", time.Date(2024, time.February, 29, 8, 0, 0, 0, time.Local))
	e2 := entry.New("b", time.Date(2024, time.February, 29, 9, 0, 0, 0, time.Local))
	e3 := entry.New("c", time.Date(2024, time.March, 1, 9, 0, 0, 0, time.Local))

	got := MonthCounts(feb, e1, e2, e3)
	if len(got) != 29 {
		t.Fatalf("DaysIn(Feb 2024) = %d, want 29", len(got))
	}
	if got[28] != 2 {
		t.Fatalf("count[28] = %d, want 2", got[28])
	}
}

func TestNextMonthFromLateDay(t *testing.T) {
	jan31 := time.Date(2025, time.January, 31, 1, 0, 0, 0, time.Local)
	if got := NextMonth(jan31).Month(); got != time.February {
		t.Fatalf("NextMonth = %s, want February", got)
	}
}
