package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/freewrite/pkg/entry"
)

// Calendar prints the month containing on, highlighting days with writing.
func (pp *PrettyPrint) Calendar(on time.Time, entries ...*entry.Entry) {
	then := time.Date(on.Year(), on.Month(), 1, 1, 0, 0, 0, time.Local)
	pp.PrintMonth(then, entries...)
}

// CalendarYear prints every month of the year containing on.
func (pp *PrettyPrint) CalendarYear(on time.Time, entries ...*entry.Entry) {
	then := time.Date(on.Year(), 1, 1, 1, 0, 0, 0, time.Local)

	for i := 0; i < 12; i++ {
		pp.PrintMonth(then, entries...)
		then = NextMonth(then)
	}
}

const width = len("11 12 13 14 15 16 17") // an example week

// MonthCounts is the number of entries created on each day of then's month.
func MonthCounts(then time.Time, entries ...*entry.Entry) []int {
	count := make([]int, DaysIn(then))
	for _, e := range entries {
		if e.Created.SameMonth(then) {
			count[e.Created.Local().Day()-1]++
		}
	}
	return count
}

func (pp *PrettyPrint) PrintMonth(then time.Time, entries ...*entry.Entry) {
	pp.PrintMonthCount(then, MonthCounts(then, entries...))
}

func (pp *PrettyPrint) PrintMonthCount(then time.Time, count []int) {
	out := pp.out()
	d := StartDay(then)

	tf := color.New(color.Italic)

	m := then.Format(entry.SectionLayout)
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(out, "%s%s%s\n", strings.Repeat(" ", max(mid, 0)), m, strings.Repeat(" ", max(width-mid-len(m), 0)))

	days := DaysIn(then)

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(out, "   ")
	}

	l1 := color.New(color.Faint)
	l2 := color.New(color.Bold, color.FgHiGreen)

	for i := 0; i < days; i++ {
		if i < len(count) && count[i] > 0 {
			_, _ = l2.Fprintf(out, "%2d ", i+1)
		} else {
			_, _ = l1.Fprintf(out, "%2d ", i+1)
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(out, "\n")
		}
	}
	_, _ = fmt.Fprint(out, "\n\n")
}

func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 1, 0, 0, 0, then.Location())
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
