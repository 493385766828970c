// Package calendar prints which days have writing.
package calendar

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/freewrite/pkg/printers"
	"tableflip.dev/freewrite/pkg/store"
)

// Calendar prints a month, or a whole year, of writing days.
type Calendar struct {
	On          time.Time
	Year        bool
	Persistence store.Persistence
	Out         io.Writer
}

// Do renders the calendar.
func (n *Calendar) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not get, no persistence")
	}
	on := n.On
	if on.IsZero() {
		on = time.Now()
	}

	pp := printers.PrettyPrint{Out: n.Out}
	pp.NewLine()

	all := n.Persistence.List(ctx)
	if n.Year {
		pp.CalendarYear(on, all...)
	} else {
		pp.Calendar(on, all...)
	}
	return nil
}
