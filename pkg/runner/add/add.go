// Package add starts new journal entries from the command line.
package add

import (
	"context"
	"errors"
	"io"
	"strings"

	"tableflip.dev/freewrite/pkg/entry"
	"tableflip.dev/freewrite/pkg/printers"
	"tableflip.dev/freewrite/pkg/store"
)

type Add struct {
	Welcome bool
	Content string
	ShowID  bool

	Persistence store.Persistence
	Out         io.Writer
}

// Do creates the entry and prints it.
func (n *Add) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not add, no persistence")
	}
	if err := n.Persistence.EnsureDirectory(); err != nil {
		return err
	}

	e, err := n.Persistence.Create(n.Welcome)
	if err != nil {
		return err
	}
	if !n.Welcome && strings.TrimSpace(n.Content) != "" {
		body := entry.BlankContent + n.Content
		if err := n.Persistence.Write(e.Filename, body); err != nil {
			return err
		}
		e.SetContent(body)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.NewLine()
	pp.TitleWithCount(e.Section(), 1)
	pp.Entries(e)
	return nil
}
