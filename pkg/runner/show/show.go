// Package show prints a single entry.
package show

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/freewrite/pkg/app"
	"tableflip.dev/freewrite/pkg/printers"
	"tableflip.dev/freewrite/pkg/store"
)

type Show struct {
	Ref         string
	Raw         bool
	ShowID      bool
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Show) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not show, no persistence")
	}
	e, ok := app.Find(n.Persistence.List(ctx), n.Ref)
	if !ok {
		return fmt.Errorf("%w: %s", app.ErrEntryNotFound, n.Ref)
	}
	content, err := n.Persistence.Read(e.Filename)
	if err != nil {
		return err
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	if n.Raw {
		_, err := io.WriteString(out, content)
		return err
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: out}
	pp.NewLine()
	pp.Entry(e, content)
	return nil
}
