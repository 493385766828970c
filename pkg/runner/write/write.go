// Package write replaces or extends an entry with text from a reader.
package write

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"tableflip.dev/freewrite/pkg/app"
	"tableflip.dev/freewrite/pkg/store"
)

type Write struct {
	Ref         string
	Append      bool
	In          io.Reader
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Write) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not write, no persistence")
	}
	e, ok := app.Find(n.Persistence.List(ctx), n.Ref)
	if !ok {
		return fmt.Errorf("%w: %s", app.ErrEntryNotFound, n.Ref)
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	in := n.In
	if in == nil {
		in = os.Stdin
	}
	if f, ok := in.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		_, _ = fmt.Fprintln(out, color.New(color.Faint).Sprint("Reading from the terminal, finish with Ctrl-D."))
	}

	b, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	body := string(b)
	if n.Append {
		existing, err := n.Persistence.Read(e.Filename)
		if err != nil {
			return err
		}
		body = existing + body
	}
	if err := n.Persistence.Write(e.Filename, body); err != nil {
		return err
	}
	e.SetContent(body)
	_, _ = fmt.Fprintf(out, "%s %s\n", color.New(color.Bold).Sprint(e.DisplayDate()), e.Preview)
	return nil
}
