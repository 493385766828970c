// Package export copies an entry out of the journal and shares it.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/freewrite/pkg/app"
	"tableflip.dev/freewrite/pkg/share"
	"tableflip.dev/freewrite/pkg/store"
)

type Export struct {
	Ref         string
	Sharer      share.Sharer
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Export) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not export, no persistence")
	}
	e, ok := app.Find(n.Persistence.List(ctx), n.Ref)
	if !ok {
		return fmt.Errorf("%w: %s", app.ErrEntryNotFound, n.Ref)
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	sharer := n.Sharer
	if sharer == nil {
		sharer = share.Printer{Out: out}
	}
	if !sharer.Available(ctx) {
		return share.ErrUnavailable
	}

	path, err := n.Persistence.Export(e.Filename)
	if err != nil {
		return err
	}
	return sharer.Share(ctx, share.Request{
		Path:     path,
		MIMEType: share.MIMEMarkdown,
		Title:    share.DialogTitle,
	})
}
