// Package remove deletes entries.
package remove

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/freewrite/pkg/app"
	"tableflip.dev/freewrite/pkg/collection"
	"tableflip.dev/freewrite/pkg/printers"
	"tableflip.dev/freewrite/pkg/store"
)

type Remove struct {
	Ref         string
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not delete, no persistence")
	}
	e, ok := app.Find(n.Persistence.List(ctx), n.Ref)
	if !ok {
		return fmt.Errorf("%w: %s", app.ErrEntryNotFound, n.Ref)
	}
	if err := n.Persistence.Delete(e.Filename); err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true, Out: n.Out}
	pp.NewLine()
	pp.Sections(collection.Sections(n.Persistence.List(ctx), "")...)
	return nil
}
