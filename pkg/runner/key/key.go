// Package key provides CLI helpers to display the keyboard shortcuts.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/freewrite/pkg/key"
)

// Key prints the shortcut legend.
type Key struct {
	Out io.Writer
}

// Do renders the global and sidebar keys.
func (k *Key) Do(ctx context.Context) error {
	if k.Out == nil {
		k.Out = color.Output
	}
	_, _ = fmt.Fprintln(k.Out, "")
	k.Key(ctx, key.Global, "Writing")
	_, _ = fmt.Fprintln(k.Out, "")
	k.Key(ctx, key.Sidebar, "History")
	_, _ = fmt.Fprintln(k.Out, "")
	return nil
}

// Key renders the bindings of one scope as a table.
func (k *Key) Key(_ context.Context, scope key.Scope, title string) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint(title), bold.Sprint("Does"))
	for _, b := range key.Bindings {
		if b.Scope == scope {
			tbl.AddRow(b.Label(), b.Help)
		}
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(k.Out, tbl)
}
