// Package get lists journal entries grouped by month.
package get

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/freewrite/pkg/collection"
	"tableflip.dev/freewrite/pkg/printers"
	"tableflip.dev/freewrite/pkg/store"
)

type Get struct {
	ShowID      bool
	JSON        bool
	Query       string
	Since       time.Time
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Get) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not get, no persistence")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	all := collection.Since(n.Persistence.List(ctx), n.Since)
	sections := collection.Sections(all, n.Query)

	if n.JSON {
		if sections == nil {
			sections = []collection.Section{}
		}
		b, err := json.MarshalIndent(sections, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: out}
	pp.NewLine()
	pp.Sections(sections...)
	return nil
}
