// Package info reports where freewrite keeps its files.
package info

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"

	"tableflip.dev/freewrite/pkg/printers"
	"tableflip.dev/freewrite/pkg/store"
)

type Info struct {
	Config      store.Config
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("FREEWRITE_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "FREEWRITE_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "FREEWRITE_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	if n.Persistence == nil {
		return fmt.Errorf("failed to create persistence object")
	}

	entries := n.Persistence.List(ctx)
	rows := [][2]string{
		{"journal", n.Persistence.BasePath()},
		{"exports", n.Config.ExportPath()},
		{"preferences", n.Config.PrefsPath()},
		{"log", n.Config.LogPath()},
		{"timer", n.Config.TimerDuration().String()},
		{"entries", strconv.Itoa(len(entries))},
	}
	if len(entries) > 0 {
		rows = append(rows,
			[2]string{"newest", entries[0].Created.Format("2006-01-02 15:04:05")},
			[2]string{"oldest", entries[len(entries)-1].Created.Format("2006-01-02 15:04:05")},
		)
	}

	pp := printers.PrettyPrint{Out: out}
	pp.NewLine()
	pp.Details(rows)
	return nil
}
