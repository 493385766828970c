package commands

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/freewrite/pkg/pick"
	"tableflip.dev/freewrite/pkg/store"
)

// entryRef returns the entry named on the command line, or prompts for one
// when stdin is a terminal.
func entryRef(cmd *cobra.Command, args []string, label string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return "", errors.New("requires one entry id")
	}
	p, err := store.Load(nil)
	if err != nil {
		return "", err
	}
	e, err := pick.Entry(label, p.List(cmd.Context()), f, cmd.OutOrStdout())
	if err != nil {
		return "", err
	}
	return e.ID, nil
}
