package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/freewrite/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "freewrite",
		Short: base.Wrap80("Distraction-free timed writing in the terminal."),
		Long: base.Wrap80("Freewrite opens a blank page and a fifteen minute timer. " +
			"Entries are plain markdown files saved as you type. " +
			"Run without a subcommand to start writing."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, &uiOptions{})
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addList(topLevel)
	addShow(topLevel)
	addNew(topLevel)
	addWrite(topLevel)
	addDelete(topLevel)
	addExport(topLevel)
	addInfo(topLevel)
	addPrefs(topLevel)
	addKey(topLevel)
	addCalendar(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
