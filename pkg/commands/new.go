package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/freewrite/pkg/commands/options"
	"tableflip.dev/freewrite/pkg/runner/add"
	"tableflip.dev/freewrite/pkg/store"
)

func addNew(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	welcome := false

	cmd := &cobra.Command{
		Use:     "new [text]",
		Aliases: []string{"add"},
		Short:   "create an entry",
		Example: `
freewrite new
freewrite new "the morning was loud"
freewrite new --welcome
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := add.Add{
				Welcome:     welcome,
				Content:     strings.Join(args, " "),
				ShowID:      io.ShowID,
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&welcome, "welcome", false, "Seed the entry with the welcome text.")
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
