package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/freewrite/pkg/commands/options"
	"tableflip.dev/freewrite/pkg/runner/show"
	"tableflip.dev/freewrite/pkg/store"
)

func addShow(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	raw := false

	cmd := &cobra.Command{
		Use:     "show [entry]",
		Aliases: []string{"cat"},
		Short:   "print an entry",
		Long:    "Print an entry by id, id prefix or filename.",
		Example: `
freewrite show 0b9c
freewrite show [2025-03-14-09-00-00]-[0b9c4e6a-1111-2222-3333-444455556666].md --raw
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: entryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ref, err := entryRef(cmd, args, "Show")
			if err != nil {
				return err
			}
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := show.Show{
				Ref:         ref,
				Raw:         raw,
				ShowID:      io.ShowID,
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print only the entry text.")
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
