package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/freewrite/pkg/runner/remove"
	"tableflip.dev/freewrite/pkg/store"
)

func addDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete [entry]",
		Aliases: []string{"rm"},
		Short:   "delete an entry",
		Example: `
freewrite delete 0b9c
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: entryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ref, err := entryRef(cmd, args, "Delete")
			if err != nil {
				return err
			}
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := remove.Remove{
				Ref:         ref,
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
