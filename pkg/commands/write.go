package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/freewrite/pkg/runner/write"
	"tableflip.dev/freewrite/pkg/store"
)

func addWrite(topLevel *cobra.Command) {
	appendText := false

	cmd := &cobra.Command{
		Use:   "write <entry>",
		Short: "replace or extend an entry from stdin",
		Example: `
echo "more words" | freewrite write 0b9c --append
freewrite write 0b9c < draft.md
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires one entry id")
			}
			return nil
		},
		ValidArgsFunction: entryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := write.Write{
				Ref:         args[0],
				Append:      appendText,
				In:          cmd.InOrStdin(),
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVarP(&appendText, "append", "a", false, "Append to the entry instead of replacing it.")

	topLevel.AddCommand(cmd)
}
