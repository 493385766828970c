package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/freewrite/pkg/runner/export"
	"tableflip.dev/freewrite/pkg/share"
	"tableflip.dev/freewrite/pkg/store"
)

func addExport(topLevel *cobra.Command) {
	clipboard := false

	cmd := &cobra.Command{
		Use:     "export [entry]",
		Aliases: []string{"share"},
		Short:   "copy an entry to the share directory",
		Long: `Copy an entry to the export directory and print its path. With
--clipboard the entry text is also placed on the system clipboard.`,
		Example: `
freewrite export 0b9c
freewrite export 0b9c --clipboard
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: entryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ref, err := entryRef(cmd, args, "Export")
			if err != nil {
				return err
			}
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := export.Export{
				Ref:         ref,
				Persistence: p,
			}
			if clipboard {
				s.Sharer = share.Clipboard{}
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVarP(&clipboard, "clipboard", "c", false, "Also copy the entry text to the clipboard.")

	topLevel.AddCommand(cmd)
}
