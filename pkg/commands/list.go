package commands

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/freewrite/pkg/commands/options"
	"tableflip.dev/freewrite/pkg/runner/get"
	"tableflip.dev/freewrite/pkg/store"
	"tableflip.dev/freewrite/pkg/timeutil"
)

func addList(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}
	since := ""

	cmd := &cobra.Command{
		Use:     "list [query]",
		Aliases: []string{"get", "ls"},
		Short:   "list entries grouped by month",
		Long: `List entries newest first, grouped by month and year.

An optional query keeps entries whose preview or date contains it,
ignoring case.`,
		Example: `
freewrite list
freewrite list march --show-id
freewrite list --json
freewrite list --since 1w
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			window, err := timeutil.ParseWindow(since)
			if err != nil {
				return oo.HandleError(err)
			}
			p, err := store.Load(nil)
			if err != nil {
				return oo.HandleError(err)
			}
			s := get.Get{
				ShowID:      io.ShowID,
				JSON:        oo.JSON,
				Query:       strings.Join(args, " "),
				Since:       timeutil.Since(time.Now(), window),
				Persistence: p,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "Only entries from this window, like 3d or 2w.")
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
