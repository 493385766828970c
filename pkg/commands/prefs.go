package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/freewrite/pkg/prefs"
	runner "tableflip.dev/freewrite/pkg/runner/prefs"
	"tableflip.dev/freewrite/pkg/store"
)

func addPrefs(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "prefs [key] [value]",
		Short: "show or change display preferences",
		Long: "Show all preferences, one preference, or set one.\n\nKeys: " +
			strings.Join(runner.Keys, ", "),
		Example: `
freewrite prefs
freewrite prefs colorScheme dark
freewrite prefs fontSize 20
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 2 {
				return errors.New("expected at most a key and a value")
			}
			return nil
		},
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return runner.Keys, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			s := runner.Prefs{Store: prefs.NewFileStore(cfg.PrefsPath())}
			if len(args) > 0 {
				s.Key = args[0]
			}
			if len(args) > 1 {
				s.Value = &args[1]
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
