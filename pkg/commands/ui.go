package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/freewrite/pkg/runner/ui"
	"tableflip.dev/freewrite/pkg/timeutil"
)

type uiOptions struct {
	Debug bool
	Timer string
}

func addUI(topLevel *cobra.Command) {
	uo := &uiOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the writing interface",
		Example: `
freewrite ui
freewrite ui --timer 20m
FREEWRITE_LOGPATH=/tmp/freewrite.log freewrite ui --debug
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, uo)
		},
	}

	cmd.Flags().BoolVar(&uo.Debug, "debug", false, "Log debug events to the configured log file.")
	cmd.Flags().StringVar(&uo.Timer, "timer", "", "Timer length, like 20m. Defaults to the configured timer.")

	topLevel.AddCommand(cmd)
}

func runUI(cmd *cobra.Command, uo *uiOptions) error {
	d, err := timeutil.ParseWindow(uo.Timer)
	if err != nil {
		return fmt.Errorf("--timer: %w", err)
	}
	i := ui.UI{Debug: uo.Debug, Timer: d}
	return i.Do(cmd.Context())
}
