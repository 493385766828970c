package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/freewrite/pkg/runner/calendar"
	"tableflip.dev/freewrite/pkg/store"
)

func addCalendar(topLevel *cobra.Command) {
	year := false
	on := ""

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "show which days have writing",
		Example: `
freewrite calendar
freewrite calendar --on 2025-03
freewrite calendar --year
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s := calendar.Calendar{Year: year}
			if on != "" {
				t, err := time.ParseInLocation("2006-01", on, time.Local)
				if err != nil {
					return fmt.Errorf("--on expects YYYY-MM: %w", err)
				}
				s.On = t
			}
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s.Persistence = p
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVarP(&year, "year", "y", false, "Show the whole year.")
	cmd.Flags().StringVar(&on, "on", "", "Month to show, as YYYY-MM.")

	topLevel.AddCommand(cmd)
}
