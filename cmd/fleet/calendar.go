package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhle/fleet-maintenance/internal/keys"
	"github.com/nhle/fleet-maintenance/internal/ui/calendar"
	"github.com/nhle/fleet-maintenance/internal/ui/render"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show the maintenance calendar for a month",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		year, _ := flags.GetInt("year")
		month, _ := flags.GetInt("month")
		if month < 0 || month > 12 {
			return fmt.Errorf("--month must be between 1 and 12, got %d", month)
		}

		a, err := newSessionApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		m := a.Calendar(year, time.Month(month))

		if interactive, _ := flags.GetBool("interactive"); interactive {
			now := a.Now()
			start := now
			if m.Year != now.Year() || m.Month != now.Month() {
				start = time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, now.Location())
			}
			browser := calendar.New(a.Tasks.List(), now, start, keys.DefaultKeyMap())
			_, err := tea.NewProgram(browser, tea.WithAltScreen()).Run()
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, render.Calendar(m, -1))
		fmt.Fprintln(out)
		fmt.Fprintln(out, render.MonthAgenda(m))
		return nil
	},
}
