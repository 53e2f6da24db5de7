package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/fleet-maintenance/internal/app"
	"github.com/nhle/fleet-maintenance/internal/model"
	"github.com/nhle/fleet-maintenance/internal/theme"
	"github.com/nhle/fleet-maintenance/internal/ui/render"
)

// errNotLoggedIn is returned by commands that need a signed-in user.
var errNotLoggedIn = errors.New("not logged in: run `fleet login` first")

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file named by --config and applies the
// display settings.
func loadConfig() (*model.AppConfig, error) {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if cfg.Display.Theme == "plain" {
		theme.Plain()
	}
	return cfg, nil
}

// newApp reads the config and opens the App. The caller must defer
// a.Close().
func newApp(ctx context.Context) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	a, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

// newSessionApp opens the App and checks that a user is signed in.
func newSessionApp(ctx context.Context) (*app.App, error) {
	a, err := newApp(ctx)
	if err != nil {
		return nil, err
	}
	user, err := a.Auth.CurrentUser(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	if user == nil {
		a.Close()
		return nil, errNotLoggedIn
	}
	return a, nil
}

// parseDate reads a YYYY-MM-DD flag value as midnight UTC.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

var rootCmd = &cobra.Command{
	Use:          "fleet",
	Short:        "Track ship maintenance across a fleet",
	SilenceUsage: true,
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show fleet counters and upcoming and overdue maintenance",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newSessionApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		d := a.Dashboard()
		fmt.Fprintln(cmd.OutOrStdout(), render.Dashboard(d.Stats, d.Upcoming, d.Overdue, d.Unread))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", model.DefaultConfigPath(), "Path to the config file")

	// auth
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().String("email", "", "Account email")
	loginCmd.Flags().String("password", "", "Account password (prompted when omitted)")
	loginCmd.Flags().Bool("remember", false, "Remember the password in the system keyring")
	rootCmd.AddCommand(logoutCmd)
	logoutCmd.Flags().Bool("forget", false, "Also remove the remembered password")
	rootCmd.AddCommand(whoamiCmd)

	rootCmd.AddCommand(dashboardCmd)

	// ship subcommands
	shipCmd.AddCommand(shipListCmd)
	shipListCmd.Flags().String("search", "", "Match name or type")
	shipListCmd.Flags().String("status", "all", "Filter by status")
	shipCmd.AddCommand(shipShowCmd)
	shipCmd.AddCommand(shipAddCmd)
	addShipFlags(shipAddCmd)
	shipCmd.AddCommand(shipUpdateCmd)
	addShipFlags(shipUpdateCmd)
	shipCmd.AddCommand(shipDeleteCmd)
	rootCmd.AddCommand(shipCmd)

	// task subcommands
	taskCmd.AddCommand(taskListCmd)
	taskListCmd.Flags().String("search", "", "Match title, description or ship name")
	taskListCmd.Flags().String("status", "all", "Filter by status")
	taskListCmd.Flags().String("priority", "all", "Filter by priority")
	taskListCmd.Flags().String("ship", "", "Only tasks for this ship ID")
	taskCmd.AddCommand(taskAddCmd)
	addTaskFlags(taskAddCmd)
	taskCmd.AddCommand(taskUpdateCmd)
	addTaskFlags(taskUpdateCmd)
	taskCmd.AddCommand(taskRescheduleCmd)
	taskCmd.AddCommand(taskStatusCmd)
	taskCmd.AddCommand(taskDeleteCmd)
	rootCmd.AddCommand(taskCmd)

	// notification subcommands
	notificationsCmd.AddCommand(notificationsListCmd)
	notificationsListCmd.Flags().Bool("unread", false, "Only unread notifications")
	notificationsCmd.AddCommand(notificationsReadCmd)
	notificationsCmd.AddCommand(notificationsReadAllCmd)
	notificationsCmd.AddCommand(notificationsDeleteCmd)
	notificationsCmd.AddCommand(notificationsClearCmd)
	notificationsCmd.AddCommand(notificationsDigestCmd)
	notificationsDigestCmd.Flags().String("from", "fleet@localhost", "Sender address")
	notificationsDigestCmd.Flags().StringSlice("to", nil, "Recipient addresses (default: the signed-in user)")
	notificationsDigestCmd.Flags().Bool("mark-read", false, "Mark the included notifications as read")
	rootCmd.AddCommand(notificationsCmd)

	rootCmd.AddCommand(calendarCmd)
	calendarCmd.Flags().Int("year", 0, "Year to show (default: current)")
	calendarCmd.Flags().Int("month", 0, "Month to show, 1-12 (default: current)")
	calendarCmd.Flags().BoolP("interactive", "i", false, "Browse months interactively")

	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().String("file", "", "Import ships and tasks from a TOML fixture")

	rootCmd.AddCommand(metricsCmd)

	// config subcommands
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
