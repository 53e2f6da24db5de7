package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nhle/fleet-maintenance/internal/model"
	"github.com/nhle/fleet-maintenance/internal/ui/render"
	"github.com/nhle/fleet-maintenance/internal/view"
)

func addShipFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Ship name")
	cmd.Flags().String("type", "", "Ship type, e.g. Cargo Ship")
	cmd.Flags().Int("year", 0, "Year built")
	cmd.Flags().String("status", string(model.ShipStatusOperational), "operational, scheduled, in-progress or overdue")
	cmd.Flags().String("last-inspection", "", "Last inspection date (YYYY-MM-DD)")
	cmd.Flags().String("next-maintenance", "", "Next maintenance date (YYYY-MM-DD)")
	cmd.Flags().Int("pending", 0, "Pending task count")
	cmd.Flags().String("captain", "", "Captain's name")
}

func shipStatusFlag(flags *pflag.FlagSet) (model.ShipStatus, error) {
	s, _ := flags.GetString("status")
	status := model.ShipStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown ship status %q", s)
	}
	return status, nil
}

// shipPatch builds a patch from the flags the user actually set.
func shipPatch(flags *pflag.FlagSet) (model.ShipPatch, error) {
	var p model.ShipPatch
	if flags.Changed("name") {
		v, _ := flags.GetString("name")
		p.Name = &v
	}
	if flags.Changed("type") {
		v, _ := flags.GetString("type")
		p.Type = &v
	}
	if flags.Changed("year") {
		v, _ := flags.GetInt("year")
		p.Year = &v
	}
	if flags.Changed("status") {
		v, err := shipStatusFlag(flags)
		if err != nil {
			return p, err
		}
		p.Status = &v
	}
	dates := []struct {
		flag string
		dst  **time.Time
	}{
		{"last-inspection", &p.LastInspection},
		{"next-maintenance", &p.NextMaintenance},
	}
	for _, f := range dates {
		if !flags.Changed(f.flag) {
			continue
		}
		s, _ := flags.GetString(f.flag)
		d, err := parseDate(s)
		if err != nil {
			return p, err
		}
		*f.dst = &d
	}
	if flags.Changed("pending") {
		v, _ := flags.GetInt("pending")
		p.PendingTasks = &v
	}
	if flags.Changed("captain") {
		v, _ := flags.GetString("captain")
		p.Captain = &v
	}
	return p, nil
}

var shipCmd = &cobra.Command{
	Use:   "ship",
	Short: "Manage ships",
}

var shipListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ships",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newSessionApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		search, _ := cmd.Flags().GetString("search")
		status, _ := cmd.Flags().GetString("status")
		ships := view.ShipQuery{Search: search, Status: status}.Apply(a.Ships.List())
		fmt.Fprintln(cmd.OutOrStdout(), render.Ships(ships))
		return nil
	},
}

var shipShowCmd = &cobra.Command{
	Use:   "show <ship-id>",
	Short: "Show a ship and its maintenance tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newSessionApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		ship, tasks, ok := a.ShipDetail(args[0])
		if !ok {
			return fmt.Errorf("ship %s not found", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.Ship(ship, tasks))
		return nil
	},
}

var shipAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a ship to the fleet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		flags := cmd.Flags()

		name, _ := flags.GetString("name")
		if name == "" {
			return fmt.Errorf("--name is required")
		}
		patch, err := shipPatch(flags)
		if err != nil {
			return err
		}
		status, err := shipStatusFlag(flags)
		if err != nil {
			return err
		}

		a, err := newSessionApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		in := model.ShipInput{Name: name, Status: status}
		in.Type, _ = flags.GetString("type")
		in.Year, _ = flags.GetInt("year")
		in.PendingTasks, _ = flags.GetInt("pending")
		in.Captain, _ = flags.GetString("captain")
		if patch.LastInspection != nil {
			in.LastInspection = *patch.LastInspection
		}
		if patch.NextMaintenance != nil {
			in.NextMaintenance = *patch.NextMaintenance
		}

		ship, err := a.Ships.Add(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added ship %s (%s)\n", ship.Name, ship.ID)
		return nil
	},
}

var shipUpdateCmd = &cobra.Command{
	Use:   "update <ship-id>",
	Short: "Change ship details; only the given flags are applied",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		patch, err := shipPatch(cmd.Flags())
		if err != nil {
			return err
		}

		a, err := newSessionApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if _, ok := a.Ships.Get(args[0]); !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "No ship %s; nothing changed\n", args[0])
			return nil
		}
		if err := a.Ships.Update(ctx, args[0], patch); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated ship %s\n", args[0])
		return nil
	},
}

var shipDeleteCmd = &cobra.Command{
	Use:   "delete <ship-id>",
	Short: "Remove a ship from the fleet (its tasks are kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newSessionApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if _, ok := a.Ships.Get(args[0]); !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "No ship %s; nothing changed\n", args[0])
			return nil
		}
		if err := a.Ships.Delete(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted ship %s\n", args[0])
		return nil
	},
}
