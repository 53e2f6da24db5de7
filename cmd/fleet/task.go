package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nhle/fleet-maintenance/internal/app"
	"github.com/nhle/fleet-maintenance/internal/model"
	"github.com/nhle/fleet-maintenance/internal/ui/render"
	"github.com/nhle/fleet-maintenance/internal/view"
)

func addTaskFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "Task title")
	cmd.Flags().String("description", "", "Task description")
	cmd.Flags().String("ship", "", "ID of the ship the task is for")
	cmd.Flags().String("status", string(model.TaskStatusScheduled), "scheduled, in-progress, completed or overdue")
	cmd.Flags().String("priority", string(model.PriorityMedium), "high, medium or low")
	cmd.Flags().String("assigned-to", "", "Engineer responsible")
	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().Float64("hours", 0, "Estimated hours")
}

// lookupShip resolves a ship ID so the task can snapshot its name.
func lookupShip(a *app.App, id string) (model.Ship, error) {
	ship, ok := a.Ships.Get(id)
	if !ok {
		return model.Ship{}, fmt.Errorf("ship %s not found", id)
	}
	return ship, nil
}

func taskStatusArg(s string) (model.TaskStatus, error) {
	status := model.TaskStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown task status %q", s)
	}
	return status, nil
}

// taskPatch builds a patch from the flags the user actually set. Moving a
// task to another ship refreshes the ship name snapshot.
func taskPatch(a *app.App, flags *pflag.FlagSet) (model.TaskPatch, error) {
	var p model.TaskPatch
	str := func(name string, dst **string) {
		if flags.Changed(name) {
			v, _ := flags.GetString(name)
			*dst = &v
		}
	}
	str("title", &p.Title)
	str("description", &p.Description)
	str("assigned-to", &p.AssignedTo)

	if flags.Changed("ship") {
		id, _ := flags.GetString("ship")
		ship, err := lookupShip(a, id)
		if err != nil {
			return p, err
		}
		p.ShipID, p.ShipName = &ship.ID, &ship.Name
	}
	if flags.Changed("status") {
		s, _ := flags.GetString("status")
		v, err := taskStatusArg(s)
		if err != nil {
			return p, err
		}
		p.Status = &v
	}
	if flags.Changed("priority") {
		s, _ := flags.GetString("priority")
		v := model.Priority(s)
		if !v.Valid() {
			return p, fmt.Errorf("unknown task priority %q", s)
		}
		p.Priority = &v
	}
	if flags.Changed("due") {
		s, _ := flags.GetString("due")
		d, err := parseDate(s)
		if err != nil {
			return p, err
		}
		p.DueDate = &d
	}
	if flags.Changed("hours") {
		v, _ := flags.GetFloat64("hours")
		if v <= 0 {
			return p, fmt.Errorf("estimated hours must be positive, got %v", v)
		}
		p.EstimatedHours = &v
	}
	return p, nil
}

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage maintenance tasks",
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List maintenance tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newSessionApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		flags := cmd.Flags()
		q := view.TaskQuery{}
		q.Search, _ = flags.GetString("search")
		q.Status, _ = flags.GetString("status")
		q.Priority, _ = flags.GetString("priority")

		tasks := a.Tasks.List()
		if ship, _ := flags.GetString("ship"); ship != "" {
			tasks = a.Tasks.ForShip(ship)
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.Tasks(q.Apply(tasks)))
		return nil
	},
}

var taskAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Schedule a maintenance task",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		flags := cmd.Flags()

		a, err := newSessionApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		shipID, _ := flags.GetString("ship")
		ship, err := lookupShip(a, shipID)
		if err != nil {
			return err
		}
		dueFlag, _ := flags.GetString("due")
		due, err := parseDate(dueFlag)
		if err != nil {
			return err
		}
		status, _ := flags.GetString("status")
		priority, _ := flags.GetString("priority")

		in := model.TaskInput{
			ShipID:   ship.ID,
			ShipName: ship.Name,
			Status:   model.TaskStatus(status),
			Priority: model.Priority(priority),
			DueDate:  due,
		}
		in.Title, _ = flags.GetString("title")
		in.Description, _ = flags.GetString("description")
		in.AssignedTo, _ = flags.GetString("assigned-to")
		in.EstimatedHours, _ = flags.GetFloat64("hours")
		if err := in.Validate(); err != nil {
			return err
		}

		task, err := a.Tasks.Add(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Scheduled %q for %s (%s)\n", task.Title, model.FormatDate(task.DueDate), task.ID)
		return nil
	},
}

var taskUpdateCmd = &cobra.Command{
	Use:   "update <task-id>",
	Short: "Change task details; only the given flags are applied",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newSessionApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		patch, err := taskPatch(a, cmd.Flags())
		if err != nil {
			return err
		}
		if _, ok := a.Tasks.Get(args[0]); !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "No task %s; nothing changed\n", args[0])
			return nil
		}
		if err := a.Tasks.Update(ctx, args[0], patch); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s\n", args[0])
		return nil
	},
}

var taskRescheduleCmd = &cobra.Command{
	Use:   "reschedule <task-id> <YYYY-MM-DD>",
	Short: "Move a task to a new due date",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		due, err := parseDate(args[1])
		if err != nil {
			return err
		}

		a, err := newSessionApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if _, ok := a.Tasks.Get(args[0]); !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "No task %s; nothing changed\n", args[0])
			return nil
		}
		if err := a.Tasks.Reschedule(ctx, args[0], due); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Rescheduled task %s to %s\n", args[0], model.FormatDate(due))
		return nil
	},
}

var taskStatusCmd = &cobra.Command{
	Use:   "status <task-id> <status>",
	Short: "Set a task's status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		status, err := taskStatusArg(args[1])
		if err != nil {
			return err
		}

		a, err := newSessionApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if _, ok := a.Tasks.Get(args[0]); !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "No task %s; nothing changed\n", args[0])
			return nil
		}
		if err := a.Tasks.UpdateStatus(ctx, args[0], status); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Task %s is now %s\n", args[0], status)
		return nil
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <task-id>",
	Short: "Delete a maintenance task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newSessionApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if _, ok := a.Tasks.Get(args[0]); !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "No task %s; nothing changed\n", args[0])
			return nil
		}
		if err := a.Tasks.Delete(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", args[0])
		return nil
	},
}
