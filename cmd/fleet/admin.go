package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/fleet-maintenance/internal/metrics"
	"github.com/nhle/fleet-maintenance/internal/model"
	"github.com/nhle/fleet-maintenance/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo fleet, or import ships and tasks from a TOML file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newSessionApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		file, _ := cmd.Flags().GetString("file")
		if file == "" {
			seeded, err := seed.SeedDemo(ctx, a.Ships, a.Tasks)
			if err != nil {
				return err
			}
			if !seeded {
				fmt.Fprintln(cmd.OutOrStdout(), "Ships already stored; demo fleet not loaded")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Demo fleet loaded")
			return nil
		}

		fx, err := seed.LoadFile(file)
		if err != nil {
			return err
		}
		res, err := seed.Import(ctx, fx, a.Ships, a.Tasks)
		if err != nil {
			return err
		}
		a.Logger().Info("fixture imported", "file", file, "ships", res.Ships, "tasks", res.Tasks)
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d ships and %d tasks\n", res.Ships, res.Tasks)
		return nil
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Print fleet metrics in Prometheus text format",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		reg, err := a.Metrics()
		if err != nil {
			return err
		}
		return metrics.WriteText(cmd.OutOrStdout(), reg)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), configPath)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "storage.path             %s\n", cfg.Storage.Path)
		fmt.Fprintf(out, "log.level                %s\n", cfg.Log.Level)
		fmt.Fprintf(out, "log.dir                  %s\n", cfg.Log.Dir)
		fmt.Fprintf(out, "dashboard.preview_limit  %d\n", cfg.Dashboard.PreviewLimit)
		fmt.Fprintf(out, "display.theme            %s\n", cfg.Display.Theme)
		fmt.Fprintf(out, "seed.demo                %t\n", cfg.Seed.Demo)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := model.SaveConfig(configPath, model.DefaultAppConfig()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration initialized at %s\n", configPath)
		return nil
	},
}
