package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/gymsync/internal/client/cli"
)

// kindCommands общие подкоманды list/show/delete для типа записи
func kindCommands(run wrapFunc, kind string) []*cobra.Command {
	var force bool

	del := &cobra.Command{
		Use:   "delete <local-id>",
		Short: "Delete a " + kind,
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, a *app, args []string) error {
			return a.cli.Delete(ctx, kind, args[0], force)
		}),
	}
	del.Flags().BoolVarP(&force, "force", "f", false, "do not ask for confirmation")

	return []*cobra.Command{
		{
			Use:   "list",
			Short: "List " + kind + " records",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, a *app, _ []string) error {
				return a.cli.List(ctx, kind)
			}),
		},
		{
			Use:   "show <local-id>",
			Short: "Show a " + kind,
			Args:  cobra.ExactArgs(1),
			RunE: run(func(ctx context.Context, a *app, args []string) error {
				return a.cli.Show(ctx, kind, args[0])
			}),
		},
		del,
	}
}

func newTemplateCmd(run wrapFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"templates"},
		Short:   "Manage workout templates",
	}

	var in cli.TemplateInput
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a workout template",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, a *app, _ []string) error {
			return a.cli.AddTemplate(ctx, in)
		}),
	}
	add.Flags().StringVar(&in.Name, "name", "", "template name")
	add.Flags().StringVar(&in.Description, "description", "", "description")
	add.Flags().StringArrayVarP(&in.Exercises, "exercise", "e", nil, `exercise as "name:SETSxREPS[@KG]", repeatable`)
	_ = add.MarkFlagRequired("name")

	var name, description string
	update := &cobra.Command{
		Use:   "update <local-id>",
		Short: "Rename a template or change its description",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, a *app, args []string) error {
			return a.cli.UpdateTemplate(ctx, args[0], name, description)
		}),
	}
	update.Flags().StringVar(&name, "name", "", "new name")
	update.Flags().StringVar(&description, "description", "", "new description")
	update.MarkFlagsOneRequired("name", "description")

	cmd.AddCommand(add, update)
	cmd.AddCommand(kindCommands(run, "template")...)
	return cmd
}

func newInstanceCmd(run wrapFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "instance",
		Aliases: []string{"workout", "instances"},
		Short:   "Manage performed workouts",
	}

	var (
		in      cli.InstanceInput
		started string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a workout",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, a *app, _ []string) error {
			at, err := parseTimeFlag("started", started)
			if err != nil {
				return err
			}
			in.StartedAt = at
			return a.cli.AddInstance(ctx, in)
		}),
	}
	add.Flags().StringVar(&in.Name, "name", "", "workout name (defaults to the template name)")
	add.Flags().StringVar(&in.TemplateLocalID, "template", "", "local id of the template")
	add.Flags().StringVar(&in.Notes, "notes", "", "notes")
	add.Flags().StringVar(&started, "started", "", "start time, RFC 3339 (default now)")
	add.Flags().BoolVar(&in.Completed, "completed", false, "mark the workout as completed")
	add.MarkFlagsOneRequired("name", "template")

	complete := &cobra.Command{
		Use:   "complete <local-id>",
		Short: "Mark a workout as completed",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, a *app, args []string) error {
			return a.cli.CompleteInstance(ctx, args[0])
		}),
	}

	cmd.AddCommand(add, complete)
	cmd.AddCommand(kindCommands(run, "instance")...)
	return cmd
}

func newLogCmd(run wrapFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "log",
		Aliases: []string{"logs"},
		Short:   "Manage exercise logs",
	}

	var (
		in        cli.LogInput
		performed string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Log a set, lap or interval",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, a *app, _ []string) error {
			at, err := parseTimeFlag("performed", performed)
			if err != nil {
				return err
			}
			in.PerformedAt = at
			return a.cli.AddLog(ctx, in)
		}),
	}
	f := add.Flags()
	f.StringVar(&in.ExerciseName, "exercise", "", "exercise name")
	f.StringVar(&in.InstanceLocalID, "instance", "", "local id of the workout")
	f.StringVar(&in.Notes, "notes", "", "notes")
	f.IntVar(&in.SetNumber, "set", 0, "set number")
	f.IntVar(&in.Reps, "reps", 0, "repetitions")
	f.Float64Var(&in.WeightKg, "weight", 0, "weight, kg")
	f.IntVar(&in.DurationSeconds, "duration", 0, "duration, seconds")
	f.Float64Var(&in.DistanceMeters, "distance", 0, "distance, meters")
	f.IntVar(&in.AvgHeartRate, "hr", 0, "average heart rate, bpm")
	f.StringVar(&performed, "performed", "", "time performed, RFC 3339 (default now)")
	_ = add.MarkFlagRequired("exercise")

	cmd.AddCommand(add)
	cmd.AddCommand(kindCommands(run, "log")...)
	return cmd
}

func newQueueCmd(run wrapFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect or clear changes waiting for sync",
	}

	var force bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop all pending changes; records stay local and are not sent",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, a *app, _ []string) error {
			return a.cli.QueueClear(ctx, force)
		}),
	}
	clearCmd.Flags().BoolVarP(&force, "force", "f", false, "do not ask for confirmation")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List pending changes",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, a *app, _ []string) error {
				return a.cli.QueueList(ctx)
			}),
		},
		clearCmd,
	)
	return cmd
}

// parseTimeFlag пустое значение означает "сейчас"
func parseTimeFlag(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return t.UTC(), nil
}
