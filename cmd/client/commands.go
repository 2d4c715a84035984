package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/iudanet/gymsync/internal/client/cli"
)

// skipSetup аннотация команд, которым не нужны хранилище и конфиг
const skipSetup = "skip-setup"

// runner получает собранное приложение
type runner func(ctx context.Context, a *app, args []string) error

// wrapFunc превращает runner в RunE
type wrapFunc func(runner) func(cmd *cobra.Command, args []string) error

// newRootCmd builds the command tree. cleanup closes whatever the executed
// command opened and must be called after Execute, also on error.
func newRootCmd() (root *cobra.Command, cleanup func() error) {
	var (
		configFile string
		a          *app
	)

	root = &cobra.Command{
		Use:          "gymsync",
		Short:        "Offline-first workout log with background sync",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipSetup] != "" {
				return nil
			}
			cfg, err := loadConfig(cmd, configFile)
			if err != nil {
				return err
			}
			a, err = newApp(cmd.Context(), cfg)
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (yaml, toml or json)")
	pf.String("data-dir", "", "directory for the local database")
	pf.String("server", "", "sync server URL")
	pf.String("account", "", "account handle or id")
	pf.String("token", "", "bearer token for the sync server")
	pf.String("log-level", "", "log level: debug, info, warn, error")

	// run оборачивает команду, которой нужно приложение
	var run wrapFunc = func(fn runner) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			return fn(cmd.Context(), a, args)
		}
	}

	root.AddCommand(
		newTemplateCmd(run),
		newInstanceCmd(run),
		newLogCmd(run),
		newQueueCmd(run),
		newImportCmd(run),
		&cobra.Command{
			Use:   "sync",
			Short: "Send pending changes to the server now",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, a *app, _ []string) error {
				return a.cli.Sync(ctx)
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show sync state, pending changes and the server ledger",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, a *app, _ []string) error {
				return a.cli.Status(ctx)
			}),
		},
		&cobra.Command{
			Use:   "pull",
			Short: "Show records stored on the server",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, a *app, _ []string) error {
				return a.cli.Pull(ctx)
			}),
		},
		&cobra.Command{
			Use:   "watch",
			Short: "Run connectivity probes and sync automatically until interrupted",
			Args:  cobra.NoArgs,
			RunE:  run(runWatch),
		},
		&cobra.Command{
			Use:         "version",
			Short:       "Show version information",
			Args:        cobra.NoArgs,
			Annotations: map[string]string{skipSetup: "true"},
			Run: func(cmd *cobra.Command, args []string) {
				printVersion()
			},
		},
	)

	cleanup = func() error {
		if a == nil {
			return nil
		}
		err := a.Close()
		a = nil
		return err
	}
	return root, cleanup
}

func newImportCmd(run wrapFunc) *cobra.Command {
	var instance string
	cmd := &cobra.Command{
		Use:   "import <activity.json>",
		Short: "Import laps of a decoded activity file as exercise logs",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, a *app, args []string) error {
			return a.cli.Import(ctx, args[0], instance)
		}),
	}
	cmd.Flags().StringVar(&instance, "instance", "", "local id of the workout the laps belong to")
	return cmd
}

// runWatch держит монитор и оркестратор до отмены контекста
func runWatch(ctx context.Context, a *app, _ []string) error {
	if a.orch == nil {
		return cli.ErrNoAccount
	}

	transitions, unsubscribe := a.monitor.Subscribe()
	defer unsubscribe()

	fmt.Printf("Watching %s as %s. Press Ctrl+C to stop.\n", a.cfg.ServerURL, a.cfg.Account)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.monitor.Run(gctx) })
	g.Go(func() error { return a.orch.Start(gctx) })
	// Правки приходят из других процессов gymsync
	g.Go(func() error {
		if err := a.queue.Follow(gctx, a.store.Path()); err != nil {
			a.log.Warn("Queue follower stopped, edits from other processes wait for the next trigger", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case tr := <-transitions:
				state := "offline"
				if tr.Online {
					state = "online (" + string(tr.Quality) + ")"
				}
				fmt.Printf("%s  server is %s\n", tr.At.Local().Format(time.TimeOnly), state)
			}
		}
	})

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
