package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
)

// Pull показывает, что хранится на сервере для аккаунта.
// Локальное хранилище не меняется.
func (c *Cli) Pull(ctx context.Context) error {
	if c.remote == nil || c.account == "" {
		return ErrNoAccount
	}

	c.io.Println("=== Server Data ===")

	resp, err := c.remote.Pull(ctx, c.account)
	if err != nil {
		return fmt.Errorf("failed to fetch server data: %w", err)
	}
	if resp.Data == nil {
		c.io.Println("No data on the server.")
		return nil
	}

	d := resp.Data
	c.io.Printf("Templates: %d, workouts: %d, logs: %d\n\n",
		len(d.WorkoutTemplates), len(d.WorkoutInstances), len(d.ExerciseLogs))

	w := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tSERVER ID\tLOCAL ID\tNAME")
	for _, t := range d.WorkoutTemplates {
		fmt.Fprintf(w, "template\t%s\t%s\t%s\n", t.ID, t.LocalID, t.Name)
	}
	for _, i := range d.WorkoutInstances {
		fmt.Fprintf(w, "instance\t%s\t%s\t%s\n", i.ID, i.LocalID, i.Name)
	}
	for _, l := range d.ExerciseLogs {
		fmt.Fprintf(w, "log\t%s\t%s\t%s\n", l.ID, l.LocalID, l.ExerciseName)
	}
	return w.Flush()
}
