package cli

import (
	"context"
	"fmt"
	"time"

	clientsync "github.com/iudanet/gymsync/internal/client/sync"
)

// Status выводит локальное состояние синхронизации и, если сервер
// доступен, его журнал по аккаунту
func (c *Cli) Status(ctx context.Context) error {
	c.io.Println("=== Sync Status ===")
	c.io.Println()

	if c.account == "" {
		c.io.Println("Account: not configured")
	} else {
		c.io.Printf("Account: %s\n", c.account)
	}

	if c.syncer == nil {
		pending, err := c.queue.PendingCount(ctx)
		if err != nil {
			return fmt.Errorf("failed to count pending changes: %w", err)
		}
		c.io.Printf("Pending: %d change(s)\n", pending)
		return nil
	}

	st, err := c.syncer.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get sync status: %w", err)
	}

	c.io.Printf("State:   %s\n", st.State)
	if st.State == clientsync.StateSyncing {
		c.io.Printf("Progress: %d%%\n", st.Progress)
	}
	if st.LastSyncTime.IsZero() {
		c.io.Println("Last sync: never")
	} else {
		c.io.Printf("Last sync: %s\n", st.LastSyncTime.Format(time.RFC3339))
	}
	c.io.Printf("Pending: %d change(s)\n", st.PendingCount)
	if st.ConsecutiveFailures > 0 {
		c.io.Printf("Consecutive failures: %d\n", st.ConsecutiveFailures)
	}
	if st.LastError != "" {
		c.io.Printf("Last error: %s\n", st.LastError)
	}
	if st.State == clientsync.StateSuspended {
		c.io.Println()
		c.io.Println("⚠️  Automatic sync is suspended. Run 'gymsync sync' to retry.")
	}

	c.printRemoteStatus(ctx)
	return nil
}

// printRemoteStatus недоступность сервера не считается ошибкой команды
func (c *Cli) printRemoteStatus(ctx context.Context) {
	if c.remote == nil || c.account == "" {
		return
	}

	c.io.Println()
	c.io.Println("=== Server ===")

	resp, err := c.remote.Status(ctx, c.account)
	if err != nil {
		c.io.Printf("Server unavailable: %v\n", err)
		return
	}

	c.io.Printf("Last sync: %s\n", resp.LastSyncTime)
	if resp.Status != "" {
		c.io.Printf("Result:    %s\n", resp.Status)
	}
	if resp.ErrorMessage != "" {
		c.io.Printf("Error:     %s\n", resp.ErrorMessage)
	}
	if resp.SyncedCounts != nil {
		c.io.Printf("Templates: %d, workouts: %d, logs: %d\n",
			resp.SyncedCounts.WorkoutTemplates,
			resp.SyncedCounts.WorkoutInstances,
			resp.SyncedCounts.ExerciseLogs)
	}
}
