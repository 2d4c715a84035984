package cli

import (
	"context"
	"fmt"
)

// Sync запускает синхронизацию вручную, в том числе из состояния suspended
func (c *Cli) Sync(ctx context.Context) error {
	c.io.Println("=== Synchronization ===")
	if c.syncer == nil {
		return ErrNoAccount
	}

	pending, err := c.queue.PendingCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to count pending changes: %w", err)
	}
	if pending == 0 {
		c.io.Println("Nothing to sync, all changes are on the server.")
		return nil
	}

	c.io.Println()
	c.io.Printf("Sending %d pending change(s) to the server...\n", pending)

	ran, err := c.syncer.Sync(ctx)
	if !ran {
		c.io.Println("Another synchronization is already running.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	st, err := c.syncer.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get sync status: %w", err)
	}

	c.io.Println()
	if st.LastRun != nil {
		c.io.Printf("Batches:  %d (%d failed)\n", st.LastRun.Batches, st.LastRun.FailedBatches)
		c.io.Printf("Sent:     %d record(s)\n", st.LastRun.Sent)
		c.io.Printf("Synced:   %d change(s)\n", st.LastRun.Synced)
	}
	c.io.Printf("Pending:  %d change(s)\n", st.PendingCount)

	if st.PendingCount > 0 {
		c.io.Println()
		c.io.Println("⚠️  Some changes were not accepted and stay queued.")
		if st.LastError != "" {
			c.io.Printf("Last error: %s\n", st.LastError)
		}
		return nil
	}

	c.io.Println()
	c.io.Println("✓ Synchronization completed successfully!")
	return nil
}
