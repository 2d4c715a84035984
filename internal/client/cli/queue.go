package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
)

// QueueList выводит неподтвержденные изменения
func (c *Cli) QueueList(ctx context.Context) error {
	entries, err := c.queue.ListPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to read queue: %w", err)
	}

	if len(entries) == 0 {
		c.io.Println("Queue is empty.")
		return nil
	}

	c.io.Printf("%d pending change(s):\n\n", len(entries))

	w := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tOP\tLOCAL ID\tATTEMPTS\tLAST ERROR")
	for _, e := range entries {
		lastErr := e.LastError
		if lastErr == "" {
			lastErr = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n", e.ID, e.EntityType, e.Operation, e.EntityLocalID, e.Attempts, lastErr)
	}
	return w.Flush()
}

// QueueClear удаляет все изменения из очереди. Записи при этом остаются
// локально и на сервер уже не попадут.
func (c *Cli) QueueClear(ctx context.Context, force bool) error {
	count, err := c.queue.PendingCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to count pending changes: %w", err)
	}
	if count == 0 {
		c.io.Println("Queue is empty.")
		return nil
	}

	if !force {
		c.io.Printf("%d change(s) were not sent to the server and will be lost.\n", count)
		ok, err := c.confirm("Clear the queue?")
		if err != nil {
			return err
		}
		if !ok {
			c.io.Println("Cancelled.")
			return nil
		}
	}

	if err := c.queue.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear queue: %w", err)
	}
	c.io.Printf("✓ Removed %d change(s) from the queue\n", count)
	return nil
}
