package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/gymsync/internal/client/storage"
)

// Delete помечает запись удаленной. Без force спрашивает подтверждение.
func (c *Cli) Delete(ctx context.Context, kind, localID string, force bool) error {
	entityType, err := parseKind(kind)
	if err != nil {
		return err
	}

	c.io.Printf("=== Delete %s ===\n", entityType)

	if _, err := c.data.Get(ctx, entityType, localID); err != nil {
		if errors.Is(err, storage.ErrEntityNotFound) {
			return fmt.Errorf("%s not found with ID: %s", entityType, localID)
		}
		return fmt.Errorf("failed to get %s: %w", entityType, err)
	}

	if !force {
		ok, err := c.confirm(fmt.Sprintf("Delete %s %s?", entityType, localID))
		if err != nil {
			return err
		}
		if !ok {
			c.io.Println("Deletion cancelled.")
			return nil
		}
	}

	if err := c.data.Delete(ctx, entityType, localID); err != nil {
		return fmt.Errorf("failed to delete %s: %w", entityType, err)
	}

	c.io.Printf("✓ %s %s deleted\n", entityType, localID)
	c.printPending(ctx)
	return nil
}
