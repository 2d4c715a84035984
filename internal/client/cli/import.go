package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/iudanet/gymsync/internal/models"
)

// Import создает записи упражнений из результата декодера файла активности
// (JSON с полями sport, startTime, laps)
func (c *Cli) Import(ctx context.Context, path, instanceLocalID string) error {
	c.io.Println("=== Import Activity ===")

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read activity file: %w", err)
	}

	var summary models.ActivitySummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return fmt.Errorf("failed to decode activity %s: %w", path, err)
	}

	logs, err := c.data.ImportActivity(ctx, &summary, instanceLocalID)
	if err != nil {
		// часть кругов могла сохраниться
		if len(logs) > 0 {
			c.io.Printf("Imported %d lap(s) before the error\n", len(logs))
		}
		return fmt.Errorf("failed to import activity: %w", err)
	}

	c.io.Printf("✓ Imported %d lap(s) of %s\n", len(logs), summary.Sport)
	for _, l := range logs {
		c.io.Printf("  %d. %s  %ds  %.0fm\n", l.SetNumber, l.LocalID, l.DurationSeconds, l.DistanceMeters)
	}
	c.printPending(ctx)
	return nil
}
