package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/iudanet/gymsync/internal/models"
)

// List выводит записи одного типа таблицей
func (c *Cli) List(ctx context.Context, kind string) error {
	entityType, err := parseKind(kind)
	if err != nil {
		return err
	}

	entities, err := c.data.List(ctx, entityType)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", entityType, err)
	}

	if len(entities) == 0 {
		c.io.Printf("No %s records found.\n", entityType)
		c.io.Println()
		c.io.Printf("Use 'gymsync %s add' to create one.\n", entityType)
		return nil
	}

	c.io.Printf("Found %d %s record(s):\n\n", len(entities), entityType)

	w := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	switch entityType {
	case models.EntityTypeTemplate:
		fmt.Fprintln(w, "LOCAL ID\tSERVER ID\tNAME\tEXERCISES")
	case models.EntityTypeInstance:
		fmt.Fprintln(w, "LOCAL ID\tSERVER ID\tNAME\tSTARTED\tDONE")
	case models.EntityTypeLog:
		fmt.Fprintln(w, "LOCAL ID\tSERVER ID\tEXERCISE\tSOURCE\tPERFORMED")
	}

	for _, entity := range entities {
		h := entity.Header()
		switch e := entity.(type) {
		case *models.WorkoutTemplate:
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", h.LocalID, displayServerID(h.ServerID), e.Name, len(e.Exercises))
		case *models.WorkoutInstance:
			done := "no"
			if e.CompletedAt != nil {
				done = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", h.LocalID, displayServerID(h.ServerID), e.Name, displayTime(e.StartedAt), done)
		case *models.ExerciseLog:
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", h.LocalID, displayServerID(h.ServerID), e.ExerciseName, e.Source, displayTime(e.PerformedAt))
		}
	}

	return w.Flush()
}
