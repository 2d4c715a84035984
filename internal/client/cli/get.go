package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/gymsync/internal/client/storage"
	"github.com/iudanet/gymsync/internal/models"
)

// Show выводит полную информацию о записи
func (c *Cli) Show(ctx context.Context, kind, localID string) error {
	entityType, err := parseKind(kind)
	if err != nil {
		return err
	}

	entity, err := c.data.Get(ctx, entityType, localID)
	if err != nil {
		if errors.Is(err, storage.ErrEntityNotFound) {
			return fmt.Errorf("%s not found with ID: %s", entityType, localID)
		}
		return fmt.Errorf("failed to get %s: %w", entityType, err)
	}

	switch e := entity.(type) {
	case *models.WorkoutTemplate:
		err = templateTmpl.Execute(c.io, e)
	case *models.WorkoutInstance:
		err = instanceTmpl.Execute(c.io, e)
	case *models.ExerciseLog:
		err = logTmpl.Execute(c.io, e)
	default:
		err = fmt.Errorf("unexpected record type %T", entity)
	}
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", entityType, err)
	}
	return nil
}
