package storage

import (
	"context"

	"github.com/iudanet/gymsync/internal/models"
)

// EntityTx per-type write operations inside one transaction
type EntityTx interface {
	// FindIDByLocalID returns the canonical id of the owner's row with this localId
	// Returns ErrEntityNotFound if there is no such row
	FindIDByLocalID(ctx context.Context, entityType models.EntityType, ownerID, localID string) (string, error)

	// UpsertTemplate inserts or updates the row keyed by t.ServerID
	// Returns ErrForeignOwner if the id belongs to another account
	UpsertTemplate(ctx context.Context, t *models.WorkoutTemplate) error

	// UpsertInstance inserts or updates the row keyed by i.ServerID
	UpsertInstance(ctx context.Context, i *models.WorkoutInstance) error

	// UpsertLog inserts or updates the row keyed by l.ServerID
	UpsertLog(ctx context.Context, l *models.ExerciseLog) error

	// DeleteEntity removes the owner's row. Missing rows are not an error.
	DeleteEntity(ctx context.Context, entityType models.EntityType, ownerID, id string) error
}

// EntityStorage defines interface for synced entity persistence
type EntityStorage interface {
	// WithTx runs fn in a transaction; fn error rolls it back
	WithTx(ctx context.Context, fn func(tx EntityTx) error) error

	// ListTemplates returns all templates of the owner
	ListTemplates(ctx context.Context, ownerID string) ([]*models.WorkoutTemplate, error)

	// ListInstances returns all workout instances of the owner
	ListInstances(ctx context.Context, ownerID string) ([]*models.WorkoutInstance, error)

	// ListLogs returns all exercise logs of the owner
	ListLogs(ctx context.Context, ownerID string) ([]*models.ExerciseLog, error)

	// DeleteOwnerData removes all entity rows and the ledger row of the owner
	DeleteOwnerData(ctx context.Context, ownerID string) error
}
