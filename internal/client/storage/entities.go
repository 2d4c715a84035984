package storage

import (
	"context"

	"github.com/iudanet/gymsync/internal/models"
)

//go:generate moq -out entities_mock.go . EntityStorage

// EntityStorage defines interface for the local Entity Store
type EntityStorage interface {
	// SaveEntity stores or replaces an entity keyed by its type and local ID
	SaveEntity(ctx context.Context, entity models.Entity) error

	// GetEntity retrieves an entity by type and local ID
	// Returns ErrEntityNotFound if entity doesn't exist
	GetEntity(ctx context.Context, entityType models.EntityType, localID string) (models.Entity, error)

	// ListEntities returns all entities of a type, tombstones included
	ListEntities(ctx context.Context, entityType models.EntityType) ([]models.Entity, error)

	// ApplyServerID assigns server ID to an entity exactly once.
	// Same value again is a no-op, a different value returns ErrServerIDConflict.
	ApplyServerID(ctx context.Context, entityType models.EntityType, localID, serverID string) error

	// PurgeEntity removes an entity record physically
	// Returns ErrEntityNotFound if entity doesn't exist
	PurgeEntity(ctx context.Context, entityType models.EntityType, localID string) error
}
