package storage

import (
	"context"

	"github.com/iudanet/gymsync/internal/models"
)

//go:generate moq -out queue_mock.go . QueueStorage

// QueueStorage defines interface for the durable change queue table
type QueueStorage interface {
	// AppendEntry durably appends an entry and assigns its monotonic ID
	AppendEntry(ctx context.Context, entry *models.QueueEntry) error

	// AppendWithEntity saves the entity and appends the entry atomically
	AppendWithEntity(ctx context.Context, entity models.Entity, entry *models.QueueEntry) error

	// Sequence returns the last assigned entry ID.
	// It grows only on append, also when the append came from another process.
	Sequence(ctx context.Context) (uint64, error)

	// PendingEntries returns all entries with synced=false in ID order
	PendingEntries(ctx context.Context) ([]*models.QueueEntry, error)

	// MarkSynced marks entries as synced and removes them from the table.
	// Unknown or already synced IDs are ignored.
	MarkSynced(ctx context.Context, ids []uint64) error

	// RecordAttempt increments attempts, stamps the time and stores the error text
	RecordAttempt(ctx context.Context, id uint64, errMsg string) error

	// CountPending returns the number of entries with synced=false
	CountPending(ctx context.Context) (int, error)

	// ClearQueue removes all entries without resetting the ID sequence
	ClearQueue(ctx context.Context) error
}
