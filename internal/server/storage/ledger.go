package storage

import (
	"context"

	"github.com/iudanet/gymsync/internal/models"
)

// LedgerStorage defines interface for the per-account sync ledger
type LedgerStorage interface {
	// SaveLedger upserts the ledger row of the account
	SaveLedger(ctx context.Context, ledger *models.SyncLedger) error

	// GetLedger retrieves the ledger row
	// Returns ErrLedgerNotFound if the account never synced
	GetLedger(ctx context.Context, accountID string) (*models.SyncLedger, error)
}

// Storage aggregates everything the server needs from the backing store
type Storage interface {
	AccountStorage
	EntityStorage
	LedgerStorage

	// Ping checks the database connection
	Ping(ctx context.Context) error
	Close() error
}
