package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/gymsync/internal/models"
	"github.com/iudanet/gymsync/internal/server/storage"
)

// SaveLedger upserts the ledger row of the account
func (s *Storage) SaveLedger(ctx context.Context, ledger *models.SyncLedger) error {
	query := `
		INSERT INTO sync_ledger (account_id, last_sync_time, status, error_message,
			templates_synced, instances_synced, logs_synced)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (account_id) DO UPDATE SET
			last_sync_time = excluded.last_sync_time,
			status = excluded.status,
			error_message = excluded.error_message,
			templates_synced = excluded.templates_synced,
			instances_synced = excluded.instances_synced,
			logs_synced = excluded.logs_synced
	`

	_, err := s.db.ExecContext(ctx, s.rebind(query),
		ledger.AccountID,
		ledger.LastSyncTime,
		string(ledger.Status),
		ledger.ErrorMessage,
		ledger.TemplatesSynced,
		ledger.InstancesSynced,
		ledger.LogsSynced,
	)
	if err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}

	return nil
}

// GetLedger retrieves the ledger row
func (s *Storage) GetLedger(ctx context.Context, accountID string) (*models.SyncLedger, error) {
	query := `
		SELECT account_id, last_sync_time, status, error_message,
			templates_synced, instances_synced, logs_synced
		FROM sync_ledger
		WHERE account_id = ?
	`

	ledger := &models.SyncLedger{}
	var status string

	err := s.db.QueryRowContext(ctx, s.rebind(query), accountID).Scan(
		&ledger.AccountID,
		&ledger.LastSyncTime,
		&status,
		&ledger.ErrorMessage,
		&ledger.TemplatesSynced,
		&ledger.InstancesSynced,
		&ledger.LogsSynced,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrLedgerNotFound
		}
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}
	ledger.Status = models.SyncStatus(status)

	return ledger, nil
}
