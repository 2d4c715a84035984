package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/gymsync/internal/models"
	"github.com/iudanet/gymsync/internal/server/storage"
)

var _ storage.Storage = (*Storage)(nil)

// CreateAccount creates a new account in the storage
func (s *Storage) CreateAccount(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, handle, created_at)
		VALUES (?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, s.rebind(query),
		account.ID,
		account.Handle,
		account.CreatedAt,
	)

	if err != nil {
		// Проверяем на duplicate handle
		if isUniqueViolation(err) {
			return storage.ErrAccountAlreadyExists
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}

	return nil
}

// GetAccountByHandle retrieves account by handle
func (s *Storage) GetAccountByHandle(ctx context.Context, handle string) (*models.Account, error) {
	query := `
		SELECT id, handle, created_at
		FROM accounts
		WHERE handle = ?
	`
	return s.getAccount(ctx, query, handle)
}

// GetAccountByID retrieves account by canonical id
func (s *Storage) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	query := `
		SELECT id, handle, created_at
		FROM accounts
		WHERE id = ?
	`
	return s.getAccount(ctx, query, id)
}

func (s *Storage) getAccount(ctx context.Context, query string, arg string) (*models.Account, error) {
	account := &models.Account{}

	err := s.db.QueryRowContext(ctx, s.rebind(query), arg).Scan(
		&account.ID,
		&account.Handle,
		&account.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return account, nil
}
