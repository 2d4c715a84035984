package storage

import (
	"context"

	"github.com/iudanet/gymsync/internal/models"
)

//go:generate moq -out account_mock.go . AccountStorage

// AccountStorage defines interface for account persistence
type AccountStorage interface {
	// CreateAccount creates a new account
	// Returns ErrAccountAlreadyExists if handle is taken
	CreateAccount(ctx context.Context, account *models.Account) error

	// GetAccountByHandle retrieves account by handle
	// Returns ErrAccountNotFound if account doesn't exist
	GetAccountByHandle(ctx context.Context, handle string) (*models.Account, error)

	// GetAccountByID retrieves account by canonical id
	// Returns ErrAccountNotFound if account doesn't exist
	GetAccountByID(ctx context.Context, id string) (*models.Account, error)
}
