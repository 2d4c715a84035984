package storage

import "errors"

// Common storage errors
var (
	// ErrAccountNotFound indicates that account was not found in storage
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountAlreadyExists indicates that account with this handle already exists
	ErrAccountAlreadyExists = errors.New("account already exists")

	// ErrLedgerNotFound indicates that the account has never synced
	ErrLedgerNotFound = errors.New("sync ledger not found")

	// ErrEntityNotFound indicates that entity row was not found
	ErrEntityNotFound = errors.New("entity not found")

	// ErrForeignOwner indicates that the row with this id belongs to another account
	ErrForeignOwner = errors.New("entity belongs to another account")
)
