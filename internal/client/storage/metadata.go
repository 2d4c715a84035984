package storage

import (
	"context"
	"time"
)

//go:generate moq -out metadata_mock.go . MetadataStorage

// SyncState persistent state of the sync orchestrator
type SyncState struct {
	LastSyncTime        time.Time  `json:"last_sync_time"`
	SuspendedAt         *time.Time `json:"suspended_at,omitempty"`
	LastError           string     `json:"last_error,omitempty"`
	ConsecutiveFailures int        `json:"consecutive_failures"`
}

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// SaveSyncState saves orchestrator state after each run
	SaveSyncState(ctx context.Context, state *SyncState) error

	// GetSyncState retrieves orchestrator state
	// Returns zero state if no sync has been performed yet
	GetSyncState(ctx context.Context) (*SyncState, error)
}
