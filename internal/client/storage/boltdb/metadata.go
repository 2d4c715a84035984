package boltdb

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"go.etcd.io/bbolt"

	"github.com/iudanet/gymsync/internal/client/storage"
)

const (
	keySyncState = "sync_state"
)

// SaveSyncState saves orchestrator state after each run
func (s *Storage) SaveSyncState(ctx context.Context, state *storage.SyncState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal sync state: %w", err)
	}

	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if err := bucket.Put([]byte(keySyncState), data); err != nil {
			return fmt.Errorf("failed to save sync state: %w", err)
		}

		return nil
	})
}

// GetSyncState retrieves orchestrator state
// Returns zero state if no sync has been performed yet
func (s *Storage) GetSyncState(ctx context.Context) (*storage.SyncState, error) {
	state := &storage.SyncState{}

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		data := bucket.Get([]byte(keySyncState))
		if data == nil {
			// Первая синхронизация еще не выполнялась
			return nil
		}

		return json.Unmarshal(data, state)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get sync state: %w", err)
	}

	return state, nil
}
