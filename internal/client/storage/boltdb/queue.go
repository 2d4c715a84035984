package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"go.etcd.io/bbolt"

	"github.com/iudanet/gymsync/internal/models"
)

// AppendEntry durably appends an entry and assigns its monotonic ID
func (s *Storage) AppendEntry(ctx context.Context, entry *models.QueueEntry) error {
	err := s.update(func(tx *bbolt.Tx) error {
		return appendEntry(tx, entry)
	})
	if err != nil {
		return fmt.Errorf("failed to append queue entry: %w", err)
	}

	return nil
}

// AppendWithEntity saves the entity and appends the entry in one transaction.
// Either both are persisted or neither is.
func (s *Storage) AppendWithEntity(ctx context.Context, entity models.Entity, entry *models.QueueEntry) error {
	put, err := entityPut(entity)
	if err != nil {
		return err
	}

	err = s.update(func(tx *bbolt.Tx) error {
		if err := put(tx); err != nil {
			return err
		}
		return appendEntry(tx, entry)
	})
	if err != nil {
		// ID из откаченной транзакции недействителен
		entry.ID = 0
		return fmt.Errorf("failed to save entity with queue entry: %w", err)
	}

	return nil
}

// Sequence returns the last assigned entry ID, zero for an empty history
func (s *Storage) Sequence(ctx context.Context) (uint64, error) {
	var seq uint64

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return fmt.Errorf("queue bucket not found")
		}
		seq = bucket.Sequence()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to read queue sequence: %w", err)
	}

	return seq, nil
}

func appendEntry(tx *bbolt.Tx, entry *models.QueueEntry) error {
	bucket := tx.Bucket(bucketQueue)
	if bucket == nil {
		return fmt.Errorf("queue bucket not found")
	}

	// NextSequence монотонен в пределах файла БД
	id, err := bucket.NextSequence()
	if err != nil {
		return fmt.Errorf("failed to allocate entry id: %w", err)
	}
	entry.ID = id

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal queue entry: %w", err)
	}

	return bucket.Put(queueKey(id), data)
}

// PendingEntries returns all entries with synced=false in ID order.
// Synced entries are deleted, so the scan touches pending ones only.
func (s *Storage) PendingEntries(ctx context.Context) ([]*models.QueueEntry, error) {
	var entries []*models.QueueEntry

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return nil
		}

		// Ключи big-endian, поэтому ForEach идет в порядке ID
		return bucket.ForEach(func(k, v []byte) error {
			var entry models.QueueEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("failed to unmarshal queue entry: %w", err)
			}
			if !entry.Synced {
				entries = append(entries, &entry)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get pending entries: %w", err)
	}

	return entries, nil
}

// MarkSynced removes confirmed entries. Unknown or already synced IDs are ignored.
func (s *Storage) MarkSynced(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}

	err := s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return fmt.Errorf("queue bucket not found")
		}

		// Подтвержденная запись больше не нужна: удаляем, а не храним историю
		for _, id := range ids {
			if err := bucket.Delete(queueKey(id)); err != nil {
				return fmt.Errorf("failed to delete queue entry %d: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to mark entries synced: %w", err)
	}

	return nil
}

// RecordAttempt increments attempts, stamps the time and stores the error text
func (s *Storage) RecordAttempt(ctx context.Context, id uint64, errMsg string) error {
	now := time.Now()
	err := s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return fmt.Errorf("queue bucket not found")
		}

		return updateQueueEntry(bucket, id, func(entry *models.QueueEntry) bool {
			entry.Attempts++
			entry.LastAttemptAt = &now
			entry.LastError = errMsg
			return true
		})
	})
	if err != nil {
		return fmt.Errorf("failed to record attempt: %w", err)
	}

	return nil
}

// CountPending returns the number of entries with synced=false
func (s *Storage) CountPending(ctx context.Context) (int, error) {
	var count int

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return nil
		}
		count = bucket.Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count pending entries: %w", err)
	}

	return count, nil
}

// ClearQueue removes all entries. The ID sequence keeps counting.
func (s *Storage) ClearQueue(ctx context.Context) error {
	err := s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return fmt.Errorf("queue bucket not found")
		}

		// Удаляем ключи курсором: пересоздание bucket обнулило бы Sequence
		c := bucket.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.First() {
			if err := bucket.Delete(k); err != nil {
				return fmt.Errorf("failed to delete queue entry: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("clear transaction failed: %w", err)
	}

	return nil
}

// updateQueueEntry применяет fn к записи очереди; запись сохраняется, если fn вернула true.
// Отсутствующий ID не считается ошибкой.
func updateQueueEntry(bucket *bbolt.Bucket, id uint64, fn func(entry *models.QueueEntry) bool) error {
	key := queueKey(id)
	data := bucket.Get(key)
	if data == nil {
		return nil
	}

	var entry models.QueueEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return fmt.Errorf("failed to unmarshal queue entry %d: %w", id, err)
	}

	if !fn(&entry) {
		return nil
	}

	updated, err := json.Marshal(&entry)
	if err != nil {
		return fmt.Errorf("failed to marshal queue entry %d: %w", id, err)
	}

	return bucket.Put(key, updated)
}

func queueKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}
