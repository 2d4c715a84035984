package boltdb

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"go.etcd.io/bbolt"

	"github.com/iudanet/gymsync/internal/client/storage"
	"github.com/iudanet/gymsync/internal/models"
)

// SaveEntity stores or replaces an entity keyed by type and local ID
func (s *Storage) SaveEntity(ctx context.Context, entity models.Entity) error {
	put, err := entityPut(entity)
	if err != nil {
		return err
	}

	if err := s.update(put); err != nil {
		return fmt.Errorf("failed to save entity: %w", err)
	}

	return nil
}

// entityPut готовит запись сущности для выполнения внутри транзакции
func entityPut(entity models.Entity) (func(tx *bbolt.Tx) error, error) {
	header := entity.Header()
	if header.LocalID == "" {
		return nil, fmt.Errorf("entity local id is empty")
	}

	name, err := entityBucket(entity.Kind())
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}

	return func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(name)
		if bucket == nil {
			return fmt.Errorf("%s bucket not found", name)
		}
		return bucket.Put([]byte(header.LocalID), data)
	}, nil
}

// GetEntity retrieves an entity by type and local ID
func (s *Storage) GetEntity(ctx context.Context, entityType models.EntityType, localID string) (models.Entity, error) {
	name, err := entityBucket(entityType)
	if err != nil {
		return nil, err
	}

	var entity models.Entity

	err = s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(name)
		if bucket == nil {
			return storage.ErrEntityNotFound
		}

		data := bucket.Get([]byte(localID))
		if data == nil {
			return storage.ErrEntityNotFound
		}

		entity, err = decodeEntity(entityType, data)
		return err
	})
	if err != nil {
		return nil, err
	}

	return entity, nil
}

// ListEntities returns all entities of a type, tombstones included
func (s *Storage) ListEntities(ctx context.Context, entityType models.EntityType) ([]models.Entity, error) {
	name, err := entityBucket(entityType)
	if err != nil {
		return nil, err
	}

	var entities []models.Entity

	err = s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(name)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			entity, err := decodeEntity(entityType, v)
			if err != nil {
				return err
			}
			entities = append(entities, entity)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}

	return entities, nil
}

// ApplyServerID assigns server ID to an entity exactly once
func (s *Storage) ApplyServerID(ctx context.Context, entityType models.EntityType, localID, serverID string) error {
	name, err := entityBucket(entityType)
	if err != nil {
		return err
	}

	// Чтение и запись в одной транзакции, чтобы не затереть параллельное изменение из UI
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(name)
		if bucket == nil {
			return storage.ErrEntityNotFound
		}

		data := bucket.Get([]byte(localID))
		if data == nil {
			return storage.ErrEntityNotFound
		}

		entity, err := decodeEntity(entityType, data)
		if err != nil {
			return err
		}

		header := entity.Header()
		switch header.ServerID {
		case serverID:
			return nil
		case "":
			header.ServerID = serverID
		default:
			return fmt.Errorf("%w: %s has %s, got %s", storage.ErrServerIDConflict, localID, header.ServerID, serverID)
		}

		updated, err := json.Marshal(entity)
		if err != nil {
			return fmt.Errorf("failed to marshal entity: %w", err)
		}

		return bucket.Put([]byte(localID), updated)
	})
}

// PurgeEntity removes an entity record physically
func (s *Storage) PurgeEntity(ctx context.Context, entityType models.EntityType, localID string) error {
	name, err := entityBucket(entityType)
	if err != nil {
		return err
	}

	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(name)
		if bucket == nil || bucket.Get([]byte(localID)) == nil {
			return storage.ErrEntityNotFound
		}
		return bucket.Delete([]byte(localID))
	})
}

func decodeEntity(entityType models.EntityType, data []byte) (models.Entity, error) {
	entity, err := models.NewEntity(entityType)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, entity); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return entity, nil
}
