package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/iudanet/gymsync/internal/models"
	"github.com/iudanet/gymsync/internal/server/storage"
	"github.com/iudanet/gymsync/pkg/api"
)

// writeFunc записывает одну сущность с уже назначенным ServerID
type writeFunc func(ctx context.Context, tx storage.EntityTx, e models.Entity) error

func (s *Service) syncTemplates(ctx context.Context, ownerID string, items []api.WorkoutTemplate) typeResult {
	entities := make([]models.Entity, 0, len(items))
	for _, item := range items {
		entities = append(entities, models.TemplateFromAPI(item))
	}

	mappings, err := s.upsertType(ctx, ownerID, models.EntityTypeTemplate, entities,
		func(ctx context.Context, tx storage.EntityTx, e models.Entity) error {
			return tx.UpsertTemplate(ctx, e.(*models.WorkoutTemplate))
		})

	return typeResult{collection: api.CollectionTemplates, mappings: mappings, err: err}
}

func (s *Service) syncInstances(ctx context.Context, ownerID string, items []api.WorkoutInstance) typeResult {
	entities := make([]models.Entity, 0, len(items))
	for _, item := range items {
		entities = append(entities, models.InstanceFromAPI(item))
	}

	mappings, err := s.upsertType(ctx, ownerID, models.EntityTypeInstance, entities,
		func(ctx context.Context, tx storage.EntityTx, e models.Entity) error {
			inst := e.(*models.WorkoutInstance)
			if inst.TemplateID == "" && inst.TemplateLocalID != "" {
				id, err := findID(ctx, tx, models.EntityTypeTemplate, ownerID, inst.TemplateLocalID)
				if err != nil {
					return err
				}
				inst.TemplateID = id
			}
			return tx.UpsertInstance(ctx, inst)
		})

	return typeResult{collection: api.CollectionInstances, mappings: mappings, err: err}
}

func (s *Service) syncLogs(ctx context.Context, ownerID string, items []api.ExerciseLog) typeResult {
	entities := make([]models.Entity, 0, len(items))
	for _, item := range items {
		entities = append(entities, models.LogFromAPI(item))
	}

	mappings, err := s.upsertType(ctx, ownerID, models.EntityTypeLog, entities,
		func(ctx context.Context, tx storage.EntityTx, e models.Entity) error {
			l := e.(*models.ExerciseLog)
			if l.InstanceID == "" && l.InstanceLocalID != "" {
				id, err := findID(ctx, tx, models.EntityTypeInstance, ownerID, l.InstanceLocalID)
				if err != nil {
					return err
				}
				l.InstanceID = id
			}
			return tx.UpsertLog(ctx, l)
		})

	return typeResult{collection: api.CollectionLogs, mappings: mappings, err: err}
}

// upsertType записывает все сущности одного типа в одной транзакции.
// Ключ upsert: serverId из запроса, иначе id существующей строки с тем же
// localId, иначе новый UUID.
func (s *Service) upsertType(ctx context.Context, ownerID string, entityType models.EntityType, entities []models.Entity, write writeFunc) ([]models.IDMapping, error) {
	if len(entities) == 0 {
		return nil, nil
	}

	var mappings []models.IDMapping
	err := s.store.WithTx(ctx, func(tx storage.EntityTx) error {
		mappings = make([]models.IDMapping, 0, len(entities))

		for _, e := range entities {
			h := e.Header()
			h.OwnerID = ownerID

			if h.ServerID == "" {
				id, err := findID(ctx, tx, entityType, ownerID, h.LocalID)
				if err != nil {
					return err
				}
				h.ServerID = id
			}

			if h.Deleted() {
				// Удаление без строки на сервере: подтверждать нечего
				if h.ServerID == "" {
					continue
				}
				if err := tx.DeleteEntity(ctx, entityType, ownerID, h.ServerID); err != nil {
					return err
				}
				mappings = append(mappings, models.IDMapping{ID: h.ServerID, LocalID: h.LocalID})
				continue
			}

			if h.ServerID == "" {
				h.ServerID = uuid.NewString()
			}
			if err := write(ctx, tx, e); err != nil {
				return err
			}
			mappings = append(mappings, models.IDMapping{ID: h.ServerID, LocalID: h.LocalID})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return mappings, nil
}

// findID возвращает id строки владельца по localId или "", если ее нет
func findID(ctx context.Context, tx storage.EntityTx, entityType models.EntityType, ownerID, localID string) (string, error) {
	id, err := tx.FindIDByLocalID(ctx, entityType, ownerID, localID)
	if err != nil {
		if errors.Is(err, storage.ErrEntityNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to resolve %s %s: %w", entityType, localID, err)
	}
	return id, nil
}
