package data

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/iudanet/gymsync/internal/client/queue"
	"github.com/iudanet/gymsync/internal/client/storage"
	"github.com/iudanet/gymsync/internal/models"
)

var (
	// ErrEntityExists запись с таким localId уже есть
	ErrEntityExists = errors.New("entity already exists")
	// ErrEntityDeleted запись помечена на удаление
	ErrEntityDeleted = errors.New("entity is deleted")
	// ErrInvalidEntity запись не прошла проверку
	ErrInvalidEntity = errors.New("invalid entity")
)

// Service определяет интерфейс клиентского Entity Store.
// Каждая мутация сохраняет запись и ставит изменение в очередь.
type Service interface {
	Create(ctx context.Context, entity models.Entity) error
	Update(ctx context.Context, entity models.Entity) error
	Delete(ctx context.Context, entityType models.EntityType, localID string) error
	Get(ctx context.Context, entityType models.EntityType, localID string) (models.Entity, error)
	List(ctx context.Context, entityType models.EntityType) ([]models.Entity, error)

	// ImportActivity creates one exercise log per lap of a decoded activity file
	ImportActivity(ctx context.Context, summary *models.ActivitySummary, instanceLocalID string) ([]*models.ExerciseLog, error)
}

// service handles client-side entity mutations
type service struct {
	entities storage.EntityStorage
	queue    queue.Service
	logger   *slog.Logger
	now      func() time.Time
	ownerID  string
}

// NewService creates a new data service.
// ownerID is the account handle or id stamped on new records.
func NewService(entities storage.EntityStorage, q queue.Service, ownerID string, logger *slog.Logger) Service {
	return &service{
		entities: entities,
		queue:    q,
		logger:   logger,
		now:      time.Now,
		ownerID:  ownerID,
	}
}

// Create saves a new record and enqueues a create operation
func (s *service) Create(ctx context.Context, entity models.Entity) error {
	h := entity.Header()

	// Генерируем localId если не задан
	if h.LocalID == "" {
		h.LocalID = ulid.Make().String()
	} else {
		_, err := s.entities.GetEntity(ctx, entity.Kind(), h.LocalID)
		if err == nil {
			return fmt.Errorf("%s %s: %w", entity.Kind(), h.LocalID, ErrEntityExists)
		}
		if !errors.Is(err, storage.ErrEntityNotFound) {
			return fmt.Errorf("failed to check entity: %w", err)
		}
	}

	if err := s.prepare(ctx, entity); err != nil {
		return err
	}

	now := s.now().UTC()
	h.ServerID = ""
	h.DeletedAt = nil
	h.CreatedAt = now
	h.UpdatedAt = now
	if h.OwnerID == "" {
		h.OwnerID = s.ownerID
	}

	return s.saveAndEnqueue(ctx, entity, models.OperationCreate)
}

// Update replaces the record content. LocalID, ServerID and CreatedAt are kept from the stored record.
func (s *service) Update(ctx context.Context, entity models.Entity) error {
	h := entity.Header()

	existing, err := s.entities.GetEntity(ctx, entity.Kind(), h.LocalID)
	if err != nil {
		return fmt.Errorf("failed to get %s %s: %w", entity.Kind(), h.LocalID, err)
	}
	old := existing.Header()
	if old.Deleted() {
		return fmt.Errorf("%s %s: %w", entity.Kind(), h.LocalID, ErrEntityDeleted)
	}

	if err := s.prepare(ctx, entity); err != nil {
		return err
	}

	// serverId клиент не меняет никогда
	h.ServerID = old.ServerID
	h.CreatedAt = old.CreatedAt
	h.OwnerID = old.OwnerID
	h.DeletedAt = nil
	h.UpdatedAt = s.now().UTC()

	return s.saveAndEnqueue(ctx, entity, models.OperationUpdate)
}

// Delete writes a tombstone and enqueues a delete operation.
// The record is purged by the orchestrator after the server confirms.
func (s *service) Delete(ctx context.Context, entityType models.EntityType, localID string) error {
	entity, err := s.entities.GetEntity(ctx, entityType, localID)
	if err != nil {
		return fmt.Errorf("failed to get %s %s: %w", entityType, localID, err)
	}

	h := entity.Header()
	if h.Deleted() {
		return nil
	}

	now := s.now().UTC()
	h.DeletedAt = &now
	h.UpdatedAt = now

	return s.saveAndEnqueue(ctx, entity, models.OperationDelete)
}

// Get returns a live record; tombstones are reported as not found
func (s *service) Get(ctx context.Context, entityType models.EntityType, localID string) (models.Entity, error) {
	entity, err := s.entities.GetEntity(ctx, entityType, localID)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %s: %w", entityType, localID, err)
	}
	if entity.Header().Deleted() {
		return nil, fmt.Errorf("%s %s: %w", entityType, localID, storage.ErrEntityNotFound)
	}
	return entity, nil
}

// List returns live records of the type
func (s *service) List(ctx context.Context, entityType models.EntityType) ([]models.Entity, error) {
	all, err := s.entities.ListEntities(ctx, entityType)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", entityType, err)
	}

	live := make([]models.Entity, 0, len(all))
	for _, e := range all {
		if !e.Header().Deleted() {
			live = append(live, e)
		}
	}
	return live, nil
}

// ImportActivity converts decoder output into exercise logs
func (s *service) ImportActivity(ctx context.Context, summary *models.ActivitySummary, instanceLocalID string) ([]*models.ExerciseLog, error) {
	if summary == nil || len(summary.Laps) == 0 {
		return nil, fmt.Errorf("%w: activity has no laps", ErrInvalidEntity)
	}

	name := strings.TrimSpace(summary.Sport)
	if name == "" {
		name = "activity"
	}

	logs := make([]*models.ExerciseLog, 0, len(summary.Laps))
	for i, lap := range summary.Laps {
		performedAt := lap.StartTime
		if performedAt.IsZero() {
			performedAt = summary.StartTime
		}

		log := &models.ExerciseLog{
			InstanceLocalID: instanceLocalID,
			ExerciseName:    name,
			Source:          models.LogSourceActivityFile,
			SetNumber:       i + 1,
			DurationSeconds: lap.DurationSeconds,
			DistanceMeters:  lap.DistanceMeters,
			AvgHeartRate:    lap.AvgHeartRate,
			PerformedAt:     performedAt,
		}
		if err := s.Create(ctx, log); err != nil {
			return logs, fmt.Errorf("failed to import lap %d: %w", i+1, err)
		}
		logs = append(logs, log)
	}

	s.logger.Info("Activity imported",
		"sport", name,
		"laps", len(logs),
		"instance_local_id", instanceLocalID)

	return logs, nil
}

// prepare проверяет запись и заполняет значения по умолчанию
func (s *service) prepare(ctx context.Context, entity models.Entity) error {
	switch e := entity.(type) {
	case *models.WorkoutTemplate:
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("%w: template name is required", ErrInvalidEntity)
		}
		for _, ex := range e.Exercises {
			if strings.TrimSpace(ex.Name) == "" {
				return fmt.Errorf("%w: exercise name is required", ErrInvalidEntity)
			}
		}

	case *models.WorkoutInstance:
		if e.StartedAt.IsZero() {
			e.StartedAt = s.now().UTC()
		}
		if e.TemplateLocalID != "" {
			tpl, err := s.Get(ctx, models.EntityTypeTemplate, e.TemplateLocalID)
			if err != nil {
				return fmt.Errorf("%w: template %s: %v", ErrInvalidEntity, e.TemplateLocalID, err)
			}
			if e.Name == "" {
				e.Name = tpl.(*models.WorkoutTemplate).Name
			}
		}

	case *models.ExerciseLog:
		if strings.TrimSpace(e.ExerciseName) == "" {
			return fmt.Errorf("%w: exercise name is required", ErrInvalidEntity)
		}
		if e.Source == "" {
			e.Source = models.LogSourceManual
		}
		if e.PerformedAt.IsZero() {
			e.PerformedAt = s.now().UTC()
		}
		if e.InstanceLocalID != "" {
			if _, err := s.Get(ctx, models.EntityTypeInstance, e.InstanceLocalID); err != nil {
				return fmt.Errorf("%w: instance %s: %v", ErrInvalidEntity, e.InstanceLocalID, err)
			}
		}

	default:
		return fmt.Errorf("%w: unsupported entity %T", ErrInvalidEntity, entity)
	}

	return nil
}

// saveAndEnqueue сохраняет запись и ставит изменение в очередь одной
// транзакцией: запись без элемента очереди никогда не дошла бы до сервера.
func (s *service) saveAndEnqueue(ctx context.Context, entity models.Entity, op models.Operation) error {
	h := entity.Header()

	if err := s.queue.EnqueueEntity(ctx, entity, op); err != nil {
		return fmt.Errorf("failed to save %s %s: %w", entity.Kind(), h.LocalID, err)
	}

	s.logger.Debug("Entity saved",
		"type", entity.Kind(),
		"local_id", h.LocalID,
		"operation", op)

	return nil
}
