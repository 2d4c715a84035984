package queue

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/iudanet/gymsync/internal/client/storage"
	"github.com/iudanet/gymsync/internal/models"
)

//go:generate moq -out queue_mock.go . Service

// Service определяет интерфейс очереди изменений
type Service interface {
	// Enqueue durably appends a pending mutation for the entity
	Enqueue(ctx context.Context, entityType models.EntityType, op models.Operation, localID string) error

	// EnqueueEntity saves the entity and appends its pending mutation in one
	// durable write: a failure leaves neither behind.
	EnqueueEntity(ctx context.Context, entity models.Entity, op models.Operation) error

	// ListPending returns all entries that are not yet confirmed by the server
	ListPending(ctx context.Context) ([]*models.QueueEntry, error)

	// MarkSynced marks entries as confirmed. Idempotent.
	MarkSynced(ctx context.Context, ids []uint64) error

	// RecordAttempt stores diagnostics of a failed delivery.
	// Does not affect retry eligibility.
	RecordAttempt(ctx context.Context, id uint64, cause error) error

	// PendingCount returns the number of pending entries
	PendingCount(ctx context.Context) (int, error)

	// Clear drops every entry, synced or not
	Clear(ctx context.Context) error

	// Subscribe returns a channel signalled after each successful enqueue.
	// Signals are coalesced: a reader that is behind sees one signal.
	Subscribe() (<-chan struct{}, func())

	// Follow watches the database file at path and signals subscribers when
	// another process appends entries. Blocks until ctx is done.
	Follow(ctx context.Context, path string) error
}

// queue implements Service on top of QueueStorage
type queue struct {
	store  storage.QueueStorage
	logger *slog.Logger
	now    func() time.Time

	mu     sync.Mutex
	subs   map[int]chan struct{}
	nextID int
}

// New creates a change queue service
func New(store storage.QueueStorage, logger *slog.Logger) Service {
	return &queue{
		store:  store,
		logger: logger,
		now:    time.Now,
		subs:   make(map[int]chan struct{}),
	}
}

// Enqueue appends an entry. Storage errors propagate to the caller.
func (q *queue) Enqueue(ctx context.Context, entityType models.EntityType, op models.Operation, localID string) error {
	entry, err := q.newEntry(entityType, op, localID)
	if err != nil {
		return err
	}
	if err := q.store.AppendEntry(ctx, entry); err != nil {
		return fmt.Errorf("failed to enqueue %s %s: %w", entityType, localID, err)
	}

	q.enqueued(entry)
	return nil
}

// EnqueueEntity saves the entity together with its queue entry
func (q *queue) EnqueueEntity(ctx context.Context, entity models.Entity, op models.Operation) error {
	localID := entity.Header().LocalID
	entry, err := q.newEntry(entity.Kind(), op, localID)
	if err != nil {
		return err
	}
	if err := q.store.AppendWithEntity(ctx, entity, entry); err != nil {
		return fmt.Errorf("failed to enqueue %s %s: %w", entity.Kind(), localID, err)
	}

	q.enqueued(entry)
	return nil
}

func (q *queue) newEntry(entityType models.EntityType, op models.Operation, localID string) (*models.QueueEntry, error) {
	if !entityType.Valid() {
		return nil, fmt.Errorf("invalid entity type %q", entityType)
	}
	if localID == "" {
		return nil, fmt.Errorf("entity local id is required")
	}

	return &models.QueueEntry{
		EntityType:    entityType,
		Operation:     op,
		EntityLocalID: localID,
		EnqueuedAt:    q.now(),
	}, nil
}

func (q *queue) enqueued(entry *models.QueueEntry) {
	q.logger.Debug("Change enqueued",
		"id", entry.ID,
		"type", entry.EntityType,
		"operation", entry.Operation,
		"local_id", entry.EntityLocalID)

	q.notify()
}

// ListPending returns pending entries
func (q *queue) ListPending(ctx context.Context) ([]*models.QueueEntry, error) {
	entries, err := q.store.PendingEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending entries: %w", err)
	}
	return entries, nil
}

// MarkSynced marks entries as synced
func (q *queue) MarkSynced(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := q.store.MarkSynced(ctx, ids); err != nil {
		return fmt.Errorf("failed to mark %d entries synced: %w", len(ids), err)
	}
	return nil
}

// RecordAttempt records a delivery attempt
func (q *queue) RecordAttempt(ctx context.Context, id uint64, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	if err := q.store.RecordAttempt(ctx, id, msg); err != nil {
		return fmt.Errorf("failed to record attempt for entry %d: %w", id, err)
	}
	return nil
}

// PendingCount returns the number of pending entries
func (q *queue) PendingCount(ctx context.Context) (int, error) {
	count, err := q.store.CountPending(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending entries: %w", err)
	}
	return count, nil
}

// Clear drops the queue
func (q *queue) Clear(ctx context.Context) error {
	if err := q.store.ClearQueue(ctx); err != nil {
		return fmt.Errorf("failed to clear queue: %w", err)
	}
	q.logger.Info("Change queue cleared")
	return nil
}

// Subscribe registers a listener; the returned func unregisters it
func (q *queue) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	q.mu.Lock()
	id := q.nextID
	q.nextID++
	q.subs[id] = ch
	q.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			q.mu.Lock()
			delete(q.subs, id)
			q.mu.Unlock()
		})
	}
	return ch, cancel
}

func (q *queue) notify() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, ch := range q.subs {
		// Не блокируемся: если сигнал уже ждет чтения, второй не нужен
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Follow сигналит подписчикам, когда другой процесс дописал очередь.
// Изменение файла само по себе не повод: сравниваем Sequence, который
// растет только при добавлении записей.
func (q *queue) Follow(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	last, err := q.store.Sequence(ctx)
	if err != nil {
		return fmt.Errorf("failed to read queue sequence: %w", err)
	}
	// Запись могла появиться до начала наблюдения
	q.notify()

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			seq, err := q.store.Sequence(ctx)
			if err != nil {
				q.logger.Warn("Failed to read queue sequence", "error", err)
				continue
			}
			if seq > last {
				last = seq
				q.logger.Debug("Queue changed by another process", "sequence", seq)
				q.notify()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			q.logger.Warn("File watcher error", "error", err)
		}
	}
}
