// Package sync доставляет локальные изменения на сервер.
//
// Orchestrator читает очередь изменений, собирает пачки из актуального
// состояния записей, отправляет их и применяет назначенные сервером ID.
// Одновременно выполняется не больше одного прогона.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iudanet/gymsync/internal/client/connectivity"
	"github.com/iudanet/gymsync/internal/client/queue"
	"github.com/iudanet/gymsync/internal/client/storage"
	"github.com/iudanet/gymsync/pkg/api"
)

// State состояние оркестратора
type State string

const (
	StateIdle      State = "idle"
	StateSyncing   State = "syncing"
	StateSuspended State = "suspended"
)

// ErrSyncInProgress прогон уже выполняется
var ErrSyncInProgress = errors.New("sync already in progress")

//go:generate moq -out gateway_mock.go . Gateway

// Gateway отправляет пачку изменений на сервер
type Gateway interface {
	Sync(ctx context.Context, req *api.SyncRequest) (*api.SyncResponse, error)
}

//go:generate moq -out connectivity_mock.go . Connectivity

// Connectivity источник состояния сети
type Connectivity interface {
	Online() bool
	Subscribe() (<-chan connectivity.Transition, func())
}

// RunResult итоги одного прогона
type RunResult struct {
	StartedAt     time.Time
	Duration      time.Duration
	Batches       int
	FailedBatches int
	Sent          int // сущностей отправлено
	Synced        int // записей очереди подтверждено
}

// Status снимок состояния для отображения пользователю
type Status struct {
	LastSyncTime        time.Time
	SuspendedAt         *time.Time
	LastRun             *RunResult
	State               State
	LastError           string
	Progress            int
	ConsecutiveFailures int
	PendingCount        int
}

// Orchestrator state machine Idle/Syncing/Suspended
type Orchestrator struct {
	gateway  Gateway
	entities storage.EntityStorage
	queue    queue.Service
	meta     storage.MetadataStorage
	monitor  Connectivity
	logger   *slog.Logger
	now      func() time.Time
	cfg      Config

	// running проверяется и выставляется до любой асинхронной работы
	running atomic.Bool

	mu       sync.Mutex
	persist  storage.SyncState
	lastRun  *RunResult
	state    State
	progress int
}

// New creates an orchestrator and restores persisted state
func New(
	ctx context.Context,
	cfg Config,
	gateway Gateway,
	entities storage.EntityStorage,
	q queue.Service,
	meta storage.MetadataStorage,
	monitor Connectivity,
	logger *slog.Logger,
) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sync config: %w", err)
	}

	persisted, err := meta.GetSyncState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sync state: %w", err)
	}

	o := &Orchestrator{
		gateway:  gateway,
		entities: entities,
		queue:    q,
		meta:     meta,
		monitor:  monitor,
		logger:   logger,
		now:      time.Now,
		cfg:      cfg,
		persist:  *persisted,
		state:    StateIdle,
	}
	if o.persist.ConsecutiveFailures >= cfg.MaxConsecutiveFailures {
		o.state = StateSuspended
	}

	return o, nil
}

// Start subscribes to connectivity and queue events and evaluates the
// trigger predicate on each of them until ctx is cancelled.
// Runs happen on this goroutine, one at a time.
func (o *Orchestrator) Start(ctx context.Context) error {
	transitions, unsubscribeNet := o.monitor.Subscribe()
	defer unsubscribeNet()

	enqueued, unsubscribeQueue := o.queue.Subscribe()
	defer unsubscribeQueue()

	var resume <-chan time.Time
	if o.cfg.ResumeAfter > 0 {
		ticker := time.NewTicker(o.cfg.ResumeAfter)
		defer ticker.Stop()
		resume = ticker.C
	}

	o.trigger(ctx, "app_start")

	for {
		select {
		case <-ctx.Done():
			return nil
		case tr := <-transitions:
			if tr.Online {
				o.trigger(ctx, "connectivity_restored")
			}
		case <-enqueued:
			o.trigger(ctx, "change_enqueued")
		case <-resume:
			o.trigger(ctx, "resume_timer")
		}
	}
}

// Sync is the manual trigger. It ignores suspension and returns false
// when another run is in flight.
func (o *Orchestrator) Sync(ctx context.Context) (bool, error) {
	return o.run(ctx, "manual")
}

// Status returns a snapshot of the orchestrator state
func (o *Orchestrator) Status(ctx context.Context) (Status, error) {
	pending, err := o.queue.PendingCount(ctx)
	if err != nil {
		return Status{}, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	st := Status{
		State:               o.state,
		Progress:            o.progress,
		ConsecutiveFailures: o.persist.ConsecutiveFailures,
		LastSyncTime:        o.persist.LastSyncTime,
		LastError:           o.persist.LastError,
		PendingCount:        pending,
	}
	if o.persist.SuspendedAt != nil {
		at := *o.persist.SuspendedAt
		st.SuspendedAt = &at
	}
	if o.lastRun != nil {
		r := *o.lastRun
		st.LastRun = &r
	}
	return st, nil
}

// State returns the current state
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// trigger evaluates the auto-sync predicate and runs when it holds
func (o *Orchestrator) trigger(ctx context.Context, reason string) {
	if !o.shouldAutoSync(ctx) {
		return
	}
	if _, err := o.run(ctx, reason); err != nil {
		o.logger.Warn("Automatic sync failed", "reason", reason, "error", err)
	}
}

// shouldAutoSync: сеть есть, очередь не пуста, прогон не идет, порог ошибок не достигнут
func (o *Orchestrator) shouldAutoSync(ctx context.Context) bool {
	if o.running.Load() || !o.monitor.Online() {
		return false
	}

	o.mu.Lock()
	allowed := o.persist.ConsecutiveFailures < o.cfg.MaxConsecutiveFailures || o.resumeDueLocked()
	o.mu.Unlock()
	if !allowed {
		return false
	}

	pending, err := o.queue.PendingCount(ctx)
	if err != nil {
		o.logger.Warn("Failed to count pending changes", "error", err)
		return false
	}
	return pending > 0
}

// resumeDueLocked сообщает, что пора сделать автоматическую попытку из Suspended
func (o *Orchestrator) resumeDueLocked() bool {
	if o.cfg.ResumeAfter <= 0 || o.persist.SuspendedAt == nil {
		return false
	}
	return o.now().Sub(*o.persist.SuspendedAt) >= o.cfg.ResumeAfter
}

// run executes one sync run under the single-flight guard
func (o *Orchestrator) run(ctx context.Context, reason string) (bool, error) {
	if !o.running.CompareAndSwap(false, true) {
		o.logger.Debug("Sync skipped, another run in progress", "reason", reason)
		return false, nil
	}
	defer o.running.Store(false)

	o.mu.Lock()
	o.state = StateSyncing
	o.progress = 0
	o.mu.Unlock()

	o.logger.Info("Starting synchronization", "reason", reason)

	result, runErr := o.runBatches(ctx)
	o.finish(ctx, result, runErr)

	return true, runErr
}

// runBatches читает очередь и отправляет ее пачками
func (o *Orchestrator) runBatches(ctx context.Context) (*RunResult, error) {
	result := &RunResult{StartedAt: o.now()}

	entries, err := o.queue.ListPending(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to read queue: %w", err)
	}

	batches := partition(entries, o.cfg.BatchSize)
	result.Batches = len(batches)

	var lastErr error
	for i, batch := range batches {
		// Между пачками прогон можно прервать, внутри пачки нельзя
		if err := ctx.Err(); err != nil {
			result.FailedBatches += len(batches) - i
			lastErr = err
			break
		}

		out, err := o.processBatch(ctx, batch)
		result.Sent += out.sent
		result.Synced += out.synced
		if err != nil {
			result.FailedBatches++
			lastErr = err
			o.logger.Warn("Batch failed",
				"batch", i+1,
				"of", len(batches),
				"entries", len(batch),
				"error", err)
		}

		o.mu.Lock()
		o.progress = (i + 1) * 100 / len(batches)
		o.mu.Unlock()
	}

	result.Duration = o.now().Sub(result.StartedAt)

	if result.Batches > 0 && result.FailedBatches == result.Batches {
		return result, lastErr
	}
	return result, nil
}

// finish пересчитывает счетчик ошибок, переводит состояние и сохраняет его
func (o *Orchestrator) finish(ctx context.Context, result *RunResult, runErr error) {
	now := o.now()

	o.mu.Lock()
	o.lastRun = result
	switch {
	case runErr == nil:
		// Хотя бы одна пачка прошла или очередь была пуста
		o.persist.LastSyncTime = now
		o.persist.ConsecutiveFailures = 0
		o.persist.SuspendedAt = nil
		o.persist.LastError = ""
		o.progress = 100
		o.state = StateIdle
	case ctx.Err() != nil:
		// Прерванный прогон не считается неудачей
		if o.persist.ConsecutiveFailures >= o.cfg.MaxConsecutiveFailures {
			o.state = StateSuspended
		} else {
			o.state = StateIdle
		}
	default:
		o.persist.ConsecutiveFailures++
		o.persist.LastError = runErr.Error()
		if o.persist.ConsecutiveFailures >= o.cfg.MaxConsecutiveFailures {
			// Отсчет ResumeAfter начинается с последней неудачи
			o.persist.SuspendedAt = &now
			o.state = StateSuspended
		} else {
			o.state = StateIdle
		}
	}
	snapshot := o.persist
	state := o.state
	o.mu.Unlock()

	if err := o.meta.SaveSyncState(context.WithoutCancel(ctx), &snapshot); err != nil {
		o.logger.Warn("Failed to save sync state", "error", err)
	}

	if runErr != nil {
		o.logger.Warn("Synchronization failed",
			"state", state,
			"consecutive_failures", snapshot.ConsecutiveFailures,
			"error", runErr)
		return
	}

	o.logger.Info("Synchronization completed",
		"batches", result.Batches,
		"failed_batches", result.FailedBatches,
		"sent", result.Sent,
		"synced", result.Synced,
		"duration", result.Duration)
}
