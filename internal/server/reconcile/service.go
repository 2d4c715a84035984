// Package reconcile принимает пакеты изменений от клиентов и сводит их
// с серверным хранилищем: определяет аккаунт, выполняет идемпотентный
// upsert по каждому типу сущностей и ведет журнал синхронизаций.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/iudanet/gymsync/internal/models"
	"github.com/iudanet/gymsync/internal/retry"
	"github.com/iudanet/gymsync/internal/server/storage"
	"github.com/iudanet/gymsync/internal/validation"
	"github.com/iudanet/gymsync/pkg/api"
)

var (
	// ErrValidation запрос не прошел проверку (ответ 400)
	ErrValidation = errors.New("validation error")
	// ErrIdentityResolutionExhausted аккаунт не удалось определить за все попытки (ответ 500)
	ErrIdentityResolutionExhausted = errors.New("identity resolution exhausted")
)

// Service reconciles client batches with the relational store
type Service struct {
	store       storage.Storage
	logger      *slog.Logger
	now         func() time.Time
	group       singleflight.Group
	retryPolicy retry.Policy
}

// Option настраивает Service
type Option func(*Service)

// WithRetryPolicy overrides the identity resolution retry policy
func WithRetryPolicy(p retry.Policy) Option {
	return func(s *Service) {
		s.retryPolicy = p
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a new reconciliation service
func New(store storage.Storage, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:       store,
		logger:      logger,
		now:         time.Now,
		retryPolicy: retry.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// typeResult итог обработки одного типа сущностей
type typeResult struct {
	err        error
	collection string
	mappings   []models.IDMapping
}

// Sync applies one client batch.
// Types are written in order templates, instances, logs, each in its own
// transaction; a failed type does not stop the others. The ledger is
// updated after every attempt.
func (s *Service) Sync(ctx context.Context, req *api.SyncRequest) (*api.SyncResponse, error) {
	ref, err := validation.ParseAccountRef(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := validateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	ownerID, err := s.ResolveAccount(ctx, ref, true)
	if err != nil {
		return nil, err
	}

	s.markPending(ctx, ownerID)

	results := []typeResult{
		s.syncTemplates(ctx, ownerID, req.WorkoutTemplates),
		s.syncInstances(ctx, ownerID, req.WorkoutInstances),
		s.syncLogs(ctx, ownerID, req.ExerciseLogs),
	}

	resp := &api.SyncResponse{
		Data:    &api.SyncMappings{},
		Success: true,
	}
	var failures []string
	for _, r := range results {
		if r.err != nil {
			if resp.Errors == nil {
				resp.Errors = make(map[string]string)
			}
			resp.Errors[r.collection] = r.err.Error()
			failures = append(failures, r.collection+": "+r.err.Error())
			s.logger.Error("Failed to sync collection",
				"owner_id", ownerID,
				"collection", r.collection,
				"error", r.err)
			continue
		}

		mappings := models.MappingsToAPI(r.mappings)
		switch r.collection {
		case api.CollectionTemplates:
			resp.Data.WorkoutTemplates = mappings
		case api.CollectionInstances:
			resp.Data.WorkoutInstances = mappings
		case api.CollectionLogs:
			resp.Data.ExerciseLogs = mappings
		}
	}

	if len(failures) > 0 {
		resp.Success = false
		resp.Error = strings.Join(failures, "; ")
		resp.Message = "Sync completed with errors"
	} else {
		resp.Message = "Sync completed successfully"
	}

	s.saveLedger(ctx, ownerID, resp)

	s.logger.Info("Sync completed",
		"owner_id", ownerID,
		"templates", len(resp.Data.WorkoutTemplates),
		"instances", len(resp.Data.WorkoutInstances),
		"logs", len(resp.Data.ExerciseLogs),
		"success", resp.Success)

	return resp, nil
}

// validateRequest проверяет обязательные поля сущностей
func validateRequest(req *api.SyncRequest) error {
	for i, t := range req.WorkoutTemplates {
		if strings.TrimSpace(t.LocalID) == "" {
			return fmt.Errorf("%s[%d]: localId is required", api.CollectionTemplates, i)
		}
	}
	for i, inst := range req.WorkoutInstances {
		if strings.TrimSpace(inst.LocalID) == "" {
			return fmt.Errorf("%s[%d]: localId is required", api.CollectionInstances, i)
		}
	}
	for i, l := range req.ExerciseLogs {
		if strings.TrimSpace(l.LocalID) == "" {
			return fmt.Errorf("%s[%d]: localId is required", api.CollectionLogs, i)
		}
	}
	return nil
}

// markPending записывает статус pending, сохраняя время и счетчики прошлой синхронизации
func (s *Service) markPending(ctx context.Context, ownerID string) {
	ledger, err := s.store.GetLedger(ctx, ownerID)
	if err != nil {
		if !errors.Is(err, storage.ErrLedgerNotFound) {
			s.logger.Warn("Failed to read ledger", "owner_id", ownerID, "error", err)
		}
		ledger = &models.SyncLedger{AccountID: ownerID}
	}
	ledger.Status = models.SyncStatusPending
	ledger.ErrorMessage = ""

	if err := s.store.SaveLedger(ctx, ledger); err != nil {
		s.logger.Warn("Failed to mark ledger pending", "owner_id", ownerID, "error", err)
	}
}

func (s *Service) saveLedger(ctx context.Context, ownerID string, resp *api.SyncResponse) {
	ledger := &models.SyncLedger{
		AccountID:       ownerID,
		LastSyncTime:    s.now().UTC(),
		Status:          models.SyncStatusSuccess,
		TemplatesSynced: len(resp.Data.WorkoutTemplates),
		InstancesSynced: len(resp.Data.WorkoutInstances),
		LogsSynced:      len(resp.Data.ExerciseLogs),
	}
	if !resp.Success {
		ledger.Status = models.SyncStatusError
		ledger.ErrorMessage = resp.Error
	}

	// Контекст запроса мог быть отменен, журнал все равно должен обновиться
	ctx = context.WithoutCancel(ctx)
	if err := s.store.SaveLedger(ctx, ledger); err != nil {
		s.logger.Error("Failed to save ledger", "owner_id", ownerID, "error", err)
	}
}

// Pull returns every entity of the account.
// An unknown handle yields empty collections.
func (s *Service) Pull(ctx context.Context, userID string) (*api.SyncData, error) {
	ownerID, err := s.lookup(ctx, userID)
	if err != nil {
		return nil, err
	}

	data := &api.SyncData{
		WorkoutTemplates: []api.WorkoutTemplate{},
		WorkoutInstances: []api.WorkoutInstance{},
		ExerciseLogs:     []api.ExerciseLog{},
	}
	if ownerID == "" {
		return data, nil
	}

	templates, err := s.store.ListTemplates(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	for _, t := range templates {
		item := models.TemplateToAPI(t)
		item.ID = t.ServerID
		data.WorkoutTemplates = append(data.WorkoutTemplates, item)
	}

	instances, err := s.store.ListInstances(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}
	for _, i := range instances {
		item := models.InstanceToAPI(i)
		item.ID = i.ServerID
		data.WorkoutInstances = append(data.WorkoutInstances, item)
	}

	logs, err := s.store.ListLogs(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	for _, l := range logs {
		item := models.LogToAPI(l)
		item.ID = l.ServerID
		data.ExerciseLogs = append(data.ExerciseLogs, item)
	}

	return data, nil
}

// Status returns the ledger view of the account
func (s *Service) Status(ctx context.Context, userID string) (*api.StatusResponse, error) {
	ownerID, err := s.lookup(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &api.StatusResponse{
		Success:      true,
		UserID:       userID,
		LastSyncTime: api.NeverSynced,
	}
	if ownerID == "" {
		return resp, nil
	}

	ledger, err := s.store.GetLedger(ctx, ownerID)
	if err != nil {
		if errors.Is(err, storage.ErrLedgerNotFound) {
			return resp, nil
		}
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}

	if !ledger.LastSyncTime.IsZero() {
		resp.LastSyncTime = ledger.LastSyncTime.UTC().Format(time.RFC3339)
	}
	resp.Status = string(ledger.Status)
	resp.ErrorMessage = ledger.ErrorMessage
	resp.SyncedCounts = &api.SyncCounts{
		WorkoutTemplates: ledger.TemplatesSynced,
		WorkoutInstances: ledger.InstancesSynced,
		ExerciseLogs:     ledger.LogsSynced,
	}

	return resp, nil
}

// Delete removes all entities and the ledger of the account.
// Deleting an unknown handle is a no-op.
func (s *Service) Delete(ctx context.Context, userID string) error {
	ownerID, err := s.lookup(ctx, userID)
	if err != nil {
		return err
	}
	if ownerID == "" {
		return nil
	}

	if err := s.store.DeleteOwnerData(ctx, ownerID); err != nil {
		return fmt.Errorf("failed to delete account data: %w", err)
	}

	s.logger.Info("Account data deleted", "owner_id", ownerID)
	return nil
}

// lookup определяет аккаунт без создания; "" - аккаунта нет
func (s *Service) lookup(ctx context.Context, userID string) (string, error) {
	ref, err := validation.ParseAccountRef(userID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrValidation, err)
	}

	ownerID, err := s.ResolveAccount(ctx, ref, false)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			return "", nil
		}
		return "", err
	}
	return ownerID, nil
}
