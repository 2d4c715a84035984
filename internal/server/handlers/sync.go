package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/iudanet/gymsync/internal/server/reconcile"
	"github.com/iudanet/gymsync/pkg/api"
)

// contextKey тип для ключей контекста
type contextKey string

// UserIDKey ключ для хранения user_id из токена в контексте
const UserIDKey contextKey = "user_id"

// maxSyncBodySize ограничение на размер тела POST /sync
const maxSyncBodySize = 10 << 20

// GetUserID извлекает user_id из контекста запроса
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

//go:generate moq -out reconciler_mock.go . Reconciler

// Reconciler сводит пакеты клиента с серверным хранилищем
type Reconciler interface {
	Sync(ctx context.Context, req *api.SyncRequest) (*api.SyncResponse, error)
	Pull(ctx context.Context, userID string) (*api.SyncData, error)
	Status(ctx context.Context, userID string) (*api.StatusResponse, error)
	Delete(ctx context.Context, userID string) error
}

// SyncHandler handles synchronization requests
type SyncHandler struct {
	logger     *slog.Logger
	reconciler Reconciler
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(logger *slog.Logger, reconciler Reconciler) *SyncHandler {
	return &SyncHandler{
		logger:     logger,
		reconciler: reconciler,
	}
}

// Push обрабатывает POST /sync.
// Частичная ошибка по одному из типов возвращается с кодом 200 и success=false.
func (h *SyncHandler) Push(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.SyncRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxSyncBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode sync request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if !h.authorize(w, r, req.UserID) {
		return
	}

	h.logger.InfoContext(ctx, "POST sync request",
		slog.String("user_id", req.UserID),
		slog.Int("templates", len(req.WorkoutTemplates)),
		slog.Int("instances", len(req.WorkoutInstances)),
		slog.Int("logs", len(req.ExerciseLogs)))

	resp, err := h.reconciler.Sync(ctx, &req)
	if err != nil {
		h.sendReconcileError(w, r, err)
		return
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Pull обрабатывает GET /sync/{userId}
func (h *SyncHandler) Pull(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if !h.authorize(w, r, userID) {
		return
	}

	data, err := h.reconciler.Pull(r.Context(), userID)
	if err != nil {
		h.sendReconcileError(w, r, err)
		return
	}

	sendJSON(h.logger, w, api.PullResponse{
		Success: true,
		UserID:  userID,
		Data:    data,
	}, http.StatusOK)
}

// Status обрабатывает GET /sync/{userId}/status
func (h *SyncHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if !h.authorize(w, r, userID) {
		return
	}

	resp, err := h.reconciler.Status(r.Context(), userID)
	if err != nil {
		h.sendReconcileError(w, r, err)
		return
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Delete обрабатывает DELETE /sync/{userId}
func (h *SyncHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if !h.authorize(w, r, userID) {
		return
	}

	if err := h.reconciler.Delete(r.Context(), userID); err != nil {
		h.sendReconcileError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "account data deleted", slog.String("user_id", userID))

	sendJSON(h.logger, w, api.DeleteResponse{
		Success: true,
		Message: "All data deleted",
	}, http.StatusOK)
}

// authorize сверяет userId запроса с пользователем из токена.
// Без AuthMiddleware в контексте нет пользователя, и проверка пропускается.
func (h *SyncHandler) authorize(w http.ResponseWriter, r *http.Request, userID string) bool {
	tokenUser, ok := GetUserID(r.Context())
	if !ok || userID == "" {
		return true
	}

	if tokenUser != userID {
		h.logger.WarnContext(r.Context(), "user_id mismatch",
			slog.String("expected", tokenUser),
			slog.String("got", userID))
		sendError(h.logger, w, "userId does not match token", http.StatusForbidden)
		return false
	}
	return true
}

func (h *SyncHandler) sendReconcileError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, reconcile.ErrValidation):
		h.logger.WarnContext(r.Context(), "invalid sync request", slog.Any("error", err))
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, reconcile.ErrIdentityResolutionExhausted):
		h.logger.ErrorContext(r.Context(), "account resolution failed", slog.Any("error", err))
		sendError(h.logger, w, "account resolution failed", http.StatusInternalServerError)
	default:
		h.logger.ErrorContext(r.Context(), "sync request failed", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
	}
}
