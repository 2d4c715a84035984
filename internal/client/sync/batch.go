package sync

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/iudanet/gymsync/internal/client/storage"
	"github.com/iudanet/gymsync/internal/models"
	"github.com/iudanet/gymsync/pkg/api"
)

// batchOutcome счетчики обработки одной пачки
type batchOutcome struct {
	sent   int
	synced int
}

// typeBatch записи одного типа внутри пачки
type typeBatch struct {
	entryIDs   []uint64
	tombstones []string
	payloads   int
}

// partition делит записи очереди на пачки фиксированного размера
func partition(entries []*models.QueueEntry, size int) [][]*models.QueueEntry {
	var batches [][]*models.QueueEntry
	for start := 0; start < len(entries); start += size {
		end := start + size
		if end > len(entries) {
			end = len(entries)
		}
		batches = append(batches, entries[start:end])
	}
	return batches
}

// collection имя коллекции в протоколе для типа сущности
func collection(t models.EntityType) string {
	switch t {
	case models.EntityTypeTemplate:
		return api.CollectionTemplates
	case models.EntityTypeInstance:
		return api.CollectionInstances
	default:
		return api.CollectionLogs
	}
}

// processBatch отправляет одну пачку и применяет ответ.
// Ошибка означает, что ни один тип пачки не был подтвержден сервером.
func (o *Orchestrator) processBatch(ctx context.Context, batch []*models.QueueEntry) (batchOutcome, error) {
	var out batchOutcome

	req, groups, consumed, err := o.buildRequest(ctx, batch)
	if err != nil {
		return out, err
	}

	// Записи без сетевой работы (удаленные до отправки) подтверждаем сразу
	if err := o.queue.MarkSynced(ctx, consumed); err != nil {
		return out, err
	}
	out.synced += len(consumed)

	if req.Empty() {
		return out, nil
	}

	for _, g := range groups {
		out.sent += g.payloads
	}

	reqCtx, cancel := context.WithTimeout(ctx, o.cfg.RequestTimeout)
	resp, err := o.gateway.Sync(reqCtx, req)
	cancel()
	if err == nil && resp == nil {
		err = errors.New("empty sync response")
	}
	if err != nil {
		o.recordAttempts(ctx, groups, err)
		return out, err
	}

	// Сервер не сообщил ни маппингов, ни ошибок по типам: вся пачка отклонена
	if !resp.Success && resp.Data == nil && len(resp.Errors) == 0 {
		err := fmt.Errorf("sync rejected: %s", firstNonEmpty(resp.Error, resp.Message, "unknown error"))
		o.recordAttempts(ctx, groups, err)
		return out, err
	}

	var failed []string
	succeeded := 0
	for _, t := range models.EntityTypes {
		g, ok := groups[t]
		if !ok {
			continue
		}

		if msg, bad := resp.Errors[collection(t)]; bad {
			typeErr := fmt.Errorf("%s: %s", collection(t), msg)
			o.recordAttempts(ctx, map[models.EntityType]*typeBatch{t: g}, typeErr)
			failed = append(failed, typeErr.Error())
			continue
		}

		if err := o.applyType(ctx, t, g, mappingsFor(resp.Data, t)); err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", collection(t), err))
			continue
		}
		succeeded++
		out.synced += len(g.entryIDs)
	}

	if succeeded == 0 {
		return out, fmt.Errorf("all entity types failed: %s", strings.Join(failed, "; "))
	}
	if len(failed) > 0 {
		o.logger.Warn("Partial sync failure", "errors", strings.Join(failed, "; "))
	}
	return out, nil
}

// buildRequest группирует записи пачки по типу и читает актуальное
// состояние каждой сущности. Повторные записи одной сущности отправляются один раз.
func (o *Orchestrator) buildRequest(ctx context.Context, batch []*models.QueueEntry) (*api.SyncRequest, map[models.EntityType]*typeBatch, []uint64, error) {
	req := &api.SyncRequest{UserID: o.cfg.AccountID}
	groups := make(map[models.EntityType]*typeBatch)
	var consumed []uint64

	// localId -> ID записей очереди, по типам
	refs := make(map[models.EntityType]map[string][]uint64)
	for _, e := range batch {
		if refs[e.EntityType] == nil {
			refs[e.EntityType] = make(map[string][]uint64)
		}
		refs[e.EntityType][e.EntityLocalID] = append(refs[e.EntityType][e.EntityLocalID], e.ID)
	}

	for _, t := range models.EntityTypes {
		byLocal := refs[t]
		if len(byLocal) == 0 {
			continue
		}

		localIDs := make([]string, 0, len(byLocal))
		for id := range byLocal {
			localIDs = append(localIDs, id)
		}
		sort.Strings(localIDs)

		for _, localID := range localIDs {
			ids := byLocal[localID]

			entity, err := o.entities.GetEntity(ctx, t, localID)
			if errors.Is(err, storage.ErrEntityNotFound) {
				consumed = append(consumed, ids...)
				continue
			}
			if err != nil {
				return nil, nil, nil, fmt.Errorf("failed to read %s %s: %w", t, localID, err)
			}

			h := entity.Header()
			if h.Deleted() && h.ServerID == "" {
				// Сервер о записи не знает: удаляем локально без запроса
				if err := o.entities.PurgeEntity(ctx, t, localID); err != nil && !errors.Is(err, storage.ErrEntityNotFound) {
					return nil, nil, nil, fmt.Errorf("failed to purge %s %s: %w", t, localID, err)
				}
				consumed = append(consumed, ids...)
				continue
			}

			if err := o.appendPayload(ctx, req, entity); err != nil {
				return nil, nil, nil, err
			}

			g := groups[t]
			if g == nil {
				g = &typeBatch{}
				groups[t] = g
			}
			g.entryIDs = append(g.entryIDs, ids...)
			g.payloads++
			if h.Deleted() {
				g.tombstones = append(g.tombstones, localID)
			}
		}
	}

	return req, groups, consumed, nil
}

// appendPayload добавляет сущность в запрос, подставляя серверные ID ссылок
func (o *Orchestrator) appendPayload(ctx context.Context, req *api.SyncRequest, entity models.Entity) error {
	switch e := entity.(type) {
	case *models.WorkoutTemplate:
		req.WorkoutTemplates = append(req.WorkoutTemplates, models.TemplateToAPI(e))

	case *models.WorkoutInstance:
		p := models.InstanceToAPI(e)
		if p.TemplateID == "" && p.TemplateLocalID != "" {
			p.TemplateID = o.serverIDOf(ctx, models.EntityTypeTemplate, p.TemplateLocalID)
		}
		req.WorkoutInstances = append(req.WorkoutInstances, p)

	case *models.ExerciseLog:
		p := models.LogToAPI(e)
		if p.InstanceID == "" && p.InstanceLocalID != "" {
			p.InstanceID = o.serverIDOf(ctx, models.EntityTypeInstance, p.InstanceLocalID)
		}
		req.ExerciseLogs = append(req.ExerciseLogs, p)

	default:
		return fmt.Errorf("unsupported entity %T", entity)
	}
	return nil
}

// serverIDOf возвращает serverId связанной записи или пустую строку
func (o *Orchestrator) serverIDOf(ctx context.Context, t models.EntityType, localID string) string {
	ref, err := o.entities.GetEntity(ctx, t, localID)
	if err != nil {
		return ""
	}
	return ref.Header().ServerID
}

// applyType применяет подтвержденный сервером тип: serverId, удаление tombstone, отметка очереди
func (o *Orchestrator) applyType(ctx context.Context, t models.EntityType, g *typeBatch, mappings []api.IDMapping) error {
	for _, m := range mappings {
		if m.ID == "" || m.LocalID == "" {
			continue
		}
		err := o.entities.ApplyServerID(ctx, t, m.LocalID, m.ID)
		switch {
		case err == nil:
		case errors.Is(err, storage.ErrEntityNotFound):
			// Запись удалена локально, пока запрос был в полете
		case errors.Is(err, storage.ErrServerIDConflict):
			o.logger.Warn("Server returned a different id for synced entity",
				"type", t,
				"local_id", m.LocalID,
				"server_id", m.ID)
		default:
			return fmt.Errorf("failed to apply server id: %w", err)
		}
	}

	for _, localID := range g.tombstones {
		if err := o.entities.PurgeEntity(ctx, t, localID); err != nil && !errors.Is(err, storage.ErrEntityNotFound) {
			return fmt.Errorf("failed to purge tombstone: %w", err)
		}
	}

	return o.queue.MarkSynced(ctx, g.entryIDs)
}

// recordAttempts сохраняет ошибку доставки в записях очереди
func (o *Orchestrator) recordAttempts(ctx context.Context, groups map[models.EntityType]*typeBatch, cause error) {
	for _, g := range groups {
		for _, id := range g.entryIDs {
			if err := o.queue.RecordAttempt(ctx, id, cause); err != nil {
				o.logger.Warn("Failed to record attempt", "entry_id", id, "error", err)
			}
		}
	}
}

func mappingsFor(data *api.SyncMappings, t models.EntityType) []api.IDMapping {
	if data == nil {
		return nil
	}
	switch t {
	case models.EntityTypeTemplate:
		return data.WorkoutTemplates
	case models.EntityTypeInstance:
		return data.WorkoutInstances
	default:
		return data.ExerciseLogs
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
