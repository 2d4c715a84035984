package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/iudanet/gymsync/internal/models"
	"github.com/iudanet/gymsync/internal/server/storage"
)

// entityTables имена таблиц по типам сущностей
var entityTables = map[models.EntityType]string{
	models.EntityTypeTemplate: "workout_templates",
	models.EntityTypeInstance: "workout_instances",
	models.EntityTypeLog:      "exercise_logs",
}

func tableFor(entityType models.EntityType) (string, error) {
	table, ok := entityTables[entityType]
	if !ok {
		return "", fmt.Errorf("unknown entity type %q", entityType)
	}
	return table, nil
}

// entityTx реализует storage.EntityTx поверх *sql.Tx
type entityTx struct {
	q      querier
	driver string
}

// WithTx runs fn in a transaction
func (s *Storage) WithTx(ctx context.Context, fn func(tx storage.EntityTx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(&entityTx{q: tx, driver: s.driver}); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// FindIDByLocalID returns the canonical id of the owner's row with this localId
func (t *entityTx) FindIDByLocalID(ctx context.Context, entityType models.EntityType, ownerID, localID string) (string, error) {
	table, err := tableFor(entityType)
	if err != nil {
		return "", err
	}

	query := fmt.Sprintf(`SELECT id FROM %s WHERE owner_id = ? AND local_id = ?`, table)

	var id string
	err = t.q.QueryRowContext(ctx, rebind(t.driver, query), ownerID, localID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrEntityNotFound
		}
		return "", fmt.Errorf("failed to find %s by local id: %w", entityType, err)
	}
	return id, nil
}

// UpsertTemplate inserts or updates the row keyed by ServerID
func (t *entityTx) UpsertTemplate(ctx context.Context, tpl *models.WorkoutTemplate) error {
	exercises, err := json.Marshal(tpl.Exercises)
	if err != nil {
		return fmt.Errorf("failed to marshal exercises: %w", err)
	}

	query := `
		INSERT INTO workout_templates (id, owner_id, local_id, name, description, exercises,
			created_at, updated_at, synced_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			local_id = excluded.local_id,
			name = excluded.name,
			description = excluded.description,
			exercises = excluded.exercises,
			updated_at = excluded.updated_at,
			synced_at = excluded.synced_at
		WHERE workout_templates.owner_id = excluded.owner_id
	`

	return t.upsert(ctx, models.EntityTypeTemplate, query,
		tpl.ServerID,
		tpl.OwnerID,
		tpl.LocalID,
		tpl.Name,
		tpl.Description,
		string(exercises),
		tpl.CreatedAt,
		tpl.UpdatedAt,
		time.Now().UTC(),
	)
}

// UpsertInstance inserts or updates the row keyed by ServerID
func (t *entityTx) UpsertInstance(ctx context.Context, inst *models.WorkoutInstance) error {
	query := `
		INSERT INTO workout_instances (id, owner_id, local_id, template_id, template_local_id,
			name, notes, started_at, completed_at, created_at, updated_at, synced_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			local_id = excluded.local_id,
			template_id = excluded.template_id,
			template_local_id = excluded.template_local_id,
			name = excluded.name,
			notes = excluded.notes,
			started_at = excluded.started_at,
			completed_at = excluded.completed_at,
			updated_at = excluded.updated_at,
			synced_at = excluded.synced_at
		WHERE workout_instances.owner_id = excluded.owner_id
	`

	return t.upsert(ctx, models.EntityTypeInstance, query,
		inst.ServerID,
		inst.OwnerID,
		inst.LocalID,
		nullString(inst.TemplateID),
		inst.TemplateLocalID,
		inst.Name,
		inst.Notes,
		inst.StartedAt,
		nullTime(inst.CompletedAt),
		inst.CreatedAt,
		inst.UpdatedAt,
		time.Now().UTC(),
	)
}

// UpsertLog inserts or updates the row keyed by ServerID
func (t *entityTx) UpsertLog(ctx context.Context, l *models.ExerciseLog) error {
	query := `
		INSERT INTO exercise_logs (id, owner_id, local_id, instance_id, instance_local_id,
			exercise_name, source, notes, set_number, reps, weight_kg, duration_seconds,
			distance_meters, avg_heart_rate, performed_at, created_at, updated_at, synced_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			local_id = excluded.local_id,
			instance_id = excluded.instance_id,
			instance_local_id = excluded.instance_local_id,
			exercise_name = excluded.exercise_name,
			source = excluded.source,
			notes = excluded.notes,
			set_number = excluded.set_number,
			reps = excluded.reps,
			weight_kg = excluded.weight_kg,
			duration_seconds = excluded.duration_seconds,
			distance_meters = excluded.distance_meters,
			avg_heart_rate = excluded.avg_heart_rate,
			performed_at = excluded.performed_at,
			updated_at = excluded.updated_at,
			synced_at = excluded.synced_at
		WHERE exercise_logs.owner_id = excluded.owner_id
	`

	source := l.Source
	if source == "" {
		source = models.LogSourceManual
	}

	return t.upsert(ctx, models.EntityTypeLog, query,
		l.ServerID,
		l.OwnerID,
		l.LocalID,
		nullString(l.InstanceID),
		l.InstanceLocalID,
		l.ExerciseName,
		source,
		l.Notes,
		l.SetNumber,
		l.Reps,
		l.WeightKg,
		l.DurationSeconds,
		l.DistanceMeters,
		l.AvgHeartRate,
		l.PerformedAt,
		l.CreatedAt,
		l.UpdatedAt,
		time.Now().UTC(),
	)
}

// upsert выполняет запрос и проверяет, что строка действительно записана
func (t *entityTx) upsert(ctx context.Context, entityType models.EntityType, query string, args ...any) error {
	res, err := t.q.ExecContext(ctx, rebind(t.driver, query), args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("invalid reference in %s %v: %w", entityType, args[0], err)
		}
		return fmt.Errorf("failed to upsert %s %v: %w", entityType, args[0], err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	// Конфликт по id с чужой строкой: WHERE в DO UPDATE ничего не обновил
	if n == 0 {
		return fmt.Errorf("%s %v: %w", entityType, args[0], storage.ErrForeignOwner)
	}
	return nil
}

// DeleteEntity removes the owner's row
func (t *entityTx) DeleteEntity(ctx context.Context, entityType models.EntityType, ownerID, id string) error {
	table, err := tableFor(entityType)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ? AND owner_id = ?`, table)
	if _, err := t.q.ExecContext(ctx, rebind(t.driver, query), id, ownerID); err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", entityType, id, err)
	}
	return nil
}

// ListTemplates returns all templates of the owner
func (s *Storage) ListTemplates(ctx context.Context, ownerID string) ([]*models.WorkoutTemplate, error) {
	query := `
		SELECT id, owner_id, local_id, name, description, exercises, created_at, updated_at
		FROM workout_templates
		WHERE owner_id = ?
		ORDER BY created_at, id
	`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	defer rows.Close()

	templates := make([]*models.WorkoutTemplate, 0)
	for rows.Next() {
		tpl := &models.WorkoutTemplate{}
		var exercises string
		if err := rows.Scan(
			&tpl.ServerID,
			&tpl.OwnerID,
			&tpl.LocalID,
			&tpl.Name,
			&tpl.Description,
			&exercises,
			&tpl.CreatedAt,
			&tpl.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		if err := json.Unmarshal([]byte(exercises), &tpl.Exercises); err != nil {
			return nil, fmt.Errorf("failed to unmarshal exercises: %w", err)
		}
		templates = append(templates, tpl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return templates, nil
}

// ListInstances returns all workout instances of the owner
func (s *Storage) ListInstances(ctx context.Context, ownerID string) ([]*models.WorkoutInstance, error) {
	query := `
		SELECT id, owner_id, local_id, template_id, template_local_id, name, notes,
			started_at, completed_at, created_at, updated_at
		FROM workout_instances
		WHERE owner_id = ?
		ORDER BY started_at, id
	`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query instances: %w", err)
	}
	defer rows.Close()

	instances := make([]*models.WorkoutInstance, 0)
	for rows.Next() {
		inst := &models.WorkoutInstance{}
		var templateID sql.NullString
		var completedAt sql.NullTime
		if err := rows.Scan(
			&inst.ServerID,
			&inst.OwnerID,
			&inst.LocalID,
			&templateID,
			&inst.TemplateLocalID,
			&inst.Name,
			&inst.Notes,
			&inst.StartedAt,
			&completedAt,
			&inst.CreatedAt,
			&inst.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan instance: %w", err)
		}
		inst.TemplateID = templateID.String
		if completedAt.Valid {
			inst.CompletedAt = &completedAt.Time
		}
		instances = append(instances, inst)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return instances, nil
}

// ListLogs returns all exercise logs of the owner
func (s *Storage) ListLogs(ctx context.Context, ownerID string) ([]*models.ExerciseLog, error) {
	query := `
		SELECT id, owner_id, local_id, instance_id, instance_local_id, exercise_name, source,
			notes, set_number, reps, weight_kg, duration_seconds, distance_meters,
			avg_heart_rate, performed_at, created_at, updated_at
		FROM exercise_logs
		WHERE owner_id = ?
		ORDER BY performed_at, id
	`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query logs: %w", err)
	}
	defer rows.Close()

	logs := make([]*models.ExerciseLog, 0)
	for rows.Next() {
		l := &models.ExerciseLog{}
		var instanceID sql.NullString
		if err := rows.Scan(
			&l.ServerID,
			&l.OwnerID,
			&l.LocalID,
			&instanceID,
			&l.InstanceLocalID,
			&l.ExerciseName,
			&l.Source,
			&l.Notes,
			&l.SetNumber,
			&l.Reps,
			&l.WeightKg,
			&l.DurationSeconds,
			&l.DistanceMeters,
			&l.AvgHeartRate,
			&l.PerformedAt,
			&l.CreatedAt,
			&l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan log: %w", err)
		}
		l.InstanceID = instanceID.String
		logs = append(logs, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return logs, nil
}

// DeleteOwnerData removes all entity rows and the ledger row of the owner
func (s *Storage) DeleteOwnerData(ctx context.Context, ownerID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Сначала зависимые таблицы
	tables := []string{"exercise_logs", "workout_instances", "workout_templates"}
	for _, table := range tables {
		query := fmt.Sprintf(`DELETE FROM %s WHERE owner_id = ?`, table)
		if _, err := tx.ExecContext(ctx, s.rebind(query), ownerID); err != nil {
			return fmt.Errorf("failed to delete from %s: %w", table, err)
		}
	}

	if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM sync_ledger WHERE account_id = ?`), ownerID); err != nil {
		return fmt.Errorf("failed to delete ledger: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
