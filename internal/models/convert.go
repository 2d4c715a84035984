package models

import (
	"time"

	"github.com/iudanet/gymsync/pkg/api"
)

// TemplateToAPI конвертирует шаблон в формат передачи
func TemplateToAPI(t *WorkoutTemplate) api.WorkoutTemplate {
	exercises := make([]api.TemplateExercise, 0, len(t.Exercises))
	for _, e := range t.Exercises {
		exercises = append(exercises, api.TemplateExercise(e))
	}
	return api.WorkoutTemplate{
		ServerID:    t.ServerID,
		LocalID:     t.LocalID,
		Name:        t.Name,
		Description: t.Description,
		Exercises:   exercises,
		Deleted:     t.Deleted(),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// TemplateFromAPI конвертирует шаблон из формата передачи
func TemplateFromAPI(t api.WorkoutTemplate) *WorkoutTemplate {
	exercises := make([]TemplateExercise, 0, len(t.Exercises))
	for _, e := range t.Exercises {
		exercises = append(exercises, TemplateExercise(e))
	}
	return &WorkoutTemplate{
		EntityHeader: EntityHeader{
			LocalID:   t.LocalID,
			ServerID:  firstNonEmpty(t.ServerID, t.ID),
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
			DeletedAt: tombstone(t.Deleted, t.UpdatedAt),
		},
		Name:        t.Name,
		Description: t.Description,
		Exercises:   exercises,
	}
}

// InstanceToAPI конвертирует тренировку в формат передачи
func InstanceToAPI(i *WorkoutInstance) api.WorkoutInstance {
	return api.WorkoutInstance{
		ServerID:        i.ServerID,
		LocalID:         i.LocalID,
		TemplateID:      i.TemplateID,
		TemplateLocalID: i.TemplateLocalID,
		Name:            i.Name,
		Notes:           i.Notes,
		StartedAt:       i.StartedAt,
		CompletedAt:     i.CompletedAt,
		Deleted:         i.Deleted(),
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}

// InstanceFromAPI конвертирует тренировку из формата передачи
func InstanceFromAPI(i api.WorkoutInstance) *WorkoutInstance {
	return &WorkoutInstance{
		EntityHeader: EntityHeader{
			LocalID:   i.LocalID,
			ServerID:  firstNonEmpty(i.ServerID, i.ID),
			CreatedAt: i.CreatedAt,
			UpdatedAt: i.UpdatedAt,
			DeletedAt: tombstone(i.Deleted, i.UpdatedAt),
		},
		TemplateID:      i.TemplateID,
		TemplateLocalID: i.TemplateLocalID,
		Name:            i.Name,
		Notes:           i.Notes,
		StartedAt:       i.StartedAt,
		CompletedAt:     i.CompletedAt,
	}
}

// LogToAPI конвертирует запись упражнения в формат передачи
func LogToAPI(l *ExerciseLog) api.ExerciseLog {
	return api.ExerciseLog{
		ServerID:        l.ServerID,
		LocalID:         l.LocalID,
		InstanceID:      l.InstanceID,
		InstanceLocalID: l.InstanceLocalID,
		ExerciseName:    l.ExerciseName,
		Source:          l.Source,
		Notes:           l.Notes,
		WeightKg:        l.WeightKg,
		DistanceMeters:  l.DistanceMeters,
		SetNumber:       l.SetNumber,
		Reps:            l.Reps,
		DurationSeconds: l.DurationSeconds,
		AvgHeartRate:    l.AvgHeartRate,
		PerformedAt:     l.PerformedAt,
		Deleted:         l.Deleted(),
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

// LogFromAPI конвертирует запись упражнения из формата передачи
func LogFromAPI(l api.ExerciseLog) *ExerciseLog {
	return &ExerciseLog{
		EntityHeader: EntityHeader{
			LocalID:   l.LocalID,
			ServerID:  firstNonEmpty(l.ServerID, l.ID),
			CreatedAt: l.CreatedAt,
			UpdatedAt: l.UpdatedAt,
			DeletedAt: tombstone(l.Deleted, l.UpdatedAt),
		},
		InstanceID:      l.InstanceID,
		InstanceLocalID: l.InstanceLocalID,
		ExerciseName:    l.ExerciseName,
		Source:          l.Source,
		Notes:           l.Notes,
		WeightKg:        l.WeightKg,
		DistanceMeters:  l.DistanceMeters,
		SetNumber:       l.SetNumber,
		Reps:            l.Reps,
		DurationSeconds: l.DurationSeconds,
		AvgHeartRate:    l.AvgHeartRate,
		PerformedAt:     l.PerformedAt,
	}
}

// MappingsToAPI конвертирует соответствия идентификаторов
func MappingsToAPI(mappings []IDMapping) []api.IDMapping {
	out := make([]api.IDMapping, 0, len(mappings))
	for _, m := range mappings {
		out = append(out, api.IDMapping(m))
	}
	return out
}

// tombstone возвращает время удаления для записи, пришедшей с флагом deleted
func tombstone(deleted bool, updatedAt time.Time) *time.Time {
	if !deleted {
		return nil
	}
	at := updatedAt
	return &at
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
