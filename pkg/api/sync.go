package api

import "time"

// Имена коллекций в теле запроса/ответа синхронизации
const (
	CollectionTemplates = "workoutTemplates"
	CollectionInstances = "workoutInstances"
	CollectionLogs      = "exerciseLogs"
)

// TemplateExercise упражнение в шаблоне
type TemplateExercise struct {
	Name     string  `json:"name"`
	Sets     int     `json:"sets"`
	Reps     int     `json:"reps"`
	WeightKg float64 `json:"weightKg,omitempty"`
}

// WorkoutTemplate шаблон тренировки в формате передачи.
// В запросах ServerID задан, если сервер уже назначил идентификатор;
// в ответах GET /sync/{userId} ID и ServerID совпадают.
type WorkoutTemplate struct {
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
	ID          string             `json:"id,omitempty"`
	ServerID    string             `json:"serverId,omitempty"`
	LocalID     string             `json:"localId"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Exercises   []TemplateExercise `json:"exercises,omitempty"`
	Deleted     bool               `json:"deleted,omitempty"`
}

// WorkoutInstance проведенная тренировка в формате передачи
type WorkoutInstance struct {
	StartedAt       time.Time  `json:"startedAt"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	ID              string     `json:"id,omitempty"`
	ServerID        string     `json:"serverId,omitempty"`
	LocalID         string     `json:"localId"`
	TemplateID      string     `json:"templateId,omitempty"`
	TemplateLocalID string     `json:"templateLocalId,omitempty"`
	Name            string     `json:"name"`
	Notes           string     `json:"notes,omitempty"`
	Deleted         bool       `json:"deleted,omitempty"`
}

// ExerciseLog запись упражнения в формате передачи
type ExerciseLog struct {
	PerformedAt     time.Time `json:"performedAt"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	ID              string    `json:"id,omitempty"`
	ServerID        string    `json:"serverId,omitempty"`
	LocalID         string    `json:"localId"`
	InstanceID      string    `json:"instanceId,omitempty"`
	InstanceLocalID string    `json:"instanceLocalId,omitempty"`
	ExerciseName    string    `json:"exerciseName"`
	Source          string    `json:"source,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	WeightKg        float64   `json:"weightKg,omitempty"`
	DistanceMeters  float64   `json:"distanceMeters,omitempty"`
	SetNumber       int       `json:"setNumber,omitempty"`
	Reps            int       `json:"reps,omitempty"`
	DurationSeconds int       `json:"durationSeconds,omitempty"`
	AvgHeartRate    int       `json:"avgHeartRate,omitempty"`
	Deleted         bool      `json:"deleted,omitempty"`
}

// SyncRequest тело POST /sync
type SyncRequest struct {
	UserID           string            `json:"userId"`
	WorkoutTemplates []WorkoutTemplate `json:"workoutTemplates,omitempty"`
	WorkoutInstances []WorkoutInstance `json:"workoutInstances,omitempty"`
	ExerciseLogs     []ExerciseLog     `json:"exerciseLogs,omitempty"`
}

// Empty сообщает, что в запросе нет ни одной сущности
func (r *SyncRequest) Empty() bool {
	return len(r.WorkoutTemplates) == 0 && len(r.WorkoutInstances) == 0 && len(r.ExerciseLogs) == 0
}

// IDMapping пара (серверный id, клиентский localId)
type IDMapping struct {
	ID      string `json:"id"`
	LocalID string `json:"localId"`
}

// SyncMappings соответствия идентификаторов по типам
type SyncMappings struct {
	WorkoutTemplates []IDMapping `json:"workoutTemplates,omitempty"`
	WorkoutInstances []IDMapping `json:"workoutInstances,omitempty"`
	ExerciseLogs     []IDMapping `json:"exerciseLogs,omitempty"`
}

// SyncResponse ответ POST /sync.
// Errors содержит ошибку по каждому типу, который не удалось сохранить;
// Error - все такие ошибки одной строкой.
type SyncResponse struct {
	Data    *SyncMappings     `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Message string            `json:"message"`
	Error   string            `json:"error,omitempty"`
	Success bool              `json:"success"`
}

// SyncData все сущности аккаунта
type SyncData struct {
	WorkoutTemplates []WorkoutTemplate `json:"workoutTemplates"`
	WorkoutInstances []WorkoutInstance `json:"workoutInstances"`
	ExerciseLogs     []ExerciseLog     `json:"exerciseLogs"`
}

// PullResponse ответ GET /sync/{userId}
type PullResponse struct {
	Data    *SyncData `json:"data,omitempty"`
	UserID  string    `json:"userId"`
	Message string    `json:"message,omitempty"`
	Success bool      `json:"success"`
}

// NeverSynced значение lastSyncTime для аккаунта без синхронизаций
const NeverSynced = "Never synced"

// SyncCounts количество синхронизированных записей по типам
type SyncCounts struct {
	WorkoutTemplates int `json:"workoutTemplates"`
	WorkoutInstances int `json:"workoutInstances"`
	ExerciseLogs     int `json:"exerciseLogs"`
}

// StatusResponse ответ GET /sync/{userId}/status.
// LastSyncTime - время в RFC 3339 или NeverSynced.
type StatusResponse struct {
	SyncedCounts *SyncCounts `json:"syncedCounts,omitempty"`
	UserID       string      `json:"userId"`
	LastSyncTime string      `json:"lastSyncTime"`
	Status       string      `json:"status,omitempty"`
	ErrorMessage string      `json:"errorMessage,omitempty"`
	Success      bool        `json:"success"`
}

// DeleteResponse ответ DELETE /sync/{userId}
type DeleteResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// HealthResponse ответ GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
	Success bool   `json:"success"`
}
