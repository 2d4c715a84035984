package models

import (
	"fmt"
	"time"
)

// EntityType тип синхронизируемой сущности
type EntityType string

const (
	EntityTypeTemplate EntityType = "template" // шаблон тренировки
	EntityTypeInstance EntityType = "instance" // проведенная тренировка
	EntityTypeLog      EntityType = "log"      // запись выполнения упражнения
)

// EntityTypes перечисляет типы в порядке обработки при синхронизации:
// шаблоны раньше тренировок, тренировки раньше логов.
var EntityTypes = []EntityType{EntityTypeTemplate, EntityTypeInstance, EntityTypeLog}

// Valid проверяет, что тип известен
func (t EntityType) Valid() bool {
	switch t {
	case EntityTypeTemplate, EntityTypeInstance, EntityTypeLog:
		return true
	}
	return false
}

// ParseEntityType преобразует строку в EntityType
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown entity type %q", s)
	}
	return t, nil
}

// EntityHeader общие поля всех сущностей.
// LocalID генерируется клиентом и никогда не меняется.
// ServerID назначается сервером один раз при первом успешном upsert.
type EntityHeader struct {
	CreatedAt time.Time  `json:"createdAt"`           // CreatedAt время создания записи
	UpdatedAt time.Time  `json:"updatedAt"`           // UpdatedAt время последнего изменения
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // DeletedAt tombstone до подтверждения удаления сервером
	LocalID   string     `json:"localId"`             // LocalID стабильный клиентский идентификатор
	ServerID  string     `json:"serverId,omitempty"`  // ServerID канонический серверный идентификатор
	OwnerID   string     `json:"ownerId,omitempty"`   // OwnerID идентификатор аккаунта владельца
}

// Deleted сообщает, помечена ли запись на удаление
func (h *EntityHeader) Deleted() bool {
	return h.DeletedAt != nil
}

// Entity общий интерфейс для записей Entity Store
type Entity interface {
	Kind() EntityType
	Header() *EntityHeader
}

// TemplateExercise упражнение в шаблоне тренировки
type TemplateExercise struct {
	Name     string  `json:"name"`
	Sets     int     `json:"sets"`
	Reps     int     `json:"reps"`
	WeightKg float64 `json:"weightKg,omitempty"`
}

// WorkoutTemplate шаблон тренировки
type WorkoutTemplate struct {
	EntityHeader
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Exercises   []TemplateExercise `json:"exercises,omitempty"`
}

func (t *WorkoutTemplate) Kind() EntityType      { return EntityTypeTemplate }
func (t *WorkoutTemplate) Header() *EntityHeader { return &t.EntityHeader }

// WorkoutInstance конкретная проведенная тренировка.
// TemplateID заполняется серверным ID шаблона, если он уже известен,
// TemplateLocalID всегда указывает на локальный шаблон.
type WorkoutInstance struct {
	EntityHeader
	StartedAt       time.Time  `json:"startedAt"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	TemplateLocalID string     `json:"templateLocalId,omitempty"`
	TemplateID      string     `json:"templateId,omitempty"`
	Name            string     `json:"name"`
	Notes           string     `json:"notes,omitempty"`
}

func (i *WorkoutInstance) Kind() EntityType      { return EntityTypeInstance }
func (i *WorkoutInstance) Header() *EntityHeader { return &i.EntityHeader }

// Источники записей упражнений
const (
	LogSourceManual       = "manual"
	LogSourceActivityFile = "activity_file"
)

// ExerciseLog запись выполнения упражнения (подход, круг, отрезок)
type ExerciseLog struct {
	EntityHeader
	PerformedAt     time.Time `json:"performedAt"`
	InstanceLocalID string    `json:"instanceLocalId,omitempty"`
	InstanceID      string    `json:"instanceId,omitempty"`
	ExerciseName    string    `json:"exerciseName"`
	Source          string    `json:"source"`
	Notes           string    `json:"notes,omitempty"`
	WeightKg        float64   `json:"weightKg,omitempty"`
	DistanceMeters  float64   `json:"distanceMeters,omitempty"`
	SetNumber       int       `json:"setNumber,omitempty"`
	Reps            int       `json:"reps,omitempty"`
	DurationSeconds int       `json:"durationSeconds,omitempty"`
	AvgHeartRate    int       `json:"avgHeartRate,omitempty"`
}

func (l *ExerciseLog) Kind() EntityType      { return EntityTypeLog }
func (l *ExerciseLog) Header() *EntityHeader { return &l.EntityHeader }

// NewEntity создает пустую сущность заданного типа (для десериализации)
func NewEntity(t EntityType) (Entity, error) {
	switch t {
	case EntityTypeTemplate:
		return &WorkoutTemplate{}, nil
	case EntityTypeInstance:
		return &WorkoutInstance{}, nil
	case EntityTypeLog:
		return &ExerciseLog{}, nil
	}
	return nil, fmt.Errorf("unknown entity type %q", t)
}
