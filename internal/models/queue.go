package models

import "time"

// Operation вид изменения, записанного в очередь
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// QueueEntry элемент очереди изменений.
// Это ссылка на сущность (тип + localId), а не снимок данных:
// при отправке оркестратор перечитывает актуальное состояние записи.
type QueueEntry struct {
	EnqueuedAt    time.Time  `json:"enqueuedAt"`
	LastAttemptAt *time.Time `json:"lastAttemptAt,omitempty"`
	EntityType    EntityType `json:"entityType"`
	Operation     Operation  `json:"operation"`
	EntityLocalID string     `json:"entityLocalId"`
	LastError     string     `json:"lastError,omitempty"`
	ID            uint64     `json:"id"`
	Attempts      int        `json:"attempts"`
	Synced        bool       `json:"synced"`
}
