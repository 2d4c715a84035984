package models

import "time"

// SyncStatus статус последней синхронизации аккаунта
type SyncStatus string

const (
	SyncStatusPending SyncStatus = "pending"
	SyncStatusSuccess SyncStatus = "success"
	SyncStatusError   SyncStatus = "error"
)

// SyncLedger серверная запись о последней попытке синхронизации аккаунта.
// Обновляется после каждой попытки, в том числе неудачной.
type SyncLedger struct {
	LastSyncTime    time.Time  `json:"lastSyncTime"`
	AccountID       string     `json:"accountId"`
	Status          SyncStatus `json:"status"`
	ErrorMessage    string     `json:"errorMessage,omitempty"`
	TemplatesSynced int        `json:"templatesSynced"`
	InstancesSynced int        `json:"instancesSynced"`
	LogsSynced      int        `json:"logsSynced"`
}

// IDMapping соответствие серверного и клиентского идентификаторов
type IDMapping struct {
	ID      string `json:"id"`
	LocalID string `json:"localId"`
}
