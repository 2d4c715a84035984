package models

import "time"

// Account представляет аккаунт пользователя на сервере
type Account struct {
	CreatedAt time.Time `json:"created_at"` // CreatedAt время создания аккаунта
	ID        string    `json:"id"`         // ID канонический идентификатор (UUID)
	Handle    string    `json:"handle"`     // Handle человекочитаемый идентификатор (email, username)
}

// AccountRefKind вариант ссылки на аккаунт
type AccountRefKind int

const (
	// AccountRefHandle ссылка по человекочитаемому handle
	AccountRefHandle AccountRefKind = iota
	// AccountRefCanonical ссылка по каноническому идентификатору
	AccountRefCanonical
)

// AccountRef ссылка на аккаунт: либо канонический ID, либо handle.
// Создается через validation.ParseAccountRef.
type AccountRef struct {
	Value string
	Kind  AccountRefKind
}

// Canonical создает ссылку по каноническому ID
func Canonical(id string) AccountRef {
	return AccountRef{Kind: AccountRefCanonical, Value: id}
}

// Handle создает ссылку по handle
func Handle(handle string) AccountRef {
	return AccountRef{Kind: AccountRefHandle, Value: handle}
}

// IsCanonical сообщает, является ли ссылка каноническим ID
func (r AccountRef) IsCanonical() bool {
	return r.Kind == AccountRefCanonical
}

func (r AccountRef) String() string {
	return r.Value
}
