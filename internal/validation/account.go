package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/iudanet/gymsync/internal/models"
)

const (
	// MaxHandleLen максимальная длина handle (длина email по RFC 5321)
	MaxHandleLen = 254
)

// ErrEmptyAccount возвращается, если идентификатор аккаунта не передан
var ErrEmptyAccount = errors.New("userId is required")

// ParseAccountRef разбирает идентификатор аккаунта из запроса.
// Строка в формате UUID считается каноническим ID, все остальное - handle.
func ParseAccountRef(raw string) (models.AccountRef, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return models.AccountRef{}, ErrEmptyAccount
	}

	// Канонический ID всегда хранится в нижнем регистре
	if id, err := uuid.Parse(value); err == nil {
		return models.Canonical(id.String()), nil
	}

	if err := ValidateHandle(value); err != nil {
		return models.AccountRef{}, err
	}

	return models.Handle(value), nil
}

// ValidateHandle проверяет handle аккаунта: непустой, не длиннее
// MaxHandleLen символов, без управляющих символов и пробелов
func ValidateHandle(handle string) error {
	if handle == "" {
		return fmt.Errorf("handle cannot be empty")
	}

	if !utf8.ValidString(handle) {
		return fmt.Errorf("handle must be valid UTF-8")
	}

	if utf8.RuneCountInString(handle) > MaxHandleLen {
		return fmt.Errorf("handle must not exceed %d characters", MaxHandleLen)
	}

	for _, r := range handle {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return fmt.Errorf("handle must not contain whitespace or control characters")
		}
	}

	return nil
}
