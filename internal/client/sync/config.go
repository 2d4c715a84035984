package sync

import (
	"errors"
	"time"
)

// Config параметры оркестратора. Передается явно при создании.
type Config struct {
	ServerURL              string        // адрес сервера синхронизации
	AccountID              string        // handle или канонический ID аккаунта
	BatchSize              int           // максимум записей очереди в одном запросе
	RequestTimeout         time.Duration // таймаут одного запроса
	MaxConsecutiveFailures int           // порог перехода в Suspended
	ResumeAfter            time.Duration // автоматическая попытка из Suspended; 0 - только вручную
}

// DefaultConfig returns a fresh default configuration
func DefaultConfig() Config {
	return Config{
		ServerURL:              "http://localhost:8080",
		BatchSize:              100,
		RequestTimeout:         30 * time.Second,
		MaxConsecutiveFailures: 3,
	}
}

// Validate проверяет конфигурацию
func (c Config) Validate() error {
	switch {
	case c.AccountID == "":
		return errors.New("account id is required")
	case c.BatchSize <= 0:
		return errors.New("batch size must be positive")
	case c.RequestTimeout <= 0:
		return errors.New("request timeout must be positive")
	case c.MaxConsecutiveFailures <= 0:
		return errors.New("max consecutive failures must be positive")
	case c.ResumeAfter < 0:
		return errors.New("resume after must not be negative")
	}
	return nil
}
