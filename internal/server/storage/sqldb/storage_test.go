package sqldb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStorage создает in-memory SQLite хранилище с примененными миграциями
func setupTestStorage(t *testing.T) (*Storage, func()) {
	t.Helper()

	s, err := New(context.Background(), DriverSQLite, ":memory:")
	require.NoError(t, err)

	return s, func() {
		_ = s.Close()
	}
}

func TestNew_CreatesSchema(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	tables := []string{"accounts", "workout_templates", "workout_instances", "exercise_logs", "sync_ledger"}
	for _, table := range tables {
		var name string
		err := s.DB().QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}

	assert.NoError(t, s.Ping(context.Background()))
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New(context.Background(), "mysql", "dsn")
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	tests := []struct {
		name   string
		driver string
		query  string
		want   string
	}{
		{
			name:   "sqlite keeps placeholders",
			driver: DriverSQLite,
			query:  "SELECT * FROM t WHERE a = ? AND b = ?",
			want:   "SELECT * FROM t WHERE a = ? AND b = ?",
		},
		{
			name:   "postgres numbered placeholders",
			driver: DriverPostgres,
			query:  "INSERT INTO t (a, b, c) VALUES (?, ?, ?)",
			want:   "INSERT INTO t (a, b, c) VALUES ($1, $2, $3)",
		},
		{
			name:   "postgres without placeholders",
			driver: DriverPostgres,
			query:  "SELECT 1",
			want:   "SELECT 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rebind(tt.driver, tt.query))
		})
	}
}
