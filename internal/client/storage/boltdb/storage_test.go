package boltdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/gymsync/internal/client/storage"
	"github.com/iudanet/gymsync/internal/models"
)

// createTestStorage создает временное BoltDB хранилище
func createTestStorage(t *testing.T) (*Storage, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "client.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store, dbPath
}

func TestNew_Success(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "testdb.db")

	ctx := context.Background()
	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() {
		require.NoError(t, store.Close())
	}()

	// Проверяем что файл БД действительно создан
	info, err := os.Stat(dbPath)
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	// Проверяем, что бакеты существуют
	err = store.db.View(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketTemplates, bucketInstances, bucketLogs, bucketQueue, bucketMetadata} {
			if tx.Bucket(b) == nil {
				return os.ErrNotExist
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestNew_InvalidPath(t *testing.T) {
	ctx := context.Background()
	// Каталог, которого не существует
	invalidPath := filepath.Join(t.TempDir(), "missing", "dir", "client.db")
	store, err := New(ctx, invalidPath)
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "testdb.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)

	// Закрываем БД
	require.NoError(t, store.Close())

	// После закрытия поле db должно стать nil
	assert.Nil(t, store.db)

	// Второй вызов Close не должен падать и должен просто ничего не делать
	assert.NoError(t, store.Close())
}

func TestInitBuckets_CreatesBuckets(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "testdb.db")

	// Открываем БД вручную без создания бакетов
	db, err := bbolt.Open(dbPath, 0600, nil)
	require.NoError(t, err)
	defer db.Close()

	store := &Storage{db: db}

	err = store.initBuckets()
	assert.NoError(t, err)

	err = db.View(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketTemplates, bucketInstances, bucketLogs, bucketQueue, bucketMetadata} {
			if tx.Bucket(b) == nil {
				return os.ErrNotExist
			}
		}
		return nil
	})
	assert.NoError(t, err)
}

func TestNewShared_DoesNotHoldLock(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "client.db")

	// Долгоживущий процесс (watch) держит разделяемое хранилище
	shared, err := NewShared(ctx, dbPath)
	require.NoError(t, err)
	defer shared.Close()

	before, err := shared.Sequence(ctx)
	require.NoError(t, err)

	// Отдельная команда CLI открывает тот же файл и ставит изменение в очередь
	other, err := New(ctx, dbPath)
	require.NoError(t, err)
	entry := &models.QueueEntry{EntityType: models.EntityTypeTemplate, Operation: models.OperationCreate, EntityLocalID: "tpl-1"}
	require.NoError(t, other.AppendWithEntity(ctx, newTemplate("tpl-1"), entry))
	require.NoError(t, other.Close())

	pending, err := shared.PendingEntries(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "tpl-1", pending[0].EntityLocalID)

	after, err := shared.Sequence(ctx)
	require.NoError(t, err)
	assert.Greater(t, after, before)

	require.NoError(t, shared.MarkSynced(ctx, []uint64{pending[0].ID}))
	count, err := shared.CountPending(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNewShared_Close(t *testing.T) {
	ctx := context.Background()
	shared, err := NewShared(ctx, filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)

	require.NoError(t, shared.Close())
	assert.NoError(t, shared.Close())

	_, err = shared.CountPending(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestNewShared_InvalidPath(t *testing.T) {
	_, err := NewShared(context.Background(), filepath.Join(t.TempDir(), "missing", "client.db"))
	assert.Error(t, err)
}
