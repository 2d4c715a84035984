package reconcile

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gymsync/internal/models"
	"github.com/iudanet/gymsync/internal/retry"
	"github.com/iudanet/gymsync/internal/server/storage"
	"github.com/iudanet/gymsync/internal/server/storage/sqldb"
	"github.com/iudanet/gymsync/pkg/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupStore(t *testing.T) *sqldb.Storage {
	t.Helper()

	s, err := sqldb.New(context.Background(), sqldb.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func setupService(t *testing.T) (*Service, *sqldb.Storage) {
	t.Helper()

	store := setupStore(t)
	return New(store, testLogger()), store
}

func countRows(t *testing.T, store *sqldb.Storage, table string) int {
	t.Helper()

	var n int
	require.NoError(t, store.DB().QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func template(localID, name string) api.WorkoutTemplate {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return api.WorkoutTemplate{
		LocalID:   localID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Exercises: []api.TemplateExercise{{Name: "squat", Sets: 5, Reps: 5, WeightKg: 100}},
	}
}

func instance(localID, templateLocalID string) api.WorkoutInstance {
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	return api.WorkoutInstance{
		LocalID:         localID,
		TemplateLocalID: templateLocalID,
		Name:            "Leg day",
		StartedAt:       now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func exerciseLog(localID, instanceLocalID string) api.ExerciseLog {
	now := time.Date(2026, 3, 2, 18, 10, 0, 0, time.UTC)
	return api.ExerciseLog{
		LocalID:         localID,
		InstanceLocalID: instanceLocalID,
		ExerciseName:    "squat",
		SetNumber:       1,
		Reps:            5,
		WeightKg:        100,
		PerformedAt:     now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestSync_AssignsServerIDs(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	resp, err := svc.Sync(ctx, &api.SyncRequest{
		UserID:           "alice@example.com",
		WorkoutTemplates: []api.WorkoutTemplate{template("workout-1", "Legs")},
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Empty(t, resp.Error)
	require.Len(t, resp.Data.WorkoutTemplates, 1)
	assert.Equal(t, "workout-1", resp.Data.WorkoutTemplates[0].LocalID)
	assert.NotEmpty(t, resp.Data.WorkoutTemplates[0].ID)
	assert.Equal(t, 1, countRows(t, store, "workout_templates"))
	assert.Equal(t, 1, countRows(t, store, "accounts"))
}

func TestSync_IdempotentWithServerID(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	first, err := svc.Sync(ctx, &api.SyncRequest{
		UserID:           "alice@example.com",
		WorkoutTemplates: []api.WorkoutTemplate{template("workout-1", "Legs")},
	})
	require.NoError(t, err)
	serverID := first.Data.WorkoutTemplates[0].ID

	tpl := template("workout-1", "Legs")
	tpl.ServerID = serverID
	req := &api.SyncRequest{UserID: "alice@example.com", WorkoutTemplates: []api.WorkoutTemplate{tpl}}

	for range 2 {
		resp, err := svc.Sync(ctx, req)
		require.NoError(t, err)
		require.Len(t, resp.Data.WorkoutTemplates, 1)
		assert.Equal(t, serverID, resp.Data.WorkoutTemplates[0].ID)
	}

	assert.Equal(t, 1, countRows(t, store, "workout_templates"))

	var name string
	require.NoError(t, store.DB().QueryRow(`SELECT name FROM workout_templates WHERE id = ?`, serverID).Scan(&name))
	assert.Equal(t, "Legs", name)
}

func TestSync_LostResponseReusesRow(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	// Клиент не получил первый ответ и отправил запись повторно без serverId
	req := &api.SyncRequest{
		UserID:           "alice@example.com",
		WorkoutTemplates: []api.WorkoutTemplate{template("workout-1", "Legs")},
	}

	first, err := svc.Sync(ctx, req)
	require.NoError(t, err)
	second, err := svc.Sync(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.Data.WorkoutTemplates[0].ID, second.Data.WorkoutTemplates[0].ID)
	assert.Equal(t, 1, countRows(t, store, "workout_templates"))
}

func TestSync_ResolvesLocalReferences(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	resp, err := svc.Sync(ctx, &api.SyncRequest{
		UserID:           "alice@example.com",
		WorkoutTemplates: []api.WorkoutTemplate{template("tpl-1", "Legs")},
		WorkoutInstances: []api.WorkoutInstance{instance("inst-1", "tpl-1")},
		ExerciseLogs:     []api.ExerciseLog{exerciseLog("log-1", "inst-1")},
	})
	require.NoError(t, err)
	require.True(t, resp.Success, resp.Error)

	data, err := svc.Pull(ctx, "alice@example.com")
	require.NoError(t, err)

	require.Len(t, data.WorkoutTemplates, 1)
	require.Len(t, data.WorkoutInstances, 1)
	require.Len(t, data.ExerciseLogs, 1)

	tpl := data.WorkoutTemplates[0]
	inst := data.WorkoutInstances[0]
	lg := data.ExerciseLogs[0]

	assert.Equal(t, tpl.ServerID, tpl.ID)
	assert.Equal(t, tpl.ServerID, inst.TemplateID)
	assert.Equal(t, "tpl-1", inst.TemplateLocalID)
	assert.Equal(t, inst.ServerID, lg.InstanceID)
	assert.Equal(t, models.LogSourceManual, lg.Source)
	assert.Equal(t, []api.TemplateExercise{{Name: "squat", Sets: 5, Reps: 5, WeightKg: 100}}, tpl.Exercises)
}

func TestSync_PartialFailureIsolation(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	broken := instance("inst-1", "")
	broken.TemplateID = "00000000-0000-0000-0000-000000000000"

	resp, err := svc.Sync(ctx, &api.SyncRequest{
		UserID:           "alice@example.com",
		WorkoutTemplates: []api.WorkoutTemplate{template("tpl-1", "Legs")},
		WorkoutInstances: []api.WorkoutInstance{broken, instance("inst-2", "tpl-1")},
		ExerciseLogs:     []api.ExerciseLog{exerciseLog("log-1", "")},
	})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, api.CollectionInstances)
	assert.Contains(t, resp.Errors, api.CollectionInstances)
	assert.NotContains(t, resp.Errors, api.CollectionTemplates)
	assert.NotContains(t, resp.Errors, api.CollectionLogs)

	assert.Len(t, resp.Data.WorkoutTemplates, 1)
	assert.Empty(t, resp.Data.WorkoutInstances)
	assert.Len(t, resp.Data.ExerciseLogs, 1)

	// Тип откатывается целиком, включая корректную inst-2
	assert.Equal(t, 1, countRows(t, store, "workout_templates"))
	assert.Equal(t, 0, countRows(t, store, "workout_instances"))
	assert.Equal(t, 1, countRows(t, store, "exercise_logs"))

	status, err := svc.Status(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, string(models.SyncStatusError), status.Status)
	assert.Contains(t, status.ErrorMessage, api.CollectionInstances)
	require.NotNil(t, status.SyncedCounts)
	assert.Equal(t, api.SyncCounts{WorkoutTemplates: 1, WorkoutInstances: 0, ExerciseLogs: 1}, *status.SyncedCounts)
}

func TestSync_DeleteReturnsMapping(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	created, err := svc.Sync(ctx, &api.SyncRequest{
		UserID:           "alice@example.com",
		WorkoutTemplates: []api.WorkoutTemplate{template("tpl-1", "Legs")},
	})
	require.NoError(t, err)
	serverID := created.Data.WorkoutTemplates[0].ID

	tombstone := template("tpl-1", "Legs")
	tombstone.ServerID = serverID
	tombstone.Deleted = true

	// Удаление записи, которой нет на сервере, подтверждать нечего
	unknown := template("tpl-unknown", "Never synced")
	unknown.Deleted = true

	resp, err := svc.Sync(ctx, &api.SyncRequest{
		UserID:           "alice@example.com",
		WorkoutTemplates: []api.WorkoutTemplate{tombstone, unknown},
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, []api.IDMapping{{ID: serverID, LocalID: "tpl-1"}}, resp.Data.WorkoutTemplates)
	assert.Equal(t, 0, countRows(t, store, "workout_templates"))
}

func TestSync_ForeignServerIDRejected(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	alice, err := svc.Sync(ctx, &api.SyncRequest{
		UserID:           "alice@example.com",
		WorkoutTemplates: []api.WorkoutTemplate{template("tpl-1", "Legs")},
	})
	require.NoError(t, err)

	stolen := template("tpl-x", "Mine now")
	stolen.ServerID = alice.Data.WorkoutTemplates[0].ID

	resp, err := svc.Sync(ctx, &api.SyncRequest{
		UserID:           "bob@example.com",
		WorkoutTemplates: []api.WorkoutTemplate{stolen},
	})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Contains(t, resp.Errors[api.CollectionTemplates], storage.ErrForeignOwner.Error())

	var name string
	require.NoError(t, store.DB().QueryRow(`SELECT name FROM workout_templates WHERE id = ?`, stolen.ServerID).Scan(&name))
	assert.Equal(t, "Legs", name)
}

func TestSync_Validation(t *testing.T) {
	svc, store := setupService(t)

	tests := []struct {
		name string
		req  *api.SyncRequest
	}{
		{name: "missing user", req: &api.SyncRequest{}},
		{name: "blank user", req: &api.SyncRequest{UserID: "   "}},
		{
			name: "missing localId",
			req: &api.SyncRequest{
				UserID:           "alice@example.com",
				WorkoutTemplates: []api.WorkoutTemplate{template("", "Legs")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Sync(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	assert.Equal(t, 0, countRows(t, store, "accounts"))
}

func TestSync_CanonicalUserIDUsedAsIs(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()
	ownerID := "3f1c5a4e-8d2b-4c6f-9a7e-1b2c3d4e5f60"

	resp, err := svc.Sync(ctx, &api.SyncRequest{
		UserID:           ownerID,
		WorkoutTemplates: []api.WorkoutTemplate{template("tpl-1", "Legs")},
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)

	var owner string
	require.NoError(t, store.DB().QueryRow(`SELECT owner_id FROM workout_templates`).Scan(&owner))
	assert.Equal(t, ownerID, owner)
	assert.Equal(t, 0, countRows(t, store, "accounts"))
}

func TestResolveAccount_ConcurrentSameHandle(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	const workers = 16
	ids := make([]string, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids[i], errs[i] = svc.ResolveAccount(ctx, models.Handle("alice@example.com"), true)
		}()
	}
	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}
	assert.Equal(t, 1, countRows(t, store, "accounts"))
}

func TestResolveAccount_RaceAcrossServices(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	// Два экземпляра сервиса не делят singleflight и гоняются через хранилище
	a := New(store, testLogger())
	b := New(store, testLogger())

	var wg sync.WaitGroup
	var idA, idB string
	var errA, errB error
	wg.Add(2)
	go func() {
		defer wg.Done()
		idA, errA = a.ResolveAccount(ctx, models.Handle("alice@example.com"), true)
	}()
	go func() {
		defer wg.Done()
		idB, errB = b.ResolveAccount(ctx, models.Handle("alice@example.com"), true)
	}()
	wg.Wait()

	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, idA, idB)
	assert.Equal(t, 1, countRows(t, store, "accounts"))
}

// accountOverride подменяет AccountStorage поверх настоящего хранилища
type accountOverride struct {
	storage.Storage
	accounts *storage.AccountStorageMock
}

func (o *accountOverride) CreateAccount(ctx context.Context, account *models.Account) error {
	return o.accounts.CreateAccount(ctx, account)
}

func (o *accountOverride) GetAccountByHandle(ctx context.Context, handle string) (*models.Account, error) {
	return o.accounts.GetAccountByHandle(ctx, handle)
}

func (o *accountOverride) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	return o.accounts.GetAccountByID(ctx, id)
}

func TestResolveAccount_CreateConflictLooksUpAgain(t *testing.T) {
	existing := &models.Account{ID: "2b7e1516-28ae-4d2a-a6ab-f7158809cf4f", Handle: "alice@example.com"}
	lookups := 0

	mock := &storage.AccountStorageMock{
		GetAccountByHandleFunc: func(ctx context.Context, handle string) (*models.Account, error) {
			lookups++
			if lookups == 1 {
				return nil, storage.ErrAccountNotFound
			}
			return existing, nil
		},
		CreateAccountFunc: func(ctx context.Context, account *models.Account) error {
			return storage.ErrAccountAlreadyExists
		},
	}
	svc := New(&accountOverride{Storage: setupStore(t), accounts: mock}, testLogger())

	id, err := svc.ResolveAccount(context.Background(), models.Handle("alice@example.com"), true)
	require.NoError(t, err)

	assert.Equal(t, existing.ID, id)
	assert.Len(t, mock.CreateAccountCalls(), 1)
	assert.Len(t, mock.GetAccountByHandleCalls(), 2)
}

func TestResolveAccount_Exhausted(t *testing.T) {
	transient := errors.New("database is locked")
	mock := &storage.AccountStorageMock{
		GetAccountByHandleFunc: func(ctx context.Context, handle string) (*models.Account, error) {
			return nil, transient
		},
	}
	svc := New(&accountOverride{Storage: setupStore(t), accounts: mock}, testLogger(),
		WithRetryPolicy(retry.Policy{Attempts: 3, Initial: time.Millisecond}))

	_, err := svc.Sync(context.Background(), &api.SyncRequest{
		UserID:           "alice@example.com",
		WorkoutTemplates: []api.WorkoutTemplate{template("tpl-1", "Legs")},
	})

	assert.ErrorIs(t, err, ErrIdentityResolutionExhausted)
	assert.ErrorIs(t, err, transient)
	assert.Len(t, mock.GetAccountByHandleCalls(), 3)
}

func TestResolveAccount_SharedCallSurvivesFirstCallerCancel(t *testing.T) {
	existing := &models.Account{ID: "2b7e1516-28ae-4d2a-a6ab-f7158809cf4f", Handle: "alice@example.com"}
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	mock := &storage.AccountStorageMock{
		GetAccountByHandleFunc: func(ctx context.Context, handle string) (*models.Account, error) {
			once.Do(func() { close(entered) })
			<-release
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return existing, nil
		},
	}
	svc := New(&accountOverride{Storage: setupStore(t), accounts: mock}, testLogger())

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.ResolveAccount(firstCtx, models.Handle("alice@example.com"), true)
		firstErr <- err
	}()
	<-entered

	type result struct {
		id  string
		err error
	}
	second := make(chan result, 1)
	go func() {
		id, err := svc.ResolveAccount(context.Background(), models.Handle("alice@example.com"), true)
		second <- result{id: id, err: err}
	}()

	// Второй запрос успевает присоединиться к уже идущему вызову
	time.Sleep(50 * time.Millisecond)
	cancelFirst()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, existing.ID, got.id)
	assert.Len(t, mock.GetAccountByHandleCalls(), 1)
}

func TestResolveAccount_ReadOnlyDoesNotCreate(t *testing.T) {
	svc, store := setupService(t)

	_, err := svc.ResolveAccount(context.Background(), models.Handle("ghost@example.com"), false)
	assert.ErrorIs(t, err, storage.ErrAccountNotFound)
	assert.Equal(t, 0, countRows(t, store, "accounts"))
}

func TestStatus(t *testing.T) {
	synced := time.Date(2026, 5, 4, 12, 30, 0, 0, time.UTC)
	store := setupStore(t)
	svc := New(store, testLogger(), WithClock(func() time.Time { return synced }))
	ctx := context.Background()

	t.Run("unknown handle never synced", func(t *testing.T) {
		status, err := svc.Status(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.True(t, status.Success)
		assert.Equal(t, api.NeverSynced, status.LastSyncTime)
		assert.Equal(t, 0, countRows(t, store, "accounts"))
	})

	t.Run("after sync", func(t *testing.T) {
		_, err := svc.Sync(ctx, &api.SyncRequest{
			UserID:           "alice@example.com",
			WorkoutTemplates: []api.WorkoutTemplate{template("tpl-1", "Legs")},
		})
		require.NoError(t, err)

		status, err := svc.Status(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", status.UserID)
		assert.Equal(t, "2026-05-04T12:30:00Z", status.LastSyncTime)
		assert.Equal(t, string(models.SyncStatusSuccess), status.Status)
		assert.Equal(t, 1, status.SyncedCounts.WorkoutTemplates)
	})

	t.Run("invalid user", func(t *testing.T) {
		_, err := svc.Status(ctx, "")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestDelete(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	_, err := svc.Sync(ctx, &api.SyncRequest{
		UserID:           "alice@example.com",
		WorkoutTemplates: []api.WorkoutTemplate{template("tpl-1", "Legs")},
		WorkoutInstances: []api.WorkoutInstance{instance("inst-1", "tpl-1")},
	})
	require.NoError(t, err)
	_, err = svc.Sync(ctx, &api.SyncRequest{
		UserID:           "bob@example.com",
		WorkoutTemplates: []api.WorkoutTemplate{template("tpl-1", "Arms")},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "alice@example.com"))

	data, err := svc.Pull(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Empty(t, data.WorkoutTemplates)
	assert.Empty(t, data.WorkoutInstances)

	status, err := svc.Status(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, api.NeverSynced, status.LastSyncTime)

	// Данные другого аккаунта не затронуты
	assert.Equal(t, 1, countRows(t, store, "workout_templates"))

	// Неизвестный handle - не ошибка
	assert.NoError(t, svc.Delete(ctx, "ghost@example.com"))
}
