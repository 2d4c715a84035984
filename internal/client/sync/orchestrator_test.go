package sync

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/iudanet/gymsync/internal/client/connectivity"
	"github.com/iudanet/gymsync/internal/client/data"
	"github.com/iudanet/gymsync/internal/client/queue"
	"github.com/iudanet/gymsync/internal/client/storage"
	"github.com/iudanet/gymsync/internal/client/storage/boltdb"
	"github.com/iudanet/gymsync/internal/models"
	"github.com/iudanet/gymsync/pkg/api"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testEnv struct {
	store   *boltdb.Storage
	queue   queue.Service
	data    data.Service
	gateway *GatewayMock
	conn    *ConnectivityMock
	online  *atomic.Bool
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	q := queue.New(store, setupTestLogger())
	online := &atomic.Bool{}
	online.Store(true)

	return &testEnv{
		store: store,
		queue: q,
		data:  data.NewService(store, q, "athlete@example.com", setupTestLogger()),
		gateway: &GatewayMock{
			SyncFunc: func(ctx context.Context, req *api.SyncRequest) (*api.SyncResponse, error) {
				return echoServer(req), nil
			},
		},
		conn: &ConnectivityMock{
			OnlineFunc: online.Load,
			SubscribeFunc: func() (<-chan connectivity.Transition, func()) {
				return make(chan connectivity.Transition), func() {}
			},
		},
		online: online,
	}
}

func (e *testEnv) orchestrator(t *testing.T, cfg Config) *Orchestrator {
	t.Helper()

	o, err := New(context.Background(), cfg, e.gateway, e.store, e.queue, e.store, e.conn, setupTestLogger())
	require.NoError(t, err)
	return o
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.AccountID = "athlete@example.com"
	cfg.RequestTimeout = time.Second
	return cfg
}

// echoServer назначает каждой новой сущности id "srv-<localId>"
func echoServer(req *api.SyncRequest) *api.SyncResponse {
	m := &api.SyncMappings{}
	for _, p := range req.WorkoutTemplates {
		m.WorkoutTemplates = append(m.WorkoutTemplates, api.IDMapping{ID: idFor(p.ServerID, p.LocalID), LocalID: p.LocalID})
	}
	for _, p := range req.WorkoutInstances {
		m.WorkoutInstances = append(m.WorkoutInstances, api.IDMapping{ID: idFor(p.ServerID, p.LocalID), LocalID: p.LocalID})
	}
	for _, p := range req.ExerciseLogs {
		m.ExerciseLogs = append(m.ExerciseLogs, api.IDMapping{ID: idFor(p.ServerID, p.LocalID), LocalID: p.LocalID})
	}
	return &api.SyncResponse{Success: true, Message: "Sync completed", Data: m}
}

func idFor(serverID, localID string) string {
	if serverID != "" {
		return serverID
	}
	return "srv-" + localID
}

func createTemplate(t *testing.T, env *testEnv, localID, name string) *models.WorkoutTemplate {
	t.Helper()

	tpl := &models.WorkoutTemplate{EntityHeader: models.EntityHeader{LocalID: localID}, Name: name}
	require.NoError(t, env.data.Create(context.Background(), tpl))
	return tpl
}

func pendingCount(t *testing.T, env *testEnv) int {
	t.Helper()

	n, err := env.queue.PendingCount(context.Background())
	require.NoError(t, err)
	return n
}

func serverIDOf(t *testing.T, env *testEnv, et models.EntityType, localID string) string {
	t.Helper()

	e, err := env.store.GetEntity(context.Background(), et, localID)
	require.NoError(t, err)
	return e.Header().ServerID
}

func TestNew_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, err := New(context.Background(), DefaultConfig(), env.gateway, env.store, env.queue, env.store, env.conn, setupTestLogger())
	assert.Error(t, err, "account id is required")
}

func TestNew_RestoresSuspendedState(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.store.SaveSyncState(context.Background(), &storage.SyncState{ConsecutiveFailures: 3, LastError: "boom"}))

	o := env.orchestrator(t, testConfig())
	assert.Equal(t, StateSuspended, o.State())

	st, err := o.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "boom", st.LastError)
	assert.Equal(t, 3, st.ConsecutiveFailures)
}

func TestSync_EmptyQueue(t *testing.T) {
	env := newTestEnv(t)
	o := env.orchestrator(t, testConfig())

	ran, err := o.Sync(context.Background())
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Empty(t, env.gateway.SyncCalls())

	st, err := o.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateIdle, st.State)
	assert.Equal(t, 100, st.Progress)
	assert.False(t, st.LastSyncTime.IsZero())
}

func TestSync_AppliesServerIDs(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	o := env.orchestrator(t, testConfig())

	createTemplate(t, env, "workout-1", "Full body")

	ran, err := o.Sync(ctx)
	require.NoError(t, err)
	assert.True(t, ran)

	assert.Equal(t, "srv-workout-1", serverIDOf(t, env, models.EntityTypeTemplate, "workout-1"))
	assert.Zero(t, pendingCount(t, env))

	// Повторная синхронизация после правки отправляет тот же serverId
	require.NoError(t, env.data.Update(ctx, &models.WorkoutTemplate{EntityHeader: models.EntityHeader{LocalID: "workout-1"}, Name: "Upper"}))
	_, err = o.Sync(ctx)
	require.NoError(t, err)

	calls := env.gateway.SyncCalls()
	require.Len(t, calls, 2)
	second := calls[1].Req.WorkoutTemplates
	require.Len(t, second, 1)
	assert.Equal(t, "srv-workout-1", second[0].ServerID)
	assert.Equal(t, "workout-1", second[0].LocalID)
	assert.Equal(t, "srv-workout-1", serverIDOf(t, env, models.EntityTypeTemplate, "workout-1"))
}

func TestSync_CoalescesRepeatedEdits(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	o := env.orchestrator(t, testConfig())

	createTemplate(t, env, "tpl", "v1")
	require.NoError(t, env.data.Update(ctx, &models.WorkoutTemplate{EntityHeader: models.EntityHeader{LocalID: "tpl"}, Name: "v2"}))
	require.NoError(t, env.data.Update(ctx, &models.WorkoutTemplate{EntityHeader: models.EntityHeader{LocalID: "tpl"}, Name: "v3"}))
	require.Equal(t, 3, pendingCount(t, env))

	_, err := o.Sync(ctx)
	require.NoError(t, err)

	calls := env.gateway.SyncCalls()
	require.Len(t, calls, 1)
	require.Len(t, calls[0].Req.WorkoutTemplates, 1)
	assert.Equal(t, "v3", calls[0].Req.WorkoutTemplates[0].Name)
	assert.Equal(t, "athlete@example.com", calls[0].Req.UserID)
	assert.Zero(t, pendingCount(t, env))
}

func TestSync_Batching(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	cfg := testConfig()
	cfg.BatchSize = 2
	o := env.orchestrator(t, cfg)

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		createTemplate(t, env, id, id)
	}

	_, err := o.Sync(ctx)
	require.NoError(t, err)

	calls := env.gateway.SyncCalls()
	require.Len(t, calls, 3)
	var sizes []int
	for _, c := range calls {
		sizes = append(sizes, len(c.Req.WorkoutTemplates))
	}
	if diff := cmp.Diff([]int{2, 2, 1}, sizes); diff != "" {
		t.Errorf("batch sizes mismatch (-want +got):\n%s", diff)
	}

	st, err := o.Status(ctx)
	require.NoError(t, err)
	require.NotNil(t, st.LastRun)
	assert.Equal(t, 3, st.LastRun.Batches)
	assert.Equal(t, 5, st.LastRun.Synced)
}

func TestSync_FailedBatchDoesNotBlockOthers(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	cfg := testConfig()
	cfg.BatchSize = 1
	o := env.orchestrator(t, cfg)

	createTemplate(t, env, "a", "a")
	createTemplate(t, env, "b", "b")
	createTemplate(t, env, "c", "c")

	var call atomic.Int32
	env.gateway.SyncFunc = func(ctx context.Context, req *api.SyncRequest) (*api.SyncResponse, error) {
		if call.Add(1) == 2 {
			return nil, errors.New("connection reset")
		}
		return echoServer(req), nil
	}

	_, err := o.Sync(ctx)
	require.NoError(t, err, "a run with at least one successful batch succeeds")
	assert.Len(t, env.gateway.SyncCalls(), 3)

	pending, err := env.queue.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "b", pending[0].EntityLocalID)
	assert.Equal(t, 1, pending[0].Attempts)
	assert.Contains(t, pending[0].LastError, "connection reset")

	st, err := o.Status(ctx)
	require.NoError(t, err)
	assert.Zero(t, st.ConsecutiveFailures)
	assert.Equal(t, StateIdle, st.State)
}

func TestSync_PerTypeFailureIsolation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	o := env.orchestrator(t, testConfig())

	createTemplate(t, env, "tpl", "A")
	inst := &models.WorkoutInstance{EntityHeader: models.EntityHeader{LocalID: "inst"}, TemplateLocalID: "tpl"}
	require.NoError(t, env.data.Create(ctx, inst))
	log := &models.ExerciseLog{EntityHeader: models.EntityHeader{LocalID: "log"}, ExerciseName: "Squat"}
	require.NoError(t, env.data.Create(ctx, log))

	env.gateway.SyncFunc = func(ctx context.Context, req *api.SyncRequest) (*api.SyncResponse, error) {
		resp := echoServer(req)
		resp.Data.WorkoutInstances = nil
		resp.Success = false
		resp.Errors = map[string]string{api.CollectionInstances: "invalid template reference"}
		resp.Error = "workoutInstances: invalid template reference"
		return resp, nil
	}

	_, err := o.Sync(ctx)
	require.NoError(t, err)

	assert.Equal(t, "srv-tpl", serverIDOf(t, env, models.EntityTypeTemplate, "tpl"))
	assert.Equal(t, "srv-log", serverIDOf(t, env, models.EntityTypeLog, "log"))
	assert.Empty(t, serverIDOf(t, env, models.EntityTypeInstance, "inst"))

	pending, err := env.queue.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, models.EntityTypeInstance, pending[0].EntityType)
	assert.Contains(t, pending[0].LastError, "invalid template reference")
}

func TestSync_FillsReferenceServerIDs(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	o := env.orchestrator(t, testConfig())

	createTemplate(t, env, "tpl", "A")
	_, err := o.Sync(ctx)
	require.NoError(t, err)

	inst := &models.WorkoutInstance{EntityHeader: models.EntityHeader{LocalID: "inst"}, TemplateLocalID: "tpl"}
	require.NoError(t, env.data.Create(ctx, inst))
	_, err = o.Sync(ctx)
	require.NoError(t, err)

	calls := env.gateway.SyncCalls()
	require.Len(t, calls, 2)
	require.Len(t, calls[1].Req.WorkoutInstances, 1)
	sent := calls[1].Req.WorkoutInstances[0]
	assert.Equal(t, "srv-tpl", sent.TemplateID)
	assert.Equal(t, "tpl", sent.TemplateLocalID)
}

func TestSync_Tombstones(t *testing.T) {
	ctx := context.Background()

	t.Run("never synced record is consumed locally", func(t *testing.T) {
		env := newTestEnv(t)
		o := env.orchestrator(t, testConfig())

		createTemplate(t, env, "tpl", "A")
		require.NoError(t, env.data.Delete(ctx, models.EntityTypeTemplate, "tpl"))

		_, err := o.Sync(ctx)
		require.NoError(t, err)
		assert.Empty(t, env.gateway.SyncCalls())
		assert.Zero(t, pendingCount(t, env))

		_, err = env.store.GetEntity(ctx, models.EntityTypeTemplate, "tpl")
		assert.ErrorIs(t, err, storage.ErrEntityNotFound)
	})

	t.Run("synced record is purged after confirmation", func(t *testing.T) {
		env := newTestEnv(t)
		o := env.orchestrator(t, testConfig())

		createTemplate(t, env, "tpl", "A")
		_, err := o.Sync(ctx)
		require.NoError(t, err)

		require.NoError(t, env.data.Delete(ctx, models.EntityTypeTemplate, "tpl"))
		_, err = o.Sync(ctx)
		require.NoError(t, err)

		calls := env.gateway.SyncCalls()
		require.Len(t, calls, 2)
		require.Len(t, calls[1].Req.WorkoutTemplates, 1)
		assert.True(t, calls[1].Req.WorkoutTemplates[0].Deleted)
		assert.Equal(t, "srv-tpl", calls[1].Req.WorkoutTemplates[0].ServerID)

		_, err = env.store.GetEntity(ctx, models.EntityTypeTemplate, "tpl")
		assert.ErrorIs(t, err, storage.ErrEntityNotFound)
		assert.Zero(t, pendingCount(t, env))
	})
}

func TestSync_MissingEntityIsSkipped(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	o := env.orchestrator(t, testConfig())

	require.NoError(t, env.queue.Enqueue(ctx, models.EntityTypeLog, models.OperationUpdate, "ghost"))

	_, err := o.Sync(ctx)
	require.NoError(t, err)
	assert.Empty(t, env.gateway.SyncCalls())
	assert.Zero(t, pendingCount(t, env))
}

func TestSync_SingleFlight(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	o := env.orchestrator(t, testConfig())

	createTemplate(t, env, "tpl", "A")

	entered := make(chan struct{})
	release := make(chan struct{})
	env.gateway.SyncFunc = func(ctx context.Context, req *api.SyncRequest) (*api.SyncResponse, error) {
		close(entered)
		<-release
		return echoServer(req), nil
	}

	done := make(chan bool)
	go func() {
		ran, _ := o.Sync(ctx)
		done <- ran
	}()

	<-entered
	assert.Equal(t, StateSyncing, o.State())

	ran, err := o.Sync(ctx)
	require.NoError(t, err)
	assert.False(t, ran, "second concurrent sync must be a no-op")

	close(release)
	assert.True(t, <-done)
	assert.Len(t, env.gateway.SyncCalls(), 1)
}

func TestSync_RequestTimeout(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	cfg := testConfig()
	cfg.RequestTimeout = 20 * time.Millisecond
	o := env.orchestrator(t, cfg)

	createTemplate(t, env, "tpl", "A")
	env.gateway.SyncFunc = func(ctx context.Context, req *api.SyncRequest) (*api.SyncResponse, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	ran, err := o.Sync(ctx)
	assert.True(t, ran)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, pendingCount(t, env))
}

func TestSync_SuspendsAfterConsecutiveFailures(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	o := env.orchestrator(t, testConfig())

	createTemplate(t, env, "tpl", "A")
	env.gateway.SyncFunc = func(ctx context.Context, req *api.SyncRequest) (*api.SyncResponse, error) {
		return nil, errors.New("server unreachable")
	}

	for i := 1; i <= 3; i++ {
		_, err := o.Sync(ctx)
		require.Error(t, err)
	}
	assert.Equal(t, StateSuspended, o.State())

	persisted, err := env.store.GetSyncState(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, persisted.ConsecutiveFailures)
	assert.NotNil(t, persisted.SuspendedAt)

	// Автоматические триггеры игнорируются
	o.trigger(ctx, "connectivity_restored")
	assert.Len(t, env.gateway.SyncCalls(), 3)

	// Ручной запуск после восстановления сервера сбрасывает счетчик
	env.gateway.SyncFunc = func(ctx context.Context, req *api.SyncRequest) (*api.SyncResponse, error) {
		return echoServer(req), nil
	}
	ran, err := o.Sync(ctx)
	require.NoError(t, err)
	assert.True(t, ran)

	st, err := o.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, st.State)
	assert.Zero(t, st.ConsecutiveFailures)
	assert.Nil(t, st.SuspendedAt)
	assert.Empty(t, st.LastError)
	assert.Zero(t, st.PendingCount)
}

func TestSync_CancelledRunIsNotCountedAsFailure(t *testing.T) {
	env := newTestEnv(t)
	o := env.orchestrator(t, testConfig())
	createTemplate(t, env, "tpl", "A")

	// Ctrl+C во время прогона не должен приводить к Suspended
	for i := 0; i < 3; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		ran, err := o.Sync(ctx)
		assert.True(t, ran)
		require.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, StateIdle, o.State())
	assert.Empty(t, env.gateway.SyncCalls())

	persisted, err := env.store.GetSyncState(context.Background())
	require.NoError(t, err)
	assert.Zero(t, persisted.ConsecutiveFailures)
	assert.Nil(t, persisted.SuspendedAt)
	assert.Equal(t, 1, pendingCount(t, env))
}

func TestShouldAutoSync_ResumeAfter(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	suspendedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, env.store.SaveSyncState(ctx, &storage.SyncState{ConsecutiveFailures: 3, SuspendedAt: &suspendedAt}))

	cfg := testConfig()
	cfg.ResumeAfter = 10 * time.Minute
	o := env.orchestrator(t, cfg)
	createTemplate(t, env, "tpl", "A")

	o.now = func() time.Time { return suspendedAt.Add(5 * time.Minute) }
	assert.False(t, o.shouldAutoSync(ctx))

	o.now = func() time.Time { return suspendedAt.Add(11 * time.Minute) }
	assert.True(t, o.shouldAutoSync(ctx))

	env.online.Store(false)
	assert.False(t, o.shouldAutoSync(ctx))
}

func TestShouldAutoSync_RequiresPendingAndOnline(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	o := env.orchestrator(t, testConfig())

	assert.False(t, o.shouldAutoSync(ctx), "empty queue")

	createTemplate(t, env, "tpl", "A")
	assert.True(t, o.shouldAutoSync(ctx))

	env.online.Store(false)
	assert.False(t, o.shouldAutoSync(ctx), "offline")
}

// TestStart_OfflineThenOnline: запись, сделанная без сети, уходит на сервер после появления сети
func TestStart_OfflineThenOnline(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	env := newTestEnv(t)

	monitor := connectivity.New(connectivity.Config{Debounce: 10 * time.Millisecond}, nil, setupTestLogger())
	defer monitor.Close()

	o, err := New(ctx, testConfig(), env.gateway, env.store, env.queue, env.store, monitor, setupTestLogger())
	require.NoError(t, err)

	done := make(chan error)
	go func() { done <- o.Start(ctx) }()

	// Сервер недоступен
	createTemplate(t, env, "workout-1", "Full body")
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, 1, pendingCount(t, env))
	assert.Empty(t, env.gateway.SyncCalls())
	st, err := o.Status(ctx)
	require.NoError(t, err)
	assert.True(t, st.LastSyncTime.IsZero())

	// Сеть появилась
	monitor.Report(true)

	require.Eventually(t, func() bool {
		return pendingCount(t, env) == 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "srv-workout-1", serverIDOf(t, env, models.EntityTypeTemplate, "workout-1"))

	cancel()
	require.NoError(t, <-done)
}

// TestStart_SyncsOnEnqueueWhenOnline: при наличии сети новая запись отправляется без ручного запуска
func TestStart_SyncsOnEnqueueWhenOnline(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	env := newTestEnv(t)
	o := env.orchestrator(t, testConfig())

	done := make(chan error)
	go func() { done <- o.Start(ctx) }()

	createTemplate(t, env, "tpl", "A")

	require.Eventually(t, func() bool {
		return pendingCount(t, env) == 0
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
