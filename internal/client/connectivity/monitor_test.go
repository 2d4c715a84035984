package connectivity

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(debounce time.Duration) Config {
	return Config{
		ProbeInterval:   10 * time.Millisecond,
		ProbeTimeout:    50 * time.Millisecond,
		Debounce:        debounce,
		DegradedLatency: time.Second,
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 30*time.Second, cfg.ProbeInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce)
}

func TestReport_NoDebounce(t *testing.T) {
	m := New(testConfig(0), nil, setupTestLogger())
	defer m.Close()

	assert.False(t, m.Online())
	assert.Equal(t, QualityUnknown, m.Quality())

	ch, cancel := m.Subscribe()
	defer cancel()

	m.Report(true)
	assert.True(t, m.Online())

	tr := <-ch
	assert.True(t, tr.Online)

	m.Report(false)
	assert.False(t, m.Online())
	assert.Equal(t, QualityOffline, m.Quality())
}

func TestReport_DebounceSuppressesFlapping(t *testing.T) {
	m := New(testConfig(50*time.Millisecond), nil, setupTestLogger())
	defer m.Close()

	ch, cancel := m.Subscribe()
	defer cancel()

	// Дребезг: итоговое состояние online
	m.Report(true)
	m.Report(false)
	m.Report(true)
	assert.False(t, m.Online(), "state must not change before debounce interval")

	select {
	case tr := <-ch:
		assert.True(t, tr.Online)
	case <-time.After(time.Second):
		t.Fatal("transition was not published")
	}

	// Ровно один переход
	select {
	case tr := <-ch:
		t.Fatalf("unexpected transition %+v", tr)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestReport_FlapBackCancelsTransition(t *testing.T) {
	m := New(testConfig(50*time.Millisecond), nil, setupTestLogger())
	defer m.Close()

	ch, cancel := m.Subscribe()
	defer cancel()

	m.Report(true)
	m.Report(false)

	select {
	case tr := <-ch:
		t.Fatalf("unexpected transition %+v", tr)
	case <-time.After(150 * time.Millisecond):
	}
	assert.False(t, m.Online())
}

func TestSubscribe_SlowSubscriberDoesNotBlock(t *testing.T) {
	m := New(testConfig(0), nil, setupTestLogger())
	defer m.Close()

	ch, cancel := m.Subscribe()
	defer cancel()

	// Никто не читает канал
	for i := 0; i < 3*subscriberBuffer; i++ {
		m.Report(i%2 == 0)
	}
	m.Report(true)

	var last Transition
	for len(ch) > 0 {
		last = <-ch
	}
	assert.True(t, last.Online, "latest transition must be delivered")
}

func TestWaitForOnline(t *testing.T) {
	t.Run("already online", func(t *testing.T) {
		m := New(testConfig(0), nil, setupTestLogger())
		defer m.Close()

		m.Report(true)
		assert.True(t, m.WaitForOnline(context.Background(), time.Millisecond))
	})

	t.Run("timeout", func(t *testing.T) {
		m := New(testConfig(0), nil, setupTestLogger())
		defer m.Close()

		assert.False(t, m.WaitForOnline(context.Background(), 20*time.Millisecond))
	})

	t.Run("comes online", func(t *testing.T) {
		m := New(testConfig(10*time.Millisecond), nil, setupTestLogger())
		defer m.Close()

		done := make(chan bool)
		go func() {
			done <- m.WaitForOnline(context.Background(), time.Second)
		}()

		time.Sleep(20 * time.Millisecond)
		m.Report(true)
		assert.True(t, <-done)
	})

	t.Run("context cancelled", func(t *testing.T) {
		m := New(testConfig(0), nil, setupTestLogger())
		defer m.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.False(t, m.WaitForOnline(ctx, time.Second))
	})
}

func TestRun_ProbesFeedState(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)

	prober := &ProberMock{
		HealthFunc: func(ctx context.Context) error {
			if healthy.Load() {
				return nil
			}
			return errors.New("connection refused")
		},
	}

	m := New(testConfig(0), prober, setupTestLogger())
	defer m.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- m.Run(ctx) }()

	require.Eventually(t, m.Online, time.Second, 5*time.Millisecond)
	assert.Equal(t, QualityGood, m.Quality())

	healthy.Store(false)
	require.Eventually(t, func() bool { return !m.Online() }, time.Second, 5*time.Millisecond)
	assert.Equal(t, QualityOffline, m.Quality())

	cancel()
	assert.NoError(t, <-done)
	assert.NotEmpty(t, prober.HealthCalls())
}

func TestRun_DegradedQuality(t *testing.T) {
	prober := &ProberMock{
		HealthFunc: func(ctx context.Context) error {
			time.Sleep(5 * time.Millisecond)
			return nil
		},
	}

	cfg := testConfig(0)
	cfg.DegradedLatency = time.Millisecond
	m := New(cfg, prober, setupTestLogger())
	defer m.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- m.Run(ctx) }()

	require.Eventually(t, m.Online, time.Second, 5*time.Millisecond)
	assert.Equal(t, QualityDegraded, m.Quality())

	cancel()
	<-done
}

func TestRun_ProbeTimeout(t *testing.T) {
	prober := &ProberMock{
		HealthFunc: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	}

	m := New(testConfig(0), prober, setupTestLogger())
	defer m.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- m.Run(ctx) }()

	require.Eventually(t, func() bool { return m.Quality() == QualityOffline }, time.Second, 5*time.Millisecond)
	assert.False(t, m.Online())

	cancel()
	<-done
}
