// Package connectivity отслеживает доступность сервера синхронизации.
//
// Сырые сигналы (от платформы через Report и от периодических health-проб)
// проходят через debounce и публикуются подписчикам как переходы состояния.
package connectivity

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// LinkQuality advisory hint about the link, derived from probe latency
type LinkQuality string

const (
	QualityUnknown  LinkQuality = "unknown"
	QualityOffline  LinkQuality = "offline"
	QualityGood     LinkQuality = "good"
	QualityDegraded LinkQuality = "degraded"
)

// subscriberBuffer размер буфера канала подписчика
const subscriberBuffer = 4

//go:generate moq -out prober_mock.go . Prober

// Prober checks server liveness
type Prober interface {
	Health(ctx context.Context) error
}

// Config параметры монитора
type Config struct {
	ProbeInterval   time.Duration // интервал health-проб
	ProbeTimeout    time.Duration // таймаут одной пробы
	Debounce        time.Duration // время стабильности сигнала до публикации
	DegradedLatency time.Duration // задержка пробы, после которой канал считается медленным
}

// DefaultConfig returns default monitor settings
func DefaultConfig() Config {
	return Config{
		ProbeInterval:   30 * time.Second,
		ProbeTimeout:    5 * time.Second,
		Debounce:        500 * time.Millisecond,
		DegradedLatency: time.Second,
	}
}

// Transition published change of reachability
type Transition struct {
	At      time.Time
	Quality LinkQuality
	Online  bool
}

// Monitor tracks reachability and publishes debounced transitions
type Monitor struct {
	prober Prober
	logger *slog.Logger
	cfg    Config

	mu        sync.Mutex
	timer     *time.Timer
	subs      map[int]chan Transition
	quality   LinkQuality
	gen       uint64
	nextSubID int
	raw       bool
	published bool
	closed    bool
}

// New creates a monitor. prober may be nil, then only Report feeds the state.
func New(cfg Config, prober Prober, logger *slog.Logger) *Monitor {
	return &Monitor{
		prober:  prober,
		logger:  logger,
		cfg:     cfg,
		subs:    make(map[int]chan Transition),
		quality: QualityUnknown,
	}
}

// Report feeds a raw platform-level online/offline signal
func (m *Monitor) Report(online bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if online {
		if m.quality == QualityOffline {
			m.quality = QualityUnknown
		}
	} else {
		m.quality = QualityOffline
	}
	m.reportLocked(online)
}

// Run performs liveness probes until ctx is cancelled
func (m *Monitor) Run(ctx context.Context) error {
	if m.prober == nil {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(m.cfg.ProbeInterval)
	defer ticker.Stop()

	for {
		m.probe(ctx)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Online returns the last published state
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.published
}

// Quality returns the advisory link quality hint
func (m *Monitor) Quality() LinkQuality {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.quality
}

// Subscribe registers a listener for transitions.
// A slow listener loses intermediate transitions but always gets the latest one.
func (m *Monitor) Subscribe() (<-chan Transition, func()) {
	ch := make(chan Transition, subscriberBuffer)

	m.mu.Lock()
	id := m.nextSubID
	m.nextSubID++
	m.subs[id] = ch
	m.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
}

// WaitForOnline returns true at once when online, otherwise waits for the
// next online transition. Returns false on timeout or ctx cancellation.
func (m *Monitor) WaitForOnline(ctx context.Context, timeout time.Duration) bool {
	// Подписываемся до проверки, чтобы не пропустить переход между ними
	ch, cancel := m.Subscribe()
	defer cancel()

	if m.Online() {
		return true
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case tr := <-ch:
			if tr.Online {
				return true
			}
		case <-timer.C:
			return false
		case <-ctx.Done():
			return false
		}
	}
}

// Close stops the pending debounce timer. Report after Close is ignored.
func (m *Monitor) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.gen++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *Monitor) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, m.cfg.ProbeTimeout)
	defer cancel()

	start := time.Now()
	err := m.prober.Health(probeCtx)
	latency := time.Since(start)

	if ctx.Err() != nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case err != nil:
		m.quality = QualityOffline
		m.logger.Debug("Health probe failed", "error", err, "latency", latency)
	case m.cfg.DegradedLatency > 0 && latency > m.cfg.DegradedLatency:
		m.quality = QualityDegraded
		m.logger.Debug("Health probe slow", "latency", latency)
	default:
		m.quality = QualityGood
	}
	m.reportLocked(err == nil)
}

// reportLocked перезапускает debounce-таймер. Вызывается под m.mu.
func (m *Monitor) reportLocked(online bool) {
	if m.closed {
		return
	}

	m.raw = online
	m.gen++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}

	// Сигнал вернулся к опубликованному состоянию: публиковать нечего
	if online == m.published {
		return
	}

	if m.cfg.Debounce <= 0 {
		m.publishLocked()
		return
	}

	gen := m.gen
	m.timer = time.AfterFunc(m.cfg.Debounce, func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		// Таймер устарел
		if gen != m.gen {
			return
		}
		m.timer = nil
		m.publishLocked()
	})
}

func (m *Monitor) publishLocked() {
	if m.raw == m.published {
		return
	}
	m.published = m.raw

	tr := Transition{At: time.Now(), Online: m.published, Quality: m.quality}
	m.logger.Info("Connectivity changed", "online", tr.Online, "quality", tr.Quality)

	for _, ch := range m.subs {
		select {
		case ch <- tr:
			continue
		default:
		}
		// Буфер полон: выбрасываем самый старый переход
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- tr:
		default:
		}
	}
}
