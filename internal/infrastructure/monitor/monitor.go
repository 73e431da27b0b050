package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Probe checks one dependency; a nil error means healthy.
type Probe func(ctx context.Context) error

type probe struct {
	name    string
	timeout time.Duration
	fn      Probe
}

// Monitor periodically pings registered dependencies and caches the latest
// results for the health endpoint.
type Monitor struct {
	probes   []probe
	interval time.Duration
	logger   *zap.Logger

	mu     sync.RWMutex
	status Status
	stopCh chan struct{}
}

func New(interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// Register adds a dependency probe. Register before Start; probes are not
// added concurrently with the refresh loop.
func (m *Monitor) Register(name string, timeout time.Duration, fn Probe) {
	if fn == nil {
		return
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	m.probes = append(m.probes, probe{name: name, timeout: timeout, fn: fn})
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	close(m.stopCh)
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.clone()
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.refresh()
	for {
		select {
		case <-ticker.C:
			m.refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) refresh() {
	status := Status{
		Components: make(map[string]bool, len(m.probes)),
		LastCheck:  time.Now(),
	}

	for _, p := range m.probes {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		err := p.fn(ctx)
		cancel()
		if err != nil {
			m.logger.Warn("dependency check failed", zap.String("component", p.name), zap.Error(err))
		}
		status.Components[p.name] = err == nil
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
}
