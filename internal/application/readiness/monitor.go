package readiness

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// StatusOK is the check value recorded for a passing probe
const StatusOK = "ok"

// Probe is a named connectivity check against one dependency
type Probe interface {
	Name() string
	Check(ctx context.Context) error
}

// MetricsRecorder receives the outcome of every probe run
type MetricsRecorder interface {
	SetDependencyUp(probe string, up bool)
}

// Status is the result of one run over all probes
type Status struct {
	Ready     bool
	Checks    map[string]string
	Timestamp time.Time
}

// Monitor periodically runs probes and caches the latest status
type Monitor struct {
	probes   []Probe
	interval time.Duration
	timeout  time.Duration
	metrics  MetricsRecorder
	logger   *zap.Logger

	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	status  *Status
}

// NewMonitor creates a new readiness monitor. metrics may be nil.
func NewMonitor(probes []Probe, interval, timeout time.Duration, metrics MetricsRecorder, logger *zap.Logger) *Monitor {
	return &Monitor{
		probes:   probes,
		interval: interval,
		timeout:  timeout,
		metrics:  metrics,
		logger:   logger,
	}
}

// Start runs one check immediately and then one per interval
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.stopCh = make(chan struct{})
	m.doneCh = make(chan struct{})
	stopCh, doneCh := m.stopCh, m.doneCh
	m.mu.Unlock()

	go m.run(stopCh, doneCh)
}

// Stop stops the monitor and waits for the loop to exit
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	close(m.stopCh)
	doneCh := m.doneCh
	m.mu.Unlock()

	<-doneCh
}

// run is the main probing loop
func (m *Monitor) run(stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	m.check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			m.check(ctx)
		}
	}
}

// check runs all probes and logs the outcome
func (m *Monitor) check(ctx context.Context) {
	status := m.CheckNow(ctx)

	if status.Ready {
		m.logger.Debug("readiness check passed",
			zap.Int("probes", len(m.probes)))
		return
	}

	m.logger.Warn("readiness check failed",
		zap.Any("checks", status.Checks))
}

// CheckNow runs every probe once, stores the result and returns it
func (m *Monitor) CheckNow(ctx context.Context) *Status {
	status := &Status{
		Ready:  true,
		Checks: make(map[string]string, len(m.probes)),
	}

	for _, probe := range m.probes {
		probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
		err := probe.Check(probeCtx)
		cancel()

		if err != nil {
			status.Ready = false
			status.Checks[probe.Name()] = err.Error()
		} else {
			status.Checks[probe.Name()] = StatusOK
		}

		if m.metrics != nil {
			m.metrics.SetDependencyUp(probe.Name(), err == nil)
		}
	}
	status.Timestamp = time.Now()

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()

	return status
}

// GetStatus returns the last recorded status, running a check if none exists
func (m *Monitor) GetStatus() *Status {
	m.mu.RLock()
	status := m.status
	m.mu.RUnlock()

	if status == nil {
		return m.CheckNow(context.Background())
	}
	return status
}

// IsReady returns true if every probe passed on the last run
func (m *Monitor) IsReady() bool {
	return m.GetStatus().Ready
}
