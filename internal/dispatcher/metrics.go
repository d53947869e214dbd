package dispatcher

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/focuskit/internal/dispatcher/handler"
)

// Metrics collects dispatch statistics.
type Metrics struct {
	mu sync.RWMutex

	// Per-command metrics
	commandMetrics map[string]*CommandMetrics

	// Global counters
	totalDispatches uint64
	totalErrors     uint64
	totalPanics     uint64
	totalBlocked    uint64

	// Timing
	totalDuration time.Duration
}

// CommandMetrics holds metrics for a specific command.
type CommandMetrics struct {
	Type          string
	DispatchCount uint64
	ErrorCount    uint64
	TotalDuration time.Duration
	MinDuration   time.Duration
	MaxDuration   time.Duration
	LastStatus    handler.ResultStatus
	LastDispatch  time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		commandMetrics: make(map[string]*CommandMetrics),
	}
}

// RecordDispatch records a dispatch event.
func (m *Metrics) RecordDispatch(typ string, duration time.Duration, status handler.ResultStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	m.totalDuration += duration

	switch status {
	case handler.StatusError:
		m.totalErrors++
	case handler.StatusBlocked:
		m.totalBlocked++
	}

	cm := m.commandMetrics[typ]
	if cm == nil {
		cm = &CommandMetrics{
			Type:        typ,
			MinDuration: duration,
			MaxDuration: duration,
		}
		m.commandMetrics[typ] = cm
	}

	cm.DispatchCount++
	cm.TotalDuration += duration
	cm.LastStatus = status
	cm.LastDispatch = time.Now()

	if duration < cm.MinDuration {
		cm.MinDuration = duration
	}
	if duration > cm.MaxDuration {
		cm.MaxDuration = duration
	}

	if status == handler.StatusError {
		cm.ErrorCount++
	}
}

// RecordPanic records a panic recovery.
func (m *Metrics) RecordPanic(typ string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalPanics++

	cm := m.commandMetrics[typ]
	if cm != nil {
		cm.ErrorCount++
	}
}

// TotalDispatches returns the total number of dispatches.
func (m *Metrics) TotalDispatches() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDispatches
}

// TotalErrors returns the total number of errors.
func (m *Metrics) TotalErrors() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalErrors
}

// TotalPanics returns the total number of panics recovered.
func (m *Metrics) TotalPanics() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalPanics
}

// TotalBlocked returns the number of dispatches rejected by a when guard.
func (m *Metrics) TotalBlocked() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalBlocked
}

// TotalDuration returns the total duration of all dispatches.
func (m *Metrics) TotalDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDuration
}

// AverageDuration returns the average dispatch duration.
func (m *Metrics) AverageDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.totalDispatches == 0 {
		return 0
	}
	return m.totalDuration / time.Duration(m.totalDispatches)
}

// CommandStats returns metrics for a specific command.
func (m *Metrics) CommandStats(typ string) *CommandMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cm := m.commandMetrics[typ]
	if cm == nil {
		return nil
	}

	// Return a copy
	copy := *cm
	return &copy
}

// TopCommands returns the top N most dispatched commands.
func (m *Metrics) TopCommands(n int) []*CommandMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cmds := make([]*CommandMetrics, 0, len(m.commandMetrics))
	for _, cm := range m.commandMetrics {
		copy := *cm
		cmds = append(cmds, &copy)
	}

	sort.SliceStable(cmds, func(i, j int) bool {
		return cmds[i].DispatchCount > cmds[j].DispatchCount
	})

	if n > len(cmds) {
		n = len(cmds)
	}
	return cmds[:n]
}

// SlowestCommands returns the top N slowest commands by average duration.
func (m *Metrics) SlowestCommands(n int) []*CommandMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cmds := make([]*CommandMetrics, 0, len(m.commandMetrics))
	for _, cm := range m.commandMetrics {
		if cm.DispatchCount > 0 {
			copy := *cm
			cmds = append(cmds, &copy)
		}
	}

	sort.SliceStable(cmds, func(i, j int) bool {
		avgI := cmds[i].TotalDuration / time.Duration(cmds[i].DispatchCount)
		avgJ := cmds[j].TotalDuration / time.Duration(cmds[j].DispatchCount)
		return avgI > avgJ
	})

	if n > len(cmds) {
		n = len(cmds)
	}
	return cmds[:n]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.commandMetrics = make(map[string]*CommandMetrics)
	m.totalDispatches = 0
	m.totalErrors = 0
	m.totalPanics = 0
	m.totalBlocked = 0
	m.totalDuration = 0
}

// Snapshot returns a point-in-time snapshot of all metrics.
type MetricsSnapshot struct {
	TotalDispatches uint64
	TotalErrors     uint64
	TotalPanics     uint64
	TotalBlocked    uint64
	TotalDuration   time.Duration
	AverageDuration time.Duration
	CommandCount     int
	Timestamp       time.Time
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := MetricsSnapshot{
		TotalDispatches: m.totalDispatches,
		TotalErrors:     m.totalErrors,
		TotalPanics:     m.totalPanics,
		TotalBlocked:    m.totalBlocked,
		TotalDuration:   m.totalDuration,
		CommandCount:     len(m.commandMetrics),
		Timestamp:       time.Now(),
	}

	if m.totalDispatches > 0 {
		snapshot.AverageDuration = m.totalDuration / time.Duration(m.totalDispatches)
	}

	return snapshot
}

// AverageCommandDuration returns the average duration for a specific command.
func (cm *CommandMetrics) AverageCommandDuration() time.Duration {
	if cm.DispatchCount == 0 {
		return 0
	}
	return cm.TotalDuration / time.Duration(cm.DispatchCount)
}

// ErrorRate returns the error rate as a percentage.
func (cm *CommandMetrics) ErrorRate() float64 {
	if cm.DispatchCount == 0 {
		return 0
	}
	return float64(cm.ErrorCount) / float64(cm.DispatchCount) * 100
}
