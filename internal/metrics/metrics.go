// Package metrics collects in-process counters for RPC traffic. Counters
// are atomic and safe for concurrent recording from adapter goroutines.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics accumulates RPC call counts, failures and latency.
type Metrics struct {
	callsTotal   atomic.Int64
	errorsTotal  atomic.Int64
	latencyNanos atomic.Int64

	mu       sync.Mutex
	byMethod map[string]int64
}

// Global is the process-wide metrics instance.
//
//nolint:gochecknoglobals // Intentional global for metrics access
var Global = &Metrics{}

// RecordCall records one RPC round trip.
func (m *Metrics) RecordCall(method string, duration time.Duration, err error) {
	m.callsTotal.Add(1)
	m.latencyNanos.Add(duration.Nanoseconds())
	if err != nil {
		m.errorsTotal.Add(1)
	}

	m.mu.Lock()
	if m.byMethod == nil {
		m.byMethod = make(map[string]int64)
	}
	m.byMethod[method]++
	m.mu.Unlock()
}

// CallsTotal returns the total number of RPC calls recorded.
func (m *Metrics) CallsTotal() int64 {
	return m.callsTotal.Load()
}

// ErrorsTotal returns the total number of failed RPC calls.
func (m *Metrics) ErrorsTotal() int64 {
	return m.errorsTotal.Load()
}

// LatencyAvgMs returns the average round-trip latency in milliseconds,
// or 0 when nothing has been recorded.
func (m *Metrics) LatencyAvgMs() float64 {
	calls := m.callsTotal.Load()
	if calls == 0 {
		return 0
	}
	return float64(m.latencyNanos.Load()) / float64(calls) / 1e6
}

// MethodCalls returns the number of calls recorded for a single method.
func (m *Metrics) MethodCalls(method string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byMethod[method]
}

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	CallsTotal   int64            `json:"callsTotal"`
	ErrorsTotal  int64            `json:"errorsTotal"`
	LatencyAvgMs float64          `json:"latencyAvgMs"`
	ByMethod     map[string]int64 `json:"byMethod,omitempty"`
}

// Snapshot returns a point-in-time copy of all counters.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	byMethod := make(map[string]int64, len(m.byMethod))
	for k, v := range m.byMethod {
		byMethod[k] = v
	}
	m.mu.Unlock()

	return Snapshot{
		CallsTotal:   m.callsTotal.Load(),
		ErrorsTotal:  m.errorsTotal.Load(),
		LatencyAvgMs: m.LatencyAvgMs(),
		ByMethod:     byMethod,
	}
}

// Reset zeroes all counters. Useful for testing.
func (m *Metrics) Reset() {
	m.callsTotal.Store(0)
	m.errorsTotal.Store(0)
	m.latencyNanos.Store(0)

	m.mu.Lock()
	m.byMethod = nil
	m.mu.Unlock()
}
