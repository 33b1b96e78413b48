// Package costs guards paid provider usage with per-provider character
// ceilings over a tumbling window. Accounting is per-process and in-memory;
// a restart starts a fresh window.
package costs

import (
	"fmt"
	"sync"
	"time"
)

const DefaultWindow = 24 * time.Hour

type bucket struct {
	windowStart time.Time
	used        int64
}

// Monitor is safe for concurrent use. A provider without a configured
// ceiling is never denied.
type Monitor struct {
	mu     sync.Mutex
	window time.Duration
	limits map[string]int64
	usage  map[string]*bucket
	now    func() time.Time
}

func New(window time.Duration, limits map[string]int64) *Monitor {
	if window <= 0 {
		window = DefaultWindow
	}
	copied := make(map[string]int64, len(limits))
	for k, v := range limits {
		copied[k] = v
	}
	return &Monitor{
		window: window,
		limits: copied,
		usage:  make(map[string]*bucket),
		now:    time.Now,
	}
}

// Check reports whether a request of contentLen characters fits under the
// provider's ceiling. It never records usage: denial must not consume any
// part of the budget.
func (m *Monitor) Check(provider string, contentLen int) (bool, string) {
	limit, ok := m.limits[provider]
	if !ok || limit <= 0 {
		return true, ""
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b := m.bucketLocked(provider)
	if b.used+int64(contentLen) > limit {
		return false, fmt.Sprintf("%s usage %d + estimate %d exceeds ceiling %d", provider, b.used, contentLen, limit)
	}
	return true, ""
}

// Record adds contentLen characters to the provider's current window.
func (m *Monitor) Record(provider string, contentLen int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bucketLocked(provider).used += int64(contentLen)
}

// Usage returns the characters consumed in the provider's current window.
func (m *Monitor) Usage(provider string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bucketLocked(provider).used
}

func (m *Monitor) bucketLocked(provider string) *bucket {
	now := m.now()
	b, ok := m.usage[provider]
	if !ok {
		b = &bucket{windowStart: now}
		m.usage[provider] = b
		return b
	}
	if now.Sub(b.windowStart) >= m.window {
		b.windowStart = now
		b.used = 0
	}
	return b
}
