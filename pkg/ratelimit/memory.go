package ratelimit

import (
	"sync"
	"time"
)

// Memory is a best-effort in-process sliding-window counter. It is reset on
// restart and shared by nothing, so it is a nuisance filter for abusive
// callers, not a correctness mechanism; callback idempotency does not depend
// on it.
type Memory struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	hits   map[string][]time.Time
	now    func() time.Time
}

func NewMemory(limit int, window time.Duration) *Memory {
	return &Memory{
		limit:  limit,
		window: window,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

func (m *Memory) Allow(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	cutoff := now.Add(-m.window)

	kept := m.hits[key][:0]

	for _, t := range m.hits[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= m.limit {
		m.hits[key] = kept
		return false
	}

	m.hits[key] = append(kept, now)

	return true
}
