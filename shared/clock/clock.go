// Package clock abstracts the wall clock so admission rules can be tested
// against a controlled "now".
package clock

import (
	"sync"
	"time"

	"reservation/shared/timezone"
)

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// New returns the application clock, reporting time in the configured timezone.
func New() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return timezone.Now()
}

// Manual is a Clock that only moves when told to. Safe for concurrent use.
type Manual struct {
	mu  sync.RWMutex
	now time.Time
}

func NewManual(now time.Time) *Manual {
	return &Manual{now: now}
}

func (m *Manual) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.now
}

func (m *Manual) Set(now time.Time) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

func (m *Manual) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.now = m.now.Add(d)

	return m.now
}
