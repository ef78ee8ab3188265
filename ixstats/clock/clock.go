// Package clock provides the authoritative IxTime source. All expiry and
// countdown arithmetic in the engine runs against a Clock, never against
// wall-clock time directly, so expiry logic stays testable and immune to
// client-side drift.
package clock

import (
	"sync"
	"time"
)

// Clock yields the current game time.
type Clock interface {
	Now() time.Time
}

// IxClock maps real time onto accelerated game time: game time advances
// Multiplier seconds for every real second elapsed since Epoch.
type IxClock struct {
	Epoch      time.Time
	Multiplier float64
}

const DefaultMultiplier = 4.0

// NewIxClock anchors game time at epoch with the given acceleration factor.
// A multiplier <= 0 falls back to DefaultMultiplier.
func NewIxClock(epoch time.Time, multiplier float64) *IxClock {
	if multiplier <= 0 {
		multiplier = DefaultMultiplier
	}
	return &IxClock{Epoch: epoch, Multiplier: multiplier}
}

func (c *IxClock) Now() time.Time {
	elapsed := time.Since(c.Epoch)
	scaled := time.Duration(float64(elapsed) * c.Multiplier)
	return c.Epoch.Add(scaled)
}

// Until reports the game-time duration remaining before t.
func Until(c Clock, t time.Time) time.Duration {
	return t.Sub(c.Now())
}

// Simulated is a manually advanced clock for tests and replay tooling.
type Simulated struct {
	mu  sync.RWMutex
	now time.Time
}

func NewSimulated(now time.Time) *Simulated {
	return &Simulated{now: now}
}

func (s *Simulated) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now
}

func (s *Simulated) Set(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Simulated) Advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.now.Add(d)
}
