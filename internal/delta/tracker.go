// Package delta tracks previously observed absolute values and reports
// signed differences instead, so steady-state metrics stay quiet on the wire.
package delta

import (
	"sync"

	"github.com/and161185/host-metrics-agent/internal/utils"
)

// Tracker remembers the last absolute value per key. The first observation of
// a key reports the absolute value; later ones report the change since the
// previous observation.
type Tracker struct {
	mu   sync.Mutex
	last map[string]float64
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{last: make(map[string]float64)}
}

// Track records value under key and returns the string to emit: the absolute
// value for a fresh key, otherwise the delta with an explicit sign when
// non-negative. Negative deltas keep default formatting.
func (t *Tracker) Track(key string, value float64) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev, seen := t.last[key]
	t.last[key] = value
	if !seen {
		return utils.FormatFloat(value)
	}

	d := value - prev
	if d >= 0 {
		return "+" + utils.FormatFloat(d)
	}
	return utils.FormatFloat(d)
}

// Reset forgets every stored value. The next Track per key reports the
// absolute value again, re-establishing a baseline for downstream consumers.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = make(map[string]float64)
}
