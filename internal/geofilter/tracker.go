// internal/geofilter/tracker.go
package geofilter

import "sync"

// Tracker serializes concurrent nearby lookups per session so that only the
// most recently started request gets to publish its result. Begin hands out
// a monotonically increasing token; Latest reports whether that token still
// belongs to the newest request at apply time.
type Tracker struct {
	mu      sync.Mutex
	current uint64
}

func NewTracker() *Tracker {
	return &Tracker{}
}

func (t *Tracker) Begin() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current++
	return t.current
}

func (t *Tracker) Latest(token uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return token == t.current
}
