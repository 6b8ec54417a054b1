// Package activity tracks in-flight background work with a reference count,
// so callers can expose a single busy/idle signal while overlapping
// operations come and go.
package activity

import "sync"

type Tracker struct {
	mu    sync.Mutex
	count int
}

func NewTracker() *Tracker {
	return &Tracker{}
}

func (t *Tracker) Begin() {
	t.mu.Lock()
	t.count++
	t.mu.Unlock()
}

func (t *Tracker) End() {
	t.mu.Lock()
	if t.count > 0 {
		t.count--
	}
	t.mu.Unlock()
}

func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

func (t *Tracker) Busy() bool {
	return t.Count() > 0
}

// Do brackets fn with Begin/End, releasing the count even when fn fails.
func (t *Tracker) Do(fn func() error) error {
	t.Begin()
	defer t.End()
	return fn()
}
