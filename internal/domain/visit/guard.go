package visit

import "sync"

// Guard serializes subscription callbacks and drops them after Stop.
// Stop waits for an in-flight callback to return.
type Guard struct {
	mu      sync.Mutex
	stopped bool
}

// Do runs fn unless the guard is stopped and reports whether it ran.
func (g *Guard) Do(fn func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stopped {
		return false
	}
	fn()
	return true
}

// Finish runs fn as the last callback; later Do calls are dropped.
func (g *Guard) Finish(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stopped {
		return
	}
	g.stopped = true
	fn()
}

func (g *Guard) Stop() {
	g.mu.Lock()
	g.stopped = true
	g.mu.Unlock()
}
