// Package control implements the process-wide run/stop flags shared by the
// producer and worker loops. A single Plane is injected into every loop at
// construction; nothing reads these flags through package globals.
package control

import (
	"sync"
	"sync/atomic"
)

// Plane carries the two simulation control flags: running gates whether loops
// perform work, stopping is a one-way latch that converges both loops to
// termination. Done exposes the latch as a channel so blocked operations can
// select on it.
type Plane struct {
	running  atomic.Bool
	stopping atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
}

// New returns a Plane in the paused, non-stopping state.
func New() *Plane {
	return &Plane{stopCh: make(chan struct{})}
}

// SetRunning toggles the running flag. Idempotent.
func (p *Plane) SetRunning(running bool) {
	p.running.Store(running)
}

// Running reports whether loops should currently perform work.
func (p *Plane) Running() bool {
	return p.running.Load()
}

// RequestStop sets the stopping latch and wakes every operation blocked on
// Done. Idempotent; the latch is never cleared.
func (p *Plane) RequestStop() {
	p.stopOnce.Do(func() {
		p.stopping.Store(true)
		close(p.stopCh)
	})
}

// Stopping reports whether the stop latch has been set.
func (p *Plane) Stopping() bool {
	return p.stopping.Load()
}

// Done returns a channel closed once RequestStop has been called.
func (p *Plane) Done() <-chan struct{} {
	return p.stopCh
}
