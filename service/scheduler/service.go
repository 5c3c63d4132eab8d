// Package scheduler implements Round-Robin time slicing over a FIFO ready
// queue. Dispatch is a poll: it never blocks and performs at most one slice
// of work per call.
package scheduler

import (
	"fmt"
	"sync"

	"github.com/Imanue001/Os-simulator/model"
)

// Slice records one scheduled run: which process held the CPU and for how
// many units. The timeline of slices is append-only.
type Slice struct {
	PID    int `json:"pid"`
	Length int `json:"length"`
}

// Service owns the ready queue and the execution timeline. It holds record
// pointers, not copies; ownership of a record returns to the caller only via
// a completing Dispatch.
type Service struct {
	mu       sync.Mutex
	quantum  int
	elapsed  int
	ready    []*model.Process
	timeline []Slice
}

// New creates a Round-Robin scheduler with the given quantum.
func New(quantum int) (*Service, error) {
	if quantum <= 0 {
		return nil, fmt.Errorf("quantum must be positive, got %d", quantum)
	}
	return &Service{quantum: quantum}, nil
}

// Admit appends the process to the tail of the ready queue. The ready queue
// has no capacity bound.
func (s *Service) Admit(p *model.Process) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = append(s.ready, p)
}

// ReadyCount returns the current ready queue length.
func (s *Service) ReadyCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ready)
}

// Dispatch runs the head of the ready queue for one slice of at most the
// quantum. An unfinished process goes back to the tail and Dispatch returns
// nil even though work happened; a finished process is returned to the
// caller for release and is not re-enqueued. An empty ready queue returns
// nil with no side effects.
func (s *Service) Dispatch() *model.Process {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.ready) == 0 {
		return nil
	}
	p := s.ready[0]
	s.ready = s.ready[1:]

	slice := s.quantum
	if p.RemainingTime < slice {
		slice = p.RemainingTime
	}
	p.RemainingTime -= slice
	s.timeline = append(s.timeline, Slice{PID: p.ID, Length: slice})
	s.elapsed += slice

	if p.RemainingTime > 0 {
		s.ready = append(s.ready, p)
		return nil
	}
	return p
}

// Timeline returns a copy of the execution timeline in dispatch order.
func (s *Service) Timeline() []Slice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Slice(nil), s.timeline...)
}

// ElapsedTime returns the total simulated CPU time consumed so far.
func (s *Service) ElapsedTime() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Quantum returns the configured time slice.
func (s *Service) Quantum() int {
	return s.quantum
}
