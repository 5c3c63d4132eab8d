// Package resource implements the admission controller for the simulator.
// Admission is a conservative all-or-nothing reservation against a fixed
// vector of resource classes; it is not a full safety-state search.
package resource

import (
	"fmt"
	"sync"

	"github.com/Imanue001/Os-simulator/model"
)

// Service tracks available units per resource class and the demand vector
// held by every admitted process. All state is guarded by a single mutex;
// no lock is ever held across a call into another service.
type Service struct {
	mu          sync.Mutex
	totals      []int
	available   []int
	allocations map[int][]int
}

// New creates a resource controller with the given per-class totals.
func New(totals []int) (*Service, error) {
	if len(totals) == 0 {
		return nil, fmt.Errorf("at least one resource class is required")
	}
	for i, total := range totals {
		if total < 0 {
			return nil, fmt.Errorf("resource class %d has negative total %d", i, total)
		}
	}
	s := &Service{
		totals:      append([]int(nil), totals...),
		available:   append([]int(nil), totals...),
		allocations: make(map[int][]int),
	}
	return s, nil
}

// Classes returns the number of resource classes.
func (s *Service) Classes() int {
	return len(s.totals)
}

// TryAdmit checks the process demand against available units and, when every
// class fits, reserves them atomically. A failed check leaves state
// untouched; there is no partial reservation.
func (s *Service) TryAdmit(p *model.Process) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(p.Demand) != len(s.available) {
		return false
	}
	if _, exists := s.allocations[p.ID]; exists {
		return false
	}
	for i, demand := range p.Demand {
		if demand < 0 || demand > s.available[i] {
			return false
		}
	}
	for i, demand := range p.Demand {
		s.available[i] -= demand
	}
	s.allocations[p.ID] = append([]int(nil), p.Demand...)
	return true
}

// Release restores the units recorded for the process at admission and drops
// the allocation entry. Releasing a process that holds nothing is a no-op,
// so a double release cannot double-credit resources.
func (s *Service) Release(p *model.Process) {
	s.mu.Lock()
	defer s.mu.Unlock()
	held, ok := s.allocations[p.ID]
	if !ok {
		return
	}
	for i, units := range held {
		s.available[i] += units
	}
	delete(s.allocations, p.ID)
}

// Snapshot returns a consistent point-in-time copy of the available vector.
func (s *Service) Snapshot() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.available...)
}

// Totals returns the configured capacity per class.
func (s *Service) Totals() []int {
	return append([]int(nil), s.totals...)
}

// AllocationCount returns the number of currently admitted processes.
func (s *Service) AllocationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.allocations)
}
