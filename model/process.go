// Package model holds the pure data types shared by the simulator services.
package model

import (
	"time"

	"github.com/Imanue001/Os-simulator/internal/clock"
)

// Process represents a simulated process. Identity and demand are fixed at
// creation; RemainingTime is mutated only by the scheduler while it has
// exclusive ownership of the record.
type Process struct {
	ID            int       `json:"id"`
	BurstTime     int       `json:"burstTime"`
	RemainingTime int       `json:"remainingTime"`
	Demand        []int     `json:"demand"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewProcess creates a process record with RemainingTime initialised to the
// full burst.
func NewProcess(id, burstTime int, demand []int) *Process {
	return &Process{
		ID:            id,
		BurstTime:     burstTime,
		RemainingTime: burstTime,
		Demand:        demand,
		CreatedAt:     clock.Now(),
	}
}

// Done reports whether the process has no CPU time left.
func (p *Process) Done() bool {
	return p.RemainingTime <= 0
}
