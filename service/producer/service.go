// Package producer implements the loop that manufactures process records and
// feeds them into the bounded queue.
package producer

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Imanue001/Os-simulator/internal/randx"
	"github.com/Imanue001/Os-simulator/logging"
	"github.com/Imanue001/Os-simulator/model"
	"github.com/Imanue001/Os-simulator/runtime/control"
	"github.com/Imanue001/Os-simulator/service/event"
	"github.com/Imanue001/Os-simulator/service/messaging"
)

// Config represents producer service configuration.
type Config struct {
	// Interval is the pause between two produced processes.
	Interval time.Duration `json:"interval" yaml:"interval"`

	// IdlePoll is how often the loop re-checks the control plane while the
	// simulation is paused.
	IdlePoll time.Duration `json:"idlePoll" yaml:"idlePoll"`

	// BurstMin and BurstMax bound the random CPU burst of a new process.
	BurstMin int `json:"burstMin" yaml:"burstMin"`
	BurstMax int `json:"burstMax" yaml:"burstMax"`

	// DemandMin and DemandMax bound the random per-class resource demand.
	DemandMin int `json:"demandMin" yaml:"demandMin"`
	DemandMax int `json:"demandMax" yaml:"demandMax"`

	// Classes is the number of resource classes every demand vector covers.
	Classes int `json:"classes" yaml:"classes"`
}

// DefaultConfig returns the default producer configuration.
func DefaultConfig() Config {
	return Config{
		Interval:  2 * time.Second,
		IdlePoll:  200 * time.Millisecond,
		BurstMin:  2,
		BurstMax:  6,
		DemandMin: 1,
		DemandMax: 2,
		Classes:   3,
	}
}

// Service generates process records with monotonically increasing IDs and
// publishes them to the bounded queue, stalling on backpressure.
type Service struct {
	config Config
	queue  messaging.Queue[model.Process]
	plane  *control.Plane
	events *event.Publisher[model.Process]
	log    *logrus.Logger
	pid    atomic.Int64
}

// New creates a producer bound to the queue and control plane.
func New(config Config, queue messaging.Queue[model.Process], plane *control.Plane, events *event.Publisher[model.Process]) *Service {
	return &Service{
		config: config,
		queue:  queue,
		plane:  plane,
		events: events,
		log:    logging.GetLogger(),
	}
}

// NextPID returns the next process identifier. Exposed for tests.
func (s *Service) NextPID() int {
	return int(s.pid.Add(1))
}

// Produced returns how many processes have been created so far.
func (s *Service) Produced() int {
	return int(s.pid.Load())
}

// Start runs the producer loop until the control plane stops or the context
// is cancelled. While paused it polls the control plane at IdlePoll.
func (s *Service) Start(ctx context.Context) error {
	for !s.plane.Stopping() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !s.plane.Running() {
			s.sleep(ctx, s.config.IdlePoll)
			continue
		}
		p := s.synthesize()
		if err := s.queue.Publish(ctx, p); err != nil {
			// Shutdown raced in while blocked on backpressure.
			return nil
		}
		s.log.WithFields(logrus.Fields{"pid": p.ID, "burst": p.BurstTime, "demand": p.Demand}).
			Info("[producer] created process")
		s.publishEvent(ctx, event.TypeCreated, p)
		s.sleep(ctx, s.config.Interval)
	}
	return nil
}

func (s *Service) synthesize() *model.Process {
	return model.NewProcess(
		s.NextPID(),
		randx.IntBetween(s.config.BurstMin, s.config.BurstMax),
		randx.Vector(s.config.Classes, s.config.DemandMin, s.config.DemandMax),
	)
}

func (s *Service) publishEvent(ctx context.Context, eventType string, p *model.Process) {
	if s.events == nil {
		return
	}
	_ = s.events.Publish(ctx, event.NewEvent(&event.Context{
		PID:       p.ID,
		EventType: eventType,
		Stage:     "producer",
	}, *p))
}

// sleep waits for d but returns early on stop or context cancellation.
func (s *Service) sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-s.plane.Done():
	case <-ctx.Done():
	}
}
