// Package worker implements the virtual CPU loop: it drains the bounded
// queue, admits work against the resource controller, hands admitted records
// to the scheduler, and releases resources on completion.
package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Imanue001/Os-simulator/logging"
	"github.com/Imanue001/Os-simulator/model"
	"github.com/Imanue001/Os-simulator/runtime/control"
	"github.com/Imanue001/Os-simulator/service/event"
	"github.com/Imanue001/Os-simulator/service/messaging"
	"github.com/Imanue001/Os-simulator/service/resource"
	"github.com/Imanue001/Os-simulator/service/scheduler"
	"github.com/Imanue001/Os-simulator/tracing"
)

// Config represents worker service configuration.
type Config struct {
	// IdlePoll is how often the loop re-checks the control plane while the
	// simulation is paused.
	IdlePoll time.Duration `json:"idlePoll" yaml:"idlePoll"`
}

// DefaultConfig returns the default worker configuration.
func DefaultConfig() Config {
	return Config{IdlePoll: 200 * time.Millisecond}
}

// Service is the consumer side of the bounded queue. Exactly one dispatch is
// attempted per admitted record; records preempted at the end of their slice
// stay in the scheduler's ready queue until a later cycle dispatches them
// again.
type Service struct {
	config    Config
	queue     messaging.Queue[model.Process]
	resources *resource.Service
	scheduler *scheduler.Service
	plane     *control.Plane
	events    *event.Publisher[model.Process]
	log       *logrus.Logger
	completed atomic.Int64
}

// New creates a worker bound to the queue, resource controller, scheduler
// and control plane.
func New(config Config, queue messaging.Queue[model.Process], resources *resource.Service, sched *scheduler.Service, plane *control.Plane, events *event.Publisher[model.Process]) *Service {
	return &Service{
		config:    config,
		queue:     queue,
		resources: resources,
		scheduler: sched,
		plane:     plane,
		events:    events,
		log:       logging.GetLogger(),
	}
}

// Completed returns how many processes have finished and been released.
func (s *Service) Completed() int {
	return int(s.completed.Load())
}

// Start runs the worker loop until the control plane stops or the context is
// cancelled.
func (s *Service) Start(ctx context.Context) error {
	for !s.plane.Stopping() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !s.plane.Running() {
			s.sleep(ctx, s.config.IdlePoll)
			continue
		}
		msg, err := s.queue.Consume(ctx)
		if err != nil {
			return err
		}
		if msg == nil {
			// Queue shut down and drained.
			return nil
		}
		s.handle(ctx, msg)
	}
	return nil
}

// handle runs one admit/dispatch cycle for a popped record.
func (s *Service) handle(ctx context.Context, msg messaging.Message[model.Process]) {
	p := msg.T()
	ctx, span := tracing.StartSpan(ctx, "worker.cycle", "CONSUMER")
	span.WithAttributes(map[string]string{"pid": fmt.Sprintf("%d", p.ID)})
	defer tracing.EndSpan(span, nil)

	if !s.resources.TryAdmit(p) {
		// Expected policy outcome, not an error: the nack requeues the
		// record after the retry delay so admission is retried later.
		s.log.WithField("pid", p.ID).Debug("[worker] admission rejected, requeueing")
		s.publishEvent(ctx, event.TypeRejected, p)
		_ = msg.Nack(fmt.Errorf("insufficient resources for pid %d", p.ID))
		return
	}
	_ = msg.Ack()
	s.scheduler.Admit(p)
	s.log.WithFields(logrus.Fields{"pid": p.ID, "demand": p.Demand}).
		Info("[worker] admitted process")
	s.publishEvent(ctx, event.TypeAdmitted, p)

	if finished := s.scheduler.Dispatch(); finished != nil {
		s.resources.Release(finished)
		s.completed.Add(1)
		s.log.WithField("pid", finished.ID).Info("[worker] completed process")
		s.publishEvent(ctx, event.TypeCompleted, finished)
	}
}

func (s *Service) publishEvent(ctx context.Context, eventType string, p *model.Process) {
	if s.events == nil {
		return
	}
	_ = s.events.Publish(ctx, event.NewEvent(&event.Context{
		PID:       p.ID,
		EventType: eventType,
		Stage:     "worker",
	}, *p))
}

func (s *Service) sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-s.plane.Done():
	case <-ctx.Done():
	}
}
