package ossim

import (
	"time"

	"github.com/Imanue001/Os-simulator/logging"
	"github.com/Imanue001/Os-simulator/model"
	"github.com/Imanue001/Os-simulator/runtime/control"
	"github.com/Imanue001/Os-simulator/service/event"
	"github.com/Imanue001/Os-simulator/service/messaging"
	mmemory "github.com/Imanue001/Os-simulator/service/messaging/memory"
	"github.com/Imanue001/Os-simulator/service/producer"
	"github.com/Imanue001/Os-simulator/service/resource"
	"github.com/Imanue001/Os-simulator/service/scheduler"
	"github.com/Imanue001/Os-simulator/service/worker"
)

// Service assembles the simulator: the bounded process queue, resource
// controller, Round-Robin scheduler, both loops and the shared control
// plane. End-users interact with the assembled system through Runtime.
type Service struct {
	config       *Config
	runtime      *Runtime
	queue        messaging.Queue[model.Process]
	eventQueue   *mmemory.Queue[event.Event[model.Process]]
	eventHandler func(*event.Event[model.Process])
}

// New builds a simulator service. Construction fails only on invalid
// configuration; every run-time failure mode is a policy outcome.
func New(options ...Option) (*Service, error) {
	s := &Service{runtime: &Runtime{}}
	for _, option := range options {
		option(s)
	}
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) init() error {
	logging.Init(s.config.Logging)

	if s.queue == nil {
		s.queue = mmemory.NewQueue[model.Process](mmemory.Config{
			Capacity:   s.config.Buffer.Capacity,
			RetryDelay: time.Duration(s.config.Buffer.RetryDelayMs) * time.Millisecond,
		})
	}

	resources, err := resource.New(s.config.Resources.Totals)
	if err != nil {
		return err
	}
	sched, err := scheduler.New(s.config.Scheduler.Quantum)
	if err != nil {
		return err
	}

	// Lifecycle events ride their own queue, created only when a subscriber
	// exists; an unconsumed event queue must never back-pressure the loops.
	var publisher *event.Publisher[model.Process]
	if s.eventHandler != nil {
		s.eventQueue = mmemory.NewQueue[event.Event[model.Process]](mmemory.Config{Capacity: 256})
		publisher = event.NewPublisher[model.Process](s.eventQueue)
		s.runtime.listener = event.NewListener(publisher, s.eventHandler)
		s.runtime.listener.Start()
	}

	plane := control.New()
	s.runtime.plane = plane
	s.runtime.queue = s.queue
	s.runtime.eventQueue = s.eventQueue
	s.runtime.resources = resources
	s.runtime.scheduler = sched
	s.runtime.producer = producer.New(s.config.producerConfig(), s.queue, plane, publisher)
	s.runtime.worker = worker.New(s.config.workerConfig(), s.queue, resources, sched, plane, publisher)
	return nil
}

// Runtime returns the operational surface of the simulator.
func (s *Service) Runtime() *Runtime {
	return s.runtime
}
