package ossim

import (
	"github.com/Imanue001/Os-simulator/model"
	"github.com/Imanue001/Os-simulator/service/event"
	"github.com/Imanue001/Os-simulator/service/messaging"
	"github.com/Imanue001/Os-simulator/tracing"
)

// Option customises the simulator service.
type Option func(s *Service)

// WithConfig sets the full configuration; callers usually start from
// DefaultConfig and adjust.
func WithConfig(config *Config) Option {
	return func(s *Service) { s.config = config }
}

// WithQueue replaces the bounded process queue.
func WithQueue(queue messaging.Queue[model.Process]) Option {
	return func(s *Service) { s.queue = queue }
}

// WithEventListener subscribes a handler to simulation lifecycle events.
func WithEventListener(handler func(*event.Event[model.Process])) Option {
	return func(s *Service) { s.eventHandler = handler }
}

// WithTracing configures OpenTelemetry tracing for the service. If
// outputFile is empty the spans are written to stdout.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}
