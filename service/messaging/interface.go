package messaging

import (
	"context"
	"errors"
)

// ErrShutdown is returned by Publish once a queue has been shut down.
var ErrShutdown = errors.New("queue is shut down")

// Queue represents an abstract bounded message queue for any payload type.
type Queue[T any] interface {
	// Publish adds a new message with payload to the queue, blocking while
	// the queue is at capacity.
	Publish(ctx context.Context, t *T) error

	// Consume retrieves a single message from the queue, blocking until one
	// is available. A nil message with a nil error signals that the queue
	// was shut down and fully drained.
	Consume(ctx context.Context) (Message[T], error)
}

// Message represents a message retrieved from a queue.
type Message[T any] interface {
	// T returns the payload of this message
	T() *T

	// Ack acknowledges successful processing of this message
	Ack() error

	// Nack indicates failure in processing this message; the queue requeues
	// the payload after its configured retry delay.
	Nack(err error) error
}
