package event

import (
	"context"
	"errors"
)

// Listener drains a publisher's queue and hands every event to a handler on
// a dedicated goroutine.
type Listener[T any] struct {
	publisher *Publisher[T]
	handler   func(*Event[T])
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewListener creates a listener bound to the publisher.
func NewListener[T any](publisher *Publisher[T], handler func(*Event[T])) *Listener[T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &Listener[T]{
		publisher: publisher,
		handler:   handler,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
}

// Start begins consuming events until Stop is called or the queue shuts down.
func (l *Listener[T]) Start() {
	go func() {
		defer close(l.done)
		for {
			event, err := l.publisher.Consume(l.ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				continue
			}
			if event == nil {
				return
			}
			l.handler(event)
		}
	}()
}

// Stop cancels the listener and waits for the consuming goroutine to exit.
func (l *Listener[T]) Stop() {
	l.cancel()
	<-l.done
}
