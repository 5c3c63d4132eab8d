// Package memory provides a bounded in-memory messaging.Queue. Capacity is
// strict: publishers stall on a full queue rather than drop or grow the
// buffer, and consumers drain remaining items before observing shutdown.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Imanue001/Os-simulator/service/messaging"
)

// Config for the memory queue implementation.
type Config struct {
	// Capacity is the fixed number of in-flight messages; publishers block
	// once it is reached.
	Capacity int

	// MaxRetries bounds Nack requeues per message; zero or negative means
	// unlimited.
	MaxRetries int

	// RetryDelay is the time to wait before requeueing a nacked message.
	RetryDelay time.Duration

	// DeadLetter keeps messages that exhausted their retries.
	DeadLetter bool
}

// DefaultConfig returns a standard configuration for the memory queue.
func DefaultConfig() Config {
	return Config{
		Capacity:   10,
		MaxRetries: 0,
		RetryDelay: 500 * time.Millisecond,
		DeadLetter: false,
	}
}

// Message implements messaging.Message for the in-memory queue.
type Message[T any] struct {
	id         string
	payload    T
	queue      *Queue[T]
	retryCount int
	mu         sync.Mutex
	processed  bool
	createdAt  time.Time
}

// T returns the message payload.
func (m *Message[T]) T() *T {
	return &m.payload
}

// Ack acknowledges the message as processed successfully.
func (m *Message[T]) Ack() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return fmt.Errorf("message already processed")
	}
	m.processed = true
	return nil
}

// Nack indicates a failure in processing the message. Unless the retry limit
// is exhausted the payload is requeued after the configured delay; the
// requeue observes shutdown and gives up rather than block forever.
func (m *Message[T]) Nack(err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return fmt.Errorf("message already processed")
	}
	m.processed = true
	m.retryCount++

	limit := m.queue.config.MaxRetries
	if limit <= 0 || m.retryCount <= limit {
		go m.queue.requeue(m)
		return nil
	}
	if m.queue.config.DeadLetter {
		m.queue.dlqMu.Lock()
		m.queue.dlq = append(m.queue.dlq, m)
		m.queue.dlqMu.Unlock()
	}
	return nil
}

// Queue implements a bounded in-memory messaging.Queue.
type Queue[T any] struct {
	messages     chan *Message[T]
	dlq          []*Message[T]
	config       Config
	dlqMu        sync.Mutex
	shutdownOnce sync.Once
	shutdownCh   chan struct{}
}

// NewQueue creates a new bounded in-memory queue.
func NewQueue[T any](config Config) *Queue[T] {
	if config.Capacity <= 0 {
		config.Capacity = DefaultConfig().Capacity
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = DefaultConfig().RetryDelay
	}
	return &Queue[T]{
		messages:   make(chan *Message[T], config.Capacity),
		config:     config,
		shutdownCh: make(chan struct{}),
	}
}

// Publish adds a new item to the queue, blocking while the queue is full.
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	msg := &Message[T]{
		id:        uuid.New().String(),
		payload:   *t,
		queue:     q,
		createdAt: time.Now(),
	}
	return q.enqueue(ctx, msg)
}

func (q *Queue[T]) enqueue(ctx context.Context, msg *Message[T]) error {
	select {
	case <-q.shutdownCh:
		return messaging.ErrShutdown
	default:
	}
	select {
	case q.messages <- msg:
		return nil
	case <-q.shutdownCh:
		return messaging.ErrShutdown
	case <-ctx.Done():
		return ctx.Err()
	}
}

// requeue puts a nacked message back after the retry delay, carrying over
// its retry count.
func (q *Queue[T]) requeue(m *Message[T]) {
	select {
	case <-time.After(q.config.RetryDelay):
	case <-q.shutdownCh:
		return
	}
	next := &Message[T]{
		id:         m.id,
		payload:    m.payload,
		queue:      q,
		retryCount: m.retryCount,
		createdAt:  time.Now(),
	}
	_ = q.enqueue(context.Background(), next)
}

// Consume retrieves a single item, blocking until one is available. After
// shutdown every remaining item is still delivered in FIFO order; only once
// the queue is empty does Consume return (nil, nil).
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	select {
	case msg := <-q.messages:
		return msg, nil
	default:
	}
	select {
	case msg := <-q.messages:
		return msg, nil
	case <-q.shutdownCh:
		// Drain whatever raced in before the shutdown was observed.
		select {
		case msg := <-q.messages:
			return msg, nil
		default:
			return nil, nil
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Shutdown latches the queue closed; it wakes blocked publishers and, once
// drained, blocked consumers. Idempotent.
func (q *Queue[T]) Shutdown() {
	q.shutdownOnce.Do(func() {
		close(q.shutdownCh)
	})
}

// Size returns the current number of messages in the queue.
func (q *Queue[T]) Size() int {
	return len(q.messages)
}

// DLQSize returns the number of messages in the dead letter queue.
func (q *Queue[T]) DLQSize() int {
	q.dlqMu.Lock()
	defer q.dlqMu.Unlock()
	return len(q.dlq)
}

// ensure Queue implements messaging.Queue interface
var _ messaging.Queue[any] = (*Queue[any])(nil)
