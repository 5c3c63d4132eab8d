// Package event carries simulation lifecycle notifications from the core
// loops to whoever renders them. The core never formats console output; it
// only publishes events.
package event

import "time"

// Lifecycle event types published by the simulator loops.
const (
	TypeCreated   = "process.created"
	TypeAdmitted  = "process.admitted"
	TypeRejected  = "process.rejected"
	TypeCompleted = "process.completed"
)

// Context identifies what an event is about.
type Context struct {
	PID       int    `json:"pid"`
	EventType string `json:"eventType"`
	Stage     string `json:"stage"`
}

// Event pairs a context with an arbitrary payload snapshot.
type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata"`
	Data      T                      `json:"data"`
}

// NewEvent creates an event for the given context and payload.
func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: time.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}
