package ossim

import (
	"context"
	"sync"

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

// Runtime is the operational surface consumed by the menu/control layer.
// All methods are safe for concurrent use.
type Runtime struct {
	plane      *control.Plane
	queue      messaging.Queue[model.Process]
	eventQueue *mmemory.Queue[event.Event[model.Process]]
	resources  *resource.Service
	scheduler  *scheduler.Service
	producer   *producer.Service
	worker     *worker.Service
	listener   *event.Listener[model.Process]

	wg        sync.WaitGroup
	startOnce sync.Once
}

// shutdowner is implemented by queues that support cooperative shutdown.
type shutdowner interface {
	Shutdown()
}

// Start launches the producer and worker loops. The simulation begins in the
// paused state; call SetRunning(true) to start producing work.
func (r *Runtime) Start(ctx context.Context) error {
	r.startOnce.Do(func() {
		r.wg.Add(2)
		go func() {
			defer r.wg.Done()
			_ = r.producer.Start(ctx)
		}()
		go func() {
			defer r.wg.Done()
			_ = r.worker.Start(ctx)
		}()
	})
	return nil
}

// SetRunning toggles whether both loops perform work. Idempotent.
func (r *Runtime) SetRunning(running bool) {
	r.plane.SetRunning(running)
}

// Running reports the current run/pause state.
func (r *Runtime) Running() bool {
	return r.plane.Running()
}

// RequestStop latches the stop flag and wakes any operation blocked on the
// bounded queue. Idempotent; callers must still Shutdown (or otherwise join
// the loops) before exiting.
func (r *Runtime) RequestStop() {
	r.plane.RequestStop()
	if q, ok := r.queue.(shutdowner); ok {
		q.Shutdown()
	}
}

// Shutdown requests a stop and waits for both loops to terminate or the
// context to expire. In-flight records in the queue or ready queue are
// abandoned, not flushed.
func (r *Runtime) Shutdown(ctx context.Context) error {
	r.RequestStop()
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	if r.eventQueue != nil {
		r.eventQueue.Shutdown()
	}
	if r.listener != nil {
		r.listener.Stop()
	}
	return nil
}

// SnapshotResources returns a consistent copy of the available units per
// resource class.
func (r *Runtime) SnapshotResources() []int {
	return r.resources.Snapshot()
}

// ReadyCount returns the current length of the scheduler's ready queue.
func (r *Runtime) ReadyCount() int {
	return r.scheduler.ReadyCount()
}

// Timeline returns the execution timeline in dispatch order. Rendering is up
// to the caller.
func (r *Runtime) Timeline() []scheduler.Slice {
	return r.scheduler.Timeline()
}

// ElapsedTime returns the total simulated CPU time consumed so far.
func (r *Runtime) ElapsedTime() int {
	return r.scheduler.ElapsedTime()
}

// Produced returns how many processes the producer has created.
func (r *Runtime) Produced() int {
	return r.producer.Produced()
}

// Completed returns how many processes finished and released resources.
func (r *Runtime) Completed() int {
	return r.worker.Completed()
}
