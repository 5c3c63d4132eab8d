package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Imanue001/Os-simulator/model"
	"github.com/Imanue001/Os-simulator/runtime/control"
	"github.com/Imanue001/Os-simulator/service/messaging/memory"
	"github.com/Imanue001/Os-simulator/service/resource"
	"github.com/Imanue001/Os-simulator/service/scheduler"
)

type fixture struct {
	queue     *memory.Queue[model.Process]
	resources *resource.Service
	scheduler *scheduler.Service
	plane     *control.Plane
	service   *Service
	done      chan struct{}
}

func newFixture(t *testing.T, totals []int, quantum int, retryDelay time.Duration) *fixture {
	t.Helper()
	resources, err := resource.New(totals)
	require.NoError(t, err)
	sched, err := scheduler.New(quantum)
	require.NoError(t, err)

	f := &fixture{
		queue:     memory.NewQueue[model.Process](memory.Config{Capacity: 8, RetryDelay: retryDelay}),
		resources: resources,
		scheduler: sched,
		plane:     control.New(),
		done:      make(chan struct{}),
	}
	f.plane.SetRunning(true)
	f.service = New(Config{IdlePoll: 5 * time.Millisecond}, f.queue, resources, sched, f.plane, nil)
	return f
}

func (f *fixture) start() {
	go func() {
		defer close(f.done)
		_ = f.service.Start(context.Background())
	}()
}

func (f *fixture) stop(t *testing.T) {
	t.Helper()
	f.plane.RequestStop()
	f.queue.Shutdown()
	select {
	case <-f.done:
	case <-time.After(time.Second):
		t.Fatal("worker loop did not terminate after stop")
	}
}

func TestWorkerCompletesAcrossCycles(t *testing.T) {
	f := newFixture(t, []int{5, 5}, 2, 10*time.Millisecond)
	ctx := context.Background()

	// p1 needs two slices; the second one is driven by p2's admit cycle.
	require.NoError(t, f.queue.Publish(ctx, model.NewProcess(1, 4, []int{1, 1})))
	require.NoError(t, f.queue.Publish(ctx, model.NewProcess(2, 2, []int{1, 1})))

	f.start()
	time.Sleep(100 * time.Millisecond)
	f.stop(t)

	assert.Equal(t, 1, f.service.Completed())
	// p2 remains admitted but preempted in the ready queue.
	assert.Equal(t, 1, f.scheduler.ReadyCount())
	assert.Equal(t, []int{4, 4}, f.resources.Snapshot())
	assert.Equal(t,
		[]scheduler.Slice{{PID: 1, Length: 2}, {PID: 1, Length: 2}},
		f.scheduler.Timeline())
}

func TestWorkerReleasesOnImmediateCompletion(t *testing.T) {
	f := newFixture(t, []int{5}, 4, 10*time.Millisecond)
	ctx := context.Background()

	// Burst fits in a single quantum: admit, dispatch, release in one cycle.
	require.NoError(t, f.queue.Publish(ctx, model.NewProcess(1, 3, []int{2})))

	f.start()
	time.Sleep(60 * time.Millisecond)
	f.stop(t)

	assert.Equal(t, 1, f.service.Completed())
	assert.Equal(t, 0, f.scheduler.ReadyCount())
	assert.Equal(t, []int{5}, f.resources.Snapshot())
}

func TestWorkerRequeuesRejectedProcess(t *testing.T) {
	f := newFixture(t, []int{1}, 2, 15*time.Millisecond)
	ctx := context.Background()

	// Demand can never fit; the record cycles between queue and nack-requeue
	// without ever reaching the scheduler or mutating resources.
	require.NoError(t, f.queue.Publish(ctx, model.NewProcess(1, 2, []int{2})))

	f.start()
	time.Sleep(80 * time.Millisecond)
	f.stop(t)

	assert.Equal(t, 0, f.service.Completed())
	assert.Equal(t, 0, f.scheduler.ReadyCount())
	assert.Empty(t, f.scheduler.Timeline())
	assert.Equal(t, []int{1}, f.resources.Snapshot())
}

func TestWorkerPausedConsumesNothing(t *testing.T) {
	f := newFixture(t, []int{5}, 2, 10*time.Millisecond)
	f.plane.SetRunning(false)
	ctx := context.Background()

	require.NoError(t, f.queue.Publish(ctx, model.NewProcess(1, 2, []int{1})))

	f.start()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, f.queue.Size())
	assert.Equal(t, 0, f.service.Completed())

	f.stop(t)
}
