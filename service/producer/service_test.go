package producer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Imanue001/Os-simulator/internal/randx"
	"github.com/Imanue001/Os-simulator/model"
	"github.com/Imanue001/Os-simulator/runtime/control"
	"github.com/Imanue001/Os-simulator/service/messaging/memory"
)

func testConfig() Config {
	return Config{
		Interval:  5 * time.Millisecond,
		IdlePoll:  5 * time.Millisecond,
		BurstMin:  2,
		BurstMax:  6,
		DemandMin: 1,
		DemandMax: 2,
		Classes:   3,
	}
}

func TestProducerSynthesizesBoundedRecords(t *testing.T) {
	randx.Seed(42)
	queue := memory.NewQueue[model.Process](memory.Config{Capacity: 32})
	plane := control.New()
	plane.SetRunning(true)

	svc := New(testConfig(), queue, plane, nil)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = svc.Start(context.Background())
	}()

	time.Sleep(60 * time.Millisecond)
	plane.RequestStop()
	queue.Shutdown()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("producer loop did not terminate after stop")
	}

	require.Greater(t, svc.Produced(), 0)

	// Records come out with monotonically increasing IDs and bounded
	// burst/demand values.
	ctx := context.Background()
	lastID := 0
	for {
		msg, err := queue.Consume(ctx)
		require.NoError(t, err)
		if msg == nil {
			break
		}
		p := msg.T()
		assert.Equal(t, lastID+1, p.ID)
		lastID = p.ID
		assert.GreaterOrEqual(t, p.BurstTime, 2)
		assert.LessOrEqual(t, p.BurstTime, 6)
		assert.Equal(t, p.BurstTime, p.RemainingTime)
		require.Len(t, p.Demand, 3)
		for _, demand := range p.Demand {
			assert.GreaterOrEqual(t, demand, 1)
			assert.LessOrEqual(t, demand, 2)
		}
	}
	assert.Greater(t, lastID, 0)
}

func TestProducerPausedProducesNothing(t *testing.T) {
	queue := memory.NewQueue[model.Process](memory.Config{Capacity: 8})
	plane := control.New()

	svc := New(testConfig(), queue, plane, nil)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = svc.Start(context.Background())
	}()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, svc.Produced())
	assert.Equal(t, 0, queue.Size())

	plane.RequestStop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("paused producer did not observe stop")
	}
}

func TestProducerStopsWhileBlockedOnBackpressure(t *testing.T) {
	// Capacity 1 with no consumer forces the producer to stall in Publish.
	queue := memory.NewQueue[model.Process](memory.Config{Capacity: 1})
	plane := control.New()
	plane.SetRunning(true)

	svc := New(testConfig(), queue, plane, nil)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = svc.Start(context.Background())
	}()

	time.Sleep(30 * time.Millisecond)
	plane.RequestStop()
	queue.Shutdown()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("producer blocked on a full queue did not observe shutdown")
	}
}
