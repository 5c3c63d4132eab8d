package ossim

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Imanue001/Os-simulator/model"
	"github.com/Imanue001/Os-simulator/service/event"
)

func fastConfig() *Config {
	cfg := DefaultConfig()
	cfg.Buffer = BufferConfig{Capacity: 4, RetryDelayMs: 10}
	cfg.Resources = ResourcesConfig{Totals: []int{5, 5}}
	cfg.Scheduler = SchedulerConfig{Quantum: 2}
	cfg.Producer = ProducerConfig{
		IntervalMs: 5,
		IdlePollMs: 5,
		BurstMin:   2,
		BurstMax:   4,
		DemandMin:  1,
		DemandMax:  1,
	}
	cfg.Worker = WorkerConfig{IdlePollMs: 5}
	return cfg
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "zero capacity", mutate: func(c *Config) { c.Buffer.Capacity = 0 }},
		{name: "no resource classes", mutate: func(c *Config) { c.Resources.Totals = nil }},
		{name: "negative total", mutate: func(c *Config) { c.Resources.Totals = []int{5, -2} }},
		{name: "zero quantum", mutate: func(c *Config) { c.Scheduler.Quantum = 0 }},
		{name: "inverted burst range", mutate: func(c *Config) { c.Producer.BurstMin = 5; c.Producer.BurstMax = 2 }},
		{name: "negative demand", mutate: func(c *Config) { c.Producer.DemandMin = -1 }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := fastConfig()
			tc.mutate(cfg)
			_, err := New(WithConfig(cfg))
			assert.Error(t, err)
		})
	}
}

func TestSimulationEndToEnd(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	srv, err := New(
		WithConfig(fastConfig()),
		WithEventListener(func(e *event.Event[model.Process]) {
			mu.Lock()
			seen = append(seen, e.Context.EventType)
			mu.Unlock()
		}),
	)
	require.NoError(t, err)

	ctx := context.Background()
	rt := srv.Runtime()
	require.NoError(t, rt.Start(ctx))

	// Loops start paused and do nothing until told to run.
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 0, rt.Produced())

	rt.SetRunning(true)
	time.Sleep(250 * time.Millisecond)

	assert.Greater(t, rt.Produced(), 0)
	assert.Greater(t, rt.Completed(), 0)

	// The available vector never leaves its configured bounds.
	available := rt.SnapshotResources()
	require.Len(t, available, 2)
	for _, units := range available {
		assert.GreaterOrEqual(t, units, 0)
		assert.LessOrEqual(t, units, 5)
	}

	// Elapsed CPU time is exactly the sum of timeline slices.
	total := 0
	for _, slice := range rt.Timeline() {
		total += slice.Length
	}
	assert.Equal(t, total, rt.ElapsedTime())

	// Pause freezes production.
	rt.SetRunning(false)
	time.Sleep(30 * time.Millisecond)
	produced := rt.Produced()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, produced, rt.Produced())

	shutdownCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	require.NoError(t, rt.Shutdown(shutdownCtx))

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, seen, event.TypeCreated)
	assert.Contains(t, seen, event.TypeAdmitted)
}

func TestShutdownIsIdempotentAndPrompt(t *testing.T) {
	srv, err := New(WithConfig(fastConfig()))
	require.NoError(t, err)

	ctx := context.Background()
	rt := srv.Runtime()
	require.NoError(t, rt.Start(ctx))
	rt.SetRunning(true)
	time.Sleep(50 * time.Millisecond)

	rt.RequestStop()
	rt.RequestStop()

	shutdownCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	assert.NoError(t, rt.Shutdown(shutdownCtx))
}
