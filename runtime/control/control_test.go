package control

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPlaneRunningToggle(t *testing.T) {
	plane := New()
	assert.False(t, plane.Running())

	plane.SetRunning(true)
	assert.True(t, plane.Running())

	// Idempotent in both directions.
	plane.SetRunning(true)
	assert.True(t, plane.Running())
	plane.SetRunning(false)
	assert.False(t, plane.Running())
}

func TestPlaneStopLatch(t *testing.T) {
	plane := New()
	assert.False(t, plane.Stopping())

	select {
	case <-plane.Done():
		t.Fatal("Done must not be closed before RequestStop")
	default:
	}

	plane.RequestStop()
	assert.True(t, plane.Stopping())

	select {
	case <-plane.Done():
	case <-time.After(time.Second):
		t.Fatal("Done was not closed by RequestStop")
	}

	// The latch is one-way and idempotent.
	plane.RequestStop()
	assert.True(t, plane.Stopping())
}
