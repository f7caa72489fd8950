package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/milk9111/skyscape/ecs/component"
)

func TestSimulateShowcase(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	summary, err := Simulate(context.Background(), SimulateOptions{Tour: "showcase", Frames: 900, Seed: 1})
	require.NoError(t, err)

	assert.Equal(t, 900, summary.Frames)
	assert.Equal(t, 4, summary.Started)
	assert.Equal(t, 4, summary.Finished)
	assert.Zero(t, summary.Restarted)
	assert.Equal(t, component.BackgroundSky, summary.Final.To)
	assert.True(t, summary.Final.Done())
}

func TestSimulateFlickerStaysInRange(t *testing.T) {
	summary, err := Simulate(context.Background(), SimulateOptions{Tour: "flicker", Frames: 240, Seed: 2})
	require.NoError(t, err)

	assert.Greater(t, summary.Started, summary.Finished, "retargets outpace completions")
	assert.GreaterOrEqual(t, summary.Final.Progress, 0.0)
	assert.LessOrEqual(t, summary.Final.Progress, 1.0)
}

func TestSimulateRejectsBadInput(t *testing.T) {
	_, err := Simulate(context.Background(), SimulateOptions{Tour: "showcase"})
	assert.Error(t, err)

	_, err = Simulate(context.Background(), SimulateOptions{Tour: "no-such-tour", Frames: 1})
	assert.Error(t, err)
}

func TestSimulateStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Simulate(ctx, SimulateOptions{Tour: "showcase", Frames: 10})
	assert.ErrorIs(t, err, context.Canceled)
}
