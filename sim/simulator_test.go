package sim

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNudger struct {
	mu    sync.Mutex
	calls int
	dLat  float64
	dLng  float64
}

func (r *recordingNudger) NudgeAllPositions(_ context.Context, dLat, dLng float64, _ time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.dLat = dLat
	r.dLng = dLng
	return 2, nil
}

func (r *recordingNudger) snapshot() (int, float64, float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls, r.dLat, r.dLng
}

type recordingMetrics struct {
	mu      sync.Mutex
	ticks   int
	tracked int64
}

func (m *recordingMetrics) SimTickInc() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ticks++
}

func (m *recordingMetrics) SetTrackedVehicles(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tracked = n
}

func TestSimulatorTicksWithFixedStep(t *testing.T) {
	nudger := &recordingNudger{}
	metrics := &recordingMetrics{}
	s := New(nudger, 10*time.Millisecond, metrics)

	s.Start(context.Background())
	require.Eventually(t, func() bool {
		calls, _, _ := nudger.snapshot()
		return calls >= 3
	}, 2*time.Second, 5*time.Millisecond)
	s.Stop()

	_, dLat, dLng := nudger.snapshot()
	assert.Equal(t, DefaultLatStep, dLat)
	assert.Equal(t, DefaultLngStep, dLng)

	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	assert.GreaterOrEqual(t, metrics.ticks, 3)
	assert.Equal(t, int64(2), metrics.tracked)
}

func TestSimulatorStopIsIdempotent(t *testing.T) {
	nudger := &recordingNudger{}
	s := New(nudger, 10*time.Millisecond, nil)

	s.Start(context.Background())
	s.Stop()
	s.Stop()

	calls, _, _ := nudger.snapshot()
	time.Sleep(30 * time.Millisecond)
	after, _, _ := nudger.snapshot()
	assert.Equal(t, calls, after)
}

func TestSimulatorStartTwiceRunsOneLoop(t *testing.T) {
	nudger := &recordingNudger{}
	s := New(nudger, time.Hour, nil)

	ctx := context.Background()
	s.Start(ctx)
	s.Start(ctx)
	s.Stop()
}

func TestSimulatorZeroIntervalUsesDefault(t *testing.T) {
	s := New(&recordingNudger{}, 0, nil)
	assert.Equal(t, DefaultInterval, s.interval)
}
