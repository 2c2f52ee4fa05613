package sim

import (
	"context"
	"log"
	"sync"
	"time"
)

// Default perturbation applied each tick, matching the demo feed the system
// was built against.
const (
	DefaultLatStep  = 0.0001
	DefaultLngStep  = 0.0001
	DefaultInterval = 5 * time.Second
)

// PositionNudger is the single storage operation the simulator needs.
type PositionNudger interface {
	NudgeAllPositions(ctx context.Context, dLat, dLng float64, at time.Time) (int64, error)
}

// Metrics is the subset of collector state the simulator reports into.
type Metrics interface {
	SimTickInc()
	SetTrackedVehicles(n int64)
}

// Simulator periodically advances every live position record by a small
// fixed offset to emulate fleet movement when no real driver feed exists.
// It must never run while drivers are reporting: it blindly moves every row
// and would clobber real positions. The serve command enforces that by
// rejecting driver reports while simulation is enabled.
type Simulator struct {
	store    PositionNudger
	interval time.Duration
	latStep  float64
	lngStep  float64
	metrics  Metrics

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a simulator. A zero interval falls back to DefaultInterval.
func New(store PositionNudger, interval time.Duration, m Metrics) *Simulator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Simulator{
		store:    store,
		interval: interval,
		latStep:  DefaultLatStep,
		lngStep:  DefaultLngStep,
		metrics:  m,
	}
}

// Start launches the tick loop. Calling Start on a running simulator is a
// no-op.
func (s *Simulator) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)

	log.Printf("simulator started: interval=%s step=(%g, %g)", s.interval, s.latStep, s.lngStep)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				s.tick(ctx, now)
			}
		}
	}()
}

func (s *Simulator) tick(ctx context.Context, now time.Time) {
	moved, err := s.store.NudgeAllPositions(ctx, s.latStep, s.lngStep, now)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("simulator tick error: %v", err)
		}
		return
	}
	if s.metrics != nil {
		s.metrics.SimTickInc()
		s.metrics.SetTrackedVehicles(moved)
	}
}

// Stop cancels the loop and waits for the in-flight tick to finish.
func (s *Simulator) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	s.wg.Wait()
	log.Printf("simulator stopped")
}
