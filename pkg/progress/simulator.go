package progress

import (
	"context"
	"sync"
	"time"

	"github.com/go-go-golems/evalctl/pkg/catalog"
	"github.com/go-go-golems/evalctl/pkg/pipeline"
)

const (
	DefaultSimulatorInterval = 1500 * time.Millisecond
	DefaultSimulatorStep     = 12.0

	// SimulatorCap is the highest progress the simulator reports. The
	// final stretch and the terminal complete event only come from the
	// real submission response, so the bar never claims completion the
	// server has not confirmed.
	SimulatorCap = 95.0
)

// Simulator drives the progress display on a fixed timer when no live
// channel is consulted. Each tick advances to the next stage ordinal with
// a synthetic started event and bumps progress by Step, capped at
// SimulatorCap. It never emits a terminal event.
type Simulator struct {
	Interval time.Duration
	Step     float64
	Emit     func(pipeline.Event)

	mu       sync.Mutex
	stopped  bool
	next     int
	progress float64
}

// Run ticks until the context is canceled or Stop is called.
func (s *Simulator) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultSimulatorInterval
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if !s.Tick() {
				return
			}
		}
	}
}

// Tick advances the simulation by one step and emits the synthetic event.
// It returns false once the simulator has been stopped. Emission happens
// under the lock, so no tick can fire after Stop returns.
func (s *Simulator) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return false
	}

	step := s.Step
	if step <= 0 {
		step = DefaultSimulatorStep
	}

	ordinal := s.next
	if max := catalog.Count() - 1; ordinal > max {
		ordinal = max
	}
	s.next++

	s.progress += step
	if s.progress > SimulatorCap {
		s.progress = SimulatorCap
	}

	if s.Emit != nil {
		p := s.progress
		s.Emit(pipeline.StageUpdate{
			Stage:    pipeline.RefIndex(ordinal),
			Phase:    pipeline.PhaseStarted,
			Progress: &p,
		})
	}
	return true
}

// Stop halts the simulator. Idempotent; safe to call from any goroutine.
func (s *Simulator) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
}
