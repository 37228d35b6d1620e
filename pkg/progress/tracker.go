package progress

import (
	"context"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/evalctl/pkg/pipeline"
	"github.com/go-go-golems/evalctl/pkg/tui"
)

// TrackerOptions configure progress tracking for one submission.
type TrackerOptions struct {
	// Live enables the websocket channel at ProgressURL. When disabled,
	// or when the dial fails, the simulator drives the display instead.
	Live        bool
	ProgressURL string

	Interval time.Duration
	Step     float64

	Pub message.Publisher
}

// Tracker owns the progress driver for a single job. Exactly one source
// (live channel or simulator) feeds the bus at any moment; allowing both
// would interleave stage writes and break the monotonic progress display.
type Tracker struct {
	opts TrackerOptions

	mu      sync.Mutex
	started bool
	live    *LiveChannel
	sim     *Simulator
}

func NewTracker(opts TrackerOptions) *Tracker {
	return &Tracker{opts: opts}
}

// Start selects and launches the driver. Called once per job.
func (t *Tracker) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.opts.Pub == nil {
		return errors.New("missing publisher")
	}
	if t.started {
		return errors.New("tracker already started")
	}
	t.started = true

	if t.opts.Live && t.opts.ProgressURL != "" {
		ch, err := OpenLiveChannel(ctx, t.opts.ProgressURL, t.publish)
		if err == nil {
			t.live = ch
			return nil
		}
		log.Warn().Err(err).Msg("live progress channel unavailable, falling back to simulator")
	}

	t.sim = &Simulator{
		Interval: t.opts.Interval,
		Step:     t.opts.Step,
		Emit:     t.publish,
	}
	go t.sim.Run(ctx)
	return nil
}

// Finish stops the driver and publishes the terminal event. The driver is
// stopped first so no tick or push can land after the terminal state.
func (t *Tracker) Finish(ev pipeline.Event) {
	t.Stop()
	t.publish(ev)
}

// Stop tears down whichever driver is active. Idempotent; runs on every
// exit path including cancellation.
func (t *Tracker) Stop() {
	t.mu.Lock()
	live, sim := t.live, t.sim
	t.mu.Unlock()

	if sim != nil {
		sim.Stop()
	}
	if live != nil {
		// Wait for the read loop so no in-flight event lands after a
		// terminal publish.
		live.Close()
		<-live.Done()
	}
}

func (t *Tracker) publish(ev pipeline.Event) {
	if err := tui.PublishProgressEvent(t.opts.Pub, ev); err != nil {
		log.Warn().Err(err).Msg("publish progress event")
	}
}
