package pipeline

import (
	"github.com/go-go-golems/evalctl/pkg/catalog"
)

// StageStatus is the tracked status of one catalog stage.
type StageStatus string

const (
	StatusPending  StageStatus = "pending"
	StatusActive   StageStatus = "active"
	StatusComplete StageStatus = "complete"
)

const (
	// PreparingMessage is shown before the first stage update arrives.
	PreparingMessage = "Preparing evaluation..."
	// CompletedMessage is shown once the backend confirms completion.
	CompletedMessage = "Evaluation complete"
)

// State is the progress of one evaluation job. Statuses always has one
// entry per catalog stage, indexed by ordinal. Values are immutable:
// Apply returns a new State and never mutates its input.
type State struct {
	Statuses []StageStatus
	Progress float64
	Message  string
	Errored  bool
}

// New returns the initial state: every stage pending, progress zero.
func New() State {
	statuses := make([]StageStatus, catalog.Count())
	for i := range statuses {
		statuses[i] = StatusPending
	}
	return State{
		Statuses: statuses,
		Progress: 0,
		Message:  PreparingMessage,
	}
}

// Terminal reports whether the state reflects a finished job.
func (s State) Terminal() bool {
	if s.Errored {
		return true
	}
	for _, st := range s.Statuses {
		if st != StatusComplete {
			return false
		}
	}
	return len(s.Statuses) > 0
}

func (s State) clone() State {
	out := s
	out.Statuses = append([]StageStatus{}, s.Statuses...)
	return out
}

// Apply reduces an event into the next state. It is a pure function: all
// side effects (channel teardown, timer shutdown) belong to the caller.
// Events it cannot make sense of leave the state unchanged; a malformed
// push must never corrupt the progress display.
func Apply(s State, ev Event) State {
	if len(s.Statuses) != catalog.Count() {
		s = New()
	}

	switch e := ev.(type) {
	case Connected:
		return New()

	case StageUpdate:
		return applyStage(s, e)

	case Completed:
		next := s.clone()
		for i := range next.Statuses {
			next.Statuses[i] = StatusComplete
		}
		next.Progress = 100
		if e.Progress != nil {
			next.Progress = clampProgress(*e.Progress)
		}
		next.Message = CompletedMessage
		next.Errored = false
		return next

	case Failed:
		next := s.clone()
		next.Errored = true
		next.Message = e.Message
		return next
	}

	return s
}

func applyStage(s State, e StageUpdate) State {
	n := len(s.Statuses)

	switch e.Phase {
	case PhaseQueued:
		// The job went back into the queue; this is the one stage event
		// allowed to regress completed stages and progress.
		next := s.clone()
		for i := range next.Statuses {
			next.Statuses[i] = StatusPending
		}
		if e.Progress != nil {
			next.Progress = clampProgress(*e.Progress)
		}
		if e.Message != "" {
			next.Message = e.Message
		}
		return next

	case PhaseStarted:
		ord, ok := e.Stage.resolve()
		if !ok {
			return s
		}
		i := clampIndex(ord, n)
		next := s.clone()
		for j := 0; j < i; j++ {
			next.Statuses[j] = StatusComplete
		}
		if next.Statuses[i] != StatusComplete {
			next.Statuses[i] = StatusActive
		}
		for j := i + 1; j < n; j++ {
			if next.Statuses[j] != StatusComplete {
				next.Statuses[j] = StatusPending
			}
		}
		next.Progress = raiseProgress(s.Progress, e.Progress)
		if e.Message != "" {
			next.Message = e.Message
		}
		next.Errored = false
		return next

	case PhaseCompleted:
		ord, ok := e.Stage.resolve()
		if !ok || ord < 0 || ord >= n {
			return s
		}
		next := s.clone()
		next.Statuses[ord] = StatusComplete
		next.Progress = raiseProgress(s.Progress, e.Progress)
		if e.Message != "" {
			next.Message = e.Message
		}
		return next
	}

	return s
}

// raiseProgress keeps progress monotone for non-reset events: a stale or
// conservative value from one producer never walks the bar backwards.
func raiseProgress(current float64, incoming *float64) float64 {
	if incoming == nil {
		return current
	}
	p := clampProgress(*incoming)
	if p < current {
		return current
	}
	return p
}

func clampProgress(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
