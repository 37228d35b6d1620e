package pipeline

import (
	"encoding/json"

	"github.com/go-go-golems/evalctl/pkg/catalog"
	"github.com/pkg/errors"
)

// Phase is the per-stage lifecycle reported by the backend.
type Phase string

const (
	PhaseQueued    Phase = "queued"
	PhaseStarted   Phase = "started"
	PhaseCompleted Phase = "completed"
)

// Event is a progress update for one evaluation job. Events come from the
// live channel or from the local simulator; both feed the same reducer.
type Event interface {
	isEvent()
}

// Connected signals that the progress channel was established. It resets
// the tracked state to its initial value.
type Connected struct{}

// StageUpdate reports a phase change for a single stage. The stage is
// referenced by ordinal or by catalog key, whichever the backend sent.
type StageUpdate struct {
	Stage    StageRef
	Phase    Phase
	Progress *float64
	Message  string
}

// Completed is the terminal success event.
type Completed struct {
	Progress *float64
}

// Failed is the terminal failure event.
type Failed struct {
	Message string
}

func (Connected) isEvent()   {}
func (StageUpdate) isEvent() {}
func (Completed) isEvent()   {}
func (Failed) isEvent()      {}

// StageRef addresses a stage either by ordinal or by key.
type StageRef struct {
	Index *int
	Key   string
}

// RefIndex returns a StageRef for an ordinal.
func RefIndex(i int) StageRef {
	return StageRef{Index: &i}
}

// RefKey returns a StageRef for a catalog key.
func RefKey(key string) StageRef {
	return StageRef{Key: key}
}

// resolve maps the reference to an ordinal. An explicit index is returned
// as-is (range handling is up to the caller); a key is looked up in the
// catalog.
func (r StageRef) resolve() (int, bool) {
	if r.Index != nil {
		return *r.Index, true
	}
	if r.Key != "" {
		return catalog.OrdinalOf(r.Key)
	}
	return 0, false
}

// wireEvent is the JSON shape pushed over the progress channel.
type wireEvent struct {
	Event      string   `json:"event"`
	StageIndex *int     `json:"stage_index,omitempty"`
	StageKey   string   `json:"stage_key,omitempty"`
	Status     string   `json:"status,omitempty"`
	Progress   *float64 `json:"progress,omitempty"`
	Message    string   `json:"message,omitempty"`
}

// MarshalEvent encodes an Event into the wire shape used on the progress
// channel, so locally synthesized events travel the same path as pushed
// ones.
func MarshalEvent(ev Event) ([]byte, error) {
	var w wireEvent
	switch e := ev.(type) {
	case Connected:
		w.Event = "connected"
	case StageUpdate:
		w.Event = "status"
		w.StageIndex = e.Stage.Index
		w.StageKey = e.Stage.Key
		w.Status = string(e.Phase)
		w.Progress = e.Progress
		w.Message = e.Message
	case Completed:
		w.Event = "complete"
		w.Progress = e.Progress
	case Failed:
		w.Event = "error"
		w.Message = e.Message
	default:
		return nil, errors.Errorf("unknown event type %T", ev)
	}
	b, err := json.Marshal(w)
	if err != nil {
		return nil, errors.Wrap(err, "encode progress event")
	}
	return b, nil
}

// ParseEvent decodes a channel payload into an Event. Malformed payloads
// (bad JSON, unknown discriminator, non-numeric progress, status update
// without a stage reference) return an error; callers log and drop them.
func ParseEvent(data []byte) (Event, error) {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, errors.Wrap(err, "decode progress payload")
	}

	switch w.Event {
	case "connected":
		return Connected{}, nil
	case "status":
		phase := Phase(w.Status)
		switch phase {
		case PhaseQueued, PhaseStarted, PhaseCompleted:
		default:
			return nil, errors.Errorf("unknown stage status %q", w.Status)
		}
		if w.StageIndex == nil && w.StageKey == "" {
			return nil, errors.New("status event without stage reference")
		}
		return StageUpdate{
			Stage:    StageRef{Index: w.StageIndex, Key: w.StageKey},
			Phase:    phase,
			Progress: w.Progress,
			Message:  w.Message,
		}, nil
	case "complete":
		return Completed{Progress: w.Progress}, nil
	case "error":
		msg := w.Message
		if msg == "" {
			msg = "evaluation failed"
		}
		return Failed{Message: msg}, nil
	default:
		return nil, errors.Errorf("unknown progress event %q", w.Event)
	}
}
