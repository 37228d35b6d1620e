package pipeline

import (
	"testing"

	"github.com/go-go-golems/evalctl/pkg/catalog"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestNew_AllPending(t *testing.T) {
	s := New()
	require.Len(t, s.Statuses, catalog.Count())
	for _, st := range s.Statuses {
		require.Equal(t, StatusPending, st)
	}
	require.Zero(t, s.Progress)
	require.Equal(t, PreparingMessage, s.Message)
	require.False(t, s.Errored)
	require.False(t, s.Terminal())
}

func TestApply_StartedCompletedSequence(t *testing.T) {
	s := New()
	s = Apply(s, Connected{})
	s = Apply(s, StageUpdate{Stage: RefIndex(0), Phase: PhaseStarted})
	s = Apply(s, StageUpdate{Stage: RefIndex(0), Phase: PhaseCompleted})
	s = Apply(s, StageUpdate{Stage: RefIndex(1), Phase: PhaseStarted, Progress: floatPtr(40)})

	require.Equal(t, StatusComplete, s.Statuses[0])
	require.Equal(t, StatusActive, s.Statuses[1])
	for i := 2; i < catalog.Count(); i++ {
		require.Equal(t, StatusPending, s.Statuses[i])
	}
	require.Equal(t, 40.0, s.Progress)
}

func TestApply_ErrorOnFreshState(t *testing.T) {
	s := Apply(New(), Failed{Message: "pipeline crashed"})

	for _, st := range s.Statuses {
		require.Equal(t, StatusPending, st)
	}
	require.True(t, s.Errored)
	require.Equal(t, "pipeline crashed", s.Message)
	require.True(t, s.Terminal())
}

func TestApply_CompleteDefaultsProgress(t *testing.T) {
	s := New()
	s = Apply(s, StageUpdate{Stage: RefIndex(2), Phase: PhaseStarted, Progress: floatPtr(30)})
	s = Apply(s, Completed{})

	for _, st := range s.Statuses {
		require.Equal(t, StatusComplete, st)
	}
	require.Equal(t, 100.0, s.Progress)
	require.Equal(t, CompletedMessage, s.Message)
	require.False(t, s.Errored)
	require.True(t, s.Terminal())
}

func TestApply_CompleteKeepsIncomingProgress(t *testing.T) {
	s := Apply(New(), Completed{Progress: floatPtr(97)})
	require.Equal(t, 97.0, s.Progress)
}

func TestApply_StatusesLengthInvariant(t *testing.T) {
	events := []Event{
		Connected{},
		StageUpdate{Stage: RefIndex(3), Phase: PhaseStarted},
		StageUpdate{Stage: RefIndex(-5), Phase: PhaseStarted},
		StageUpdate{Stage: RefIndex(999), Phase: PhaseStarted},
		StageUpdate{Stage: RefKey("budget"), Phase: PhaseCompleted},
		StageUpdate{Stage: RefKey("bogus"), Phase: PhaseStarted},
		StageUpdate{Stage: RefIndex(0), Phase: PhaseQueued},
		Completed{Progress: floatPtr(250)},
		Failed{Message: "x"},
	}

	s := New()
	for _, ev := range events {
		s = Apply(s, ev)
		require.Len(t, s.Statuses, catalog.Count())
		require.GreaterOrEqual(t, s.Progress, 0.0)
		require.LessOrEqual(t, s.Progress, 100.0)
	}
}

func TestApply_CompleteNeverRegresses(t *testing.T) {
	s := New()
	s = Apply(s, StageUpdate{Stage: RefIndex(0), Phase: PhaseStarted})
	s = Apply(s, StageUpdate{Stage: RefIndex(0), Phase: PhaseCompleted})
	s = Apply(s, StageUpdate{Stage: RefIndex(2), Phase: PhaseCompleted})

	// A late started event for an earlier stage must not flip stage 2 back.
	s = Apply(s, StageUpdate{Stage: RefIndex(1), Phase: PhaseStarted})
	require.Equal(t, StatusComplete, s.Statuses[0])
	require.Equal(t, StatusActive, s.Statuses[1])
	require.Equal(t, StatusComplete, s.Statuses[2])

	// A duplicate started for a completed stage keeps it complete.
	s = Apply(s, StageUpdate{Stage: RefIndex(2), Phase: PhaseStarted})
	require.Equal(t, StatusComplete, s.Statuses[2])
}

func TestApply_QueuedResetsStatuses(t *testing.T) {
	s := New()
	s = Apply(s, StageUpdate{Stage: RefIndex(4), Phase: PhaseStarted, Progress: floatPtr(55), Message: "scoring"})
	s = Apply(s, StageUpdate{Stage: RefIndex(0), Phase: PhaseQueued})

	for _, st := range s.Statuses {
		require.Equal(t, StatusPending, st)
	}
	// Progress and message survive unless the event carries replacements.
	require.Equal(t, 55.0, s.Progress)
	require.Equal(t, "scoring", s.Message)

	s = Apply(s, StageUpdate{Stage: RefIndex(0), Phase: PhaseQueued, Progress: floatPtr(0), Message: "requeued"})
	require.Equal(t, 0.0, s.Progress)
	require.Equal(t, "requeued", s.Message)
}

func TestApply_CompletedIdempotent(t *testing.T) {
	s := New()
	s = Apply(s, StageUpdate{Stage: RefIndex(1), Phase: PhaseStarted})

	once := Apply(s, StageUpdate{Stage: RefIndex(1), Phase: PhaseCompleted, Progress: floatPtr(25)})
	twice := Apply(once, StageUpdate{Stage: RefIndex(1), Phase: PhaseCompleted, Progress: floatPtr(25)})
	require.Equal(t, once, twice)
}

func TestApply_ProgressMonotone(t *testing.T) {
	s := New()
	s = Apply(s, StageUpdate{Stage: RefIndex(3), Phase: PhaseStarted, Progress: floatPtr(60)})
	s = Apply(s, StageUpdate{Stage: RefIndex(4), Phase: PhaseStarted, Progress: floatPtr(45)})
	require.Equal(t, 60.0, s.Progress)

	s = Apply(s, StageUpdate{Stage: RefIndex(4), Phase: PhaseStarted, Progress: floatPtr(72)})
	require.Equal(t, 72.0, s.Progress)
}

func TestApply_StartedClampsIndex(t *testing.T) {
	s := Apply(New(), StageUpdate{Stage: RefIndex(999), Phase: PhaseStarted})
	last := catalog.Count() - 1
	for i := 0; i < last; i++ {
		require.Equal(t, StatusComplete, s.Statuses[i])
	}
	require.Equal(t, StatusActive, s.Statuses[last])

	s = Apply(New(), StageUpdate{Stage: RefIndex(-3), Phase: PhaseStarted})
	require.Equal(t, StatusActive, s.Statuses[0])
}

func TestApply_UnresolvableRefIgnored(t *testing.T) {
	s := New()
	s = Apply(s, StageUpdate{Stage: RefIndex(2), Phase: PhaseStarted})

	before := s
	s = Apply(s, StageUpdate{Stage: RefKey("nonsense"), Phase: PhaseStarted})
	require.Equal(t, before, s)

	s = Apply(s, StageUpdate{Stage: StageRef{}, Phase: PhaseCompleted})
	require.Equal(t, before, s)

	s = Apply(s, StageUpdate{Stage: RefIndex(99), Phase: PhaseCompleted})
	require.Equal(t, before, s)
}

func TestApply_ConnectedResets(t *testing.T) {
	s := New()
	s = Apply(s, StageUpdate{Stage: RefIndex(5), Phase: PhaseStarted, Progress: floatPtr(80)})
	s = Apply(s, Failed{Message: "boom"})
	s = Apply(s, Connected{})
	require.Equal(t, New(), s)
}

func TestApply_ErrorLeavesStatuses(t *testing.T) {
	s := New()
	s = Apply(s, StageUpdate{Stage: RefIndex(1), Phase: PhaseStarted})
	s = Apply(s, Failed{Message: "scoring agent crashed"})

	require.Equal(t, StatusComplete, s.Statuses[0])
	require.Equal(t, StatusActive, s.Statuses[1])
	require.True(t, s.Errored)

	// A started event after an error clears the error condition.
	s = Apply(s, StageUpdate{Stage: RefIndex(1), Phase: PhaseStarted})
	require.False(t, s.Errored)
}

func TestApply_KeyRefs(t *testing.T) {
	s := New()
	s = Apply(s, StageUpdate{Stage: RefKey("domain"), Phase: PhaseStarted})
	ord, ok := catalog.OrdinalOf("domain")
	require.True(t, ok)
	require.Equal(t, StatusActive, s.Statuses[ord])
	for i := 0; i < ord; i++ {
		require.Equal(t, StatusComplete, s.Statuses[i])
	}
}
