package progress

import (
	"testing"

	"github.com/go-go-golems/evalctl/pkg/pipeline"
	"github.com/stretchr/testify/require"
)

func TestSimulator_AdvancesStagesInTurn(t *testing.T) {
	var events []pipeline.Event
	sim := &Simulator{Emit: func(ev pipeline.Event) { events = append(events, ev) }}

	for i := 0; i < 3; i++ {
		require.True(t, sim.Tick())
	}
	require.Len(t, events, 3)

	s := pipeline.New()
	var lastProgress float64
	for i, ev := range events {
		st, ok := ev.(pipeline.StageUpdate)
		require.True(t, ok)
		require.Equal(t, pipeline.PhaseStarted, st.Phase)
		require.NotNil(t, st.Stage.Index)
		require.Equal(t, i, *st.Stage.Index)
		require.NotNil(t, st.Progress)
		require.Greater(t, *st.Progress, lastProgress, "progress must strictly increase")
		require.LessOrEqual(t, *st.Progress, SimulatorCap)
		lastProgress = *st.Progress

		s = pipeline.Apply(s, ev)
		require.Equal(t, pipeline.StatusActive, s.Statuses[i])
		for j := 0; j < i; j++ {
			require.Equal(t, pipeline.StatusComplete, s.Statuses[j])
		}
	}
}

func TestSimulator_ProgressCappedBelowComplete(t *testing.T) {
	var last float64
	sim := &Simulator{Step: 30, Emit: func(ev pipeline.Event) {
		last = *ev.(pipeline.StageUpdate).Progress
	}}

	for i := 0; i < 20; i++ {
		sim.Tick()
	}
	require.Equal(t, SimulatorCap, last)
}

func TestSimulator_StaysOnLastStage(t *testing.T) {
	var lastOrdinal int
	sim := &Simulator{Emit: func(ev pipeline.Event) {
		lastOrdinal = *ev.(pipeline.StageUpdate).Stage.Index
	}}

	for i := 0; i < 20; i++ {
		sim.Tick()
	}
	s := pipeline.New()
	require.Equal(t, len(s.Statuses)-1, lastOrdinal)
}

func TestSimulator_NoEmitAfterStop(t *testing.T) {
	emitted := 0
	sim := &Simulator{Emit: func(pipeline.Event) { emitted++ }}

	require.True(t, sim.Tick())
	sim.Stop()
	require.False(t, sim.Tick())
	require.False(t, sim.Tick())
	require.Equal(t, 1, emitted)

	// Stop is idempotent.
	sim.Stop()
	require.False(t, sim.Tick())
}
