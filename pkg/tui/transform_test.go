package tui

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/require"

	"github.com/go-go-golems/evalctl/pkg/pipeline"
)

func startBus(t *testing.T) (*Bus, <-chan *message.Message, context.CancelFunc) {
	t.Helper()

	bus, err := NewInMemoryBus()
	require.NoError(t, err)
	RegisterDomainToUITransformer(bus)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	uiMsgs, err := bus.Subscriber.Subscribe(ctx, TopicUIMessages)
	require.NoError(t, err)

	go func() {
		_ = bus.Run(ctx)
	}()
	select {
	case <-bus.Router.Running():
	case <-time.After(2 * time.Second):
		t.Fatal("router did not start")
	}
	return bus, uiMsgs, cancel
}

func recvEnvelope(t *testing.T, uiMsgs <-chan *message.Message) Envelope {
	t.Helper()
	select {
	case msg := <-uiMsgs:
		msg.Ack()
		var env Envelope
		require.NoError(t, json.Unmarshal(msg.Payload, &env))
		return env
	case <-time.After(2 * time.Second):
		t.Fatal("no ui message received")
		return Envelope{}
	}
}

func TestTransformerReEnvelopesProgressEvents(t *testing.T) {
	bus, uiMsgs, _ := startBus(t)

	progress := 40.0
	require.NoError(t, PublishProgressEvent(bus.Publisher, pipeline.StageUpdate{
		Stage:    pipeline.RefIndex(2),
		Phase:    pipeline.PhaseStarted,
		Progress: &progress,
	}))

	env := recvEnvelope(t, uiMsgs)
	require.Equal(t, UITypeProgressEvent, env.Type)

	ev, err := pipeline.ParseEvent(env.Payload)
	require.NoError(t, err)
	upd, ok := ev.(pipeline.StageUpdate)
	require.True(t, ok)
	require.Equal(t, pipeline.PhaseStarted, upd.Phase)
	require.NotNil(t, upd.Progress)
	require.InDelta(t, 40.0, *upd.Progress, 0.001)
}

func TestTransformerDropsUnknownEnvelopeTypes(t *testing.T) {
	bus, uiMsgs, _ := startBus(t)

	unknown, err := NewEnvelope("bogus.type", map[string]string{"x": "y"})
	require.NoError(t, err)
	b, err := unknown.MarshalJSONBytes()
	require.NoError(t, err)
	require.NoError(t, bus.Publisher.Publish(TopicProgressEvents, message.NewMessage(watermill.NewUUID(), b)))

	require.NoError(t, PublishProgressEvent(bus.Publisher, pipeline.Connected{}))

	// Only the Connected event makes it through.
	env := recvEnvelope(t, uiMsgs)
	require.Equal(t, UITypeProgressEvent, env.Type)

	ev, err := pipeline.ParseEvent(env.Payload)
	require.NoError(t, err)
	_, ok := ev.(pipeline.Connected)
	require.True(t, ok)
}
