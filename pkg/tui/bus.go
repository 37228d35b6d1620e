package tui

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	gochannel "github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/pkg/errors"
)

// Bus is the in-process event bus connecting the progress drivers, the
// domain-to-UI transformer and the tea program. One bus per submission.
// Everything crossing it is a JSON Envelope; AddEnvelopeHandler and
// PublishEnvelope keep the codec in one place.
type Bus struct {
	Router     *message.Router
	Publisher  message.Publisher
	Subscriber message.Subscriber

	runOnce sync.Once
}

func NewInMemoryBus() (*Bus, error) {
	logger := watermill.NopLogger{}
	pubsub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 256}, logger)

	r, err := message.NewRouter(message.RouterConfig{}, logger)
	if err != nil {
		return nil, errors.Wrap(err, "new watermill router")
	}
	return &Bus{
		Router:     r,
		Publisher:  pubsub,
		Subscriber: pubsub,
	}, nil
}

func (b *Bus) AddHandler(name, topic string, handler func(*message.Message) error) {
	b.Router.AddConsumerHandler(name, topic, b.Subscriber, handler)
}

// AddEnvelopeHandler consumes a topic of JSON envelopes. Every message is
// acked; a progress display must keep draining even when a handler fails.
func (b *Bus) AddEnvelopeHandler(name, topic string, handler func(Envelope) error) {
	b.AddHandler(name, topic, func(msg *message.Message) error {
		defer msg.Ack()

		var env Envelope
		if err := json.Unmarshal(msg.Payload, &env); err != nil {
			return errors.Wrap(err, "unmarshal envelope")
		}
		return handler(env)
	})
}

// PublishEnvelope encodes env onto topic with a fresh message id.
func (b *Bus) PublishEnvelope(topic string, env Envelope) error {
	bts, err := env.MarshalJSONBytes()
	if err != nil {
		return err
	}
	if err := b.Publisher.Publish(topic, message.NewMessage(watermill.NewUUID(), bts)); err != nil {
		return errors.Wrap(err, "publish envelope")
	}
	return nil
}

func (b *Bus) Run(ctx context.Context) error {
	var runErr error
	b.runOnce.Do(func() {
		go func() {
			<-ctx.Done()
			_ = b.Router.Close()
		}()
		runErr = b.Router.Run(ctx)
	})
	return runErr
}
