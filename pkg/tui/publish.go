package tui

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/go-go-golems/evalctl/pkg/client"
	"github.com/go-go-golems/evalctl/pkg/pipeline"
)

// PublishProgressEvent puts a pipeline event on the domain topic in wire
// form. Both the live channel and the simulator go through here, so the
// transformer sees a single event shape.
func PublishProgressEvent(pub message.Publisher, ev pipeline.Event) error {
	wire, err := pipeline.MarshalEvent(ev)
	if err != nil {
		return err
	}
	env, err := NewRawEnvelope(DomainTypeProgressEvent, wire)
	if err != nil {
		return err
	}
	b, err := env.MarshalJSONBytes()
	if err != nil {
		return err
	}
	return pub.Publish(TopicProgressEvents, message.NewMessage(watermill.NewUUID(), b))
}

// PublishEvaluationResult puts the finished evaluation record on the
// domain topic.
func PublishEvaluationResult(pub message.Publisher, eval client.Evaluation) error {
	env, err := NewEnvelope(DomainTypeEvaluationResult, eval)
	if err != nil {
		return err
	}
	b, err := env.MarshalJSONBytes()
	if err != nil {
		return err
	}
	return pub.Publish(TopicProgressEvents, message.NewMessage(watermill.NewUUID(), b))
}
