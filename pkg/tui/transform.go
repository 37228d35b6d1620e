package tui

import (
	"github.com/rs/zerolog/log"
)

// RegisterDomainToUITransformer re-envelopes domain events onto the UI
// topic. Unknown envelope types are dropped; the UI must keep rendering
// whatever a misbehaving producer sends.
func RegisterDomainToUITransformer(bus *Bus) {
	bus.AddEnvelopeHandler("evalctl-domain-to-ui", TopicProgressEvents, func(env Envelope) error {
		publishUI := func(uiType string) error {
			uiEnv, err := NewRawEnvelope(uiType, env.Payload)
			if err != nil {
				return err
			}
			return bus.PublishEnvelope(TopicUIMessages, uiEnv)
		}

		switch env.Type {
		case DomainTypeProgressEvent:
			return publishUI(UITypeProgressEvent)
		case DomainTypeEvaluationResult:
			return publishUI(UITypeEvaluationResult)
		default:
			log.Debug().Str("type", env.Type).Msg("ignoring unknown domain envelope")
			return nil
		}
	})
}
