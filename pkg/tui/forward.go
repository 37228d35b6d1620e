package tui

import (
	"encoding/json"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/evalctl/pkg/client"
	"github.com/go-go-golems/evalctl/pkg/pipeline"
)

// RegisterUIForwarder decodes UI envelopes into typed tea messages and
// hands them to the program. Malformed payloads are logged and dropped at
// this boundary so they never reach the reducer.
func RegisterUIForwarder(bus *Bus, p *tea.Program) {
	bus.AddEnvelopeHandler("evalctl-ui-forward", TopicUIMessages, func(env Envelope) error {
		switch env.Type {
		case UITypeProgressEvent:
			ev, err := pipeline.ParseEvent(env.Payload)
			if err != nil {
				log.Warn().Err(err).Msg("dropping malformed ui progress event")
				return nil
			}
			p.Send(ProgressEventMsg{Event: ev})
		case UITypeEvaluationResult:
			var eval client.Evaluation
			if err := json.Unmarshal(env.Payload, &eval); err != nil {
				log.Warn().Err(err).Msg("dropping malformed evaluation result")
				return nil
			}
			p.Send(EvaluationResultMsg{Evaluation: eval})
		}
		return nil
	})
}
