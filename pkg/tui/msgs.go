package tui

import (
	"github.com/go-go-golems/evalctl/pkg/client"
	"github.com/go-go-golems/evalctl/pkg/pipeline"
)

// ProgressEventMsg delivers one pipeline event to the tea program.
type ProgressEventMsg struct {
	Event pipeline.Event
}

// EvaluationResultMsg delivers the finished evaluation record.
type EvaluationResultMsg struct {
	Evaluation client.Evaluation
}
