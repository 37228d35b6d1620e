package tui

const (
	// TopicProgressEvents carries domain events from the progress drivers
	// and the submission goroutine.
	TopicProgressEvents = "evalctl.progress"
	// TopicUIMessages carries envelopes addressed to the tea program.
	TopicUIMessages = "evalctl.ui.msgs"
)

const (
	DomainTypeProgressEvent    = "progress.event"
	DomainTypeEvaluationResult = "evaluation.result"
)

const (
	UITypeProgressEvent    = "tui.progress.event"
	UITypeEvaluationResult = "tui.evaluation.result"
)
