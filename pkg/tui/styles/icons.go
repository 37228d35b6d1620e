package styles

// Status icons
const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "⚠"
	IconRunning = "▶"
	IconPending = "○"
	IconBullet  = "•"
)

// StageIcon returns the icon for a tracked stage status.
func StageIcon(status string) string {
	switch status {
	case "complete":
		return IconSuccess
	case "active":
		return IconRunning
	default:
		return IconPending
	}
}

// DecisionIcon returns the icon for a final evaluation decision.
func DecisionIcon(decision string) string {
	switch decision {
	case "ACCEPT", "CONDITIONALLY ACCEPT":
		return IconSuccess
	case "REJECT":
		return IconError
	case "REVISE":
		return IconWarning
	default:
		return IconBullet
	}
}
