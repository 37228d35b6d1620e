package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and base styles for the progress TUI.
type Theme struct {
	Primary lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
	TextDim lipgloss.Color

	Title         lipgloss.Style
	TitleMuted    lipgloss.Style
	StageComplete lipgloss.Style
	StageActive   lipgloss.Style
	StagePending  lipgloss.Style
	ErrorText     lipgloss.Style
	Bar           lipgloss.Style
}

// DefaultTheme returns the default evalctl TUI theme.
func DefaultTheme() Theme {
	primary := lipgloss.Color("#7C3AED") // Purple
	success := lipgloss.Color("#22C55E") // Green
	warning := lipgloss.Color("#EAB308") // Yellow
	errorC := lipgloss.Color("#EF4444")  // Red
	muted := lipgloss.Color("#6B7280")   // Gray
	text := lipgloss.Color("#F9FAFB")    // White
	textDim := lipgloss.Color("#9CA3AF") // Light gray

	return Theme{
		Primary: primary,
		Success: success,
		Warning: warning,
		Error:   errorC,
		Muted:   muted,
		Text:    text,
		TextDim: textDim,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(text),

		TitleMuted: lipgloss.NewStyle().
			Foreground(textDim),

		StageComplete: lipgloss.NewStyle().
			Foreground(success),

		StageActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),

		StagePending: lipgloss.NewStyle().
			Foreground(muted),

		ErrorText: lipgloss.NewStyle().
			Bold(true).
			Foreground(errorC),

		Bar: lipgloss.NewStyle().
			Foreground(primary),
	}
}

// DefaultStyles returns the default theme for convenience.
var DefaultStyles = DefaultTheme()
