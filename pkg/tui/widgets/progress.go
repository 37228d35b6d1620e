package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a horizontal progress bar with percentage.
type ProgressBar struct {
	percent    float64
	width      int
	style      lipgloss.Style
	filledChar rune
	emptyChar  rune
	showText   bool
}

// NewProgressBar creates a new progress bar with the given percentage (0-100).
func NewProgressBar(percent float64) ProgressBar {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return ProgressBar{
		percent:    percent,
		width:      20,
		filledChar: '█',
		emptyChar:  '░',
		showText:   true,
	}
}

// WithWidth sets the width of the progress bar (not including percentage text).
func (p ProgressBar) WithWidth(width int) ProgressBar {
	if width < 5 {
		width = 5
	}
	p.width = width
	return p
}

// WithStyle sets the style for the filled portion.
func (p ProgressBar) WithStyle(style lipgloss.Style) ProgressBar {
	p.style = style
	return p
}

// WithShowText controls whether to show the percentage text.
func (p ProgressBar) WithShowText(show bool) ProgressBar {
	p.showText = show
	return p
}

// Render returns the rendered progress bar string.
func (p ProgressBar) Render() string {
	filled := int(float64(p.width) * p.percent / 100)
	if filled > p.width {
		filled = p.width
	}
	empty := p.width - filled

	bar := p.style.Render(strings.Repeat(string(p.filledChar), filled)) +
		strings.Repeat(string(p.emptyChar), empty)

	if p.showText {
		return fmt.Sprintf("%s %3.0f%%", bar, p.percent)
	}
	return bar
}
