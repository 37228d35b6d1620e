package widgets

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/go-go-golems/evalctl/pkg/tui/styles"
)

// Box renders a bordered container with an optional title line. The
// progress view uses it to frame the final decision summary.
type Box struct {
	Title   string
	Content string
	Width   int
	theme   styles.Theme
}

func NewBox(title string) Box {
	theme := styles.DefaultTheme()
	return Box{
		Title: title,
		theme: theme,
	}
}

func (b Box) WithContent(content string) Box {
	b.Content = content
	return b
}

func (b Box) WithWidth(width int) Box {
	b.Width = width
	return b
}

// Render returns the styled box as a string.
func (b Box) Render() string {
	inner := b.Content
	if b.Title != "" {
		inner = b.theme.Title.Render(b.Title) + "\n" + inner
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(b.theme.Muted).
		Padding(0, 1)
	if b.Width > 2 {
		style = style.Width(b.Width - 2)
	}
	return style.Render(inner)
}
