package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-go-golems/evalctl/pkg/catalog"
	"github.com/go-go-golems/evalctl/pkg/client"
	"github.com/go-go-golems/evalctl/pkg/pipeline"
	"github.com/go-go-golems/evalctl/pkg/tui"
	"github.com/go-go-golems/evalctl/pkg/tui/styles"
	"github.com/go-go-golems/evalctl/pkg/tui/widgets"
)

// ProgressModel renders the pipeline progress for one submission. All
// state transitions go through the pure reducer; the model only holds the
// latest State and presentation concerns.
type ProgressModel struct {
	width  int
	height int

	fileName  string
	startedAt time.Time

	state  pipeline.State
	result *client.Evaluation

	spin  spinner.Model
	theme styles.Theme
}

func NewProgressModel(fileName string) ProgressModel {
	theme := styles.DefaultTheme()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	return ProgressModel{
		fileName:  fileName,
		startedAt: time.Now(),
		state:     pipeline.New(),
		spin:      sp,
		theme:     theme,
	}
}

// State exposes the current reduced state, mainly for tests.
func (m ProgressModel) State() pipeline.State {
	return m.state
}

func (m ProgressModel) Init() tea.Cmd {
	return m.spin.Tick
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = v.Width, v.Height
		return m, nil

	case tea.KeyMsg:
		switch v.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
		return m, nil

	case tui.ProgressEventMsg:
		m.state = pipeline.Apply(m.state, v.Event)
		return m, m.maybeQuit()

	case tui.EvaluationResultMsg:
		eval := v.Evaluation
		m.result = &eval
		return m, m.maybeQuit()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(v)
		return m, cmd

	default:
		return m, nil
	}
}

// maybeQuit ends the program once the job resolved: failure is terminal
// on its own, success waits for the evaluation record so the final frame
// can show the decision.
func (m ProgressModel) maybeQuit() tea.Cmd {
	if m.state.Errored {
		return tea.Quit
	}
	if m.state.Terminal() && m.result != nil {
		return tea.Quit
	}
	return nil
}

func (m ProgressModel) View() string {
	var b strings.Builder

	title := m.theme.Title.Render("Evaluating " + m.fileName)
	if !m.state.Terminal() {
		title = m.spin.View() + " " + title
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(m.theme.TitleMuted.Render(fmt.Sprintf("Elapsed: %s", time.Since(m.startedAt).Round(time.Second))))
	b.WriteString("\n\n")

	for _, stage := range catalog.Stages() {
		status := pipeline.StatusPending
		if stage.Ordinal < len(m.state.Statuses) {
			status = m.state.Statuses[stage.Ordinal]
		}
		icon := styles.StageIcon(string(status))
		line := fmt.Sprintf("%s %s", icon, stage.Label)
		switch status {
		case pipeline.StatusComplete:
			line = m.theme.StageComplete.Render(line)
		case pipeline.StatusActive:
			line = m.theme.StageActive.Render(line)
		default:
			line = m.theme.StagePending.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	bar := widgets.NewProgressBar(m.state.Progress).
		WithWidth(40).
		WithStyle(m.theme.Bar)
	b.WriteString(bar.Render())
	b.WriteString("\n\n")

	if m.state.Errored {
		b.WriteString(m.theme.ErrorText.Render(styles.IconError + " " + m.state.Message))
		b.WriteString("\n")
	} else {
		b.WriteString(m.theme.TitleMuted.Render(m.state.Message))
		b.WriteString("\n")
	}

	if m.result != nil {
		summary := fmt.Sprintf("%s %s\nScore: %.1f   Domain: %s",
			styles.DecisionIcon(m.result.Decision),
			m.result.Decision,
			m.result.OverallScore,
			m.result.Domain,
		)
		b.WriteString("\n")
		b.WriteString(widgets.NewBox("Result").WithContent(summary).WithWidth(44).Render())
		b.WriteString("\n")
	}

	return b.String()
}
