package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathchallenge/internal/router"
	"github.com/abhisek/mathchallenge/internal/screen"
	"github.com/abhisek/mathchallenge/internal/session"
	"github.com/abhisek/mathchallenge/internal/ui/components"
	"github.com/abhisek/mathchallenge/internal/ui/layout"
	"github.com/abhisek/mathchallenge/internal/ui/theme"
)

// SummaryScreen displays the results of a finished session.
type SummaryScreen struct {
	summary session.Summary
	again   screen.Factory
}

var (
	_ screen.Screen          = (*SummaryScreen)(nil)
	_ screen.KeyHintProvider = (*SummaryScreen)(nil)
	_ screen.StatusProvider  = (*SummaryScreen)(nil)
)

// New creates a SummaryScreen. again builds the screen for a new session;
// when nil, Enter returns home like Esc.
func New(summary session.Summary, again screen.Factory) *SummaryScreen {
	return &SummaryScreen{summary: summary, again: again}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) Status() string {
	st := s.summary.Stats
	return layout.ScoreStatus(st.Correct, st.Total, s.summary.AccuracyPercent)
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start again"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter":
		if s.again != nil {
			next := s.again()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	case "esc":
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	cw := components.ContentWidth(width)

	var sections []string

	headline := lipgloss.NewStyle().
		Foreground(celebrationColor(sum.Celebration.Level)).
		Bold(true).
		Render(sum.Celebration.Emoji + "  " + sum.Celebration.Message)
	sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(headline))

	counts := strings.Join([]string{
		countCell("Total", sum.Stats.Total, theme.Text),
		countCell("Correct", sum.Stats.Correct, theme.Success),
		countCell("Incorrect", sum.Stats.Incorrect, theme.Error),
		countCell("Skipped", sum.Stats.Skipped, theme.Accent),
	}, "   ")
	sections = append(sections, components.Card(counts, cw, theme.Border))

	bar := components.NewProgressBar("Accuracy", float64(sum.AccuracyPercent)/100, true, cw-4)
	sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(bar.View()))

	if sum.Stats.Total == 0 {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Inherit(theme.Hint).Render("No problems attempted this time."))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n\n"))
}

func countCell(label string, n int, fg color.Color) string {
	return lipgloss.NewStyle().Foreground(fg).Bold(true).Render(fmt.Sprintf("%d", n)) +
		" " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
}

// celebrationColor returns the headline color for a celebration level.
func celebrationColor(l session.CelebrationLevel) color.Color {
	switch l {
	case session.LevelOutstanding:
		return theme.ArcadeYellow
	case session.LevelExcellent:
		return theme.Success
	case session.LevelGood:
		return theme.Secondary
	default:
		return theme.Accent
	}
}
