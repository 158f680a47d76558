package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathchallenge/internal/format"
	sess "github.com/abhisek/mathchallenge/internal/session"
	"github.com/abhisek/mathchallenge/internal/ui/theme"
)

func centered(width int) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
}

// renderProblemView renders the current problem with its answer area,
// feedback and explanation.
func (s *SessionScreen) renderProblemView(width, height int) string {
	st := s.state
	p := st.Problem

	var b strings.Builder

	// Badge line.
	badges := []string{
		theme.TypeBadge.Render(format.ProblemType(p.ProblemType)),
	}
	if p.NumSteps > 0 {
		badges = append(badges, theme.StepsBadge.Render(format.StepCount(p.NumSteps)))
	}
	if p.Theme != "" {
		badges = append(badges, theme.ThemeBadge.Render(p.Theme))
	}
	left := "  " + strings.Join(badges, " ")
	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("#%d  %d ready", p.ID, st.Queued))

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 2; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	b.WriteString(line)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	// Question, one sentence per line.
	textWidth := min(width-8, 72)
	question := lipgloss.NewStyle().
		Width(textWidth).
		Foreground(theme.Text).
		Bold(true).
		Render(strings.Join(format.Sentences(p.Question), "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, question))
	b.WriteString("\n\n")

	// Answer area is hidden once the learner skipped.
	if !st.Skipped {
		b.WriteString(centered(width).Render("Answer: " + s.input.View()))
		b.WriteString("\n")
	}
	if st.Checking {
		b.WriteString(centered(width).Foreground(theme.TextDim).Render(s.spinner.View() + " Checking..."))
		b.WriteString("\n")
	}
	if s.notice != "" {
		b.WriteString(centered(width).Inherit(theme.Warning).Render(s.notice))
		b.WriteString("\n")
	}
	if st.Err != nil && !st.Checking {
		b.WriteString(centered(width).Foreground(theme.Error).
			Render(fmt.Sprintf("Could not check your answer: %v. Press Enter to try again.", st.Err)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if st.Feedback != nil {
		b.WriteString(renderFeedback(width, st))
		b.WriteString("\n\n")
	}
	if st.ExplanationVisible {
		b.WriteString(renderExplanation(width, textWidth, st))
		b.WriteString("\n\n")
	}

	if st.Feedback != nil || st.Skipped {
		b.WriteString(centered(width).Inherit(theme.Hint).Render("Press Ctrl+N for the next problem"))
	}

	return b.String()
}

// renderFeedback renders the verdict line.
func renderFeedback(width int, st sess.State) string {
	fb := st.Feedback
	if fb.Correct {
		return centered(width).Inherit(theme.Correct).Render("Correct! Well done!")
	}
	return centered(width).Inherit(theme.Incorrect).
		Render(fmt.Sprintf("Incorrect. The correct answer was %s.", format.Number(fb.CorrectAnswer)))
}

// renderExplanation renders the step-by-step solution card.
func renderExplanation(width, textWidth int, st sess.State) string {
	var body string
	switch {
	case st.Feedback != nil && st.Feedback.Explanation != "":
		steps := format.Steps(st.Feedback.Explanation)
		body = strings.Join(steps, "\n\n")
	case st.Feedback != nil:
		body = "No explanation was provided for this problem."
	default:
		// The service only explains a problem after an answer is checked.
		body = "Skipped. The worked solution is shown after an answer is checked,\nso try the next one!"
	}

	title := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Step-by-Step Solution")
	card := theme.ExplanationCard.
		Width(textWidth).
		Render(title + "\n\n" + lipgloss.NewStyle().Foreground(theme.Text).Render(body))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}

// renderQuitConfirm renders the end-session confirmation dialog.
func renderQuitConfirm(width int, stats sess.Stats) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(centered(width).Foreground(theme.Text).Bold(true).Render("End session?"))
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.TextDim).
		Render(fmt.Sprintf("You have answered %d problems so far.", stats.Total)))
	b.WriteString("\n\n")
	b.WriteString(centered(width).Foreground(theme.Success).Render("[Y] Yes, show my results"))
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.Primary).Render("[N] No, keep going"))

	return b.String()
}

// renderLoading renders the loading state.
func (s *SessionScreen) renderLoading(width int) string {
	return centered(width).
		Foreground(theme.TextDim).
		Render("\n\n\n" + s.spinner.View() + " Fetching a problem...")
}

// renderError renders a fetch failure with no problem on screen.
func renderError(width int, err error) string {
	return centered(width).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\nCould not load a problem: %v\n\nPress Ctrl+N to try again or Esc to end the session.", err))
}
