package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathchallenge/internal/session"
	"github.com/abhisek/mathchallenge/internal/ui/theme"
)

const titleFull = ` ╔╦╗╔═╗╔╦╗╦ ╦
 ║║║╠═╣ ║ ╠═╣
 ╩ ╩╩ ╩ ╩ ╩ ╩
 C H A L L E N G E`

const titleCompact = "M A T H · C H A L L E N G E"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar renders the last session result in a bordered box.
func renderStatsBar(phase session.Phase, last session.Summary, cw int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	score := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)

	var text string
	if phase != session.PhaseSummary {
		text = dim.Render("Word problems, one at a time. Ready when you are!")
	} else {
		st := last.Stats
		text = dim.Render("LAST SESSION  ") +
			score.Render(fmt.Sprintf("%d/%d CORRECT", st.Correct, st.Total)) +
			dim.Render("  ·  ") +
			score.Render(fmt.Sprintf("%d%%", last.AccuracyPercent))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(text)
}

// renderEndpoint renders the service address in a dim line.
func renderEndpoint(baseURL string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render("Problems from " + baseURL)
}
