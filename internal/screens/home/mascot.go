package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathchallenge/internal/session"
	"github.com/abhisek/mathchallenge/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // No finished session yet
	MascotCelebrating                      // Last session went well
	MascotEncouraging                      // Last session was rough
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ ±×÷ │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ ±×÷ │
└─╥═╥─┘
  ╚═╝`

const mascotEncouraging = `┌─────┐
│ ◉ ◉ │ ♪
│  ‿  │
│ ±×÷ │
└─────┘`

// mascotFor picks the mascot from the last session summary.
func mascotFor(phase session.Phase, last session.Summary) MascotVariant {
	if phase != session.PhaseSummary || last.Stats.Total == 0 {
		return MascotIdle
	}
	switch last.Celebration.Level {
	case session.LevelOutstanding, session.LevelExcellent:
		return MascotCelebrating
	case session.LevelKeepGoing:
		return MascotEncouraging
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.ArcadeYellow
	case MascotEncouraging:
		art = mascotEncouraging
		fg = theme.ArcadeCyan
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
