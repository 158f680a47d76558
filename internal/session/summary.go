package session

// Celebration is the headline shown on the summary screen.
type Celebration struct {
	Emoji   string
	Message string
	Level   CelebrationLevel
}

// CelebrationLevel buckets session accuracy for display.
type CelebrationLevel int

const (
	LevelKeepGoing   CelebrationLevel = iota // below 50%
	LevelGood                                // 50% and up
	LevelExcellent                           // 70% and up
	LevelOutstanding                         // 90% and up
)

// Summary holds the data displayed on the summary screen.
type Summary struct {
	SessionID       string
	Stats           Stats
	AccuracyPercent int
	Celebration     Celebration
}

// BuildSummary creates a Summary from final session counters.
func BuildSummary(sessionID string, stats Stats) Summary {
	return Summary{
		SessionID:       sessionID,
		Stats:           stats,
		AccuracyPercent: stats.AccuracyPercent(),
		Celebration:     celebrationFor(stats),
	}
}

// celebrationFor picks the headline from unrounded accuracy.
func celebrationFor(stats Stats) Celebration {
	var pct float64
	if stats.Total > 0 {
		pct = float64(stats.Correct) / float64(stats.Total) * 100
	}

	switch {
	case pct >= 90:
		return Celebration{Emoji: "🏆", Message: "Outstanding! You're a math superstar!", Level: LevelOutstanding}
	case pct >= 70:
		return Celebration{Emoji: "🎉", Message: "Excellent work! You're doing great!", Level: LevelExcellent}
	case pct >= 50:
		return Celebration{Emoji: "👍", Message: "Good effort! Keep practicing!", Level: LevelGood}
	default:
		return Celebration{Emoji: "💪", Message: "Keep going! Practice makes perfect!", Level: LevelKeepGoing}
	}
}
