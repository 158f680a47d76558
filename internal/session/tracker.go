package session

import "math"

// Stats are the per-session answer counters.
type Stats struct {
	Total     int
	Correct   int
	Incorrect int
	Skipped   int
}

// AccuracyPercent returns correct/total as a whole percentage, 0 when
// nothing has been recorded.
func (s Stats) AccuracyPercent() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Correct) / float64(s.Total) * 100))
}

// Tracker counts answers for one practice session.
// It is not safe for concurrent use; the Controller serializes access.
type Tracker struct {
	stats  Stats
	active bool
}

// Start resets every counter and marks the session active.
func (t *Tracker) Start() {
	t.stats = Stats{}
	t.active = true
}

// End marks the session inactive. Counters stay readable until Start.
func (t *Tracker) End() {
	t.active = false
}

// Active reports whether a session is in progress.
func (t *Tracker) Active() bool {
	return t.active
}

// RecordAnswer counts one checked answer.
func (t *Tracker) RecordAnswer(correct bool) error {
	if !t.active {
		return ErrNotActive
	}
	t.stats.Total++
	if correct {
		t.stats.Correct++
	} else {
		t.stats.Incorrect++
	}
	return nil
}

// RecordSkip counts one problem abandoned without an answer. Callers must
// record at most one skip per problem and never after RecordAnswer.
func (t *Tracker) RecordSkip() error {
	if !t.active {
		return ErrNotActive
	}
	t.stats.Total++
	t.stats.Skipped++
	return nil
}

// Stats returns a copy of the counters.
func (t *Tracker) Stats() Stats {
	return t.stats
}

// AccuracyPercent returns the accuracy of the current counters.
func (t *Tracker) AccuracyPercent() int {
	return t.stats.AccuracyPercent()
}
