package session

import (
	"errors"

	"github.com/abhisek/mathchallenge/internal/api"
)

// Phase represents where the learner is in the session lifecycle.
type Phase int

const (
	PhaseIdle    Phase = iota // No session started yet
	PhaseActive                // Serving problems
	PhaseSummary               // Showing results of the last session
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseSummary:
		return "summary"
	default:
		return "unknown"
	}
}

var (
	ErrNotActive       = errors.New("no active session")
	ErrAlreadyActive   = errors.New("session already active")
	ErrBusy            = errors.New("a request is already in progress")
	ErrNoProblem       = errors.New("no problem to answer")
	ErrAlreadyAnswered = errors.New("problem already answered or skipped")
	ErrStale           = errors.New("result discarded: session or problem changed")
)

// State is a read-only snapshot of the controller, handed to renderers.
type State struct {
	// Phase is the current lifecycle phase.
	Phase Phase

	// SessionID identifies the current (or last) session.
	SessionID string

	// Problem is the problem on screen, nil while loading or after an error.
	Problem *api.Problem

	// ProblemSeq changes every time the current problem is replaced or cleared.
	ProblemSeq int

	// Feedback is the verdict for Problem, nil until an answer is checked.
	Feedback *api.Feedback

	// ExplanationVisible is true once the learner asked for the explanation.
	ExplanationVisible bool

	// Skipped is true when the explanation was opened without answering.
	Skipped bool

	// Loading is true while a problem is being fetched directly.
	Loading bool

	// Checking is true while an answer is being checked.
	Checking bool

	// Err is the last service error for the current problem, if any.
	Err error

	// Stats are the running counters for the session.
	Stats Stats

	// Queued is the number of pre-fetched problems waiting.
	Queued int
}

// CanSubmit reports whether an answer can be submitted for the current problem.
func (s State) CanSubmit() bool {
	return s.Phase == PhaseActive && s.Problem != nil && s.Feedback == nil &&
		!s.Skipped && !s.Checking && !s.Loading
}
