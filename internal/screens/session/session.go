// Package session is the TUI screen for an active practice session. All
// state lives in the session controller; the screen issues controller calls
// from tea.Cmds and re-reads a snapshot whenever one completes.
package session

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathchallenge/internal/api"
	"github.com/abhisek/mathchallenge/internal/router"
	"github.com/abhisek/mathchallenge/internal/screen"
	"github.com/abhisek/mathchallenge/internal/screens/summary"
	sess "github.com/abhisek/mathchallenge/internal/session"
	"github.com/abhisek/mathchallenge/internal/ui/components"
	"github.com/abhisek/mathchallenge/internal/ui/layout"
	"github.com/abhisek/mathchallenge/internal/ui/theme"
)

const answerCharLimit = 24

// SessionScreen implements screen.Screen for the active session.
type SessionScreen struct {
	ctrl    *sess.Controller
	state   sess.State
	seq     int
	input   components.AnswerInput
	spinner spinner.Model

	pending    int // controller calls in flight
	confirming bool
	notice     string
}

var (
	_ screen.Screen          = (*SessionScreen)(nil)
	_ screen.KeyHintProvider = (*SessionScreen)(nil)
	_ screen.StatusProvider  = (*SessionScreen)(nil)
)

// New creates a SessionScreen that starts a session on Init.
func New(ctrl *sess.Controller) *SessionScreen {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
	)
	s := &SessionScreen{
		ctrl:    ctrl,
		spinner: sp,
		input:   components.NewAnswerInput("Type your answer...", answerCharLimit),
	}
	s.state = ctrl.Snapshot()
	s.seq = s.state.ProblemSeq
	return s
}

func (s *SessionScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.spinner.Tick, s.input.Init()}
	if s.state.Phase != sess.PhaseActive {
		cmds = append(cmds, s.run(opStart))
	}
	return tea.Batch(cmds...)
}

func (s *SessionScreen) Title() string {
	return "Session"
}

// Status shows the running score in the header.
func (s *SessionScreen) Status() string {
	st := s.state.Stats
	return layout.ScoreStatus(st.Correct, st.Total, st.AccuracyPercent())
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	hints := make([]layout.KeyHint, 0, 4)
	if s.state.CanSubmit() {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Submit"})
	}
	if s.state.Problem != nil && !s.state.ExplanationVisible {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+E", Description: "Explanation"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "Ctrl+N", Description: "Next problem"},
		layout.KeyHint{Key: "Esc", Description: "End session"},
	)
	return hints
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case controllerDoneMsg:
		return s.handleDone(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.state.CanSubmit() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// run issues a blocking controller call in a tea.Cmd.
func (s *SessionScreen) run(o op) tea.Cmd {
	s.pending++
	ctrl := s.ctrl
	answer := s.input.Value()
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		switch o {
		case opStart:
			err = ctrl.StartSession(ctx)
		case opNext:
			err = ctrl.NextProblem(ctx)
		case opSubmit:
			err = ctrl.SubmitAnswer(ctx, answer)
		}
		return controllerDoneMsg{Op: o, Err: err}
	}
}

func (s *SessionScreen) handleDone(msg controllerDoneMsg) (screen.Screen, tea.Cmd) {
	if s.pending > 0 {
		s.pending--
	}

	switch {
	case msg.Err == nil, errors.Is(msg.Err, sess.ErrStale):
	case api.IsValidationError(msg.Err):
		s.notice = "Please enter a number."
	case errors.Is(msg.Err, sess.ErrBusy), errors.Is(msg.Err, sess.ErrAlreadyAnswered):
		s.notice = msg.Err.Error()
	}
	// Service errors are carried in the snapshot.

	return s, s.refresh()
}

// refresh re-reads the controller state and resets the answer box when the
// problem changed.
func (s *SessionScreen) refresh() tea.Cmd {
	s.state = s.ctrl.Snapshot()

	var cmd tea.Cmd
	if s.state.ProblemSeq != s.seq {
		s.seq = s.state.ProblemSeq
		s.input = components.NewAnswerInput("Type your answer...", answerCharLimit)
		s.notice = ""
		cmd = s.input.Init()
	}

	switch {
	case s.state.Feedback != nil:
		s.input.SetVerdict(s.state.Feedback.Correct)
	case s.state.Skipped:
		s.input.Disable()
	}
	return cmd
}

func (s *SessionScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirming {
		switch key {
		case "y", "Y":
			s.confirming = false
			return s.endSession()
		case "n", "N", "esc":
			s.confirming = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.confirming = true
		return s, nil

	case "ctrl+n":
		s.notice = ""
		return s, s.run(opNext)

	case "ctrl+e":
		if err := s.ctrl.ShowExplanation(); err != nil && !errors.Is(err, sess.ErrNoProblem) {
			s.notice = err.Error()
		}
		return s, s.refresh()

	case "enter":
		if !s.state.CanSubmit() {
			return s, nil
		}
		s.notice = ""
		cmd := s.run(opSubmit)
		s.state.Checking = true
		return s, cmd
	}

	if !s.state.CanSubmit() {
		return s, nil
	}
	s.notice = ""
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// endSession moves the controller to the summary phase and replaces this
// screen with the summary.
func (s *SessionScreen) endSession() (screen.Screen, tea.Cmd) {
	result, err := s.ctrl.EndSession()
	if err != nil {
		// Not active: nothing to summarize.
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	s.state = s.ctrl.Snapshot()

	ctrl := s.ctrl
	again := func() screen.Screen { return New(ctrl) }
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(result, again)}
	}
}

func (s *SessionScreen) View(width, height int) string {
	if s.confirming {
		return renderQuitConfirm(width, s.state.Stats)
	}
	if s.state.Problem == nil {
		if s.state.Err != nil && !s.busy() {
			return renderError(width, s.state.Err)
		}
		return s.renderLoading(width)
	}
	return s.renderProblemView(width, height)
}

// busy reports whether a controller call is outstanding.
func (s *SessionScreen) busy() bool {
	return s.pending > 0 || s.state.Loading || s.state.Checking
}
