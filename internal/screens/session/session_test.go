package session

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathchallenge/internal/api"
	"github.com/abhisek/mathchallenge/internal/router"
	"github.com/abhisek/mathchallenge/internal/screens/summary"
	sess "github.com/abhisek/mathchallenge/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func testProblem() *api.Problem {
	return &api.Problem{
		ID:          1,
		Question:    "Mia has 3 red balloons. She buys 4 blue ones. How many balloons does she have?",
		ProblemType: "addition",
		NumSteps:    1,
		Theme:       "party",
	}
}

func testSessionScreen(t *testing.T) (*SessionScreen, *api.MockAPI) {
	t.Helper()
	m := api.NewMockAPI(testProblem())
	ctrl := sess.NewController(m, sess.DefaultConfig(), nil)
	t.Cleanup(ctrl.Close)

	s := New(ctrl)
	s.Update(s.run(opStart)())
	return s, m
}

// exec runs cmd and feeds its message back into the screen.
func exec(t *testing.T, s *SessionScreen, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	s.Update(msg)
	return msg
}

func typeAnswer(s *SessionScreen, answer string) {
	for _, r := range answer {
		s.Update(keyPress(r))
	}
}

func TestSessionScreen_StartShowsProblem(t *testing.T) {
	s, _ := testSessionScreen(t)

	view := s.View(100, 30)
	for _, want := range []string{"Addition", "1 step", "party", "Mia has 3 red balloons.", "How many balloons does she have?"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if s.Status() != "✓ 0/0" {
		t.Errorf("Status = %q", s.Status())
	}
	if s.Title() != "Session" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestSessionScreen_CorrectAnswer(t *testing.T) {
	s, m := testSessionScreen(t)
	m.AddFeedback(api.MockFeedback{Feedback: &api.Feedback{Correct: true, CorrectAnswer: 7, Explanation: "1. 3 + 4 = 7."}})

	typeAnswer(s, "7")
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	exec(t, s, cmd)

	if !strings.Contains(s.View(100, 30), "Correct! Well done!") {
		t.Error("expected correct feedback in view")
	}
	if got := s.state.Stats; got != (sess.Stats{Total: 1, Correct: 1}) {
		t.Errorf("Stats = %+v", got)
	}
	if s.Status() != "✓ 1/1  100%" {
		t.Errorf("Status = %q", s.Status())
	}
	calls := m.CheckCalls()
	if len(calls) != 1 || calls[0].Answer != 7 {
		t.Errorf("CheckCalls = %+v", calls)
	}
}

func TestSessionScreen_IncorrectShowsCorrectAnswer(t *testing.T) {
	s, m := testSessionScreen(t)
	m.AddFeedback(api.MockFeedback{Feedback: &api.Feedback{Correct: false, CorrectAnswer: 7.5}})

	typeAnswer(s, "6")
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	exec(t, s, cmd)

	if !strings.Contains(s.View(100, 30), "The correct answer was 7.5.") {
		t.Error("expected correct answer in view")
	}
}

func TestSessionScreen_EmptyAnswerMakesNoCall(t *testing.T) {
	s, m := testSessionScreen(t)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	exec(t, s, cmd)

	if len(m.CheckCalls()) != 0 {
		t.Error("expected no check call for empty input")
	}
	if !strings.Contains(s.View(100, 30), "Please enter a number.") {
		t.Error("expected validation notice")
	}
}

func TestSessionScreen_ExplanationSkips(t *testing.T) {
	s, _ := testSessionScreen(t)

	s.Update(ctrlKey('e'))
	s.Update(ctrlKey('e'))

	view := s.View(100, 30)
	if !strings.Contains(view, "Step-by-Step Solution") {
		t.Error("expected explanation card")
	}
	if strings.Contains(view, "Answer:") {
		t.Error("answer box should be hidden after a skip")
	}
	if got := s.state.Stats; got != (sess.Stats{Total: 1, Skipped: 1}) {
		t.Errorf("Stats = %+v", got)
	}

	// Keys no longer reach the input.
	typeAnswer(s, "5")
	if s.input.Value() != "" {
		t.Errorf("input = %q, want empty", s.input.Value())
	}
}

func TestSessionScreen_NextProblemResetsInput(t *testing.T) {
	s, m := testSessionScreen(t)
	m.AddFeedback(api.MockFeedback{Feedback: &api.Feedback{Correct: false, CorrectAnswer: 7}})

	typeAnswer(s, "9")
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	exec(t, s, cmd)
	firstSeq := s.seq

	_, cmd = s.Update(ctrlKey('n'))
	exec(t, s, cmd)

	if s.seq == firstSeq {
		t.Error("expected problem sequence to change")
	}
	if s.input.Value() != "" || s.input.Disabled() {
		t.Error("expected a fresh, enabled input for the next problem")
	}
	if s.state.Problem == nil || s.state.Problem.ID == 1 {
		t.Errorf("expected a new problem, got %+v", s.state.Problem)
	}
}

func TestSessionScreen_EndSessionConfirm(t *testing.T) {
	s, _ := testSessionScreen(t)

	s.Update(specialKey(tea.KeyEscape))
	if !s.confirming {
		t.Fatal("expected confirmation after Esc")
	}
	if hints := s.KeyHints(); len(hints) != 2 || hints[0].Key != "Y" {
		t.Errorf("unexpected confirm hints %+v", hints)
	}

	// N keeps the session going.
	s.Update(keyPress('n'))
	if s.confirming {
		t.Fatal("expected confirmation to close on N")
	}

	s.Update(specialKey(tea.KeyEscape))
	_, cmd := s.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected navigation command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("expected summary screen, got %T", msg.Screen)
	}
	if s.ctrl.Snapshot().Phase != sess.PhaseSummary {
		t.Error("expected controller in summary phase")
	}
}

func TestSessionScreen_StartFailureShowsError(t *testing.T) {
	m := api.NewMockAPI()
	m.AddProblem(api.MockProblem{Err: &api.NetworkError{Op: "fetch problem", StatusCode: 502}})
	ctrl := sess.NewController(m, sess.DefaultConfig(), nil)
	t.Cleanup(ctrl.Close)

	s := New(ctrl)
	s.Update(s.run(opStart)())

	if !strings.Contains(s.View(100, 30), "Could not load a problem") {
		t.Error("expected error view")
	}

	_, cmd := s.Update(ctrlKey('n'))
	exec(t, s, cmd)
	if s.state.Problem == nil {
		t.Error("expected Ctrl+N to recover with a new problem")
	}
}
