package api

import (
	"context"
	"fmt"
	"sync"
)

// MockProblem is a canned FetchProblem result.
type MockProblem struct {
	Problem *Problem
	Err     error
}

// MockFeedback is a canned CheckAnswer result.
type MockFeedback struct {
	Feedback *Feedback
	Err      error
}

// CheckCall records one CheckAnswer invocation.
type CheckCall struct {
	ProblemID int
	Answer    float64
}

// MockAPI is a deterministic ProblemAPI for testing.
// Canned responses are returned in FIFO order. Once the problem queue is
// drained, FetchProblem synthesizes numbered problems so background refills
// never run dry. CheckAnswer with no canned response fails with HTTP 503.
type MockAPI struct {
	mu          sync.Mutex
	problems    []MockProblem
	feedback    []MockFeedback
	generated   int
	fetchCalls  int
	checkCalls  []CheckCall
	inFlight    int
	maxInFlight int
	checking    int
	gate        chan struct{}
	checkGate   chan struct{}
}

var _ ProblemAPI = (*MockAPI)(nil)

// NewMockAPI creates a MockAPI with the given canned problems.
func NewMockAPI(problems ...*Problem) *MockAPI {
	m := &MockAPI{}
	for _, p := range problems {
		m.problems = append(m.problems, MockProblem{Problem: p})
	}
	return m
}

// FetchProblem returns the next canned problem, or a synthesized one.
func (m *MockAPI) FetchProblem(ctx context.Context) (*Problem, error) {
	m.mu.Lock()
	m.fetchCalls++
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
	gate := m.gate
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight--
		m.mu.Unlock()
	}()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, &NetworkError{Op: "fetch problem", Err: ctx.Err()}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.problems) > 0 {
		next := m.problems[0]
		m.problems = m.problems[1:]
		if next.Err != nil {
			return nil, next.Err
		}
		p := *next.Problem
		return &p, nil
	}

	m.generated++
	n := m.generated
	return &Problem{
		ID:          9000 + n,
		Question:    fmt.Sprintf("Sam has %d apples and buys %d more. How many apples does Sam have?", n, n),
		ProblemType: "addition",
		NumSteps:    1,
	}, nil
}

// CheckAnswer records the call and returns the next canned feedback.
func (m *MockAPI) CheckAnswer(ctx context.Context, problemID int, answer float64) (*Feedback, error) {
	m.mu.Lock()
	m.checkCalls = append(m.checkCalls, CheckCall{ProblemID: problemID, Answer: answer})
	m.checking++
	gate := m.checkGate
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			m.mu.Lock()
			m.checking--
			m.mu.Unlock()
			return nil, &NetworkError{Op: "check answer", Err: ctx.Err()}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.checking--

	if len(m.feedback) == 0 {
		return nil, &NetworkError{Op: "check answer", StatusCode: 503}
	}
	next := m.feedback[0]
	m.feedback = m.feedback[1:]
	if next.Err != nil {
		return nil, next.Err
	}
	fb := *next.Feedback
	return &fb, nil
}

// AddProblem appends a canned FetchProblem result.
func (m *MockAPI) AddProblem(resp MockProblem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.problems = append(m.problems, resp)
}

// AddFeedback appends a canned CheckAnswer result.
func (m *MockAPI) AddFeedback(resp MockFeedback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feedback = append(m.feedback, resp)
}

// Hold makes subsequent FetchProblem calls block until Release.
func (m *MockAPI) Hold() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gate == nil {
		m.gate = make(chan struct{})
	}
}

// Release unblocks all held FetchProblem calls.
func (m *MockAPI) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gate != nil {
		close(m.gate)
		m.gate = nil
	}
}

// HoldChecks makes subsequent CheckAnswer calls block until ReleaseChecks.
func (m *MockAPI) HoldChecks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.checkGate == nil {
		m.checkGate = make(chan struct{})
	}
}

// ReleaseChecks unblocks all held CheckAnswer calls.
func (m *MockAPI) ReleaseChecks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.checkGate != nil {
		close(m.checkGate)
		m.checkGate = nil
	}
}

// Checking returns the number of CheckAnswer calls currently executing.
func (m *MockAPI) Checking() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.checking
}

// FetchCalls returns the number of FetchProblem calls made.
func (m *MockAPI) FetchCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetchCalls
}

// CheckCalls returns a copy of the recorded CheckAnswer calls.
func (m *MockAPI) CheckCalls() []CheckCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]CheckCall, len(m.checkCalls))
	copy(out, m.checkCalls)
	return out
}

// InFlight returns the number of FetchProblem calls currently executing.
func (m *MockAPI) InFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inFlight
}

// MaxInFlight returns the peak number of concurrent FetchProblem calls.
func (m *MockAPI) MaxInFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxInFlight
}
