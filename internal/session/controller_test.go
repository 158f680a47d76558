package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathchallenge/internal/api"
)

func testProblem(id int) *api.Problem {
	return &api.Problem{
		ID:          id,
		Question:    "Ana has 3 pencils. She gets 4 more. How many pencils does she have?",
		ProblemType: "addition",
		NumSteps:    1,
	}
}

func newTestController(t *testing.T, m *api.MockAPI) *Controller {
	t.Helper()
	c := NewController(m, DefaultConfig(), nil)
	t.Cleanup(c.Close)
	return c
}

func startSession(t *testing.T, c *Controller) {
	t.Helper()
	require.NoError(t, c.StartSession(context.Background()))
	c.queue.Wait()
}

func TestController_StartsIdle(t *testing.T) {
	c := newTestController(t, api.NewMockAPI())
	s := c.Snapshot()
	assert.Equal(t, PhaseIdle, s.Phase)
	assert.Nil(t, s.Problem)
	assert.False(t, s.CanSubmit())
}

func TestController_CorrectAnswer(t *testing.T) {
	m := api.NewMockAPI(testProblem(1))
	m.AddFeedback(api.MockFeedback{Feedback: &api.Feedback{Correct: true, CorrectAnswer: 7, Explanation: "3 + 4 = 7"}})
	c := newTestController(t, m)
	startSession(t, c)

	s := c.Snapshot()
	require.NotNil(t, s.Problem)
	assert.Equal(t, 1, s.Problem.ID)
	assert.NotEmpty(t, s.SessionID)
	assert.True(t, s.CanSubmit())

	require.NoError(t, c.SubmitAnswer(context.Background(), " 7 "))

	s = c.Snapshot()
	require.NotNil(t, s.Feedback)
	assert.True(t, s.Feedback.Correct)
	assert.Equal(t, Stats{Total: 1, Correct: 1}, s.Stats)
	assert.False(t, s.CanSubmit())

	calls := m.CheckCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, api.CheckCall{ProblemID: 1, Answer: 7}, calls[0])
}

func TestController_IncorrectAnswer(t *testing.T) {
	m := api.NewMockAPI(testProblem(1))
	m.AddFeedback(api.MockFeedback{Feedback: &api.Feedback{Correct: false, CorrectAnswer: 7, Explanation: "3 + 4 = 7"}})
	c := newTestController(t, m)
	startSession(t, c)

	require.NoError(t, c.SubmitAnswer(context.Background(), "6"))
	assert.Equal(t, Stats{Total: 1, Incorrect: 1}, c.Snapshot().Stats)
}

func TestController_ExplanationWithoutAnswerCountsSkipOnce(t *testing.T) {
	m := api.NewMockAPI(testProblem(1))
	c := newTestController(t, m)
	startSession(t, c)

	require.NoError(t, c.ShowExplanation())
	require.NoError(t, c.ShowExplanation())

	s := c.Snapshot()
	assert.True(t, s.ExplanationVisible)
	assert.True(t, s.Skipped)
	assert.Equal(t, Stats{Total: 1, Skipped: 1}, s.Stats)
	assert.False(t, s.CanSubmit())

	err := c.SubmitAnswer(context.Background(), "7")
	assert.ErrorIs(t, err, ErrAlreadyAnswered)
	assert.Empty(t, m.CheckCalls())
}

func TestController_ExplanationAfterAnswerIsNotSkip(t *testing.T) {
	m := api.NewMockAPI(testProblem(1))
	m.AddFeedback(api.MockFeedback{Feedback: &api.Feedback{Correct: true, CorrectAnswer: 7}})
	c := newTestController(t, m)
	startSession(t, c)

	require.NoError(t, c.SubmitAnswer(context.Background(), "7"))
	require.NoError(t, c.ShowExplanation())

	s := c.Snapshot()
	assert.True(t, s.ExplanationVisible)
	assert.False(t, s.Skipped)
	assert.Equal(t, Stats{Total: 1, Correct: 1}, s.Stats)
}

func TestController_EmptyInputMakesNoCall(t *testing.T) {
	m := api.NewMockAPI(testProblem(1))
	c := newTestController(t, m)
	startSession(t, c)

	for _, input := range []string{"", "   ", "seven"} {
		err := c.SubmitAnswer(context.Background(), input)
		assert.True(t, api.IsValidationError(err), "input %q: got %v", input, err)
	}

	s := c.Snapshot()
	assert.Empty(t, m.CheckCalls())
	assert.Nil(t, s.Feedback)
	assert.Equal(t, Stats{}, s.Stats)
	assert.True(t, s.CanSubmit())
}

func TestController_ResubmitRefused(t *testing.T) {
	m := api.NewMockAPI(testProblem(1))
	m.AddFeedback(api.MockFeedback{Feedback: &api.Feedback{Correct: false, CorrectAnswer: 7}})
	c := newTestController(t, m)
	startSession(t, c)

	require.NoError(t, c.SubmitAnswer(context.Background(), "5"))
	assert.ErrorIs(t, c.SubmitAnswer(context.Background(), "7"), ErrAlreadyAnswered)
	assert.Len(t, m.CheckCalls(), 1)
	assert.Equal(t, 1, c.Snapshot().Stats.Total)
}

func TestController_TenAnswersEightCorrect(t *testing.T) {
	m := api.NewMockAPI()
	for i := range 10 {
		m.AddFeedback(api.MockFeedback{Feedback: &api.Feedback{Correct: i < 8, CorrectAnswer: 1}})
	}
	c := newTestController(t, m)
	startSession(t, c)

	for i := range 10 {
		if i > 0 {
			require.NoError(t, c.NextProblem(context.Background()))
		}
		require.NoError(t, c.SubmitAnswer(context.Background(), "1"))
	}

	summary, err := c.EndSession()
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 10, Correct: 8, Incorrect: 2}, summary.Stats)
	assert.Equal(t, 80, summary.AccuracyPercent)
	assert.Equal(t, LevelExcellent, summary.Celebration.Level)
}

func TestController_NextProblemUsesQueue(t *testing.T) {
	m := api.NewMockAPI()
	c := newTestController(t, m)
	startSession(t, c)

	// One direct fetch plus a full pre-fetch batch.
	assert.Equal(t, 5, m.FetchCalls())
	assert.Equal(t, 4, c.Snapshot().Queued)

	first := c.Snapshot().Problem.ID
	require.NoError(t, c.NextProblem(context.Background()))
	c.queue.Wait()

	s := c.Snapshot()
	assert.NotEqual(t, first, s.Problem.ID)
	assert.Equal(t, 3, s.Queued)
	assert.Equal(t, 5, m.FetchCalls(), "queue at low-water mark should not refill")
}

func TestController_NextProblemResetsProblemState(t *testing.T) {
	m := api.NewMockAPI(testProblem(1))
	c := newTestController(t, m)
	startSession(t, c)

	require.NoError(t, c.ShowExplanation())
	seq := c.Snapshot().ProblemSeq
	require.NoError(t, c.NextProblem(context.Background()))

	s := c.Snapshot()
	assert.NotEqual(t, seq, s.ProblemSeq)
	assert.False(t, s.ExplanationVisible)
	assert.False(t, s.Skipped)
	assert.Nil(t, s.Feedback)
	assert.True(t, s.CanSubmit())
	assert.Equal(t, Stats{Total: 1, Skipped: 1}, s.Stats)
}

func TestController_NextProblemFetchesWhenQueueEmpty(t *testing.T) {
	m := api.NewMockAPI(testProblem(1), testProblem(2))
	c := NewController(m, Config{PrefetchBatch: 0, LowWater: 0}, nil)
	t.Cleanup(c.Close)
	startSession(t, c)

	assert.Equal(t, 0, c.Snapshot().Queued)
	require.NoError(t, c.NextProblem(context.Background()))

	s := c.Snapshot()
	require.NotNil(t, s.Problem)
	assert.Equal(t, 2, s.Problem.ID)
	assert.Equal(t, 2, m.FetchCalls())
}

func TestController_NotActive(t *testing.T) {
	c := newTestController(t, api.NewMockAPI())
	ctx := context.Background()

	assert.ErrorIs(t, c.NextProblem(ctx), ErrNotActive)
	assert.ErrorIs(t, c.SubmitAnswer(ctx, "3"), ErrNotActive)
	assert.ErrorIs(t, c.ShowExplanation(), ErrNotActive)
	_, err := c.EndSession()
	assert.ErrorIs(t, err, ErrNotActive)
}

func TestController_AlreadyActive(t *testing.T) {
	c := newTestController(t, api.NewMockAPI())
	startSession(t, c)
	assert.ErrorIs(t, c.StartSession(context.Background()), ErrAlreadyActive)
}

func TestController_EndSessionThenRestart(t *testing.T) {
	m := api.NewMockAPI()
	m.AddFeedback(api.MockFeedback{Feedback: &api.Feedback{Correct: true}})
	c := newTestController(t, m)
	startSession(t, c)
	firstID := c.Snapshot().SessionID

	require.NoError(t, c.SubmitAnswer(context.Background(), "1"))
	summary, err := c.EndSession()
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Stats.Total)

	s := c.Snapshot()
	assert.Equal(t, PhaseSummary, s.Phase)
	assert.Nil(t, s.Problem)
	assert.Equal(t, 0, s.Queued)
	assert.Equal(t, 1, s.Stats.Total, "stats stay readable after end")
	assert.Equal(t, summary, c.Summary())

	startSession(t, c)
	s = c.Snapshot()
	assert.Equal(t, PhaseActive, s.Phase)
	assert.NotEqual(t, firstID, s.SessionID)
	assert.Equal(t, Stats{}, s.Stats)
}

func TestController_EndDuringStartDiscardsFetch(t *testing.T) {
	m := api.NewMockAPI(testProblem(1))
	m.Hold()
	c := newTestController(t, m)

	done := make(chan error, 1)
	go func() { done <- c.StartSession(context.Background()) }()

	require.Eventually(t, func() bool { return c.Snapshot().Loading }, time.Second, time.Millisecond)

	_, err := c.EndSession()
	require.NoError(t, err)
	m.Release()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrStale)
	case <-time.After(2 * time.Second):
		t.Fatal("StartSession did not return")
	}

	s := c.Snapshot()
	assert.Equal(t, PhaseSummary, s.Phase)
	assert.Nil(t, s.Problem)
	assert.False(t, s.Loading)
}

func TestController_StartFetchFailure(t *testing.T) {
	m := api.NewMockAPI()
	m.AddProblem(api.MockProblem{Err: &api.NetworkError{Op: "fetch problem", StatusCode: 500}})
	c := newTestController(t, m)

	err := c.StartSession(context.Background())
	require.Error(t, err)
	assert.True(t, api.IsNetworkError(err))
	c.queue.Wait()

	s := c.Snapshot()
	assert.Equal(t, PhaseActive, s.Phase)
	assert.Nil(t, s.Problem)
	assert.Error(t, s.Err)
	assert.False(t, s.Loading)

	// Background pre-fetch still ran, so the learner can recover.
	require.NoError(t, c.NextProblem(context.Background()))
	s = c.Snapshot()
	assert.NotNil(t, s.Problem)
	assert.NoError(t, s.Err)
}

func TestController_NextDuringCheckDiscardsVerdict(t *testing.T) {
	m := api.NewMockAPI(testProblem(1), testProblem(2))
	m.AddFeedback(api.MockFeedback{Feedback: &api.Feedback{Correct: true}})
	m.AddFeedback(api.MockFeedback{Feedback: &api.Feedback{Correct: false}})
	c := newTestController(t, m)
	startSession(t, c)
	ctx := context.Background()

	m.HoldChecks()
	done := make(chan error, 1)
	go func() { done <- c.SubmitAnswer(ctx, "7") }()
	require.Eventually(t, func() bool { return m.Checking() == 1 }, time.Second, time.Millisecond)

	require.NoError(t, c.NextProblem(ctx))
	m.ReleaseChecks()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrStale)
	case <-time.After(2 * time.Second):
		t.Fatal("SubmitAnswer did not return")
	}

	s := c.Snapshot()
	require.NotNil(t, s.Problem)
	assert.Equal(t, 2, s.Problem.ID)
	assert.Nil(t, s.Feedback, "late verdict must not attach to the new problem")
	assert.False(t, s.Checking)
	assert.Equal(t, Stats{}, s.Stats)

	require.NoError(t, c.SubmitAnswer(ctx, "3"))
	assert.Equal(t, Stats{Total: 1, Incorrect: 1}, c.Snapshot().Stats)

	calls := m.CheckCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, 1, calls[0].ProblemID)
	assert.Equal(t, 2, calls[1].ProblemID)
}

func TestController_EndDuringDirectFetchDiscardsProblem(t *testing.T) {
	m := api.NewMockAPI(testProblem(1), testProblem(2))
	c := NewController(m, Config{PrefetchBatch: 0, LowWater: 0}, nil)
	t.Cleanup(c.Close)
	startSession(t, c)
	require.Equal(t, 0, c.Snapshot().Queued)

	m.Hold()
	done := make(chan error, 1)
	go func() { done <- c.NextProblem(context.Background()) }()
	require.Eventually(t, func() bool { return m.InFlight() == 1 }, time.Second, time.Millisecond)
	assert.True(t, c.Snapshot().Loading)

	summary, err := c.EndSession()
	require.NoError(t, err)
	m.Release()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrStale)
	case <-time.After(2 * time.Second):
		t.Fatal("NextProblem did not return")
	}

	s := c.Snapshot()
	assert.Equal(t, PhaseSummary, s.Phase)
	assert.Nil(t, s.Problem)
	assert.False(t, s.Loading)
	assert.Equal(t, summary.Stats, s.Stats)
}

func TestController_CheckFailureKeepsStats(t *testing.T) {
	m := api.NewMockAPI(testProblem(1))
	c := newTestController(t, m)
	startSession(t, c)

	// No canned feedback: the mock answers 503.
	err := c.SubmitAnswer(context.Background(), "7")
	require.Error(t, err)
	var netErr *api.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, 503, netErr.StatusCode)

	s := c.Snapshot()
	assert.Equal(t, Stats{}, s.Stats)
	assert.Nil(t, s.Feedback)
	assert.Error(t, s.Err)
	assert.True(t, s.CanSubmit(), "learner may retry after a failed check")

	m.AddFeedback(api.MockFeedback{Feedback: &api.Feedback{Correct: true, CorrectAnswer: 7}})
	require.NoError(t, c.SubmitAnswer(context.Background(), "7"))
	assert.Equal(t, Stats{Total: 1, Correct: 1}, c.Snapshot().Stats)
}

func TestController_SnapshotIsCopy(t *testing.T) {
	c := newTestController(t, api.NewMockAPI(testProblem(1)))
	startSession(t, c)

	s := c.Snapshot()
	s.Problem.Question = "changed"
	assert.NotEqual(t, "changed", c.Snapshot().Problem.Question)
}
