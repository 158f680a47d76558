package session

import (
	"context"
	"io"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/mathchallenge/internal/api"
	"github.com/abhisek/mathchallenge/internal/queue"
)

// Config controls session pacing.
type Config struct {
	// PrefetchBatch is how many problems are fetched in the background at
	// session start, and the size the queue is refilled to.
	PrefetchBatch int

	// LowWater is the queue length below which a refill starts.
	LowWater int
}

// DefaultConfig returns the stock pre-fetch settings.
func DefaultConfig() Config {
	qc := queue.DefaultConfig()
	return Config{
		PrefetchBatch: qc.Target,
		LowWater:      qc.LowWater,
	}
}

// Controller owns all session state and is the only place it changes.
// Blocking methods perform network I/O without holding the lock and apply
// their result only if the session (and problem) they started under is
// still current. It is safe for concurrent use.
type Controller struct {
	api     api.ProblemAPI
	queue   *queue.Queue
	tracker Tracker
	cfg     Config
	logger  *log.Logger

	mu         sync.Mutex
	generation uint64
	state      State
}

// NewController creates a controller in the idle phase. A nil logger
// discards log output.
func NewController(client api.ProblemAPI, cfg Config, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	q := queue.New(client, queue.Config{LowWater: cfg.LowWater, Target: cfg.PrefetchBatch}, logger)
	return &Controller{
		api:    client,
		queue:  q,
		cfg:    cfg,
		logger: logger,
		state:  State{Phase: PhaseIdle},
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	if s.Problem != nil {
		p := *s.Problem
		s.Problem = &p
	}
	if s.Feedback != nil {
		fb := *s.Feedback
		s.Feedback = &fb
	}
	s.Stats = c.tracker.Stats()
	s.Queued = c.queue.Len()
	return s
}

// Summary returns the summary of the current or last session.
func (c *Controller) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return BuildSummary(c.state.SessionID, c.tracker.Stats())
}

// StartSession resets the counters, fetches the first problem directly and
// then starts background pre-fetching. Allowed from idle or summary.
func (c *Controller) StartSession(ctx context.Context) error {
	c.mu.Lock()
	if c.state.Phase == PhaseActive {
		c.mu.Unlock()
		return ErrAlreadyActive
	}
	c.generation++
	gen := c.generation
	c.tracker.Start()
	c.queue.Reset()
	c.state = State{
		Phase:      PhaseActive,
		SessionID:  uuid.NewString(),
		ProblemSeq: c.state.ProblemSeq,
		Loading:    true,
	}
	sessionID := c.state.SessionID
	c.mu.Unlock()

	c.logger.Printf("session %s: started", sessionID)

	p, err := c.api.FetchProblem(ctx)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return ErrStale
	}
	c.state.Loading = false
	if err != nil {
		c.state.Err = err
		c.logger.Printf("session %s: fetch first problem: %v", sessionID, err)
	} else {
		c.showProblemLocked(p)
	}
	c.mu.Unlock()

	c.queue.Prefetch(context.Background(), c.cfg.PrefetchBatch)
	return err
}

// NextProblem replaces the current problem with the oldest pre-fetched one,
// or fetches directly when the queue is empty.
func (c *Controller) NextProblem(ctx context.Context) error {
	c.mu.Lock()
	if c.state.Phase != PhaseActive {
		c.mu.Unlock()
		return ErrNotActive
	}
	if c.state.Loading {
		c.mu.Unlock()
		return ErrBusy
	}

	if p, ok := c.queue.Dequeue(); ok {
		c.showProblemLocked(p)
		c.mu.Unlock()
		c.queue.RefillIfLow(context.Background())
		return nil
	}

	gen := c.generation
	sessionID := c.state.SessionID
	c.clearProblemLocked()
	c.state.Loading = true
	c.mu.Unlock()

	// The queue ran dry; keep the refill going while we wait.
	c.queue.RefillIfLow(context.Background())

	p, err := c.api.FetchProblem(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return ErrStale
	}
	c.state.Loading = false
	if err != nil {
		c.state.Err = err
		c.logger.Printf("session %s: fetch problem: %v", sessionID, err)
		return err
	}
	c.showProblemLocked(p)
	return nil
}

// SubmitAnswer parses input and checks it against the current problem.
// Unparseable input returns a *api.ValidationError without any network call.
func (c *Controller) SubmitAnswer(ctx context.Context, input string) error {
	answer, err := api.ParseAnswer(input)
	if err != nil {
		return err
	}

	c.mu.Lock()
	switch {
	case c.state.Phase != PhaseActive:
		c.mu.Unlock()
		return ErrNotActive
	case c.state.Problem == nil:
		c.mu.Unlock()
		return ErrNoProblem
	case c.state.Feedback != nil || c.state.Skipped:
		c.mu.Unlock()
		return ErrAlreadyAnswered
	case c.state.Checking:
		c.mu.Unlock()
		return ErrBusy
	}
	gen := c.generation
	seq := c.state.ProblemSeq
	problemID := c.state.Problem.ID
	sessionID := c.state.SessionID
	c.state.Checking = true
	c.state.Err = nil
	c.mu.Unlock()

	fb, err := c.api.CheckAnswer(ctx, problemID, answer)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation || seq != c.state.ProblemSeq {
		return ErrStale
	}
	c.state.Checking = false
	if err != nil {
		c.state.Err = err
		c.logger.Printf("session %s: check answer for problem %d: %v", sessionID, problemID, err)
		return err
	}
	c.state.Feedback = fb
	if err := c.tracker.RecordAnswer(fb.Correct); err != nil {
		return err
	}
	return nil
}

// ShowExplanation reveals the explanation for the current problem. Opening it
// before any answer was checked counts the problem as skipped, once.
func (c *Controller) ShowExplanation() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Phase != PhaseActive {
		return ErrNotActive
	}
	if c.state.Problem == nil {
		return ErrNoProblem
	}
	if c.state.Checking {
		return ErrBusy
	}

	if c.state.Feedback == nil && !c.state.Skipped {
		if err := c.tracker.RecordSkip(); err != nil {
			return err
		}
		c.state.Skipped = true
	}
	c.state.ExplanationVisible = true
	return nil
}

// EndSession freezes the counters and moves to the summary phase. Results of
// any request still in flight are discarded.
func (c *Controller) EndSession() (Summary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Phase != PhaseActive {
		return Summary{}, ErrNotActive
	}

	c.generation++
	c.tracker.End()
	c.queue.Reset()
	c.clearProblemLocked()
	c.state.Loading = false
	c.state.Phase = PhaseSummary

	summary := BuildSummary(c.state.SessionID, c.tracker.Stats())
	c.logger.Printf("session %s: ended total=%d correct=%d incorrect=%d skipped=%d",
		summary.SessionID, summary.Stats.Total, summary.Stats.Correct,
		summary.Stats.Incorrect, summary.Stats.Skipped)
	return summary, nil
}

// Close cancels background fetches and waits for them to settle.
func (c *Controller) Close() {
	c.queue.Reset()
	c.queue.Wait()
}

// showProblemLocked makes p current and resets per-problem state. c.mu must be held.
func (c *Controller) showProblemLocked(p *api.Problem) {
	c.clearProblemLocked()
	c.state.Problem = p
}

// clearProblemLocked drops the current problem and its transient state.
// Bumping ProblemSeq invalidates any answer check still in flight. c.mu must be held.
func (c *Controller) clearProblemLocked() {
	c.state.ProblemSeq++
	c.state.Problem = nil
	c.state.Feedback = nil
	c.state.ExplanationVisible = false
	c.state.Skipped = false
	c.state.Checking = false
	c.state.Err = nil
}
