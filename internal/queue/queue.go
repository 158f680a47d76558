// Package queue keeps a small FIFO buffer of pre-fetched problems so the
// next question can be shown without waiting on the network.
package queue

import (
	"context"
	"io"
	"log"
	"sync"

	"github.com/abhisek/mathchallenge/internal/api"
)

// Fetcher is the subset of api.ProblemAPI the queue needs.
type Fetcher interface {
	FetchProblem(ctx context.Context) (*api.Problem, error)
}

// Config controls refill behaviour.
type Config struct {
	// LowWater is the length below which RefillIfLow starts fetching.
	LowWater int

	// Target is the number of buffered plus in-flight problems a refill
	// aims for. Outstanding fetches, including cancelled ones from before a
	// Reset that have not returned yet, never exceed it.
	Target int
}

// DefaultConfig returns the stock low-water mark and batch size.
func DefaultConfig() Config {
	return Config{
		LowWater: 3,
		Target:   4,
	}
}

// Queue is a FIFO of pre-fetched problems. It is safe for concurrent use.
type Queue struct {
	fetcher Fetcher
	cfg     Config
	logger  *log.Logger

	mu         sync.Mutex
	items      []*api.Problem
	inFlight   int
	stale      int
	generation uint64
	genCtx     context.Context
	genCancel  context.CancelFunc

	wg sync.WaitGroup
}

// New creates an empty Queue. A nil logger discards log output.
func New(fetcher Fetcher, cfg Config, logger *log.Logger) *Queue {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	genCtx, genCancel := context.WithCancel(context.Background())
	return &Queue{
		fetcher:   fetcher,
		cfg:       cfg,
		logger:    logger,
		genCtx:    genCtx,
		genCancel: genCancel,
	}
}

// Enqueue appends p to the tail.
func (q *Queue) Enqueue(p *api.Problem) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, p)
}

// Dequeue removes and returns the oldest problem.
// Returns (nil, false) when the queue is empty.
func (q *Queue) Dequeue() (*api.Problem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	p := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return p, true
}

// Len returns the number of buffered problems.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// InFlight returns the number of outstanding fetches for the current
// generation.
func (q *Queue) InFlight() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.inFlight
}

// Stale returns the number of fetches cancelled by Reset that have not
// returned yet. They still count against the target.
func (q *Queue) Stale() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.stale
}

// Generation returns the current generation, bumped by every Reset.
func (q *Queue) Generation() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.generation
}

// RefillIfLow starts background fetches when the queue is below the
// low-water mark. It never blocks and returns the number of fetches started.
func (q *Queue) RefillIfLow(ctx context.Context) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) >= q.cfg.LowWater {
		return 0
	}
	return q.startLocked(ctx, q.cfg.Target)
}

// Prefetch starts up to n background fetches, bounded by the target batch.
// It returns the number of fetches started.
func (q *Queue) Prefetch(ctx context.Context, n int) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.startLocked(ctx, n)
}

// Reset drops every buffered problem and cancels outstanding fetches.
// Results of fetches started before the reset are discarded on arrival.
func (q *Queue) Reset() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.genCancel()
	q.genCtx, q.genCancel = context.WithCancel(context.Background())
	q.generation++
	q.items = nil
	q.stale += q.inFlight
	q.inFlight = 0
}

// Wait blocks until every outstanding fetch, stale or not, has settled.
func (q *Queue) Wait() {
	q.wg.Wait()
}

// startLocked launches min(want, Target-len-inFlight-stale) fetches. q.mu must be held.
func (q *Queue) startLocked(ctx context.Context, want int) int {
	room := q.cfg.Target - len(q.items) - q.inFlight - q.stale
	n := min(want, room)
	if n <= 0 {
		return 0
	}

	gen := q.generation
	genCtx := q.genCtx
	for range n {
		q.inFlight++
		q.wg.Add(1)

		fctx, cancel := context.WithCancel(ctx)
		stop := context.AfterFunc(genCtx, cancel)
		go func() {
			defer q.wg.Done()
			defer cancel()
			defer stop()
			q.fetchOne(fctx, gen)
		}()
	}
	return n
}

func (q *Queue) fetchOne(ctx context.Context, gen uint64) {
	p, err := q.fetcher.FetchProblem(ctx)

	q.mu.Lock()
	defer q.mu.Unlock()

	if gen != q.generation {
		q.stale--
		if err == nil {
			q.logger.Printf("queue: discarding stale problem id=%d (generation %d, now %d)", p.ID, gen, q.generation)
		}
		return
	}

	q.inFlight--
	if err != nil {
		q.logger.Printf("queue: prefetch failed: %v", err)
		return
	}
	q.items = append(q.items, p)
}
