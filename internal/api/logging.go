package api

import (
	"context"
	"log"
	"time"
)

// LoggingAPI is a decorator that logs every call with its latency and outcome.
type LoggingAPI struct {
	inner  ProblemAPI
	logger *log.Logger
}

// WithLogging wraps a ProblemAPI with request logging. A nil logger
// returns inner unchanged.
func WithLogging(inner ProblemAPI, logger *log.Logger) ProblemAPI {
	if logger == nil {
		return inner
	}
	return &LoggingAPI{inner: inner, logger: logger}
}

func (l *LoggingAPI) FetchProblem(ctx context.Context) (*Problem, error) {
	start := time.Now()
	p, err := l.inner.FetchProblem(ctx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		l.logger.Printf("GET /problem failed after %dms: %v", latency, err)
		return nil, err
	}
	l.logger.Printf("GET /problem ok id=%d type=%q steps=%d in %dms", p.ID, p.ProblemType, p.NumSteps, latency)
	return p, nil
}

func (l *LoggingAPI) CheckAnswer(ctx context.Context, problemID int, answer float64) (*Feedback, error) {
	start := time.Now()
	fb, err := l.inner.CheckAnswer(ctx, problemID, answer)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		l.logger.Printf("POST /check_answer id=%d failed after %dms: %v", problemID, latency, err)
		return nil, err
	}
	l.logger.Printf("POST /check_answer ok id=%d answer=%g correct=%v in %dms", problemID, answer, fb.Correct, latency)
	return fb, nil
}
