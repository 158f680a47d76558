package api

import "context"

// Problem is one math question served by the problem service.
type Problem struct {
	ID          int    `json:"problem_id"`
	Question    string `json:"question"`
	ProblemType string `json:"problem_type,omitempty"`
	NumSteps    int    `json:"num_steps,omitempty"`
	Theme       string `json:"theme,omitempty"`
}

// Feedback is the service's verdict on a submitted answer.
type Feedback struct {
	Correct       bool    `json:"correct"`
	CorrectAnswer float64 `json:"correct_answer"`
	Explanation   string  `json:"explanation"`
}

// checkRequest is the body of POST /check_answer.
type checkRequest struct {
	ProblemID  int     `json:"problem_id"`
	UserAnswer float64 `json:"user_answer"`
}

// ProblemAPI is the interface the rest of the client uses to talk to the
// problem service.
type ProblemAPI interface {
	// FetchProblem returns a freshly generated problem.
	FetchProblem(ctx context.Context) (*Problem, error)

	// CheckAnswer submits a numeric answer for the given problem.
	CheckAnswer(ctx context.Context, problemID int, answer float64) (*Feedback, error)
}
