package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// Client talks to the problem service over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

var _ ProblemAPI = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client. The client is copied,
// so later options never modify the caller's value.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a Client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  http.DefaultClient,
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := *c.client
	hc.Timeout = c.timeout
	c.client = &hc
	return c
}

// BaseURL returns the service root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchProblem issues GET /problem.
func (c *Client) FetchProblem(ctx context.Context) (*Problem, error) {
	const op = "fetch problem"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/problem", nil)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	raw, err := c.do(op, req)
	if err != nil {
		return nil, err
	}

	if err := validateResponse(op, ProblemSchema, raw); err != nil {
		return nil, err
	}

	var p Problem
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, &ErrInvalidResponse{Op: op, Content: raw, Err: err}
	}
	return &p, nil
}

// CheckAnswer issues POST /check_answer.
func (c *Client) CheckAnswer(ctx context.Context, problemID int, answer float64) (*Feedback, error) {
	const op = "check answer"

	body, err := json.Marshal(checkRequest{ProblemID: problemID, UserAnswer: answer})
	if err != nil {
		return nil, fmt.Errorf("%s: encode request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/check_answer", bytes.NewReader(body))
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	raw, err := c.do(op, req)
	if err != nil {
		return nil, err
	}

	if err := validateResponse(op, FeedbackSchema, raw); err != nil {
		return nil, err
	}

	var fb Feedback
	if err := json.Unmarshal(raw, &fb); err != nil {
		return nil, &ErrInvalidResponse{Op: op, Content: raw, Err: err}
	}
	return &fb, nil
}

// do sends req and returns the body of a 2xx response.
func (c *Client) do(op string, req *http.Request) (json.RawMessage, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &NetworkError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{Op: op, StatusCode: resp.StatusCode}
	}
	return raw, nil
}
