package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds client configuration.
type Config struct {
	// APIBaseURL is the root of the problem service, e.g. "http://localhost:8000".
	// Endpoints /problem and /check_answer are resolved against it.
	APIBaseURL string

	// Timeout bounds a single HTTP request. Default: 10s.
	Timeout time.Duration

	// PrefetchBatch is how many problems the queue keeps warm. Default: 4.
	PrefetchBatch int

	// LowWater is the queue length below which a refill starts. Default: 3.
	LowWater int

	// LogFile receives debug logs. Empty means logs are discarded in TUI mode.
	LogFile string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		APIBaseURL:    "http://localhost:8000",
		Timeout:       10 * time.Second,
		PrefetchBatch: 4,
		LowWater:      3,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset or unparseable values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if u := os.Getenv("MATHCHALLENGE_API_URL"); u != "" {
		cfg.APIBaseURL = u
	}
	if t := os.Getenv("MATHCHALLENGE_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			cfg.Timeout = d
		}
	}
	if p := os.Getenv("MATHCHALLENGE_PREFETCH"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			cfg.PrefetchBatch = n
		}
	}
	if l := os.Getenv("MATHCHALLENGE_LOG"); l != "" {
		cfg.LogFile = l
	}

	return cfg
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("MATHCHALLENGE_API_URL is required")
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("invalid API URL %q: %w", c.APIBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid API URL %q: scheme must be http or https", c.APIBaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid API URL %q: missing host", c.APIBaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.PrefetchBatch < 0 {
		return fmt.Errorf("prefetch batch must not be negative, got %d", c.PrefetchBatch)
	}
	if c.LowWater < 0 {
		return fmt.Errorf("low-water mark must not be negative, got %d", c.LowWater)
	}
	return nil
}
