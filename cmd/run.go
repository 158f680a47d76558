package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathchallenge/internal/api"
	"github.com/abhisek/mathchallenge/internal/app"
	"github.com/abhisek/mathchallenge/internal/config"
	"github.com/abhisek/mathchallenge/internal/session"
)

// runApp builds the client and controller and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file or nowhere.
	logger := log.New(io.Discard, "", 0)
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "mathchallenge")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = log.Default()
	}

	ctrl := newController(cfg, logger)
	defer ctrl.Close()

	logger.Printf("starting TUI against %s", cfg.APIBaseURL)
	return app.Run(app.Options{Controller: ctrl, BaseURL: cfg.APIBaseURL})
}

// newController wires the HTTP client, request logging and the session
// controller from cfg.
func newController(cfg config.Config, logger *log.Logger) *session.Controller {
	return session.NewController(newAPI(cfg, logger), sessionConfig(cfg), logger)
}

func newAPI(cfg config.Config, logger *log.Logger) api.ProblemAPI {
	client := api.NewClient(cfg.APIBaseURL, api.WithTimeout(cfg.Timeout))
	return api.WithLogging(client, logger)
}

func sessionConfig(cfg config.Config) session.Config {
	return session.Config{
		PrefetchBatch: cfg.PrefetchBatch,
		LowWater:      cfg.LowWater,
	}
}

// plainLogger returns the logger for non-TUI commands: the log file when
// configured, stderr when verbose, and a discarding logger otherwise.
func plainLogger(cfg config.Config, verbose bool) (*log.Logger, func(), error) {
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return log.New(f, "mathchallenge ", log.LstdFlags), func() { f.Close() }, nil
	}
	if verbose {
		return log.New(os.Stderr, "mathchallenge: ", log.LstdFlags), func() {}, nil
	}
	return log.New(io.Discard, "", 0), func() {}, nil
}
