package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathchallenge/internal/session"
)

var problemCmd = &cobra.Command{
	Use:   "problem",
	Short: "Fetch a single problem and print it (connectivity check)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger, closeLog, err := plainLogger(cfg, verbose)
		if err != nil {
			return err
		}
		defer closeLog()

		client := newAPI(cfg, logger)
		p, err := client.FetchProblem(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch problem from %s: %w", cfg.APIBaseURL, err)
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(p)
		}
		printProblem(out, session.State{Problem: p})
		return nil
	},
}

func init() {
	problemCmd.Flags().Bool("json", false, "Print the raw problem as JSON")
	problemCmd.Flags().BoolP("verbose", "v", false, "Log requests to stderr")
}
