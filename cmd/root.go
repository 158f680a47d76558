package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathchallenge/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "mathchallenge",
	Short: "Math word-problem practice in the terminal",
	Long: `mathchallenge fetches word problems from a problem service, checks your
answers and keeps score for the session.

The service address defaults to http://localhost:8000 and can be set with
--api-url or MATHCHALLENGE_API_URL.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("api-url", "", "Problem service base URL (overrides MATHCHALLENGE_API_URL)")
	flags.Duration("timeout", 0, "Per-request timeout, e.g. 5s (overrides MATHCHALLENGE_TIMEOUT)")
	flags.Int("prefetch", -1, "Problems to keep pre-fetched (overrides MATHCHALLENGE_PREFETCH)")
	flags.String("log-file", "", "Write debug logs to this file (overrides MATHCHALLENGE_LOG)")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(problemCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig builds the configuration from the environment, then applies
// any flags that were set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.ConfigFromEnv()
	flags := cmd.Flags()

	if flags.Changed("api-url") {
		cfg.APIBaseURL, _ = flags.GetString("api-url")
	}
	if flags.Changed("timeout") {
		cfg.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("prefetch") {
		cfg.PrefetchBatch, _ = flags.GetInt("prefetch")
	}
	if flags.Changed("log-file") {
		cfg.LogFile, _ = flags.GetString("log-file")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
