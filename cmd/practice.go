package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathchallenge/internal/api"
	"github.com/abhisek/mathchallenge/internal/format"
	"github.com/abhisek/mathchallenge/internal/session"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Practice in plain line mode (no TUI)",
	Long: `Run a session on standard input and output.

Type a number to answer, "e" to show the explanation (counts as skipped if
you have not answered), "n" for the next problem and "q" to finish.`,
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

		ctrl := newController(cfg, logger)
		defer ctrl.Close()

		return runPractice(cmd.Context(), ctrl, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	practiceCmd.Flags().BoolP("verbose", "v", false, "Log requests to stderr")
}

// runPractice drives one session from line input until "q" or end of input,
// then prints the summary.
func runPractice(ctx context.Context, ctrl *session.Controller, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Fprintln(out, `Commands: a number to answer, "e" explanation, "n" next, "q" quit.`)
	fmt.Fprintln(out)

	if err := ctrl.StartSession(ctx); err != nil {
		fmt.Fprintf(out, "Could not load a problem: %v\nType n to try again.\n\n", err)
	} else {
		printProblem(out, ctrl.Snapshot())
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(line) {
		case "q", "quit":
			return finishPractice(ctrl, out)

		case "n", "next":
			if err := ctrl.NextProblem(ctx); err != nil {
				fmt.Fprintf(out, "Could not load a problem: %v\n\n", err)
				continue
			}
			printProblem(out, ctrl.Snapshot())

		case "e", "explain":
			if err := ctrl.ShowExplanation(); err != nil {
				fmt.Fprintf(out, "%v\n\n", err)
				continue
			}
			printExplanation(out, ctrl.Snapshot())

		case "":
			continue

		default:
			err := ctrl.SubmitAnswer(ctx, line)
			switch {
			case err == nil:
				printFeedback(out, ctrl.Snapshot())
			case api.IsValidationError(err):
				fmt.Fprintln(out, `Please enter a number (or "e", "n", "q").`)
			case errors.Is(err, session.ErrAlreadyAnswered):
				fmt.Fprintln(out, `Already answered. Type "n" for the next problem.`)
			case errors.Is(err, session.ErrNoProblem):
				fmt.Fprintln(out, `No problem loaded. Type "n" to fetch one.`)
			default:
				fmt.Fprintf(out, "Could not check your answer: %v\n", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return finishPractice(ctrl, out)
}

func finishPractice(ctrl *session.Controller, out io.Writer) error {
	sum, err := ctrl.EndSession()
	if err != nil {
		return err
	}
	st := sum.Stats
	fmt.Fprintf(out, "── %s %s ──\n", sum.Celebration.Emoji, sum.Celebration.Message)
	fmt.Fprintf(out, "Total: %d  Correct: %d  Incorrect: %d  Skipped: %d  Accuracy: %d%%\n",
		st.Total, st.Correct, st.Incorrect, st.Skipped, sum.AccuracyPercent)
	return nil
}

func printProblem(out io.Writer, st session.State) {
	p := st.Problem
	if p == nil {
		return
	}
	badges := []string{format.ProblemType(p.ProblemType)}
	if p.NumSteps > 0 {
		badges = append(badges, format.StepCount(p.NumSteps))
	}
	if p.Theme != "" {
		badges = append(badges, p.Theme)
	}

	fmt.Fprintf(out, "── Problem #%d [%s] ──\n", p.ID, strings.Join(badges, " · "))
	for _, s := range format.Sentences(p.Question) {
		fmt.Fprintln(out, s)
	}
	fmt.Fprintln(out)
}

func printFeedback(out io.Writer, st session.State) {
	fb := st.Feedback
	if fb == nil {
		return
	}
	if fb.Correct {
		fmt.Fprintln(out, "✓ Correct! Well done!")
	} else {
		fmt.Fprintf(out, "✗ Incorrect. The correct answer was %s.\n", format.Number(fb.CorrectAnswer))
	}
	fmt.Fprintf(out, "Score: %d/%d\n\n", st.Stats.Correct, st.Stats.Total)
}

func printExplanation(out io.Writer, st session.State) {
	if st.Feedback == nil {
		fmt.Fprintln(out, "Skipped. The worked solution is shown after an answer is checked.")
		fmt.Fprintln(out)
		return
	}
	fmt.Fprintln(out, "Step-by-Step Solution:")
	for _, step := range format.Steps(st.Feedback.Explanation) {
		fmt.Fprintln(out, "  "+step)
	}
	fmt.Fprintln(out)
}
