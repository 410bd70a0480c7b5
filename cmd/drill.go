package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/bank"
	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

var drillCmd = &cobra.Command{
	Use:   "drill",
	Short: "Answer questions line by line, without the full-screen UI",
	Long: `Run a quiz on plain stdin/stdout.

Choice questions take the option number; multi-select questions take every
number on one line ("1 3" or "1,3"). Missed questions come back in extra
rounds, just like the full-screen quiz.`,
	RunE: runDrillCmd,
}

func init() {
	drillCmd.Flags().String("mode", string(quiz.ModeSequential), "sequential, random-range or random-full")
	drillCmd.Flags().Int("from", 1, "First question of the range (1-based)")
	drillCmd.Flags().Int("to", 0, "Last question of the range (0 means the last one)")
	drillCmd.Flags().Uint64("seed", 0, "Seed for a reproducible question order")
}

func runDrillCmd(cmd *cobra.Command, args []string) error {
	modeVal, _ := cmd.Flags().GetString("mode")
	from, _ := cmd.Flags().GetInt("from")
	to, _ := cmd.Flags().GetInt("to")

	var policy quiz.Policy
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetUint64("seed")
		policy.Rand = quiz.Seeded(seed)
	}

	mode, err := quiz.ParseMode(modeVal)
	if err != nil {
		return err
	}

	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	sess, err := quiz.Start(rt.store, quiz.Options{
		Mode:           mode,
		Range:          quiz.Range{Start: from, End: to},
		ShuffleOptions: rt.cfg.ShuffleOptions,
		Policy:         policy,
		Logger:         rt.logger,
	})
	if err != nil {
		return fmt.Errorf("start quiz: %w", err)
	}

	_, err = runDrill(cmd.InOrStdin(), cmd.OutOrStdout(), sess)
	return err
}

// runDrill plays sess to completion over a line-oriented reader and
// writer. It stops early, without error, when in runs dry.
func runDrill(in io.Reader, out io.Writer, sess *quiz.Session) (quiz.Summary, error) {
	scanner := bufio.NewScanner(in)
	lastPass := 1

	for {
		snap := sess.Snapshot()
		if snap.Pass != lastPass {
			lastPass = snap.Pass
			lipgloss.Fprintln(out, theme.Warning.Render(
				fmt.Sprintf("Round %d: %d missed question(s)", snap.Pass, snap.TotalInPass)))
			fmt.Fprintln(out)
		}
		printQuestion(out, snap)

		var outcome *quiz.Outcome
		for outcome == nil {
			fmt.Fprint(out, "\nYour answer: ")
			if !scanner.Scan() {
				fmt.Fprintln(out, "\n(input closed)")
				return sess.Summary(), scanner.Err()
			}

			o, msg := answerLine(sess, snap.Question, scanner.Text())
			if msg != "" {
				fmt.Fprintln(out, msg)
				continue
			}
			outcome = o
		}

		if outcome.Correct {
			lipgloss.Fprintln(out, theme.Correct.Render("✓ Correct!"))
		} else {
			lipgloss.Fprintf(out, "%s Answer: %s\n", theme.Incorrect.Render("✗ Wrong."), outcome.CorrectText)
		}
		fmt.Fprintln(out)

		step, err := sess.Advance()
		if err != nil {
			return sess.Summary(), err
		}
		if step == quiz.StepCompleted {
			break
		}
	}

	sum := sess.Summary()
	fmt.Fprintf(out, "── Summary: %d correct, %d incorrect, %.0f%% accuracy over %d round(s) ──\n",
		sum.Stats.Correct, sum.Stats.Incorrect, sum.Accuracy*100, sum.Passes)
	return sum, nil
}

func printQuestion(out io.Writer, snap quiz.Snapshot) {
	q := snap.Question
	fmt.Fprintf(out, "── Question %d/%d ──\n", snap.Position+1, snap.TotalInPass)
	fmt.Fprintln(out, q.Prompt)
	if q.Image != "" {
		fmt.Fprintf(out, "(image: %s)\n", q.Image)
	}
	for i, opt := range q.Options {
		fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
	}
	fmt.Fprintf(out, "[%s]\n", q.Kind.Label())
}

// answerLine applies one line of input to the current question. It returns
// a hint instead of an outcome when the line could not be used.
func answerLine(sess *quiz.Session, q bank.Question, line string) (*quiz.Outcome, string) {
	line = strings.TrimSpace(line)

	if q.Kind == bank.KindInput {
		if line == "" {
			return nil, "(type an answer)"
		}
		sess.SetText(line)
		o, err := sess.Submit()
		if err != nil {
			return nil, err.Error()
		}
		return o, ""
	}

	picks, err := parsePicks(line, len(q.Options))
	if err != nil {
		return nil, err.Error()
	}
	if q.Kind == bank.KindSingle && len(picks) != 1 {
		return nil, fmt.Sprintf("pick one number between 1 and %d", len(q.Options))
	}

	for _, p := range picks {
		o, err := sess.SelectOption(p)
		if err != nil {
			return nil, err.Error()
		}
		if o != nil {
			return o, ""
		}
	}
	o, err := sess.Submit()
	if err != nil {
		return nil, err.Error()
	}
	return o, ""
}

// parsePicks turns "1 3" or "1,3" into distinct 0-based option indices.
func parsePicks(line string, n int) ([]int, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("enter option numbers between 1 and %d", n)
	}

	seen := make(map[int]bool, len(fields))
	picks := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil || v < 1 || v > n {
			return nil, fmt.Errorf("%q is not an option between 1 and %d", f, n)
		}
		if seen[v] {
			continue
		}
		seen[v] = true
		picks = append(picks, v-1)
	}
	return picks, nil
}
