package cmd

import (
	"errors"
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/bank"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

var checkCmd = &cobra.Command{
	Use:   "check [file...]",
	Short: "Validate question bank files",
	Long: `Load and validate question banks, listing every problem found.

Without arguments the configured bank is checked (or the built-in one).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := args
		if len(paths) == 0 {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			paths = []string{cfg.Bank}
		}
		return checkBanks(cmd.OutOrStdout(), paths)
	},
}

// checkBanks reports on every path and fails if any bank is invalid.
// An empty path stands for the built-in bank.
func checkBanks(out io.Writer, paths []string) error {
	failed := 0
	for _, path := range paths {
		name := path
		if name == "" {
			name = "(built-in)"
		}

		store, err := loadBank(path)
		if err == nil {
			lipgloss.Fprintf(out, "%s %s: %d questions\n", theme.Correct.Render("✓"), name, store.Len())
			continue
		}

		failed++
		lipgloss.Fprintf(out, "%s %s\n", theme.Incorrect.Render("✗"), name)

		var verr *bank.ValidationError
		if errors.As(err, &verr) {
			for _, issue := range verr.Issues {
				fmt.Fprintf(out, "    %s: %s\n", issue.Field, issue.Message)
			}
			continue
		}
		fmt.Fprintf(out, "    %v\n", err)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d bank(s) invalid", failed, len(paths))
	}
	return nil
}
