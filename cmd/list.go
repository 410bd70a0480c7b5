package cmd

import (
	"fmt"
	"io"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/bank"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

// promptWidth caps the prompt column of the listing.
const promptWidth = 60

var listCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "List the questions of a bank",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 1 {
			path = args[0]
		} else {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			path = cfg.Bank
		}

		store, err := loadBank(path)
		if err != nil {
			return err
		}
		printBank(cmd.OutOrStdout(), store)
		return nil
	},
}

func printBank(out io.Writer, store *bank.Store) {
	rows := make([][]string, 0, store.Len())
	for _, q := range store.All() {
		prompt := q.Prompt
		if r := []rune(prompt); len(r) > promptWidth {
			prompt = string(r[:promptWidth-3]) + "..."
		}
		rows = append(rows, []string{
			strconv.Itoa(q.Index + 1),
			string(q.Kind),
			prompt,
			strconv.Itoa(len(q.Options)),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("#", "Type", "Question", "Options").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Foreground(theme.Primary).Bold(true)
			}
			return style
		})

	if title := store.Title(); title != "" {
		lipgloss.Fprintln(out, theme.Title.Render(title))
	}
	lipgloss.Fprintln(out, t.Render())
	fmt.Fprintf(out, "\n%d questions from %s\n", store.Len(), store.Source())
}
