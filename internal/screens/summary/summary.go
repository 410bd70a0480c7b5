package summary

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

// SummaryScreen displays the results of a completed quiz.
type SummaryScreen struct {
	summary quiz.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary quiz.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Quiz complete!"))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderTable()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(verdict(sum)))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (s *SummaryScreen) renderTable() string {
	sum := s.summary
	rows := [][]string{
		{"Questions", strconv.Itoa(sum.Total)},
		{"Answers", strconv.Itoa(sum.Stats.Answered())},
		{"Correct", strconv.Itoa(sum.Stats.Correct)},
		{"Incorrect", strconv.Itoa(sum.Stats.Incorrect)},
		{"Rounds", strconv.Itoa(sum.Passes)},
		{"Accuracy", fmt.Sprintf("%.0f%%", sum.Accuracy*100)},
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 2)
			if row < 0 || col == 0 {
				return style.Foreground(theme.TextDim)
			}
			switch rows[row][0] {
			case "Correct":
				return style.Foreground(theme.Success).Bold(true)
			case "Incorrect":
				return style.Foreground(theme.Error).Bold(true)
			}
			return style.Foreground(theme.Text)
		}).
		Render()
}

// verdict is a one-line reaction to the first-try accuracy.
func verdict(sum quiz.Summary) string {
	switch {
	case sum.Stats.Incorrect == 0:
		return theme.Correct.Render("Flawless, every answer right the first time.")
	case sum.Accuracy >= 0.75:
		return theme.Correct.Render("Nicely done.")
	case sum.Passes > 2:
		return theme.Warning.Render("That took a few rounds. Worth another go.")
	default:
		return theme.Warning.Render("Keep practicing.")
	}
}
