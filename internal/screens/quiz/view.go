package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	snap := s.session.Snapshot()
	tw := layout.TextWidth(width)

	var b strings.Builder
	b.WriteString(s.renderInfoLine(snap, tw, layout.IsCompactWidth(width)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", tw)))
	b.WriteString("\n")

	done := snap.Position
	if snap.Revealed {
		done++
	}
	b.WriteString(components.NewProgressBar("", done, snap.TotalInPass, tw).View())
	b.WriteString("\n\n")

	if s.notice != "" {
		b.WriteString(theme.Warning.Render(s.notice))
		b.WriteString("\n\n")
	}

	q := snap.Question
	b.WriteString(theme.Prompt.Width(tw).Render(q.Prompt))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(q.Kind.Label()))
	if q.Image != "" {
		b.WriteString(theme.Hint.Render("  ·  image: " + q.Image))
	}
	b.WriteString("\n\n")

	if q.Kind.IsChoice() {
		b.WriteString(s.options.View(marks(snap), tw))
	} else {
		b.WriteString(s.input.View())
	}

	if snap.Revealed {
		b.WriteString("\n\n")
		b.WriteString(s.renderFeedback(snap))
	}

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Render(s.errMsg))
	}

	block := lipgloss.NewStyle().Width(tw).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}

// renderInfoLine shows the position on the left and the round on the right.
func (s *QuizScreen) renderInfoLine(snap qz.Snapshot, width int, compact bool) string {
	pos := fmt.Sprintf("Question %d of %d", snap.Position+1, snap.TotalInPass)
	round := "Round"
	if compact {
		pos = fmt.Sprintf("Q %d/%d", snap.Position+1, snap.TotalInPass)
		round = "R"
	}
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(pos)

	right := fmt.Sprintf("%s %d", round, snap.Pass)
	if snap.RetryCount > 0 {
		right += fmt.Sprintf("  ↻ %d", snap.RetryCount)
	}
	right = lipgloss.NewStyle().Foreground(theme.TextDim).Render(right)

	pad := width - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 1 {
		return left + " " + right
	}
	return left + strings.Repeat(" ", pad) + right
}

func (s *QuizScreen) renderFeedback(snap qz.Snapshot) string {
	var b strings.Builder
	if snap.LastCorrect {
		b.WriteString(theme.Correct.Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("Not quite"))
		b.WriteString("\n")
		b.WriteString(theme.Body.Render("Correct answer: " + qz.CorrectText(snap.Question)))
	}

	b.WriteString("\n")
	switch {
	case s.waiting:
		b.WriteString(theme.Hint.Render("moving on..."))
	case snap.Complete:
		b.WriteString(theme.Hint.Render("press Enter for your results"))
	default:
		b.WriteString(theme.Hint.Render("press Enter to continue"))
	}
	return b.String()
}

// marks translates session state into option decorations.
func marks(snap qz.Snapshot) components.OptionMarks {
	m := components.OptionMarks{
		Selected: snap.Pending.Selected,
		Revealed: snap.Revealed,
	}
	if !snap.Revealed {
		return m
	}
	for i := range snap.Question.Options {
		if qz.IsCorrectOption(snap.Question, i) {
			m.Correct = append(m.Correct, i)
		}
	}
	return m
}

