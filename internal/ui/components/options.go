package components

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/ui/theme"
)

// OptionList renders the answer options of a choice question and tracks
// the keyboard cursor. Selection itself lives in the quiz session.
type OptionList struct {
	Options []string
	Multi   bool
	Cursor  int
}

// NewOptionList creates a list with the cursor on the first option.
func NewOptionList(options []string, multi bool) OptionList {
	return OptionList{Options: options, Multi: multi}
}

// Update moves the cursor.
func (l OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if l.Cursor > 0 {
			l.Cursor--
		}
	case "down", "j":
		if l.Cursor < len(l.Options)-1 {
			l.Cursor++
		}
	}
	return l, nil
}

// OptionMarks carries what View needs to know about the answer.
type OptionMarks struct {
	Selected []int
	Revealed bool
	Correct  []int
}

// View renders one numbered line per option.
func (l OptionList) View(marks OptionMarks, width int) string {
	lines := make([]string, 0, len(l.Options))
	for i, opt := range l.Options {
		chosen := slices.Contains(marks.Selected, i)

		pointer := "  "
		if i == l.Cursor && !marks.Revealed {
			pointer = "▸ "
		}
		line := fmt.Sprintf("%s%s %d) %s", pointer, l.box(chosen), i+1, opt)

		var style lipgloss.Style
		switch {
		case marks.Revealed && slices.Contains(marks.Correct, i):
			style = theme.Correct
			line += "  ✓"
		case marks.Revealed && chosen:
			style = theme.Incorrect
			line += "  ✗"
		case marks.Revealed:
			style = theme.Disabled
		case i == l.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		lines = append(lines, style.Width(width).Render(line))
	}
	return strings.Join(lines, "\n")
}

func (l OptionList) box(chosen bool) string {
	switch {
	case l.Multi && chosen:
		return "[x]"
	case l.Multi:
		return "[ ]"
	case chosen:
		return "(•)"
	default:
		return "( )"
	}
}
