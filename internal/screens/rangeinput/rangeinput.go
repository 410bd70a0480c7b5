package rangeinput

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/quizbox/internal/bank"
	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
	quizscreen "github.com/abhisek/quizbox/internal/screens/quiz"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

// Focusable fields, in tab order.
const (
	focusFrom = iota
	focusTo
	focusStart
	focusBack
	focusCount
)

// confirmMsg is sent by the Start button.
type confirmMsg struct{}

// RangeScreen asks for the 1-based range of questions to practice.
type RangeScreen struct {
	store *bank.Store
	opts  quiz.Options

	from  components.TextInput
	to    components.TextInput
	start components.Button
	back  components.Button
	focus int
	err   string
}

var _ screen.Screen = (*RangeScreen)(nil)
var _ screen.KeyHintProvider = (*RangeScreen)(nil)

// New creates the range form for opts.Mode.
func New(store *bank.Store, opts quiz.Options) *RangeScreen {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	digits := len(strconv.Itoa(store.Len()))

	r := &RangeScreen{
		store: store,
		opts:  opts,
		from:  components.NewTextInput("From", "1", true, digits),
		to:    components.NewTextInput("To  ", strconv.Itoa(store.Len()), true, digits),
		start: components.NewButton("Start", func() tea.Cmd {
			return func() tea.Msg { return confirmMsg{} }
		}),
		back: components.NewButton("Back", func() tea.Cmd {
			return func() tea.Msg { return router.PopScreenMsg{} }
		}),
	}
	r.to.Blur()
	return r
}

func (r *RangeScreen) Init() tea.Cmd {
	return r.from.Init()
}

func (r *RangeScreen) Title() string {
	return r.opts.Mode.Title()
}

func (r *RangeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (r *RangeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case confirmMsg:
		return r, r.confirm()

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			return r, r.setFocus((r.focus + 1) % focusCount)
		case "shift+tab", "up":
			return r, r.setFocus((r.focus + focusCount - 1) % focusCount)
		case "enter":
			switch r.focus {
			case focusFrom:
				return r, r.setFocus(focusTo)
			case focusTo:
				return r, r.confirm()
			}
		}
	}

	var cmd tea.Cmd
	switch r.focus {
	case focusFrom:
		r.from, cmd = r.from.Update(msg)
		r.err = ""
	case focusTo:
		r.to, cmd = r.to.Update(msg)
		r.err = ""
	case focusStart:
		r.start, cmd = r.start.Update(msg)
	case focusBack:
		r.back, cmd = r.back.Update(msg)
	}
	return r, cmd
}

func (r *RangeScreen) setFocus(f int) tea.Cmd {
	r.focus = f
	r.from.Blur()
	r.to.Blur()
	r.start.Focused = f == focusStart
	r.back.Focused = f == focusBack

	switch f {
	case focusFrom:
		return r.from.Focus()
	case focusTo:
		return r.to.Focus()
	}
	return nil
}

// requested reads the typed range. Empty fields are zero, which clamping
// turns into the first and last question.
func (r *RangeScreen) requested() quiz.Range {
	return quiz.Range{Start: bound(r.from), End: bound(r.to)}
}

func bound(in components.TextInput) int {
	v, err := in.NumericValue()
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
		return math.MaxInt
	}
	if err != nil {
		return 0
	}
	return v
}

// confirm starts the session or keeps the form open with an error.
func (r *RangeScreen) confirm() tea.Cmd {
	opts := r.opts
	opts.Range = r.requested()

	sess, err := quiz.Start(r.store, opts)
	if err != nil {
		r.err = err.Error()
		opts.Logger.Warn("session refused to start", zap.Error(err))
		return nil
	}
	next := quizscreen.New(sess, opts.Logger)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (r *RangeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	total := r.store.Len()
	eff := quiz.ClampRange(r.requested(), total)

	var b strings.Builder
	b.WriteString(theme.Title.Render(r.opts.Mode.Title()))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Pick questions between 1 and %d", total)))
	b.WriteString("\n\n")

	fields := lipgloss.JoinVertical(lipgloss.Left, r.from.View(), r.to.View())
	b.WriteString(components.Card(fields, cw))
	b.WriteString("\n")

	preview := fmt.Sprintf("Questions %d to %d (%d)", eff.Start, eff.End, eff.Len())
	b.WriteString(theme.Hint.Render(preview))
	b.WriteString("\n")
	if r.opts.ShuffleOptions {
		b.WriteString(theme.Warning.Render("Answer options will be shuffled"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, r.start.View(), "  ", r.back.View()))

	if r.err != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Render(r.err))
	}

	content := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(b.String())
	return components.Panel(content, width, height)
}
