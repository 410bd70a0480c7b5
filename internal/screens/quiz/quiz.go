package quiz

import (
	"fmt"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/quizbox/internal/bank"
	qz "github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/screens/summary"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
)

// QuizScreen runs one quiz session. Leaving the screen discards the
// session; auto-advances scheduled by it are then ignored.
type QuizScreen struct {
	session *qz.Session
	logger  *zap.Logger
	options components.OptionList
	input   components.TextInput
	outcome *qz.Outcome // last evaluation, nil until the answer is revealed
	waiting bool        // an auto-advance is scheduled
	notice  string
	errMsg  string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a QuizScreen for a started session.
func New(session *qz.Session, logger *zap.Logger) *QuizScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizScreen{session: session, logger: logger}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.loadQuestion()
}

func (s *QuizScreen) Title() string {
	return s.session.Mode().Title()
}

func (s *QuizScreen) Status() string {
	st := s.session.Snapshot().Stats
	return fmt.Sprintf("✓ %d  ✗ %d", st.Correct, st.Incorrect)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	snap := s.session.Snapshot()
	if snap.Revealed {
		label := "Next"
		if snap.Complete {
			label = "Results"
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: label},
			{Key: "Esc", Description: "Menu"},
		}
	}

	switch snap.Question.Kind {
	case bank.KindMultiSelect:
		hints := []layout.KeyHint{
			{Key: "1-9/Space", Description: "Toggle"},
			{Key: "↑↓", Description: "Move"},
		}
		if !snap.Pending.Empty() {
			hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Submit"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Menu"})
	case bank.KindInput:
		if snap.Pending.Empty() {
			return []layout.KeyHint{{Key: "Esc", Description: "Menu"}}
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Menu"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-9", Description: "Answer"},
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Choose"},
		{Key: "Esc", Description: "Menu"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case autoAdvanceMsg:
		step, ok := s.session.AdvanceIfCurrent(msg.Ticket)
		if !ok {
			return s, nil
		}
		return s, s.afterAdvance(step)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Cursor blinks and other input plumbing.
	if s.typing() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// typing reports whether the free-text input is live.
func (s *QuizScreen) typing() bool {
	snap := s.session.Snapshot()
	return snap.Question.Kind == bank.KindInput && !snap.Revealed
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	snap := s.session.Snapshot()
	s.errMsg = ""

	if snap.Revealed {
		switch key {
		case "enter", "space", " ", "n", "right":
			return s, s.advance()
		}
		return s, nil
	}

	if snap.Question.Kind == bank.KindInput {
		if key == "enter" {
			s.session.SetText(s.input.Value())
			return s, s.submit()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		s.session.SetText(s.input.Value())
		return s, cmd
	}

	switch key {
	case "up", "down", "k", "j":
		s.options, _ = s.options.Update(msg)
		return s, nil
	case "space", " ":
		return s, s.pick(s.options.Cursor)
	case "enter":
		if snap.Question.Kind == bank.KindMultiSelect {
			return s, s.submit()
		}
		return s, s.pick(s.options.Cursor)
	}

	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(s.options.Options) {
		s.options.Cursor = n - 1
		return s, s.pick(n - 1)
	}
	return s, nil
}

func (s *QuizScreen) pick(i int) tea.Cmd {
	o, err := s.session.SelectOption(i)
	if err != nil {
		s.fail(err)
		return nil
	}
	return s.reveal(o)
}

func (s *QuizScreen) submit() tea.Cmd {
	o, err := s.session.Submit()
	if err != nil {
		s.fail(err)
		return nil
	}
	return s.reveal(o)
}

func (s *QuizScreen) fail(err error) {
	s.errMsg = err.Error()
	s.logger.Warn("quiz input rejected", zap.Error(err))
}

// reveal records an evaluation and schedules the auto-advance, if any.
func (s *QuizScreen) reveal(o *qz.Outcome) tea.Cmd {
	if o == nil {
		return nil
	}
	s.outcome = o
	s.input.Blur()
	if !o.AutoAdvance {
		return nil
	}

	s.waiting = true
	ticket := o.Ticket
	return tea.Tick(o.Delay, func(time.Time) tea.Msg {
		return autoAdvanceMsg{Ticket: ticket}
	})
}

func (s *QuizScreen) advance() tea.Cmd {
	step, err := s.session.Advance()
	if err != nil {
		s.fail(err)
		return nil
	}
	return s.afterAdvance(step)
}

func (s *QuizScreen) afterAdvance(step qz.Step) tea.Cmd {
	switch step {
	case qz.StepCompleted:
		next := summary.New(s.session.Summary())
		return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case qz.StepNewPass:
		snap := s.session.Snapshot()
		s.notice = fmt.Sprintf("Round %d: %d missed %s", snap.Pass, snap.TotalInPass, plural(snap.TotalInPass, "question", "questions"))
	default:
		s.notice = ""
	}
	return s.loadQuestion()
}

// loadQuestion resets the widgets for the current question.
func (s *QuizScreen) loadQuestion() tea.Cmd {
	q := s.session.Current()
	s.outcome = nil
	s.waiting = false

	if q.Kind.IsChoice() {
		s.options = components.NewOptionList(q.Options, q.Kind == bank.KindMultiSelect)
		s.input.Blur()
		return nil
	}
	s.input = components.NewTextInput("", "Type your answer", false, 0)
	return s.input.Init()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
