package quiz

import (
	"slices"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbox/internal/bank"
	qz "github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screens/summary"
)

func testStore(t *testing.T) *bank.Store {
	t.Helper()
	store, err := bank.New([]bank.Question{
		{Kind: bank.KindSingle, Prompt: "Capital of France?", Options: []string{"Berlin", "Paris", "Rome"}, Correct: bank.IndexAnswer(1)},
		{Kind: bank.KindMultiSelect, Prompt: "Which are primes?", Options: []string{"2", "4", "5", "9"}, Correct: bank.SetAnswer(0, 2)},
		{Kind: bank.KindInput, Prompt: "Capital of Italy?", Correct: bank.TextAnswer("Rome")},
	})
	if err != nil {
		t.Fatalf("bank.New: %v", err)
	}
	return store
}

func newTestScreen(t *testing.T, autoAdvance bool) *QuizScreen {
	t.Helper()
	sess, err := qz.Start(testStore(t), qz.Options{
		Mode: qz.ModeSequential,
		Policy: qz.Policy{
			AutoAdvance:      autoAdvance,
			AutoAdvanceDelay: time.Second,
			Rand:             qz.Seeded(7),
		},
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	s := New(sess, nil)
	s.Init()
	return s
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func send(s *QuizScreen, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = s.Update(msg)
	}
	return cmd
}

func typeText(s *QuizScreen, text string) {
	for _, r := range text {
		send(s, keyPress(r))
	}
}

func TestQuizScreen_SingleChoiceCorrectSchedulesAdvance(t *testing.T) {
	s := newTestScreen(t, true)

	cmd := send(s, keyPress('2'))
	if cmd == nil {
		t.Fatal("a correct answer should schedule the auto-advance")
	}
	if !s.waiting {
		t.Error("screen should be waiting for the auto-advance")
	}
	snap := s.session.Snapshot()
	if !snap.Revealed || !snap.LastCorrect {
		t.Fatalf("expected a revealed correct answer, got %+v", snap)
	}

	send(s, autoAdvanceMsg{Ticket: s.outcome.Ticket})
	if got := s.session.Snapshot().Position; got != 1 {
		t.Errorf("position after auto-advance = %d, want 1", got)
	}
	if s.outcome != nil {
		t.Error("outcome should be cleared for the next question")
	}
}

func TestQuizScreen_WrongAnswerShowsCorrection(t *testing.T) {
	s := newTestScreen(t, true)

	if cmd := send(s, keyPress('1')); cmd != nil {
		t.Error("a wrong answer should not auto-advance")
	}
	view := s.View(100, 40)
	if !strings.Contains(view, "Not quite") {
		t.Error("view should report the wrong answer")
	}
	if !strings.Contains(view, "Correct answer: Paris") {
		t.Error("view should show the correct option")
	}

	send(s, enter())
	if got := s.session.Snapshot().Position; got != 1 {
		t.Errorf("Enter should advance, position = %d", got)
	}
}

func TestQuizScreen_StaleAutoAdvanceIgnored(t *testing.T) {
	s := newTestScreen(t, true)

	send(s, keyPress('2'))
	stale := s.outcome.Ticket

	// Advancing by hand before the timer fires.
	send(s, enter())
	if got := s.session.Snapshot().Position; got != 1 {
		t.Fatalf("position = %d, want 1", got)
	}

	send(s, autoAdvanceMsg{Ticket: stale})
	if got := s.session.Snapshot().Position; got != 1 {
		t.Errorf("stale auto-advance moved the session to %d", got)
	}
}

func TestQuizScreen_CursorAndEnter(t *testing.T) {
	s := newTestScreen(t, false)

	send(s, tea.KeyPressMsg{Code: tea.KeyDown}, enter())
	snap := s.session.Snapshot()
	if !snap.Revealed || !snap.LastCorrect {
		t.Error("Enter on the second option should answer correctly")
	}
}

func TestQuizScreen_IgnoresKeysOutOfRange(t *testing.T) {
	s := newTestScreen(t, false)

	send(s, keyPress('9'))
	if s.session.Snapshot().Revealed {
		t.Error("an option number past the list should be ignored")
	}
}

func TestQuizScreen_MultiSelectNeedsSubmit(t *testing.T) {
	s := newTestScreen(t, false)
	send(s, keyPress('2'), enter())

	send(s, keyPress('1'), keyPress('3'))
	snap := s.session.Snapshot()
	if snap.Revealed {
		t.Fatal("toggling options should not reveal the answer")
	}
	if !slices.Equal(snap.Pending.Selected, []int{0, 2}) {
		t.Errorf("selection = %v, want [0 2]", snap.Pending.Selected)
	}
	if !strings.Contains(s.View(100, 40), "[x]") {
		t.Error("selected options should be checked")
	}

	send(s, enter())
	snap = s.session.Snapshot()
	if !snap.Revealed || !snap.LastCorrect {
		t.Error("submitting the right set should be correct")
	}
}

func TestQuizScreen_TypedAnswer(t *testing.T) {
	s := newTestScreen(t, false)
	send(s, keyPress('2'), enter())
	send(s, keyPress('1'), keyPress('3'), enter(), enter())

	typeText(s, "  rome ")
	if s.session.Snapshot().Revealed {
		t.Fatal("typing should not reveal the answer")
	}
	if got := s.input.Value(); got != "  rome " {
		t.Fatalf("input value = %q", got)
	}

	send(s, enter())
	snap := s.session.Snapshot()
	if !snap.Revealed || !snap.LastCorrect {
		t.Errorf("typed answer should be correct, got %+v", snap)
	}
}

func TestQuizScreen_LettersGoToInput(t *testing.T) {
	s := newTestScreen(t, false)
	send(s, keyPress('2'), enter())
	send(s, keyPress('1'), keyPress('3'), enter(), enter())

	typeText(s, "n2")
	if got := s.input.Value(); got != "n2" {
		t.Errorf("input value = %q, want %q", got, "n2")
	}
	if s.session.Snapshot().Position != 2 {
		t.Error("typing should not advance")
	}
}

func TestQuizScreen_CompletionShowsSummary(t *testing.T) {
	s := newTestScreen(t, false)
	send(s, keyPress('2'), enter())
	send(s, keyPress('1'), keyPress('3'), enter(), enter())
	typeText(s, "Rome")
	send(s, enter())

	if !s.session.Snapshot().Complete {
		t.Fatal("session should be complete after the last correct answer")
	}

	cmd := send(s, enter())
	if cmd == nil {
		t.Fatal("expected a command after the last question")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("expected the summary screen, got %T", msg.Screen)
	}
}

func TestQuizScreen_RetryRoundNotice(t *testing.T) {
	s := newTestScreen(t, false)
	send(s, keyPress('1'), enter())
	send(s, keyPress('1'), keyPress('3'), enter(), enter())
	typeText(s, "Rome")
	send(s, enter(), enter())

	snap := s.session.Snapshot()
	if snap.Pass != 2 || snap.TotalInPass != 1 {
		t.Fatalf("expected a one-question retry round, got pass %d of %d", snap.Pass, snap.TotalInPass)
	}
	if !strings.Contains(s.notice, "Round 2") {
		t.Errorf("notice = %q, want a round 2 message", s.notice)
	}
	if !strings.Contains(s.View(100, 40), "1 missed question") {
		t.Error("view should announce the retry round")
	}
}

func TestQuizScreen_KeyHints(t *testing.T) {
	s := newTestScreen(t, false)

	if hints := s.KeyHints(); hints[len(hints)-1].Key != "Esc" {
		t.Error("hints should end with Esc")
	}

	send(s, keyPress('2'))
	hints := s.KeyHints()
	if hints[0].Description != "Next" {
		t.Errorf("revealed hint = %q, want Next", hints[0].Description)
	}
}

func TestQuizScreen_Status(t *testing.T) {
	s := newTestScreen(t, false)
	send(s, keyPress('1'))

	if got := s.Status(); !strings.Contains(got, "✗ 1") {
		t.Errorf("Status = %q, want one incorrect", got)
	}
}

func TestQuizScreen_CompactInfoLine(t *testing.T) {
	s := newTestScreen(t, false)

	view := s.View(60, 40)
	if !strings.Contains(view, "Q 1/3") {
		t.Error("narrow terminals should use the short position label")
	}
	if strings.Contains(view, "Question 1 of 3") {
		t.Error("long position label should be hidden on narrow terminals")
	}
}

func hasHint(s *QuizScreen, description string) bool {
	for _, h := range s.KeyHints() {
		if h.Description == description {
			return true
		}
	}
	return false
}

func TestQuizScreen_SubmitHintNeedsAnswer(t *testing.T) {
	s := newTestScreen(t, false)
	send(s, keyPress('2'), enter())

	if hasHint(s, "Submit") {
		t.Error("Submit hint shown before anything was selected")
	}
	send(s, keyPress('1'))
	if !hasHint(s, "Submit") {
		t.Error("Submit hint missing after selecting an option")
	}

	send(s, keyPress('3'), enter(), enter())
	if hasHint(s, "Submit") {
		t.Error("Submit hint shown for an empty text answer")
	}
	typeText(s, "Ro")
	if !hasHint(s, "Submit") {
		t.Error("Submit hint missing after typing")
	}
}
