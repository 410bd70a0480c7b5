package quiz

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/quizbox/internal/bank"
)

// DefaultAutoAdvanceDelay is how long a correct answer stays on screen
// before the session moves on by itself.
const DefaultAutoAdvanceDelay = time.Second

// Policy holds the presentation choices that shape a session without
// changing its logic.
type Policy struct {
	// AutoAdvance moves past a correct answer after AutoAdvanceDelay.
	AutoAdvance bool

	// AutoAdvanceDelay is the display time of a correct answer.
	AutoAdvanceDelay time.Duration

	// Rand drives question order and option shuffling. Nil means DefaultRand.
	Rand Rand
}

// DefaultPolicy returns the policy used when nothing is configured.
func DefaultPolicy() Policy {
	return Policy{
		AutoAdvance:      true,
		AutoAdvanceDelay: DefaultAutoAdvanceDelay,
		Rand:             DefaultRand,
	}
}

// Options configure Start.
type Options struct {
	Mode           Mode
	Range          Range // ignored for ModeRandomFull
	ShuffleOptions bool
	Policy         Policy
	Logger         *zap.Logger
}

// Stats counts evaluated answers across all passes.
type Stats struct {
	Correct   int
	Incorrect int
}

// Answered is the number of evaluated answers.
func (s Stats) Answered() int {
	return s.Correct + s.Incorrect
}

// Ticket identifies the session state an auto-advance was scheduled from.
// It goes stale as soon as the session transitions or is replaced.
type Ticket struct {
	SessionID uuid.UUID
	Seq       uint64
}

// Outcome is the result of evaluating an answer.
type Outcome struct {
	Correct     bool
	CorrectText string

	// AutoAdvance is set when the caller should call AdvanceIfCurrent with
	// Ticket once Delay has passed.
	AutoAdvance bool
	Ticket      Ticket
	Delay       time.Duration
}

// Step reports what Advance did.
type Step int

const (
	StepNext      Step = iota // Moved to the next question of the pass
	StepNewPass               // Started a retry pass over missed questions
	StepCompleted             // Nothing left to ask
)

func (s Step) String() string {
	switch s {
	case StepNext:
		return "next"
	case StepNewPass:
		return "new-pass"
	case StepCompleted:
		return "completed"
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// Snapshot is a read-only view of a session for rendering.
type Snapshot struct {
	Question    bank.Question
	Position    int // 0-based position in the current pass
	TotalInPass int
	Stats       Stats
	Revealed    bool
	LastCorrect bool
	RetryCount  int
	Pass        int
	Complete    bool
	Pending     Pending
}

// Summary is shown once a session completes.
type Summary struct {
	Stats    Stats
	Passes   int
	Total    int // questions in the first pass
	Accuracy float64
	Duration time.Duration
}

// Session is one run through a set of questions, with retry passes until
// every question has been answered correctly once. It is not safe for
// concurrent use; the UI drives it from a single event loop.
type Session struct {
	id     uuid.UUID
	mode   Mode
	rng    Range
	policy Policy
	logger *zap.Logger

	questions []bank.Question
	order     []int
	position  int
	pending   Pending
	revealed  bool
	correct   bool
	retry     []int
	stats     Stats
	pass      int
	total     int
	seq       uint64

	startedAt time.Time
	endedAt   time.Time
}

// Start builds a session over store. Range modes clamp opts.Range into the
// bank. ErrEmptyPool and ErrEmptyRange refuse to start.
func Start(store *bank.Store, opts Options) (*Session, error) {
	if store.Len() == 0 {
		return nil, ErrEmptyPool
	}

	policy := opts.Policy
	if policy.Rand == nil {
		policy.Rand = DefaultRand
	}
	if policy.AutoAdvanceDelay < 0 {
		policy.AutoAdvanceDelay = 0
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	order, err := PlanOrder(opts.Mode, opts.Range, store.Len(), policy.Rand)
	if err != nil {
		return nil, err
	}

	questions := store.All()
	if opts.ShuffleOptions {
		questions = shuffleAll(questions, policy.Rand)
	}

	r := FullRange(store.Len())
	if opts.Mode.NeedsRange() {
		r = ClampRange(opts.Range, store.Len())
	}

	s := &Session{
		id:        uuid.New(),
		mode:      opts.Mode,
		rng:       r,
		policy:    policy,
		questions: questions,
		order:     order,
		pass:      1,
		total:     len(order),
		startedAt: time.Now(),
	}
	s.logger = logger.With(zap.String("session_id", s.id.String()))
	s.logger.Info("session started",
		zap.String("mode", string(s.mode)),
		zap.Int("range_start", r.Start),
		zap.Int("range_end", r.End),
		zap.Int("questions", len(order)),
		zap.Bool("shuffle_options", opts.ShuffleOptions))
	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Mode returns the mode the session was started with.
func (s *Session) Mode() Mode { return s.mode }

// Range returns the effective (clamped) range of the session.
func (s *Session) Range() Range { return s.rng }

// Order returns a copy of the current pass's question indices.
func (s *Session) Order() []int { return slices.Clone(s.order) }

// Retry returns a copy of the indices missed in the current pass.
func (s *Session) Retry() []int { return slices.Clone(s.retry) }

// Current returns the question at the current position.
func (s *Session) Current() bank.Question {
	return s.questions[s.order[s.position]]
}

// CorrectText renders the correct answer of the current question.
func (s *Session) CorrectText() string {
	return CorrectText(s.Current())
}

// Complete reports whether the last question of the last pass has been
// answered and nothing is queued for retry.
func (s *Session) Complete() bool {
	return s.position == len(s.order)-1 && s.revealed && len(s.retry) == 0
}

// Snapshot captures the state needed to render the session.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Question:    s.Current(),
		Position:    s.position,
		TotalInPass: len(s.order),
		Stats:       s.stats,
		Revealed:    s.revealed,
		LastCorrect: s.correct,
		RetryCount:  len(s.retry),
		Pass:        s.pass,
		Complete:    s.Complete(),
		Pending:     s.pending.clone(),
	}
}

// SelectOption picks option i of the current question. Single-choice
// questions are evaluated immediately and return an Outcome; multiple-select
// toggles i and returns nil. Selecting after the answer was revealed is a
// no-op.
func (s *Session) SelectOption(i int) (*Outcome, error) {
	q := s.Current()
	if !q.Kind.IsChoice() {
		return nil, ErrNotChoice
	}
	if i < 0 || i >= len(q.Options) {
		return nil, fmt.Errorf("%w: %d of %d", ErrOptionRange, i, len(q.Options))
	}
	if s.revealed {
		return nil, nil
	}

	if q.Kind == bank.KindMultiSelect {
		s.pending.toggle(i)
		return nil, nil
	}
	s.pending.Selected = []int{i}
	o := s.evaluate()
	return &o, nil
}

// SetText replaces the free-text input. Ignored once revealed.
func (s *Session) SetText(text string) {
	if s.revealed {
		return
	}
	s.pending.Text = text
}

// Submit evaluates the pending answer. It returns nil, nil when the answer
// was already revealed or a single-choice question has nothing selected.
func (s *Session) Submit() (*Outcome, error) {
	if s.revealed {
		return nil, nil
	}
	if s.Current().Kind == bank.KindSingle && len(s.pending.Selected) == 0 {
		return nil, nil
	}
	o := s.evaluate()
	return &o, nil
}

func (s *Session) evaluate() Outcome {
	q := s.Current()
	correct := Evaluate(q, s.pending)

	s.revealed = true
	s.correct = correct
	s.seq++
	if correct {
		s.stats.Correct++
	} else {
		s.stats.Incorrect++
		if !slices.Contains(s.retry, q.Index) {
			s.retry = append(s.retry, q.Index)
		}
	}

	s.logger.Debug("answer evaluated",
		zap.Int("question", q.Index),
		zap.Bool("correct", correct),
		zap.Int("pass", s.pass))

	o := Outcome{Correct: correct, CorrectText: CorrectText(q)}
	if correct && s.policy.AutoAdvance {
		o.AutoAdvance = true
		o.Ticket = Ticket{SessionID: s.id, Seq: s.seq}
		o.Delay = s.policy.AutoAdvanceDelay
	}
	return o
}

// Advance moves past the revealed question: to the next one in the pass,
// to a new pass over missed questions, or to completion. Completion leaves
// the session untouched. Advancing an unanswered question is an error.
func (s *Session) Advance() (Step, error) {
	if !s.revealed {
		return StepNext, ErrNotRevealed
	}

	if s.position < len(s.order)-1 {
		s.position++
		s.resetQuestion()
		return StepNext, nil
	}

	if len(s.retry) > 0 {
		order := s.retry
		if s.mode.Shuffled() {
			shuffleInts(s.policy.Rand, order)
		}
		s.order = order
		s.retry = nil
		s.position = 0
		s.pass++
		s.resetQuestion()
		s.logger.Info("retry pass started",
			zap.Int("pass", s.pass),
			zap.Int("questions", len(order)))
		return StepNewPass, nil
	}

	if s.endedAt.IsZero() {
		s.endedAt = time.Now()
		s.logger.Info("session completed",
			zap.Int("correct", s.stats.Correct),
			zap.Int("incorrect", s.stats.Incorrect),
			zap.Int("passes", s.pass))
	}
	return StepCompleted, nil
}

// AdvanceIfCurrent advances only when t was issued by this session and
// nothing has happened since. Stale tickets are dropped silently.
func (s *Session) AdvanceIfCurrent(t Ticket) (Step, bool) {
	if t.SessionID != s.id || t.Seq != s.seq || !s.revealed {
		s.logger.Debug("stale auto-advance dropped",
			zap.String("ticket_session", t.SessionID.String()),
			zap.Uint64("ticket_seq", t.Seq),
			zap.Uint64("seq", s.seq))
		return StepNext, false
	}
	step, err := s.Advance()
	if err != nil {
		return step, false
	}
	return step, true
}

func (s *Session) resetQuestion() {
	s.pending = Pending{}
	s.revealed = false
	s.correct = false
	s.seq++
}

// Summary reports the totals of the session so far.
func (s *Session) Summary() Summary {
	var accuracy float64
	if n := s.stats.Answered(); n > 0 {
		accuracy = float64(s.stats.Correct) / float64(n)
	}
	end := s.endedAt
	if end.IsZero() {
		end = time.Now()
	}
	return Summary{
		Stats:    s.stats,
		Passes:   s.pass,
		Total:    s.total,
		Accuracy: accuracy,
		Duration: end.Sub(s.startedAt),
	}
}
