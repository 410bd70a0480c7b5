package quiz

import (
	qz "github.com/abhisek/quizbox/internal/quiz"
)

// autoAdvanceMsg fires after a correct answer has been shown for the
// configured delay. The ticket ties it to the state it was scheduled from.
type autoAdvanceMsg struct {
	Ticket qz.Ticket
}
