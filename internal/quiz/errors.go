package quiz

import "errors"

var (
	// ErrEmptyPool is returned by Start when the bank has no questions.
	ErrEmptyPool = errors.New("no questions to quiz on")

	// ErrEmptyRange is returned by Start when the clamped range selects nothing.
	ErrEmptyRange = errors.New("question range is empty")

	// ErrUnknownMode is returned for a mode outside AllModes.
	ErrUnknownMode = errors.New("unknown quiz mode")

	// ErrNotChoice is returned when selecting an option on a free-text question.
	ErrNotChoice = errors.New("question has no options")

	// ErrOptionRange is returned when selecting an option index that does not exist.
	ErrOptionRange = errors.New("option index out of range")

	// ErrNotRevealed is returned by Advance before the current question was answered.
	ErrNotRevealed = errors.New("current question has not been answered")
)
