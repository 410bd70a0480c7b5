package quiz

import (
	"fmt"
	"strings"
)

// Mode selects how the questions of a session are ordered.
type Mode string

const (
	// ModeSequential walks a range of the bank in ascending order.
	ModeSequential Mode = "sequential"

	// ModeRandomRange shuffles a range of the bank.
	ModeRandomRange Mode = "random-range"

	// ModeRandomFull shuffles the whole bank.
	ModeRandomFull Mode = "random-full"
)

// AllModes lists the modes in menu order.
var AllModes = []Mode{ModeSequential, ModeRandomRange, ModeRandomFull}

// ParseMode resolves a mode name. "random" is accepted for ModeRandomFull.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sequential", "seq", "in-order":
		return ModeSequential, nil
	case "random-range", "range":
		return ModeRandomRange, nil
	case "random-full", "random", "full":
		return ModeRandomFull, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// NeedsRange reports whether the mode asks for a question range first.
func (m Mode) NeedsRange() bool {
	return m == ModeSequential || m == ModeRandomRange
}

// Shuffled reports whether the mode randomizes question order, including
// the order of every retry pass.
func (m Mode) Shuffled() bool {
	return m == ModeRandomRange || m == ModeRandomFull
}

// Title is the menu label of the mode.
func (m Mode) Title() string {
	switch m {
	case ModeSequential:
		return "In order"
	case ModeRandomRange:
		return "Random (range)"
	case ModeRandomFull:
		return "All questions, random"
	}
	return string(m)
}

// Description is the one-line menu hint for the mode.
func (m Mode) Description() string {
	switch m {
	case ModeSequential:
		return "Go through the list one by one"
	case ModeRandomRange:
		return "Pick a part of the list and shuffle it"
	case ModeRandomFull:
		return "Every question, shuffled"
	}
	return ""
}
