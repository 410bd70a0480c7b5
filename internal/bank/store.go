package bank

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned by Get for an index outside the bank.
var ErrIndexOutOfRange = errors.New("question index out of range")

// Store is an immutable, ordered question bank. It is safe to share.
type Store struct {
	title     string
	source    string
	questions []Question
}

// New validates questions and builds a Store from them.
func New(questions []Question) (*Store, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyBank
	}
	normalized, err := normalize(questions)
	if err != nil {
		return nil, err
	}
	return &Store{questions: normalized}, nil
}

// Len returns the number of questions.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.questions)
}

// Get returns a copy of the question at index.
func (s *Store) Get(index int) (Question, error) {
	if index < 0 || index >= s.Len() {
		return Question{}, fmt.Errorf("%w: %d (bank has %d)", ErrIndexOutOfRange, index, s.Len())
	}
	return s.questions[index].Clone(), nil
}

// All returns a copy of every question in bank order.
func (s *Store) All() []Question {
	out := make([]Question, s.Len())
	for i := range out {
		out[i] = s.questions[i].Clone()
	}
	return out
}

// Title returns the optional bank title.
func (s *Store) Title() string {
	return s.title
}

// Source describes where the bank was loaded from.
func (s *Store) Source() string {
	return s.source
}

// CountByKind tallies questions per kind.
func (s *Store) CountByKind() map[Kind]int {
	counts := make(map[Kind]int)
	for _, q := range s.questions {
		counts[q.Kind]++
	}
	return counts
}
