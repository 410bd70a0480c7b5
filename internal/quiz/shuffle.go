package quiz

import (
	"sort"

	"github.com/abhisek/quizbox/internal/bank"
)

// ShuffleOptions returns a copy of q with its options permuted and the
// correct answer remapped to the new positions. Free-text questions are
// returned unchanged. q itself is never modified.
func ShuffleOptions(q bank.Question, rnd Rand) bank.Question {
	out := q.Clone()
	if !q.Kind.IsChoice() || len(q.Options) < 2 {
		return out
	}

	// perm[newPos] = oldPos
	perm := make([]int, len(q.Options))
	for i := range perm {
		perm[i] = i
	}
	shuffleInts(rnd, perm)

	newPos := make([]int, len(perm))
	for to, from := range perm {
		out.Options[to] = q.Options[from]
		newPos[from] = to
	}

	switch q.Kind {
	case bank.KindSingle:
		out.Correct = bank.IndexAnswer(newPos[q.Correct.Index])
	case bank.KindMultiSelect:
		remapped := make([]int, 0, len(q.Correct.Indices))
		for _, old := range q.Correct.Indices {
			remapped = append(remapped, newPos[old])
		}
		sort.Ints(remapped)
		out.Correct = bank.SetAnswer(remapped...)
	}
	return out
}

// shuffleAll derives a shuffled variant of every question, indexed like
// the store.
func shuffleAll(questions []bank.Question, rnd Rand) []bank.Question {
	out := make([]bank.Question, len(questions))
	for i, q := range questions {
		out[i] = ShuffleOptions(q, rnd)
	}
	return out
}
