package quiz

import "math/rand/v2"

// Rand is the randomness a session draws from. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand uses the process-wide source from math/rand/v2.
var DefaultRand Rand = globalRand{}

// Seeded returns a deterministic source, for tests and reproducible drills.
func Seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// shuffleInts permutes xs in place (Fisher–Yates).
func shuffleInts(r Rand, xs []int) {
	for i := len(xs) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		xs[i], xs[j] = xs[j], xs[i]
	}
}

// Range is a 1-based inclusive slice of the bank.
type Range struct {
	Start int
	End   int
}

// FullRange covers a bank of total questions.
func FullRange(total int) Range {
	return Range{Start: 1, End: total}
}

// Len is the number of questions the range covers.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// ClampRange forces r into [1, total] with End >= Start. A zero End stands
// for "up to the last question". The result is empty only when total is 0.
func ClampRange(r Range, total int) Range {
	if total <= 0 {
		return Range{}
	}
	if r.End == 0 {
		r.End = total
	}
	start := min(max(r.Start, 1), total)
	end := max(start, min(r.End, total))
	return Range{Start: start, End: end}
}

// PlanOrder builds the question order of a first pass. Range is ignored
// for ModeRandomFull.
func PlanOrder(mode Mode, r Range, total int, rnd Rand) ([]int, error) {
	if total <= 0 {
		return nil, ErrEmptyPool
	}

	switch mode {
	case ModeRandomFull:
		r = FullRange(total)
	case ModeSequential, ModeRandomRange:
		r = ClampRange(r, total)
	default:
		return nil, ErrUnknownMode
	}

	if r.Len() == 0 {
		return nil, ErrEmptyRange
	}

	order := make([]int, 0, r.Len())
	for i := r.Start - 1; i < r.End; i++ {
		order = append(order, i)
	}
	if mode.Shuffled() {
		shuffleInts(rnd, order)
	}
	return order, nil
}
