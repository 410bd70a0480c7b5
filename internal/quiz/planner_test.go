package quiz

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampRange(t *testing.T) {
	tests := []struct {
		name  string
		in    Range
		total int
		want  Range
	}{
		{"start below one", Range{Start: 0, End: 5}, 10, Range{Start: 1, End: 5}},
		{"reversed raises end", Range{Start: 8, End: 3}, 10, Range{Start: 8, End: 8}},
		{"zero end means last", Range{Start: 4}, 10, Range{Start: 4, End: 10}},
		{"empty means everything", Range{}, 10, Range{Start: 1, End: 10}},
		{"beyond the bank", Range{Start: 12, End: 20}, 10, Range{Start: 10, End: 10}},
		{"negative start", Range{Start: -3, End: 4}, 10, Range{Start: 1, End: 4}},
		{"end past the bank", Range{Start: 2, End: 99}, 10, Range{Start: 2, End: 10}},
		{"empty bank", Range{Start: 1, End: 5}, 0, Range{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampRange(tt.in, tt.total)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlanOrder_Sequential(t *testing.T) {
	order, err := PlanOrder(ModeSequential, Range{Start: 3, End: 5}, 10, Seeded(1))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4}, order)

	order, err = PlanOrder(ModeSequential, Range{}, 4, Seeded(1))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, order)
}

func TestPlanOrder_RandomFullIsPermutation(t *testing.T) {
	// The range is ignored for the full shuffle.
	order, err := PlanOrder(ModeRandomFull, Range{Start: 2, End: 3}, 20, Seeded(7))
	require.NoError(t, err)
	require.Len(t, order, 20)

	sorted := slices.Clone(order)
	slices.Sort(sorted)
	for i, v := range sorted {
		assert.Equal(t, i, v)
	}
}

func TestPlanOrder_RandomRangeStaysInRange(t *testing.T) {
	order, err := PlanOrder(ModeRandomRange, Range{Start: 5, End: 9}, 20, Seeded(3))
	require.NoError(t, err)

	sorted := slices.Clone(order)
	slices.Sort(sorted)
	assert.Equal(t, []int{4, 5, 6, 7, 8}, sorted)
}

func TestPlanOrder_Errors(t *testing.T) {
	_, err := PlanOrder(ModeSequential, Range{}, 0, Seeded(1))
	assert.True(t, errors.Is(err, ErrEmptyPool))

	_, err = PlanOrder(Mode("backwards"), Range{}, 3, Seeded(1))
	assert.True(t, errors.Is(err, ErrUnknownMode))
}

func TestPlanOrder_SameSeedSameOrder(t *testing.T) {
	a, err := PlanOrder(ModeRandomFull, Range{}, 30, Seeded(42))
	require.NoError(t, err)
	b, err := PlanOrder(ModeRandomFull, Range{}, 30, Seeded(42))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"sequential":   ModeSequential,
		" SEQ ":        ModeSequential,
		"random-range": ModeRandomRange,
		"range":        ModeRandomRange,
		"random":       ModeRandomFull,
		"random-full":  ModeRandomFull,
	} {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMode("sideways")
	assert.True(t, errors.Is(err, ErrUnknownMode))
}

func TestMode_Flags(t *testing.T) {
	assert.True(t, ModeSequential.NeedsRange())
	assert.True(t, ModeRandomRange.NeedsRange())
	assert.False(t, ModeRandomFull.NeedsRange())

	assert.False(t, ModeSequential.Shuffled())
	assert.True(t, ModeRandomRange.Shuffled())
	assert.True(t, ModeRandomFull.Shuffled())
}
