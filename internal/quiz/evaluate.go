package quiz

import (
	"slices"
	"strings"

	"github.com/abhisek/quizbox/internal/bank"
)

// Pending is the in-progress answer to the current question.
type Pending struct {
	// Selected holds chosen option indices in the order they were picked.
	Selected []int

	// Text is the free-text input.
	Text string
}

// Empty reports whether nothing has been entered yet.
func (p Pending) Empty() bool {
	return len(p.Selected) == 0 && strings.TrimSpace(p.Text) == ""
}

func (p Pending) clone() Pending {
	return Pending{Selected: slices.Clone(p.Selected), Text: p.Text}
}

// toggle adds i when absent and removes it when present.
func (p *Pending) toggle(i int) {
	if idx := slices.Index(p.Selected, i); idx >= 0 {
		p.Selected = slices.Delete(p.Selected, idx, idx+1)
		return
	}
	p.Selected = append(p.Selected, i)
}

// Evaluate checks an answer against a question.
//
//   - single: the one selected index equals the correct index
//   - multiple_select: the selected set equals the correct set, in any order
//   - input: trimmed, case-folded text equals the canonical answer
func Evaluate(q bank.Question, p Pending) bool {
	switch q.Kind {
	case bank.KindSingle:
		return len(p.Selected) == 1 && p.Selected[0] == q.Correct.Index
	case bank.KindMultiSelect:
		return sameSet(p.Selected, q.Correct.Indices)
	case bank.KindInput:
		return normalizeText(p.Text) == normalizeText(q.Correct.Text)
	}
	return false
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// sameSet compares two index lists as sets.
func sameSet(a, b []int) bool {
	as := make(map[int]struct{}, len(a))
	for _, v := range a {
		as[v] = struct{}{}
	}
	bs := make(map[int]struct{}, len(b))
	for _, v := range b {
		bs[v] = struct{}{}
	}
	if len(as) != len(bs) {
		return false
	}
	for v := range as {
		if _, ok := bs[v]; !ok {
			return false
		}
	}
	return true
}

// CorrectText renders the correct answer of q for feedback.
func CorrectText(q bank.Question) string {
	switch q.Kind {
	case bank.KindSingle:
		if q.Correct.Index >= 0 && q.Correct.Index < len(q.Options) {
			return q.Options[q.Correct.Index]
		}
	case bank.KindMultiSelect:
		parts := make([]string, 0, len(q.Correct.Indices))
		for _, i := range q.Correct.Indices {
			if i >= 0 && i < len(q.Options) {
				parts = append(parts, q.Options[i])
			}
		}
		return strings.Join(parts, ", ")
	case bank.KindInput:
		return q.Correct.Text
	}
	return ""
}

// IsCorrectOption reports whether option i is part of the correct answer.
func IsCorrectOption(q bank.Question, i int) bool {
	switch q.Kind {
	case bank.KindSingle:
		return q.Correct.Index == i
	case bank.KindMultiSelect:
		return slices.Contains(q.Correct.Indices, i)
	}
	return false
}
