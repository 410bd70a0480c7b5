package bank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind describes how a question is answered.
type Kind string

const (
	// KindSingle is a single-choice question (true/false included).
	// Selecting an option evaluates it immediately.
	KindSingle Kind = "single"

	// KindMultiSelect asks for a set of options, submitted explicitly.
	KindMultiSelect Kind = "multiple_select"

	// KindInput is a free-text question compared against a canonical string.
	KindInput Kind = "input"
)

// kindAliases maps wire spellings onto a Kind. Question files written for
// the web version of the quiz leave the type out for single-choice questions.
var kindAliases = map[string]Kind{
	"":                KindSingle,
	"single":          KindSingle,
	"single_choice":   KindSingle,
	"single-choice":   KindSingle,
	"true_false":      KindSingle,
	"multiple_select": KindMultiSelect,
	"multiple-select": KindMultiSelect,
	"multi":           KindMultiSelect,
	"input":           KindInput,
	"free-text":       KindInput,
	"text":            KindInput,
}

// ParseKind resolves a wire spelling to a Kind.
func ParseKind(s string) (Kind, bool) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]
	return k, ok
}

// IsChoice reports whether the kind presents options.
func (k Kind) IsChoice() bool {
	return k == KindSingle || k == KindMultiSelect
}

// Label returns a short human label for the kind.
func (k Kind) Label() string {
	switch k {
	case KindMultiSelect:
		return "select all"
	case KindInput:
		return "type answer"
	default:
		return "choose one"
	}
}

// Question is one immutable record of the bank.
type Question struct {
	// Index is the position in the master list, assigned at load time.
	Index int `json:"-"`

	// ID is an optional author-provided identifier, kept for display only.
	ID Ref `json:"id,omitempty"`

	Kind    Kind     `json:"type,omitempty"`
	Prompt  string   `json:"question"`
	Image   string   `json:"image,omitempty"`
	Options []string `json:"options,omitempty"`

	// Correct is an option index (single), an index set (multiple_select)
	// or the canonical answer string (input).
	Correct Answer `json:"correct"`
}

// Clone returns a deep copy so derived variants never share slices with the store.
func (q Question) Clone() Question {
	c := q
	if q.Options != nil {
		c.Options = append([]string(nil), q.Options...)
	}
	c.Correct = q.Correct.clone()
	return c
}

// answerShape records which wire form a correct answer was written in.
type answerShape int

const (
	shapeNone answerShape = iota
	shapeIndex
	shapeSet
	shapeText
)

// maxExactInt is the largest integer a float64 holds exactly.
const maxExactInt = 1 << 53

// Answer is the correct answer of a question. Its wire form is an integer,
// an array of integers or a string.
type Answer struct {
	Index   int
	Indices []int
	Text    string
	shape   answerShape
}

// IndexAnswer builds a single-choice answer.
func IndexAnswer(i int) Answer {
	return Answer{Index: i, Text: strconv.Itoa(i), shape: shapeIndex}
}

// SetAnswer builds a multiple-select answer.
func SetAnswer(indices ...int) Answer {
	return Answer{Indices: append([]int(nil), indices...), shape: shapeSet}
}

// TextAnswer builds a free-text answer.
func TextAnswer(s string) Answer {
	return Answer{Text: s, shape: shapeText}
}

// IsIndex reports whether the answer was given as a single integer.
func (a Answer) IsIndex() bool { return a.shape == shapeIndex }

// IsSet reports whether the answer was given as an array of integers.
func (a Answer) IsSet() bool { return a.shape == shapeSet }

// IsZero reports whether no answer was decoded.
func (a Answer) IsZero() bool { return a.shape == shapeNone }

func (a Answer) clone() Answer {
	c := a
	if a.Indices != nil {
		c.Indices = append([]int(nil), a.Indices...)
	}
	return c
}

// UnmarshalJSON accepts a number, an array of integers or a string.
func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Answer{}
		return nil
	}

	switch data[0] {
	case '[':
		var indices []int
		if err := json.Unmarshal(data, &indices); err != nil {
			return fmt.Errorf("correct: expected array of option indices: %w", err)
		}
		*a = SetAnswer(indices...)
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("correct: %w", err)
		}
		*a = TextAnswer(s)
		return nil
	}

	// Numbers keep their literal so free-text questions can use a numeric answer.
	literal := string(data)
	if i, err := strconv.Atoi(literal); err == nil {
		*a = Answer{Index: i, Text: literal, shape: shapeIndex}
		return nil
	}
	if f, err := strconv.ParseFloat(literal, 64); err == nil {
		// 1.0 and 1e2 still name an option.
		if f == math.Trunc(f) && math.Abs(f) <= maxExactInt {
			*a = Answer{Index: int(f), Text: literal, shape: shapeIndex}
			return nil
		}
		*a = TextAnswer(literal)
		return nil
	}
	return fmt.Errorf("correct: unsupported value %s", literal)
}

// MarshalJSON writes the answer back in the wire form it was read from.
func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.shape {
	case shapeIndex:
		return json.Marshal(a.Index)
	case shapeSet:
		return json.Marshal(a.Indices)
	case shapeText:
		return json.Marshal(a.Text)
	default:
		return []byte("null"), nil
	}
}

// Ref is an optional identifier that may be written as a number or a string.
type Ref string

// UnmarshalJSON accepts a string or a bare number.
func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = Ref(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	*r = Ref(data)
	return nil
}
