package bank

import (
	"fmt"
	"sort"
	"strings"
)

// Issue is one problem found in a question bank.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports every issue found in a bank.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("invalid question bank: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, format string, args ...any) {
	c.issues = append(c.issues, Issue{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// normalize resolves kind aliases, trims text and assigns indices. It
// returns the normalized questions and every invariant violation found.
func normalize(questions []Question) ([]Question, error) {
	c := &issueCollector{}
	out := make([]Question, len(questions))

	for i, q := range questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		q = q.Clone()
		q.Index = i
		q.Prompt = strings.TrimSpace(q.Prompt)
		if q.Prompt == "" {
			c.add(prefix+".question", "is required")
		}

		kind, ok := ParseKind(string(q.Kind))
		if !ok {
			c.add(prefix+".type", "unknown question type %q", q.Kind)
		}
		q.Kind = kind

		if q.Correct.IsZero() {
			c.add(prefix+".correct", "is required")
			if kind.IsChoice() {
				checkOptions(c, prefix, q.Options)
			}
			out[i] = q
			continue
		}

		switch kind {
		case KindSingle:
			checkOptions(c, prefix, q.Options)
			if !q.Correct.IsIndex() {
				c.add(prefix+".correct", "single-choice answer must be an option index")
			} else if q.Correct.Index < 0 || q.Correct.Index >= len(q.Options) {
				c.add(prefix+".correct", "index %d out of range for %d options", q.Correct.Index, len(q.Options))
			}

		case KindMultiSelect:
			checkOptions(c, prefix, q.Options)
			if !q.Correct.IsSet() || len(q.Correct.Indices) == 0 {
				c.add(prefix+".correct", "multiple-select answer must be a non-empty array of option indices")
				break
			}
			seen := make(map[int]bool, len(q.Correct.Indices))
			for _, idx := range q.Correct.Indices {
				if idx < 0 || idx >= len(q.Options) {
					c.add(prefix+".correct", "index %d out of range for %d options", idx, len(q.Options))
				}
				if seen[idx] {
					c.add(prefix+".correct", "duplicate index %d", idx)
				}
				seen[idx] = true
			}
			sorted := append([]int(nil), q.Correct.Indices...)
			sort.Ints(sorted)
			q.Correct = SetAnswer(sorted...)

		case KindInput:
			if len(q.Options) > 0 {
				c.add(prefix+".options", "free-text questions take no options")
			}
			if q.Correct.IsSet() || strings.TrimSpace(q.Correct.Text) == "" {
				c.add(prefix+".correct", "free-text answer must be a non-empty string")
			}
			q.Correct = TextAnswer(strings.TrimSpace(q.Correct.Text))
		}

		out[i] = q
	}

	if err := c.result(); err != nil {
		return nil, err
	}
	return out, nil
}

func checkOptions(c *issueCollector, prefix string, options []string) {
	if len(options) == 0 {
		c.add(prefix+".options", "must include at least one entry")
		return
	}
	for i, opt := range options {
		if strings.TrimSpace(opt) == "" {
			c.add(fmt.Sprintf("%s.options[%d]", prefix, i), "is required")
		}
	}
}
