package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbox/internal/bank"
	"github.com/abhisek/quizbox/internal/quiz"
)

func drillSession(t *testing.T) *quiz.Session {
	t.Helper()
	store, err := bank.New([]bank.Question{
		{Kind: bank.KindSingle, Prompt: "Capital of France?", Options: []string{"Berlin", "Paris", "Rome"}, Correct: bank.IndexAnswer(1)},
		{Kind: bank.KindMultiSelect, Prompt: "Which are primes?", Options: []string{"2", "4", "5", "9"}, Correct: bank.SetAnswer(0, 2)},
		{Kind: bank.KindInput, Prompt: "Capital of Italy?", Correct: bank.TextAnswer("Rome")},
	})
	require.NoError(t, err)

	sess, err := quiz.Start(store, quiz.Options{
		Mode:   quiz.ModeSequential,
		Policy: quiz.Policy{Rand: quiz.Seeded(3)},
	})
	require.NoError(t, err)
	return sess
}

func TestRunDrill_AllCorrect(t *testing.T) {
	var out bytes.Buffer
	sum, err := runDrill(strings.NewReader("2\n3,1\n  rome \n"), &out, drillSession(t))
	require.NoError(t, err)

	assert.Equal(t, quiz.Stats{Correct: 3}, sum.Stats)
	assert.Equal(t, 1, sum.Passes)
	assert.Contains(t, out.String(), "── Question 1/3 ──")
	assert.Contains(t, out.String(), "Summary: 3 correct, 0 incorrect, 100% accuracy over 1 round(s)")
}

func TestRunDrill_RetriesMissedQuestions(t *testing.T) {
	var out bytes.Buffer
	sum, err := runDrill(strings.NewReader("1\n1 3\nRome\n2\n"), &out, drillSession(t))
	require.NoError(t, err)

	assert.Equal(t, quiz.Stats{Correct: 3, Incorrect: 1}, sum.Stats)
	assert.Equal(t, 2, sum.Passes)
	assert.Contains(t, out.String(), "Answer: Paris")
	assert.Contains(t, out.String(), "Round 2: 1 missed question(s)")
}

func TestRunDrill_RepromptsOnBadInput(t *testing.T) {
	var out bytes.Buffer
	sum, err := runDrill(strings.NewReader("9\nabc\n1 2\n2\n1,3\nRome\n"), &out, drillSession(t))
	require.NoError(t, err)

	assert.Equal(t, quiz.Stats{Correct: 3}, sum.Stats, "rejected lines are not answers")
	assert.Contains(t, out.String(), `"9" is not an option between 1 and 3`)
	assert.Contains(t, out.String(), "pick one number between 1 and 3")
}

func TestRunDrill_InputClosed(t *testing.T) {
	var out bytes.Buffer
	sum, err := runDrill(strings.NewReader("2\n"), &out, drillSession(t))
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Stats.Answered())
	assert.Contains(t, out.String(), "(input closed)")
	assert.NotContains(t, out.String(), "Summary:")
}

func TestParsePicks(t *testing.T) {
	picks, err := parsePicks("3, 1 3", 4)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0}, picks)

	_, err = parsePicks("", 4)
	assert.Error(t, err)

	_, err = parsePicks("0", 4)
	assert.Error(t, err)
}
