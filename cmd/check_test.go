package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbox/internal/bank"
)

func writeFile(t *testing.T, name, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))
	return path
}

func TestCheckBanks_BuiltIn(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, checkBanks(&out, []string{""}))
	assert.Contains(t, out.String(), "(built-in)")
}

func TestCheckBanks_ReportsIssues(t *testing.T) {
	good := writeFile(t, "good.yaml", `- question: Two plus two?
  options: ["3", "4"]
  correct: 1
`)
	bad := writeFile(t, "bad.json", `[{"question": "Pick", "options": ["a", "b"], "correct": 5}]`)

	var out bytes.Buffer
	err := checkBanks(&out, []string{good, bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 bank(s) invalid")
	assert.Contains(t, out.String(), "good.yaml: 1 questions")
	assert.Contains(t, out.String(), "bad.json")
	assert.Contains(t, out.String(), "questions[0].correct: index 5 out of range for 2 options")
}

func TestCheckBanks_MissingFile(t *testing.T) {
	var out bytes.Buffer
	err := checkBanks(&out, []string{filepath.Join(t.TempDir(), "nope.json")})
	assert.Error(t, err)
}

func TestPrintBank(t *testing.T) {
	var out bytes.Buffer
	printBank(&out, bank.Default())

	assert.Contains(t, out.String(), "Philosophy basics")
	assert.Contains(t, out.String(), "Question")
	assert.Contains(t, out.String(), "questions from (built-in)")
}
