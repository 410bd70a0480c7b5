package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbox/internal/bank"
	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screens/home"
)

func testModel(t *testing.T) AppModel {
	t.Helper()
	m := newAppModel(Options{Store: bank.Default()})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(AppModel)
}

func TestInitStartsSplash(t *testing.T) {
	m := testModel(t)
	assert.NotNil(t, m.Init(), "the splash animates from Init")
}

func TestSplashHandsOverToHome(t *testing.T) {
	m := testModel(t)

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, router.ReplaceScreenMsg{}, msg)

	next, _ := m.Update(msg)
	m = next.(AppModel)
	assert.IsType(t, &home.HomeScreen{}, m.router.Active())
	assert.Equal(t, "Choose a mode", m.router.Active().Title())
}

func TestEscAtRootIsIgnored(t *testing.T) {
	m := testModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.router.Depth())
}

func TestFooterUsesScreenHints(t *testing.T) {
	m := testModel(t)

	hints := m.footerHints(m.router.Active())
	assert.Equal(t, "Any key", hints[0].Key, "the splash has no hints of its own")

	m.router.Update(router.ReplaceScreenMsg{Screen: home.New(bank.Default(), quiz.Options{})})
	hints = m.footerHints(m.router.Active())
	require.NotEmpty(t, hints)
	assert.Equal(t, "↑↓", hints[0].Key)
	assert.Equal(t, "Ctrl+C", hints[len(hints)-1].Key)
}

func TestEscReturnsToMenu(t *testing.T) {
	m := testModel(t)
	m.router.Update(router.ReplaceScreenMsg{Screen: home.New(bank.Default(), quiz.Options{})})
	m.router.Update(router.PushScreenMsg{Screen: home.New(bank.Default(), quiz.Options{})})
	m.router.Update(router.PushScreenMsg{Screen: home.New(bank.Default(), quiz.Options{})})
	require.Equal(t, 3, m.router.Depth())

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	msg := cmd()
	assert.IsType(t, router.PopToRootMsg{}, msg)

	m.router.Update(msg)
	assert.Equal(t, 1, m.router.Depth())
	assert.Equal(t, "Choose a mode", m.router.Active().Title())
}
