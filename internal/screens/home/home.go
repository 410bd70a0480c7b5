package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/quizbox/internal/bank"
	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
	quizscreen "github.com/abhisek/quizbox/internal/screens/quiz"
	"github.com/abhisek/quizbox/internal/screens/rangeinput"
	"github.com/abhisek/quizbox/internal/screens/welcome"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

// modeChosenMsg is sent when a mode is picked from the menu.
type modeChosenMsg struct {
	Mode quiz.Mode
}

// toggleShuffleMsg flips option shuffling for the next session.
type toggleShuffleMsg struct{}

// menuButtonWidth is the fixed width for menu buttons.
const menuButtonWidth = 30

// HomeScreen is the mode selection screen.
type HomeScreen struct {
	store *bank.Store
	opts  quiz.Options
	menu  components.Menu
	err   string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.StatusProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a HomeScreen. opts is the template for every session
// started from here; its Mode and Range are filled in per choice.
func New(store *bank.Store, opts quiz.Options) *HomeScreen {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	h := &HomeScreen{store: store, opts: opts}
	h.menu = components.NewMenu(h.menuItems())
	return h
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	items := make([]components.MenuItem, 0, len(quiz.AllModes)+2)
	for _, mode := range quiz.AllModes {
		items = append(items, components.MenuItem{
			Label: mode.Title(),
			Hint:  mode.Description(),
			Action: func() tea.Cmd {
				return func() tea.Msg { return modeChosenMsg{Mode: mode} }
			},
		})
	}

	shuffle := "off"
	if h.opts.ShuffleOptions {
		shuffle = "on"
	}
	items = append(items,
		components.MenuItem{
			Label: "Shuffle answers: " + shuffle,
			Hint:  "Mix up the order of answer options",
			Action: func() tea.Cmd {
				return func() tea.Msg { return toggleShuffleMsg{} }
			},
		},
		components.MenuItem{
			Label:  "Quit",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)
	return items
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume clears a stale error when the player comes back from a quiz.
func (h *HomeScreen) Resume() tea.Cmd {
	h.err = ""
	return nil
}

func (h *HomeScreen) Title() string {
	return "Choose a mode"
}

func (h *HomeScreen) Status() string {
	return fmt.Sprintf("%d questions", h.store.Len())
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "S", Description: "Shuffle answers"},
		{Key: "Q", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case modeChosenMsg:
		return h, h.choose(msg.Mode)

	case toggleShuffleMsg:
		h.toggleShuffle()
		return h, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "s":
			h.toggleShuffle()
			return h, nil
		case "q":
			return h, tea.Quit
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) toggleShuffle() {
	h.opts.ShuffleOptions = !h.opts.ShuffleOptions
	selected := h.menu.Selected
	h.menu = components.NewMenu(h.menuItems())
	h.menu.Selected = selected
	h.opts.Logger.Debug("option shuffling toggled", zap.Bool("shuffle_options", h.opts.ShuffleOptions))
}

// choose opens the range form for range modes and starts the quiz
// directly otherwise.
func (h *HomeScreen) choose(mode quiz.Mode) tea.Cmd {
	h.err = ""
	opts := h.opts
	opts.Mode = mode

	if mode.NeedsRange() {
		next := rangeinput.New(h.store, opts)
		return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}

	sess, err := quiz.Start(h.store, opts)
	if err != nil {
		h.err = err.Error()
		h.opts.Logger.Warn("session refused to start", zap.Error(err))
		return nil
	}
	next := quizscreen.New(sess, opts.Logger)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	compact := layout.IsCompactHeight(height + 6)

	var sections []string
	if !compact {
		sections = append(sections, welcome.RenderBanner(cw))
	}
	sections = append(sections, components.Card(h.bankInfo(compact), cw))
	sections = append(sections, h.menu.View(menuButtonWidth))
	if h.err != "" {
		sections = append(sections, theme.Incorrect.Render(h.err))
	}

	content := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(sections, "\n\n"))
	return components.Panel(content, width, height)
}

// bankInfo summarizes the loaded bank by question kind.
func (h *HomeScreen) bankInfo(compact bool) string {
	title := h.store.Title()
	if title == "" {
		title = "Question bank"
	}

	counts := h.store.CountByKind()
	var parts []string
	for _, k := range []bank.Kind{bank.KindSingle, bank.KindMultiSelect, bank.KindInput} {
		if n := counts[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, kindName(k)))
		}
	}

	info := theme.Prompt.Render(title)
	if !compact {
		info += "\n" + theme.Subtitle.Render(strings.Join(parts, " · "))
	}
	return info
}

func kindName(k bank.Kind) string {
	switch k {
	case bank.KindMultiSelect:
		return "multi-select"
	case bank.KindInput:
		return "typed"
	default:
		return "single choice"
	}
}
