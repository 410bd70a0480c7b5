package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

type pickedMsg struct{ n int }

func testMenu() Menu {
	item := func(label string, n int) MenuItem {
		return MenuItem{
			Label:  label,
			Hint:   label + " hint",
			Action: func() tea.Cmd { return func() tea.Msg { return pickedMsg{n} } },
		}
	}
	return NewMenu([]MenuItem{
		item("First", 1),
		{Label: "Disabled", Disabled: true},
		item("Third", 3),
	})
}

func TestMenu_SkipsDisabledItems(t *testing.T) {
	m := testMenu()
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Errorf("down should skip the disabled item, selected = %d", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 0 {
		t.Errorf("up should skip the disabled item, selected = %d", m.Selected)
	}
}

func TestMenu_EnterActivates(t *testing.T) {
	m := testMenu()
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Enter should run the action")
	}
	if got := cmd().(pickedMsg); got.n != 1 {
		t.Errorf("picked %d, want 1", got.n)
	}
}

func TestMenu_NumberKeys(t *testing.T) {
	m := testMenu()

	m, cmd := m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	if cmd == nil || cmd().(pickedMsg).n != 3 {
		t.Error("3 should pick the third item")
	}
	if m.Selected != 2 {
		t.Errorf("selected = %d, want 2", m.Selected)
	}

	if _, cmd = m.Update(tea.KeyPressMsg{Code: '2', Text: "2"}); cmd != nil {
		t.Error("disabled items cannot be picked by number")
	}
	if _, cmd = m.Update(tea.KeyPressMsg{Code: '7', Text: "7"}); cmd != nil {
		t.Error("numbers past the menu are ignored")
	}
}

func TestMenu_ViewShowsHint(t *testing.T) {
	view := testMenu().View(30)
	if !strings.Contains(view, "First hint") {
		t.Error("the selected item's hint should be shown")
	}
	if strings.Contains(view, "Third hint") {
		t.Error("only the selected item's hint should be shown")
	}
}
