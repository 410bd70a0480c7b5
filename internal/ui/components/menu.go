package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label    string
	Hint     string // shown under the selected item
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu. Items can also be picked with the
// number keys 1-9.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a new menu with the given items.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{
		Items:    items,
		Selected: selected,
	}
}

// Init returns nil (no initial command).
func (m Menu) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter":
		return m, m.activate()
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Items) && !m.Items[n-1].Disabled {
			m.Selected = n - 1
			return m, m.activate()
		}
	}

	return m, nil
}

func (m Menu) activate() tea.Cmd {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return nil
	}
	item := m.Items[m.Selected]
	if item.Action == nil || item.Disabled {
		return nil
	}
	return item.Action()
}

// View renders the menu as a column of fixed-width buttons.
func (m Menu) View(width int) string {
	var buttons []string
	for i, item := range m.Items {
		label := strconv.Itoa(i+1) + "  " + item.Label
		switch {
		case item.Disabled:
			buttons = append(buttons, theme.ButtonInactive.
				Width(width).
				Foreground(theme.TextDim).
				Render(label))
		case i == m.Selected:
			buttons = append(buttons, theme.ButtonActive.Width(width).Render("▸ "+label))
		default:
			buttons = append(buttons, theme.ButtonInactive.Width(width).Render("  "+label))
		}
	}

	out := strings.Join(buttons, "\n")
	if m.Selected >= 0 && m.Selected < len(m.Items) && m.Items[m.Selected].Hint != "" {
		out += "\n\n" + lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render(m.Items[m.Selected].Hint)
	}
	return out
}
