package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with quizbox styling.
type TextInput struct {
	Model       textinput.Model
	Label       string
	NumericOnly bool
}

// NewTextInput creates a new focused text input. A positive charLimit
// caps the input length.
func NewTextInput(label, placeholder string, numericOnly bool, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()

	return TextInput{
		Model:       ti,
		Label:       label,
		NumericOnly: numericOnly,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. Numeric inputs drop printable non-digit keys.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.NumericOnly {
		if kmsg, ok := msg.(tea.KeyMsg); ok {
			key := kmsg.String()
			if len(key) == 1 && (key[0] < '0' || key[0] > '9') {
				return t, nil
			}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// Focus gives the input keyboard focus.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// View renders the label and the input.
func (t TextInput) View() string {
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if t.Model.Focused() {
		style = style.Foreground(theme.Primary).Bold(true)
	}
	if t.Label == "" {
		return t.Model.View()
	}
	return style.Render(t.Label) + " " + t.Model.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}

// NumericValue returns the input value as an integer. An empty input
// yields 0 without error.
func (t TextInput) NumericValue() (int, error) {
	v := strings.TrimSpace(t.Model.Value())
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
