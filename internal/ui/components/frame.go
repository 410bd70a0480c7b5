package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for framed sections.
// All boxes are rendered at this width so they visually align.
func ContentWidth(frameWidth int) int {
	// Leave room for panel border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 60)
}

// Panel wraps content in a double-border frame, centering it vertically
// and horizontally within the given dimensions.
func Panel(content string, width, height int) string {
	return theme.Panel.
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return theme.Card.
		Width(max(cw-2, 0)).
		Align(lipgloss.Center).
		Render(content)
}
