package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/ui/theme"
)

const bannerArt = ` ██████╗ ██╗   ██╗██╗███████╗██████╗  ██████╗ ██╗  ██╗
██╔═══██╗██║   ██║██║╚══███╔╝██╔══██╗██╔═══██╗╚██╗██╔╝
██║   ██║██║   ██║██║  ███╔╝ ██████╔╝██║   ██║ ╚███╔╝
██║▄▄ ██║██║   ██║██║ ███╔╝  ██╔══██╗██║   ██║ ██╔██╗
╚██████╔╝╚██████╔╝██║███████╗██████╔╝╚██████╔╝██╔╝ ██╗
 ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝╚═════╝  ╚═════╝ ╚═╝  ╚═╝`

const bannerCompact = "Q U I Z B O X"

// bannerWidth is the column count of bannerArt.
const bannerWidth = 56

// RenderBanner returns the QUIZBOX banner styled in the primary color.
// Uses a compact fallback when the art does not fit.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
