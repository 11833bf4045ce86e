package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drillpad/internal/ui/theme"
)

const bannerArt = ` ___  ___ ___ _    _    ___  _   ___
|   \| _ \_ _| |  | |  | _ \/_\ |   \
| |) |   /| || |__| |__|  _/ _ \| |) |
|___/|_|_\___|____|____|_|/_/ \_\___/`

const bannerCompact = "D R I L L P A D"

// RenderBanner returns the banner styled in the primary color, or a
// compact fallback for terminals narrower than 42 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 42 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
