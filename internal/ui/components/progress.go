package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drillpad/internal/ui/theme"
)

// ScoreBar shows how many answers on a page are correct.
type ScoreBar struct {
	Correct int
	Total   int
	Width   int
}

// NewScoreBar creates a score bar.
func NewScoreBar(correct, total, width int) ScoreBar {
	return ScoreBar{Correct: correct, Total: total, Width: width}
}

// Percent returns the correct fraction in [0, 1].
func (p ScoreBar) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Correct) / float64(p.Total)
}

// View renders the bar followed by "correct/total".
func (p ScoreBar) View() string {
	label := fmt.Sprintf("  %d/%d correct", p.Correct, p.Total)

	barWidth := p.Width - lipgloss.Width(label)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent())
	if filled > barWidth {
		filled = barWidth
	}
	empty := barWidth - filled

	filledStr := lipgloss.NewStyle().
		Background(theme.Success).
		Render(strings.Repeat(" ", filled))

	emptyStr := lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", empty))

	return filledStr + emptyStr + lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
}
