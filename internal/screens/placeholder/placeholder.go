package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drillpad/internal/screen"
	"github.com/abhisek/drillpad/internal/ui/theme"
)

// PlaceholderScreen stands in for a view that cannot be shown, such as the
// drill view when the question bank is missing. It explains why.
type PlaceholderScreen struct {
	title   string
	message string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

// New creates a PlaceholderScreen with the given title and explanation.
func New(title, message string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, message: message}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	body := lipgloss.NewStyle().
		Foreground(theme.Error).
		Bold(true).
		Render("╌╌ Unavailable ╌╌") +
		"\n\n" +
		lipgloss.NewStyle().
			Foreground(theme.Text).
			Width(min(width-4, 60)).
			Align(lipgloss.Center).
			Render(p.message) +
		"\n\n" +
		theme.Hint.Render("Esc to go back")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
