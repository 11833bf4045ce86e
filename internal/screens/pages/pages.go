package pages

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drillpad/internal/actions"
	"github.com/abhisek/drillpad/internal/bank"
	"github.com/abhisek/drillpad/internal/router"
	"github.com/abhisek/drillpad/internal/screen"
	"github.com/abhisek/drillpad/internal/screens/drill"
	"github.com/abhisek/drillpad/internal/session"
	"github.com/abhisek/drillpad/internal/ui/components"
	"github.com/abhisek/drillpad/internal/ui/layout"
	"github.com/abhisek/drillpad/internal/ui/theme"
)

// PagesScreen lets the user pick the bank page to drill.
type PagesScreen struct {
	menu  components.Menu
	total int
}

var _ screen.Screen = (*PagesScreen)(nil)
var _ screen.KeyHintProvider = (*PagesScreen)(nil)

// New creates the page picker. The page last drilled in st is selected.
func New(d *actions.Dispatcher, st *session.State, b *bank.Bank) *PagesScreen {
	pages := b.Pages()
	items := make([]components.MenuItem, len(pages))
	selected := 0
	for i, p := range pages {
		items[i] = components.MenuItem{
			Label: p.Label(),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: drill.NewPage(d, st, pages, i)}
				}
			},
		}
		if p.Key == st.PageID() {
			selected = i
		}
	}

	m := components.NewMenu(items)
	m.Select(selected)
	return &PagesScreen{menu: m, total: b.QuestionCount()}
}

func (s *PagesScreen) Init() tea.Cmd { return nil }

func (s *PagesScreen) Title() string { return "Pages" }

func (s *PagesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "PgUp/PgDn", Description: "Jump"},
		{Key: "Enter", Description: "Drill"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PagesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *PagesScreen) View(width, height int) string {
	title := theme.Title.Width(width).Render("Choose a page")
	sub := theme.Subtitle.Width(width).Render(summary(len(s.menu.Items), s.total))

	list := lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View(height-4))
	return title + "\n" + sub + "\n\n" + list
}

func summary(pages, questions int) string {
	p, q := "pages", "questions"
	if pages == 1 {
		p = "page"
	}
	if questions == 1 {
		q = "question"
	}
	return fmt.Sprintf("%d %s, %d %s", pages, p, questions, q)
}
