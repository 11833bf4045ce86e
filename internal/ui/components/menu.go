package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drillpad/internal/ui/theme"
)

// MenuItem is a single entry in a Menu.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list with a movable selection.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{Items: items, Selected: selected}
}

// Select moves the selection to i if that item is enabled.
func (m *Menu) Select(i int) {
	if i >= 0 && i < len(m.Items) && !m.Items[i].Disabled {
		m.Selected = i
	}
}

// Update handles keyboard navigation and activation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		m.move(-1, 1)
	case "down", "j":
		m.move(1, 1)
	case "pgup":
		m.move(-1, 10)
	case "pgdown":
		m.move(1, 10)
	case "home", "g":
		m.Selected = -1
		m.move(1, 1)
	case "end", "G":
		m.Selected = len(m.Items)
		m.move(-1, 1)
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}
	return m, nil
}

// move steps the selection by up to n enabled items in direction dir.
func (m *Menu) move(dir, n int) {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items) && n > 0; i += dir {
		if !m.Items[i].Disabled {
			m.Selected = i
			n--
		}
	}
}

// View renders at most height items around the selection. height <= 0
// renders every item.
func (m Menu) View(height int) string {
	start, end := 0, len(m.Items)
	if height > 0 && len(m.Items) > height {
		start = m.Selected - height/2
		if start < 0 {
			start = 0
		}
		end = start + height
		if end > len(m.Items) {
			end = len(m.Items)
			start = end - height
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		item := m.Items[i]
		switch {
		case item.Disabled:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("    " + item.Label))
		case i == m.Selected:
			b.WriteString(theme.Selected.Render("  ▸ " + item.Label))
		default:
			b.WriteString(theme.Unselected.Render("    " + item.Label))
		}
		b.WriteString("\n")
	}
	return b.String()
}
