package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drillpad/internal/screens/welcome"
	"github.com/abhisek/drillpad/internal/ui/components"
	"github.com/abhisek/drillpad/internal/ui/theme"
)

// renderTitle returns the banner, or its one-line form when space is short.
func renderTitle(cw int, compact bool) string {
	w := cw
	if compact {
		w = 0
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(welcome.RenderBanner(w))
}

// renderStatsBar renders the bank and notebook counts in a bordered box
// matching content width.
func renderStatsBar(pages, questions, notebook, cw int, compact bool) string {
	pageStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	questionStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	notebookStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			pageStyle.Render(fmt.Sprintf("▤%d", pages)),
			questionStyle.Render(fmt.Sprintf("?%d", questions)),
			notebookText(notebook, true, notebookStyle, dimStyle),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			pageStyle.Render(fmt.Sprintf("▤ %d PAGES", pages)),
			questionStyle.Render(fmt.Sprintf("? %d QUESTIONS", questions)),
			notebookText(notebook, false, notebookStyle, dimStyle),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func notebookText(n int, compact bool, active, dim lipgloss.Style) string {
	if n == 0 {
		if compact {
			return dim.Render("★0")
		}
		return dim.Render("★ NOTEBOOK EMPTY")
	}
	if compact {
		return active.Render(fmt.Sprintf("★%d", n))
	}
	return active.Render(fmt.Sprintf("★ %d IN NOTEBOOK", n))
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	var buttons []string
	for i, label := range items {
		buttons = append(buttons, components.MenuButton(label, i == selected, disabled[i], buttonWidth))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as plain lines for terminals where
// bordered buttons would overflow.
func renderMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		var line string
		switch {
		case disabled[i]:
			line = lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + label)
		case i == selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Primary).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			line = lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
		}
		lines = append(lines, line)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderLLMBanner renders a warning when explanations are not configured.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Set GITHUB_TOKEN to enable explanations (see drillpad --help)")
}

func renderProblem(msg string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Error).
		Width(cw).
		Align(lipgloss.Center).
		Render(msg)
}
