package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drillpad/internal/notice"
)

// Color palette: calm ink-on-paper tones with one accent per notice level.
var (
	Primary   = lipgloss.Color("#2563EB") // Ink blue
	Secondary = lipgloss.Color("#0D9488") // Teal
	Accent    = lipgloss.Color("#D97706") // Amber
	Success   = lipgloss.Color("#16A34A") // Green
	Warning   = lipgloss.Color("#EAB308") // Yellow
	Error     = lipgloss.Color("#DC2626") // Red
	Text      = lipgloss.Color("#F1F5F9")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0B1220")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	FocusedCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Reference = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	Badge = lipgloss.NewStyle().
		Foreground(Accent)
)

// NoticeStyle returns the style used for notices of level l.
func NoticeStyle(l notice.Level) lipgloss.Style {
	switch l {
	case notice.LevelSuccess:
		return lipgloss.NewStyle().Foreground(Success)
	case notice.LevelWarning:
		return lipgloss.NewStyle().Foreground(Warning)
	case notice.LevelError:
		return lipgloss.NewStyle().Foreground(Error)
	default:
		return lipgloss.NewStyle().Foreground(Text)
	}
}

// NoticeIcon returns the glyph prefixed to notices of level l.
func NoticeIcon(l notice.Level) string {
	switch l {
	case notice.LevelSuccess:
		return "✓"
	case notice.LevelWarning:
		return "!"
	case notice.LevelError:
		return "✗"
	default:
		return "i"
	}
}
