package components

import (
	"github.com/abhisek/drillpad/internal/notice"
	"github.com/abhisek/drillpad/internal/ui/theme"
)

// NoticeLine renders n wrapped to width, prefixed with its level icon.
func NoticeLine(n notice.Notice, width int) string {
	if n.IsZero() {
		return ""
	}
	w := width - 2
	if w < 10 {
		w = 10
	}
	return theme.NoticeStyle(n.Level).
		Width(w).
		Render(theme.NoticeIcon(n.Level) + " " + n.Text)
}
