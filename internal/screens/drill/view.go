package drill

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drillpad/internal/grading"
	"github.com/abhisek/drillpad/internal/notice"
	"github.com/abhisek/drillpad/internal/session"
	"github.com/abhisek/drillpad/internal/ui/components"
	"github.com/abhisek/drillpad/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	top := s.renderTop(width)
	avail := height - lipgloss.Height(top) - 1
	if len(s.questions) == 0 {
		return top + "\n" + s.renderEmpty(width)
	}
	return top + "\n" + s.renderQuestions(width, avail)
}

// renderTop renders the page line, grade-all score, status and any open
// prompt.
func (s *Screen) renderTop(width int) string {
	var lines []string

	var title, right string
	if s.mode == session.ModeNotebook {
		title = fmt.Sprintf("Wrong-answer notebook (%d)", len(s.questions))
	} else if len(s.pages) > 0 {
		title = s.pages[s.pageIdx].Label()
		right = fmt.Sprintf("page %d of %d", s.pageIdx+1, len(s.pages))
	}
	line := theme.Selected.Render("  " + title)
	if right != "" {
		pad := width - lipgloss.Width(line) - lipgloss.Width(right) - 2
		if pad > 0 {
			line += strings.Repeat(" ", pad) + theme.Hint.Render(right)
		}
	}
	lines = append(lines, line)

	if s.state.IsPageGradedAll(s.pageKey()) && len(s.questions) > 0 {
		lines = append(lines, "  "+components.NewScoreBar(s.correctCount(), len(s.questions), width-6).View())
	}

	if !s.status.IsZero() {
		lines = append(lines, "  "+components.NoticeLine(s.status, width-4))
	}

	switch {
	case s.prompt != nil:
		lines = append(lines, "  Import file: "+s.prompt.View())
	case s.confirmClear:
		lines = append(lines, theme.NoticeStyle(notice.LevelWarning).Render(
			fmt.Sprintf("  Remove all %d questions from the notebook? (y/n)", s.state.Notebook.Len())))
	}

	lines = append(lines, lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	return strings.Join(lines, "\n")
}

func (s *Screen) renderEmpty(width int) string {
	msg := "No questions on this page."
	if s.mode == session.ModeNotebook {
		msg = "The notebook is empty.\n\nBookmark questions from the drill view with Ctrl+B,\nor import an exported file with Ctrl+O."
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n" + msg)
}

// renderQuestions renders the focused question and as many neighbours as
// fit in height, preferring the ones below it.
func (s *Screen) renderQuestions(width, height int) string {
	blocks := make(map[int]string)
	block := func(i int) string {
		if b, ok := blocks[i]; ok {
			return b
		}
		b := s.renderQuestion(i, width-2)
		blocks[i] = b
		return b
	}

	first, last := s.focus, s.focus
	used := lipgloss.Height(block(s.focus))
	for i := s.focus + 1; i < len(s.questions); i++ {
		h := lipgloss.Height(block(i))
		if used+h > height {
			break
		}
		used += h
		last = i
	}
	for i := s.focus - 1; i >= 0; i-- {
		h := lipgloss.Height(block(i))
		if used+h > height {
			break
		}
		used += h
		first = i
	}

	parts := make([]string, 0, last-first+1)
	for i := first; i <= last; i++ {
		parts = append(parts, block(i))
	}
	return strings.Join(parts, "\n")
}

func (s *Screen) renderQuestion(i, width int) string {
	q := s.questions[i]
	key := s.key(i)
	focused := i == s.focus
	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	var b strings.Builder

	heading := q.Heading(i + 1)
	if s.mode == session.ModeNotebook {
		heading += " · Page " + q.Page.String()
	}
	if focused {
		b.WriteString(theme.Selected.Render("▸ " + heading))
	} else {
		b.WriteString(theme.Unselected.Bold(true).Render("  " + heading))
	}
	if s.mode == session.ModeDrill && s.state.Notebook.Contains(q) {
		b.WriteString("  " + theme.Badge.Render("★ in notebook"))
	}
	b.WriteString("\n")

	b.WriteString(theme.Body.Width(inner).Render(q.QuestionText))
	b.WriteString("\n")
	if q.Hints != "" {
		b.WriteString(theme.Hint.Width(inner).Render("Hint: " + q.Hints))
		b.WriteString("\n")
	}

	draft := s.state.Draft(key)
	if focused {
		draft = s.input.Value()
		b.WriteString("Answer: " + s.input.View())
	} else if draft != "" {
		b.WriteString("Answer: " + theme.Body.Render(draft))
	} else {
		b.WriteString("Answer: " + theme.Hint.Render("(empty)"))
	}

	if s.state.IsAnswerRevealed(key) {
		b.WriteString("\n")
		if q.HasAnswer() {
			b.WriteString(theme.Reference.Render("Reference: " + q.AnswerText()))
		} else {
			b.WriteString(theme.Hint.Render("No reference answer for this question."))
		}
	}

	if s.state.IsPageGradedAll(s.pageKey()) {
		b.WriteString("\n" + components.NoticeLine(grading.GradeQuestion(draft, q).Notice, inner))
	}
	if s.pending[key] {
		b.WriteString("\n" + theme.Hint.Render("Asking for an explanation..."))
	}
	if n, ok := s.notices[key]; ok && !n.IsZero() {
		b.WriteString("\n" + components.NoticeLine(n, inner))
	}

	card := theme.Card
	if focused {
		card = theme.FocusedCard
	}
	return card.Width(width).Render(b.String())
}

func (s *Screen) correctCount() int {
	n := 0
	for i, q := range s.questions {
		draft := s.state.Draft(s.key(i))
		if i == s.focus {
			draft = s.input.Value()
		}
		if grading.Grade(draft, q.Answer) == grading.Correct {
			n++
		}
	}
	return n
}
