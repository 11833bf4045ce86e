package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/drillpad/internal/grading"
	"github.com/abhisek/drillpad/internal/notice"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "end":
		return tea.KeyPressMsg{Code: tea.KeyEnd}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "a", Disabled: true},
		{Label: "b"},
		{Label: "c", Disabled: true},
		{Label: "d"},
	})
	if m.Selected != 1 {
		t.Fatalf("expected first enabled item selected, got %d", m.Selected)
	}

	m, _ = m.Update(key("down"))
	if m.Selected != 3 {
		t.Errorf("expected down to skip disabled item, got %d", m.Selected)
	}
	m, _ = m.Update(key("down"))
	if m.Selected != 3 {
		t.Errorf("expected selection to stay at the end, got %d", m.Selected)
	}
	m, _ = m.Update(key("up"))
	if m.Selected != 1 {
		t.Errorf("expected up to skip disabled item, got %d", m.Selected)
	}
}

func TestMenuEnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "go", Action: func() tea.Cmd { ran = true; return nil }}})
	m.Update(key("enter"))
	if !ran {
		t.Error("expected enter to run the selected action")
	}
}

func TestMenuViewWindow(t *testing.T) {
	var items []MenuItem
	for _, l := range []string{"p1", "p2", "p3", "p4", "p5", "p6"} {
		items = append(items, MenuItem{Label: l})
	}
	m := NewMenu(items)
	m, _ = m.Update(key("end"))

	view := m.View(3)
	if strings.Contains(view, "p1") || !strings.Contains(view, "▸ p6") {
		t.Errorf("expected window ending at the selection, got:\n%s", view)
	}
	if n := strings.Count(view, "\n"); n != 3 {
		t.Errorf("expected 3 lines, got %d", n)
	}
}

func TestAnswerInputMarkClearsOnEdit(t *testing.T) {
	a := NewAnswerInput("answer", 0)
	a.SetValue("vais")
	a.Mark(grading.Correct)
	if !strings.Contains(a.View(), "✓") {
		t.Fatal("expected verdict mark after grading")
	}

	a, _ = a.Update(key("x"))
	if a.Value() != "vaisx" {
		t.Fatalf("expected typed rune appended, got %q", a.Value())
	}
	if strings.Contains(a.View(), "✓") {
		t.Error("expected verdict mark cleared after editing")
	}
}

func TestScoreBar(t *testing.T) {
	bar := NewScoreBar(1, 4, 40)
	if bar.Percent() != 0.25 {
		t.Errorf("expected 0.25, got %v", bar.Percent())
	}
	if !strings.Contains(bar.View(), "1/4 correct") {
		t.Errorf("expected label in view, got %q", bar.View())
	}
	if NewScoreBar(0, 0, 40).Percent() != 0 {
		t.Error("expected empty page to score 0")
	}
}

func TestNoticeLine(t *testing.T) {
	if NoticeLine(notice.Notice{}, 40) != "" {
		t.Error("expected zero notice to render nothing")
	}
	line := NoticeLine(notice.Success("Added to the notebook."), 40)
	if !strings.Contains(line, "✓ Added to the notebook.") {
		t.Errorf("unexpected notice line %q", line)
	}
}
