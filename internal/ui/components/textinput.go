package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drillpad/internal/grading"
	"github.com/abhisek/drillpad/internal/ui/theme"
)

// AnswerInput wraps bubbles/textinput for free-text answers and can show
// the verdict of the last grading next to the field.
type AnswerInput struct {
	Model   textinput.Model
	verdict grading.Verdict
	graded  bool
}

// NewAnswerInput creates a focused answer field. charLimit 0 means no limit.
func NewAnswerInput(placeholder string, charLimit int) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return AnswerInput{Model: ti}
}

// Init returns the cursor blink command.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update handles messages. Editing clears the verdict mark.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	before := a.Model.Value()
	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	if a.Model.Value() != before {
		a.graded = false
	}
	return a, cmd
}

// View renders the field and the verdict mark.
func (a AnswerInput) View() string {
	view := a.Model.View()
	if !a.graded {
		return view
	}
	switch a.verdict {
	case grading.Correct:
		view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	case grading.Incorrect:
		view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	default:
		view += " " + lipgloss.NewStyle().Foreground(theme.Warning).Render("?")
	}
	return view
}

// Value returns the current text.
func (a AnswerInput) Value() string {
	return a.Model.Value()
}

// SetValue replaces the text and clears the verdict mark.
func (a *AnswerInput) SetValue(s string) {
	a.Model.SetValue(s)
	a.Model.CursorEnd()
	a.graded = false
}

// Mark records the verdict of the last grading.
func (a *AnswerInput) Mark(v grading.Verdict) {
	a.verdict = v
	a.graded = true
}
