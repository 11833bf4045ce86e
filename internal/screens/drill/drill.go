package drill

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/drillpad/internal/actions"
	"github.com/abhisek/drillpad/internal/bank"
	"github.com/abhisek/drillpad/internal/notice"
	"github.com/abhisek/drillpad/internal/screen"
	"github.com/abhisek/drillpad/internal/session"
	"github.com/abhisek/drillpad/internal/ui/components"
	"github.com/abhisek/drillpad/internal/ui/layout"
)

// explainDoneMsg carries the outcome of an explanation request started
// for the question under key while the list was at generation gen.
type explainDoneMsg struct {
	key    string
	gen    int
	result actions.Result
}

// Screen lists the questions of one bank page, or of the notebook, with
// an answer field on the focused question.
type Screen struct {
	mode       session.Mode
	dispatcher *actions.Dispatcher
	state      *session.State

	// drill mode
	pages   []bank.Page
	pageIdx int

	// notebook mode
	exportDir string

	questions []bank.Question
	focus     int
	input     components.AnswerInput

	notices map[string]notice.Notice
	pending map[string]bool
	status  notice.Notice

	// gen counts notebook reorders; keys of an older generation point at
	// different questions.
	gen int

	prompt       *components.AnswerInput
	confirmClear bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.Resumer = (*Screen)(nil)
var _ screen.Modal = (*Screen)(nil)

// NewPage creates a drill screen showing pages[index]. PgUp/PgDn move
// between pages.
func NewPage(d *actions.Dispatcher, st *session.State, pages []bank.Page, index int) *Screen {
	if index < 0 || index >= len(pages) {
		index = 0
	}
	s := newScreen(session.ModeDrill, d, st)
	s.pages = pages
	s.pageIdx = index
	s.load()
	return s
}

// NewNotebook creates the notebook view. Exports are written to exportDir.
func NewNotebook(d *actions.Dispatcher, st *session.State, exportDir string) *Screen {
	s := newScreen(session.ModeNotebook, d, st)
	s.exportDir = exportDir
	s.load()
	return s
}

func newScreen(mode session.Mode, d *actions.Dispatcher, st *session.State) *Screen {
	return &Screen{
		mode:       mode,
		dispatcher: d,
		state:      st,
		input:      components.NewAnswerInput("Type your answer...", 0),
		notices:    make(map[string]notice.Notice),
		pending:    make(map[string]bool),
	}
}

// load refreshes the question list from the bank page or the notebook.
func (s *Screen) load() {
	s.state.SetMode(s.mode)
	if s.mode == session.ModeNotebook {
		s.questions = s.state.Notebook.Items()
	} else if len(s.pages) > 0 {
		p := s.pages[s.pageIdx]
		s.questions = p.Questions
		s.state.SelectPage(p.Key)
	}

	if s.focus >= len(s.questions) {
		s.focus = len(s.questions) - 1
	}
	if s.focus < 0 {
		s.focus = 0
	}
	s.input.SetValue(s.state.Draft(s.key(s.focus)))
}

func (s *Screen) Init() tea.Cmd {
	return s.input.Init()
}

// Resume reloads the list; the notebook may have changed underneath.
func (s *Screen) Resume() tea.Cmd {
	s.saveDraft()
	s.load()
	return nil
}

func (s *Screen) Title() string {
	if s.mode == session.ModeNotebook {
		return "Notebook"
	}
	return "Drill"
}

// InModal reports whether a prompt or confirmation is open.
func (s *Screen) InModal() bool {
	return s.prompt != nil || s.confirmClear
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch {
	case s.prompt != nil:
		return []layout.KeyHint{{Key: "Enter", Description: "Import"}, {Key: "Esc", Description: "Cancel"}}
	case s.confirmClear:
		return []layout.KeyHint{{Key: "Y", Description: "Clear notebook"}, {Key: "N", Description: "Keep"}}
	}

	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Question"},
		{Key: "Enter", Description: "Check"},
		{Key: "^E", Description: "Explain"},
		{Key: "^R", Description: "Answer"},
		{Key: "^G", Description: "Grade all"},
	}
	if s.mode == session.ModeNotebook {
		return append(hints,
			layout.KeyHint{Key: "^D", Description: "Remove"},
			layout.KeyHint{Key: "^S", Description: "Export"},
			layout.KeyHint{Key: "^O", Description: "Import"},
			layout.KeyHint{Key: "^X", Description: "Clear"},
			layout.KeyHint{Key: "Esc", Description: "Back"},
		)
	}
	return append(hints,
		layout.KeyHint{Key: "^B", Description: "Bookmark"},
		layout.KeyHint{Key: "PgUp/PgDn", Description: "Page"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case explainDoneMsg:
		if msg.gen != s.gen {
			return s, nil
		}
		delete(s.pending, msg.key)
		s.notices[msg.key] = msg.result.Notice
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	if s.prompt != nil {
		*s.prompt, cmd = s.prompt.Update(msg)
	} else {
		s.input, cmd = s.input.Update(msg)
	}
	return s, cmd
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.prompt != nil {
		switch key {
		case "esc":
			s.prompt = nil
			return s, nil
		case "enter":
			path := strings.TrimSpace(s.prompt.Value())
			s.prompt = nil
			s.importFile(path)
			return s, nil
		}
		var cmd tea.Cmd
		*s.prompt, cmd = s.prompt.Update(msg)
		return s, cmd
	}

	if s.confirmClear {
		s.confirmClear = false
		if key == "y" || key == "Y" {
			res := s.dispatcher.Dispatch(context.Background(), s.state, actions.ClearNotebook())
			s.afterReorder(res.Notice)
		}
		return s, nil
	}

	switch key {
	case "up", "shift+tab":
		s.moveFocus(-1)
		return s, nil
	case "down", "tab":
		s.moveFocus(1)
		return s, nil
	case "enter":
		s.grade()
		return s, nil
	case "ctrl+e":
		return s, s.explain()
	case "ctrl+r":
		if k := s.key(s.focus); k != "" {
			s.dispatch(actions.ToggleAnswer(k))
		}
		return s, nil
	case "ctrl+g":
		s.saveDraft()
		on := !s.state.IsPageGradedAll(s.pageKey())
		s.dispatch(actions.SetPageGradeAll(s.pageKey(), on))
		return s, nil
	}

	if s.mode == session.ModeDrill {
		switch key {
		case "ctrl+b":
			if q, ok := s.current(); ok {
				s.notices[s.key(s.focus)] = s.dispatch(actions.Bookmark(q)).Notice
			}
			return s, nil
		case "pgdown", "ctrl+n":
			s.turnPage(1)
			return s, nil
		case "pgup", "ctrl+p":
			s.turnPage(-1)
			return s, nil
		}
	} else {
		switch key {
		case "ctrl+d":
			if _, ok := s.current(); ok {
				s.afterReorder(s.dispatch(actions.RemoveBookmark(s.focus)).Notice)
			}
			return s, nil
		case "ctrl+x":
			if s.state.Notebook.Len() > 0 {
				s.confirmClear = true
			}
			return s, nil
		case "ctrl+s":
			s.export()
			return s, nil
		case "ctrl+o":
			p := components.NewAnswerInput("path/to/wrong_questions.json", 0)
			s.prompt = &p
			return s, p.Init()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) dispatch(a actions.Action) actions.Result {
	return s.dispatcher.Dispatch(context.Background(), s.state, a)
}

func (s *Screen) current() (bank.Question, bool) {
	if s.focus < 0 || s.focus >= len(s.questions) {
		return bank.Question{}, false
	}
	return s.questions[s.focus], true
}

func (s *Screen) key(i int) string {
	if i < 0 || i >= len(s.questions) {
		return ""
	}
	return session.ItemKey(s.mode, s.questions[i], i)
}

func (s *Screen) pageKey() string {
	if s.mode == session.ModeNotebook || len(s.pages) == 0 {
		return session.NotebookPageKey
	}
	return session.PageKey(s.mode, s.pages[s.pageIdx].Key)
}

func (s *Screen) saveDraft() {
	if k := s.key(s.focus); k != "" {
		s.state.SetDraft(k, s.input.Value())
	}
}

func (s *Screen) moveFocus(delta int) {
	next := s.focus + delta
	if next < 0 || next >= len(s.questions) {
		return
	}
	s.saveDraft()
	s.focus = next
	s.input.SetValue(s.state.Draft(s.key(s.focus)))
}

func (s *Screen) turnPage(delta int) {
	next := s.pageIdx + delta
	if next < 0 || next >= len(s.pages) {
		return
	}
	s.saveDraft()
	s.pageIdx = next
	s.focus = 0
	s.status = notice.Notice{}
	s.load()
}

func (s *Screen) grade() {
	q, ok := s.current()
	if !ok {
		return
	}
	key := s.key(s.focus)
	res := s.dispatch(actions.Grade(key, q, s.input.Value()))
	s.notices[key] = res.Notice
	s.input.Mark(res.Verdict)
}

// explain starts an explanation request for the focused question. The
// request runs off the UI loop; the answer field stays editable.
func (s *Screen) explain() tea.Cmd {
	q, ok := s.current()
	if !ok {
		return nil
	}
	key := s.key(s.focus)
	if s.pending[key] {
		return nil
	}
	s.pending[key] = true
	delete(s.notices, key)

	d, st, student, gen := s.dispatcher, s.state, s.input.Value(), s.gen
	return func() tea.Msg {
		res := d.Dispatch(context.Background(), st, actions.Explain(key, q, student))
		return explainDoneMsg{key: key, gen: gen, result: res}
	}
}

// afterReorder reloads the notebook after its positions shifted. Notices
// and pending requests were keyed by the old positions.
func (s *Screen) afterReorder(n notice.Notice) {
	s.gen++
	s.status = n
	s.notices = make(map[string]notice.Notice)
	s.pending = make(map[string]bool)
	s.load()
}

func (s *Screen) export() {
	res := s.dispatch(actions.Export())
	if res.Err != nil {
		s.status = res.Notice
		return
	}
	path := filepath.Join(s.exportDir, res.Filename)
	if err := os.WriteFile(path, res.Export, 0o644); err != nil {
		s.status = notice.Error(fmt.Sprintf("Could not write %s: %v", path, err))
		return
	}
	s.status = notice.Success(fmt.Sprintf("%s Saved at %s", res.Notice.Text, path))
}

func (s *Screen) importFile(path string) {
	if path == "" {
		return
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		s.status = notice.Error(fmt.Sprintf("Could not import the file: %v", err))
		return
	}
	res := s.dispatch(actions.Import(data))
	if res.Err != nil {
		s.status = res.Notice
		return
	}
	s.afterReorder(res.Notice)
}
