package app

import (
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/drillpad/internal/actions"
	"github.com/abhisek/drillpad/internal/bank"
	"github.com/abhisek/drillpad/internal/explain"
	"github.com/abhisek/drillpad/internal/router"
	"github.com/abhisek/drillpad/internal/screens/drill"
	"github.com/abhisek/drillpad/internal/screens/home"
	"github.com/abhisek/drillpad/internal/screens/welcome"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book_complete.json")
	if err := os.WriteFile(path, []byte(`[{"page": 1, "data": [{"question_text": "a", "answer": "b"}]}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	return Options{
		Bank:       bank.NewCache(path, false),
		Dispatcher: actions.New(explain.NewService(nil, explain.DefaultConfig()), nil),
		ExportDir:  t.TempDir(),
	}
}

func update(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func TestStartsOnWelcome(t *testing.T) {
	m := newAppModel(testOptions(t))
	if _, ok := m.router.Active().(*welcome.WelcomeScreen); !ok {
		t.Fatalf("expected welcome screen, got %T", m.router.Active())
	}

	m, cmd := update(m, tea.KeyPressMsg{Code: 'x', Text: "x"})
	if cmd == nil {
		t.Fatal("expected transition command")
	}
	m, _ = update(m, cmd())
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Errorf("expected home screen, got %T", m.router.Active())
	}
	if m.router.Depth() != 1 {
		t.Errorf("expected welcome replaced, depth %d", m.router.Depth())
	}
}

func TestEscPopsUnlessModal(t *testing.T) {
	opts := testOptions(t)
	opts.SkipWelcome = true
	m := newAppModel(opts)

	nb := drill.NewNotebook(opts.Dispatcher, m.state, opts.ExportDir)
	m, _ = update(m, router.PushScreenMsg{Screen: nb})

	// Ctrl+O opens the import prompt; Esc must close it, not the screen.
	m, _ = update(m, tea.KeyPressMsg{Code: 'o', Mod: tea.ModCtrl})
	if !nb.InModal() {
		t.Fatal("expected import prompt open")
	}
	m, cmd := update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		if _, ok := cmd().(router.PopScreenMsg); ok {
			t.Fatal("esc in a prompt must not pop the screen")
		}
	}
	if nb.InModal() {
		t.Error("expected prompt closed")
	}

	m, cmd = update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	m, _ = update(m, cmd())
	if m.router.Depth() != 1 {
		t.Errorf("expected back on home, depth %d", m.router.Depth())
	}
}

func TestHeaderShowsNotebookCount(t *testing.T) {
	opts := testOptions(t)
	opts.SkipWelcome = true
	m := newAppModel(opts)
	m.state.Notebook.Add(bank.Question{Page: bank.NumberIdent(1), QuestionText: "a"})

	status := m.headerStatus()
	if status.NotebookCount != 1 || status.Explanations {
		t.Errorf("unexpected header status %+v", status)
	}
}
