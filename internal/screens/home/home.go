package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/drillpad/internal/actions"
	"github.com/abhisek/drillpad/internal/bank"
	"github.com/abhisek/drillpad/internal/router"
	"github.com/abhisek/drillpad/internal/screen"
	"github.com/abhisek/drillpad/internal/screens/drill"
	"github.com/abhisek/drillpad/internal/screens/history"
	"github.com/abhisek/drillpad/internal/screens/pages"
	"github.com/abhisek/drillpad/internal/screens/placeholder"
	"github.com/abhisek/drillpad/internal/session"
	"github.com/abhisek/drillpad/internal/store"
	"github.com/abhisek/drillpad/internal/ui/components"
	"github.com/abhisek/drillpad/internal/ui/layout"
)

// Env is what the home screen needs to open the other screens.
type Env struct {
	Bank       *bank.Cache
	Dispatcher *actions.Dispatcher
	State      *session.State

	// History is optional; the export history entry is disabled without it.
	History store.NotebookRepo

	// ExportDir is where notebook exports are written.
	ExportDir string
}

const (
	itemDrill = iota
	itemNotebook
	itemHistory
	itemQuit
)

// HomeScreen is the main menu.
type HomeScreen struct {
	env        Env
	menu       components.Menu
	menuLabels []string

	pageCount     int
	questionCount int
	notebookCount int
	bankProblem   string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env Env) *HomeScreen {
	h := &HomeScreen{
		env:        env,
		menuLabels: []string{"DRILL", "NOTEBOOK", "EXPORT HISTORY", "QUIT"},
	}

	items := []components.MenuItem{
		{Label: h.menuLabels[itemDrill], Action: h.openDrill},
		{Label: h.menuLabels[itemNotebook], Action: func() tea.Cmd {
			return push(drill.NewNotebook(env.Dispatcher, env.State, env.ExportDir))
		}},
		{Label: h.menuLabels[itemHistory], Disabled: env.History == nil, Action: func() tea.Cmd {
			return push(history.New(env.History, env.Dispatcher, env.State))
		}},
		{Label: h.menuLabels[itemQuit], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	h.refresh()
	return h
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}

// openDrill shows the page picker, or explains why the bank cannot be
// drilled.
func (h *HomeScreen) openDrill() tea.Cmd {
	b, err := h.env.Bank.Get()
	if err != nil {
		return push(placeholder.New("Drill", bank.Describe(err)))
	}
	return push(pages.New(h.env.Dispatcher, h.env.State, b))
}

// refresh recomputes the dashboard counts. The bank file may have been
// edited and the notebook changed while another screen was open.
func (h *HomeScreen) refresh() {
	h.notebookCount = h.env.State.Notebook.Len()
	b, err := h.env.Bank.Get()
	if err != nil {
		h.pageCount, h.questionCount = 0, 0
		h.bankProblem = bank.Describe(err)
		return
	}
	h.pageCount = b.Len()
	h.questionCount = b.QuestionCount()
	h.bankProblem = ""
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Resume() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Ctrl+R", Description: "Reload bank"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && k.String() == "ctrl+r" {
		h.env.Bank.Invalidate()
		h.refresh()
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 22 || width < 90
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatsBar(h.pageCount, h.questionCount, h.notebookCount, cw, compact))

	if h.bankProblem != "" {
		sections = append(sections, renderProblem(h.bankProblem, cw))
	}
	if !h.env.Dispatcher.ExplanationsAvailable() {
		sections = append(sections, renderLLMBanner(cw))
	}

	disabled := make(map[int]bool)
	for i, item := range h.menu.Items {
		disabled[i] = item.Disabled
	}
	if compact {
		sections = append(sections, renderMenuCompact(h.menuLabels, h.menu.Selected, cw, disabled))
	} else {
		sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw, disabled))
	}

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.Frame(strings.Join(sections, sep), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
