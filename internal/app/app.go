package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/abhisek/drillpad/internal/actions"
	"github.com/abhisek/drillpad/internal/bank"
	"github.com/abhisek/drillpad/internal/router"
	"github.com/abhisek/drillpad/internal/screen"
	"github.com/abhisek/drillpad/internal/screens/home"
	"github.com/abhisek/drillpad/internal/screens/welcome"
	"github.com/abhisek/drillpad/internal/session"
	"github.com/abhisek/drillpad/internal/store"
	"github.com/abhisek/drillpad/internal/ui/layout"
)

// Options configures the terminal app.
type Options struct {
	Bank       *bank.Cache
	Dispatcher *actions.Dispatcher

	// History records notebook exports; nil disables the history screen.
	History store.NotebookRepo

	// ExportDir is where notebook exports are written. Defaults to ".".
	ExportDir string

	// SkipWelcome starts on the home screen.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router     *router.Router
	state      *session.State
	dispatcher *actions.Dispatcher
	width      int
	height     int
}

// newAppModel creates the model for one terminal session.
func newAppModel(opts Options) AppModel {
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	st := session.NewState(uuid.New().String())

	newHome := func() screen.Screen {
		return home.New(home.Env{
			Bank:       opts.Bank,
			Dispatcher: opts.Dispatcher,
			State:      st,
			History:    opts.History,
			ExportDir:  opts.ExportDir,
		})
	}

	var first screen.Screen
	if opts.SkipWelcome {
		first = newHome()
	} else {
		first = welcome.New(newHome)
	}

	return AppModel{
		router:     router.New(first),
		state:      st,
		dispatcher: opts.Dispatcher,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if md, ok := m.router.Active().(screen.Modal); ok && md.InModal() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.headerStatus(), m.width)

	var footerHints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Any key", Description: "Continue"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) headerStatus() layout.HeaderStatus {
	return layout.HeaderStatus{
		NotebookCount: m.state.Notebook.Len(),
		Explanations:  m.dispatcher.ExplanationsAvailable(),
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
