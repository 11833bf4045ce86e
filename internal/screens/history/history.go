package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drillpad/internal/actions"
	"github.com/abhisek/drillpad/internal/bank"
	"github.com/abhisek/drillpad/internal/notebook"
	"github.com/abhisek/drillpad/internal/notice"
	"github.com/abhisek/drillpad/internal/router"
	"github.com/abhisek/drillpad/internal/screen"
	"github.com/abhisek/drillpad/internal/session"
	"github.com/abhisek/drillpad/internal/store"
	"github.com/abhisek/drillpad/internal/ui/components"
	"github.com/abhisek/drillpad/internal/ui/layout"
	"github.com/abhisek/drillpad/internal/ui/theme"
)

// listLimit is how many exports the screen loads.
const listLimit = 50

// previewLimit caps the questions listed under an expanded export.
const previewLimit = 5

type historyLoadedMsg struct {
	Snapshots []store.NotebookSnapshot
	Err       error
}

type detailLoadedMsg struct {
	ID        int
	Questions []bank.Question
	Err       error
}

type restoreLoadedMsg struct {
	Snapshot *store.NotebookSnapshot
	Err      error
}

// HistoryScreen lists past notebook exports and restores one into the
// current notebook.
type HistoryScreen struct {
	repo       store.NotebookRepo
	dispatcher *actions.Dispatcher
	state      *session.State

	snapshots []store.NotebookSnapshot
	details   map[int][]bank.Question
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
	status    notice.Notice
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.NotebookRepo, d *actions.Dispatcher, st *session.State) *HistoryScreen {
	return &HistoryScreen{
		repo:       repo,
		dispatcher: d,
		state:      st,
		details:    make(map[int][]bank.Question),
		expanded:   make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		snaps, err := repo.List(context.Background(), listLimit)
		return historyLoadedMsg{Snapshots: snaps, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Export history"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "R", Description: "Restore"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.snapshots = msg.Snapshots
		}
		s.loaded = true
		return s, nil

	case detailLoadedMsg:
		if msg.Err != nil {
			s.status = notice.Error(fmt.Sprintf("Could not read export #%d: %v", msg.ID, msg.Err))
			return s, nil
		}
		s.details[msg.ID] = msg.Questions
		return s, nil

	case restoreLoadedMsg:
		s.restore(msg)
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.snapshots)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if len(s.snapshots) == 0 {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			if s.expanded[s.selected] {
				return s, s.loadDetail(s.snapshots[s.selected].ID)
			}
			return s, nil
		case "r", "R":
			if len(s.snapshots) == 0 {
				return s, nil
			}
			return s, s.loadForRestore(s.snapshots[s.selected].ID)
		}
	}
	return s, nil
}

func (s *HistoryScreen) loadDetail(id int) tea.Cmd {
	if _, ok := s.details[id]; ok {
		return nil
	}
	repo := s.repo
	return func() tea.Msg {
		snap, err := repo.Get(context.Background(), id)
		if err != nil {
			return detailLoadedMsg{ID: id, Err: err}
		}
		if snap == nil {
			return detailLoadedMsg{ID: id, Err: fmt.Errorf("export not found")}
		}
		qs, err := notebook.Decode(snap.Data)
		return detailLoadedMsg{ID: id, Questions: qs, Err: err}
	}
}

func (s *HistoryScreen) loadForRestore(id int) tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		snap, err := repo.Get(context.Background(), id)
		if err == nil && snap == nil {
			err = fmt.Errorf("export #%d not found", id)
		}
		return restoreLoadedMsg{Snapshot: snap, Err: err}
	}
}

// restore imports a stored export on the UI loop, where the session state
// is owned.
func (s *HistoryScreen) restore(msg restoreLoadedMsg) {
	if msg.Err != nil {
		s.status = notice.Error(fmt.Sprintf("Could not restore: %v", msg.Err))
		return
	}
	res := s.dispatcher.Dispatch(context.Background(), s.state, actions.Import(msg.Snapshot.Data))
	if res.Err != nil {
		s.status = res.Notice
		return
	}
	s.status = notice.Success(fmt.Sprintf("Restored %s. %s", msg.Snapshot.Filename, res.Notice.Text))
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading export history...")
	}
	if len(s.snapshots) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No exports yet. Export the notebook with Ctrl+S.")
	}

	var b strings.Builder
	b.WriteString("\n")
	if !s.status.IsZero() {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.NoticeLine(s.status, width-4)))
		b.WriteString("\n\n")
	}

	for i, snap := range s.snapshots {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s#%d  %s  %d question%s  %s",
			prefix, snap.ID, snap.Timestamp.Local().Format("Jan 02, 2006 15:04"),
			snap.ItemCount, plural(snap.ItemCount), snap.Filename)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, l := range s.detailLines(snap) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Render(l)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func (s *HistoryScreen) detailLines(snap store.NotebookSnapshot) []string {
	lines := []string{fmt.Sprintf("    session %s", shortID(snap.SessionID))}
	qs, ok := s.details[snap.ID]
	if !ok {
		return append(lines, "    loading...")
	}
	for i, q := range qs {
		if i == previewLimit {
			lines = append(lines, fmt.Sprintf("    ... and %d more", len(qs)-previewLimit))
			break
		}
		lines = append(lines, fmt.Sprintf("    Page %s · %s", q.Page, truncate(q.QuestionText, 48)))
	}
	return lines
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	if id == "" {
		return "unknown"
	}
	return id
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
