package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/drillpad/internal/ui/layout"
)

// Screen is one full-window view managed by the router.
type Screen interface {
	// Init returns an initial command when the screen is first shown.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen and command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Resumer is implemented by screens that refresh when a screen pushed on
// top of them is closed.
type Resumer interface {
	Resume() tea.Cmd
}

// Modal is implemented by screens that sometimes need Esc for themselves,
// for example to cancel a prompt. While InModal is true the app forwards
// Esc instead of closing the screen.
type Modal interface {
	InModal() bool
}
