package session

import (
	"fmt"

	"github.com/abhisek/drillpad/internal/bank"
)

// Mode is the view a question is rendered under.
type Mode string

const (
	ModeDrill    Mode = "drill"
	ModeNotebook Mode = "notebook"
)

// NotebookPageID is the pseudo page the notebook view grades as a whole.
const NotebookPageID = "all"

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeDrill || m == ModeNotebook
}

// Key identifies one rendered question: the view, the bank page it was
// drawn from (by page Key) and its position within that rendering. Two
// questions sharing a page, block and number still get distinct keys.
func Key(mode Mode, page string, position int) string {
	return fmt.Sprintf("%s/%s/%d", mode, page, position)
}

// PageKey identifies a rendered page for the grade-all flag.
func PageKey(mode Mode, page string) string {
	return fmt.Sprintf("%s/%s", mode, page)
}

// ItemKey is Key for the item at position in a rendering of mode. Notebook
// items are keyed by their notebook position, not their source page.
func ItemKey(mode Mode, q bank.Question, position int) string {
	if mode == ModeNotebook {
		return Key(mode, NotebookPageID, position)
	}
	page := q.PageKey
	if page == "" {
		page = q.Page.String()
	}
	return Key(mode, page, position)
}

// NotebookPageKey is the grade-all key of the notebook view.
var NotebookPageKey = PageKey(ModeNotebook, NotebookPageID)
