package notebook

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/drillpad/internal/bank"
)

// ErrIndexOutOfRange is returned by RemoveAt for a stale or invalid index.
var ErrIndexOutOfRange = errors.New("notebook index out of range")

// Notebook is the wrong-answer list: insertion ordered, de-duplicated on
// Add by full field equality. Entries are copies of bank questions.
// A Notebook is safe for concurrent use.
type Notebook struct {
	mu    sync.Mutex
	items []bank.Question
}

// New creates an empty notebook.
func New() *Notebook {
	return &Notebook{}
}

// Add appends a copy of q unless an equal entry already exists. It reports
// whether an insertion happened.
func (n *Notebook) Add(q bank.Question) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.indexOf(q) >= 0 {
		return false
	}
	c := q.Clone()
	// Entries are content only; which bank page rendering they came from
	// does not survive an export either.
	c.PageKey = ""
	n.items = append(n.items, c)
	return true
}

// Contains reports whether an entry equal to q exists.
func (n *Notebook) Contains(q bank.Question) bool {
	return n.IndexOf(q) >= 0
}

// IndexOf returns the position of the entry equal to q, or -1.
func (n *Notebook) IndexOf(q bank.Question) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.indexOf(q)
}

func (n *Notebook) indexOf(q bank.Question) int {
	for i, item := range n.items {
		if item.Equal(q) {
			return i
		}
	}
	return -1
}

// RemoveAt removes the entry at index i immediately. The list is left
// unchanged when i is outside [0, Len()).
func (n *Notebook) RemoveAt(i int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if i < 0 || i >= len(n.items) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(n.items))
	}
	n.items = append(n.items[:i], n.items[i+1:]...)
	return nil
}

// Clear empties the notebook.
func (n *Notebook) Clear() {
	n.mu.Lock()
	n.items = nil
	n.mu.Unlock()
}

// Len returns the number of entries.
func (n *Notebook) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.items)
}

// At returns a copy of the entry at index i.
func (n *Notebook) At(i int) (bank.Question, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if i < 0 || i >= len(n.items) {
		return bank.Question{}, false
	}
	return n.items[i].Clone(), true
}

// Items returns copies of all entries in order.
func (n *Notebook) Items() []bank.Question {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]bank.Question, len(n.items))
	for i, q := range n.items {
		out[i] = q.Clone()
	}
	return out
}

// Export serializes the notebook to its snapshot form.
func (n *Notebook) Export() ([]byte, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return Encode(n.items)
}

// Import replaces the notebook with the questions in data. On any error
// the existing entries are kept and a *MalformedSnapshotError is returned.
func (n *Notebook) Import(data []byte) error {
	qs, err := Decode(data)
	if err != nil {
		return err
	}
	if len(qs) == 0 {
		qs = nil
	}
	n.mu.Lock()
	n.items = qs
	n.mu.Unlock()
	return nil
}

// ExportFilename returns the suggested file name for an export made at t.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("wrong_questions_%s.json", t.Format("2006-01-02"))
}
