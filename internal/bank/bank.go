package bank

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DefaultFile is the bank file looked up in the working directory.
const DefaultFile = "book_complete.json"

var (
	// ErrNotFound is returned when the bank file does not exist.
	ErrNotFound = errors.New("question bank not found")

	// ErrEmpty is returned when the bank holds no non-empty page.
	ErrEmpty = errors.New("question bank is empty")

	// ErrUnreadable is returned when the bank file cannot be read or parsed.
	ErrUnreadable = errors.New("question bank unreadable")
)

// Describe turns a load error into the message shown to the user.
func Describe(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "No question bank was found. Put " + DefaultFile + " in the working directory or set DRILLPAD_BANK."
	case errors.Is(err, ErrEmpty):
		return "The question bank has no questions."
	default:
		return fmt.Sprintf("The question bank could not be read: %v", err)
	}
}

// Bank is the ordered set of pages loaded from the store. It is read-only
// once built.
type Bank struct {
	pages []Page
	index map[string]int
}

// New builds a Bank from pages, dropping pages without questions, keying
// each page uniquely and stamping each question with its page.
func New(pages []Page) *Bank {
	b := &Bank{index: make(map[string]int)}
	seen := make(map[string]int)
	for _, p := range pages {
		if len(p.Questions) == 0 {
			continue
		}
		// 7 and "7" share a key space.
		seen[p.ID.Value]++
		n := seen[p.ID.Value]
		key := p.ID.Value
		for k := n; ; k++ {
			if k > 1 {
				key = fmt.Sprintf("%s~%d", p.ID.Value, k)
			}
			if _, taken := b.index[key]; !taken {
				break
			}
		}

		qs := make([]Question, len(p.Questions))
		for i, q := range p.Questions {
			q = q.Clone()
			q.Page = p.ID
			q.PageKey = key
			qs[i] = q
		}
		b.index[key] = len(b.pages)
		b.pages = append(b.pages, Page{ID: p.ID, Questions: qs, Key: key, occurrence: n})
	}
	return b
}

// Pages returns the pages in file order. Callers must not modify them.
func (b *Bank) Pages() []Page {
	return b.pages
}

// Len returns the number of pages.
func (b *Bank) Len() int {
	return len(b.pages)
}

// QuestionCount returns the total number of questions across all pages.
func (b *Bank) QuestionCount() int {
	n := 0
	for _, p := range b.pages {
		n += len(p.Questions)
	}
	return n
}

// Page looks up a page by its Key. For an id the file does not repeat
// that is the id itself.
func (b *Bank) Page(key string) (Page, bool) {
	i, ok := b.index[key]
	if !ok {
		return Page{}, false
	}
	return b.pages[i], true
}

// PageAt returns the page at position i.
func (b *Bank) PageAt(i int) (Page, bool) {
	if i < 0 || i >= len(b.pages) {
		return Page{}, false
	}
	return b.pages[i], true
}

// Load reads and parses the bank file at path.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return Parse(data)
}

// Parse decodes a bank document. Only presence is checked: every question
// needs question_text, every page needs a page id.
func Parse(data []byte) (*Bank, error) {
	var pages []Page
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	for _, p := range pages {
		if len(p.Questions) == 0 {
			continue
		}
		if p.ID.IsZero() {
			return nil, fmt.Errorf("%w: page without id", ErrUnreadable)
		}
		for i, q := range p.Questions {
			if q.QuestionText == "" {
				return nil, fmt.Errorf("%w: page %s item %d has no question_text", ErrUnreadable, p.ID, i+1)
			}
		}
	}

	b := New(pages)
	if b.Len() == 0 {
		return nil, ErrEmpty
	}
	return b, nil
}

// DefaultPath resolves the bank file path: DRILLPAD_BANK if set, otherwise
// DefaultFile in the working directory.
func DefaultPath() string {
	if p := os.Getenv("DRILLPAD_BANK"); p != "" {
		return p
	}
	return DefaultFile
}
