package session

import (
	"strings"
	"sync"
	"time"

	"github.com/abhisek/drillpad/internal/notebook"
	"github.com/abhisek/drillpad/internal/notice"
)

// State is the per-user interaction state that outlives a single render:
// which answers are revealed, which pages are in grade-all mode, the
// typed-but-unsubmitted answers and the wrong-question notebook.
type State struct {
	// ID identifies the session (a UUID for web sessions).
	ID string

	// Notebook holds the bookmarked questions.
	Notebook *notebook.Notebook

	// StartedAt is when the session was created.
	StartedAt time.Time

	mu           sync.Mutex
	mode         Mode
	pageID       string
	revealed     map[string]bool
	pageGradeAll map[string]bool
	drafts       map[string]string
	flashes      map[string][]notice.Notice
}

// NewState creates an empty session state in drill mode.
func NewState(id string) *State {
	return &State{
		ID:           id,
		Notebook:     notebook.New(),
		StartedAt:    time.Now(),
		mode:         ModeDrill,
		revealed:     make(map[string]bool),
		pageGradeAll: make(map[string]bool),
		drafts:       make(map[string]string),
		flashes:      make(map[string][]notice.Notice),
	}
}

// Mode returns the active view.
func (s *State) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode switches the active view. Unknown modes are ignored.
func (s *State) SetMode(m Mode) {
	if !m.Valid() {
		return
	}
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
}

// PageID returns the selected drill page, or "" if none was chosen yet.
func (s *State) PageID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageID
}

// SelectPage records the selected drill page.
func (s *State) SelectPage(id string) {
	s.mu.Lock()
	s.pageID = id
	s.mu.Unlock()
}

// RevealAnswer marks the question under key as revealed. Idempotent.
func (s *State) RevealAnswer(key string) {
	s.mu.Lock()
	s.revealed[key] = true
	s.mu.Unlock()
}

// HideAnswer clears the reveal flag for key. Idempotent.
func (s *State) HideAnswer(key string) {
	s.mu.Lock()
	delete(s.revealed, key)
	s.mu.Unlock()
}

// ToggleAnswer flips the reveal flag and returns the new value.
func (s *State) ToggleAnswer(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.revealed[key] {
		delete(s.revealed, key)
		return false
	}
	s.revealed[key] = true
	return true
}

func (s *State) IsAnswerRevealed(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revealed[key]
}

// SetPageGradeAll turns the grade-all flag for a page on or off.
func (s *State) SetPageGradeAll(pageKey string, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if on {
		s.pageGradeAll[pageKey] = true
		return
	}
	delete(s.pageGradeAll, pageKey)
}

func (s *State) IsPageGradedAll(pageKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageGradeAll[pageKey]
}

// SetDraft stores the student's current text for key.
func (s *State) SetDraft(key, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if text == "" {
		delete(s.drafts, key)
		return
	}
	s.drafts[key] = text
}

// Draft returns the stored text for key, or "".
func (s *State) Draft(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drafts[key]
}

// ResetMode drops reveal flags, drafts and grade-all flags recorded under
// mode. The notebook view keys items by position, so it is reset whenever
// the notebook's contents shift.
func (s *State) ResetMode(mode Mode) {
	prefix := string(mode) + "/"
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range []map[string]bool{s.revealed, s.pageGradeAll} {
		for k := range m {
			if strings.HasPrefix(k, prefix) {
				delete(m, k)
			}
		}
	}
	for k := range s.drafts {
		if strings.HasPrefix(k, prefix) {
			delete(s.drafts, k)
		}
	}
}

// AddFlash queues a notice to be shown once next to the item under key.
func (s *State) AddFlash(key string, n notice.Notice) {
	if n.IsZero() {
		return
	}
	s.mu.Lock()
	s.flashes[key] = append(s.flashes[key], n)
	s.mu.Unlock()
}

// TakeFlashes returns and clears the notices queued under key.
func (s *State) TakeFlashes(key string) []notice.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns := s.flashes[key]
	delete(s.flashes, key)
	return ns
}
