// Package actions turns user commands into session state changes and a
// user-visible notice. Both the terminal and web surfaces go through it.
package actions

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/drillpad/internal/bank"
	"github.com/abhisek/drillpad/internal/explain"
	"github.com/abhisek/drillpad/internal/grading"
	"github.com/abhisek/drillpad/internal/notebook"
	"github.com/abhisek/drillpad/internal/notice"
	"github.com/abhisek/drillpad/internal/session"
	"github.com/abhisek/drillpad/internal/store"
)

// Kind names a user command.
type Kind int

const (
	KindReveal Kind = iota + 1
	KindHide
	KindToggleAnswer
	KindGrade
	KindExplain
	KindBookmark
	KindRemoveBookmark
	KindClearNotebook
	KindExport
	KindImport
	KindSetPageGradeAll
)

func (k Kind) String() string {
	switch k {
	case KindReveal:
		return "reveal"
	case KindHide:
		return "hide"
	case KindToggleAnswer:
		return "toggle-answer"
	case KindGrade:
		return "grade"
	case KindExplain:
		return "explain"
	case KindBookmark:
		return "bookmark"
	case KindRemoveBookmark:
		return "remove-bookmark"
	case KindClearNotebook:
		return "clear-notebook"
	case KindExport:
		return "export"
	case KindImport:
		return "import"
	case KindSetPageGradeAll:
		return "set-page-grade-all"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Action is one user command. Only the fields its Kind uses are read.
type Action struct {
	Kind Kind

	// Key identifies the rendered question (session.Key).
	Key      string
	Question bank.Question
	Student  string

	// Index is the notebook position for KindRemoveBookmark.
	Index int

	// PageKey and On drive KindSetPageGradeAll.
	PageKey string
	On      bool

	// Data is the uploaded snapshot for KindImport.
	Data []byte
}

func Reveal(key string) Action { return Action{Kind: KindReveal, Key: key} }
func Hide(key string) Action { return Action{Kind: KindHide, Key: key} }

func ToggleAnswer(key string) Action { return Action{Kind: KindToggleAnswer, Key: key} }

func Grade(key string, q bank.Question, student string) Action {
	return Action{Kind: KindGrade, Key: key, Question: q, Student: student}
}

func Explain(key string, q bank.Question, student string) Action {
	return Action{Kind: KindExplain, Key: key, Question: q, Student: student}
}

func Bookmark(q bank.Question) Action { return Action{Kind: KindBookmark, Question: q} }
func RemoveBookmark(index int) Action { return Action{Kind: KindRemoveBookmark, Index: index} }
func ClearNotebook() Action { return Action{Kind: KindClearNotebook} }
func Export() Action { return Action{Kind: KindExport} }
func Import(data []byte) Action { return Action{Kind: KindImport, Data: data} }
func SetPageGradeAll(pageKey string, on bool) Action {
	return Action{Kind: KindSetPageGradeAll, PageKey: pageKey, On: on}
}

// Result is what a command produced. Notice is the message to show; it is
// zero for commands that only change what is rendered.
type Result struct {
	Notice notice.Notice

	// Verdict is set for KindGrade.
	Verdict grading.Verdict

	// Explanation is set for a successful KindExplain.
	Explanation *explain.Explanation

	// Export and Filename are set for a successful KindExport.
	Export   []byte
	Filename string

	// Err is the underlying failure behind an error or warning notice.
	Err error
}

// Dispatcher executes actions against a session.
type Dispatcher struct {
	explainer *explain.Service
	history   store.NotebookRepo
	now       func() time.Time
}

// New creates a Dispatcher. explainer may be unavailable and history may
// be nil; exports are then simply not recorded.
func New(explainer *explain.Service, history store.NotebookRepo) *Dispatcher {
	return &Dispatcher{explainer: explainer, history: history, now: time.Now}
}

// ExplanationsAvailable reports whether explain actions can reach a model.
func (d *Dispatcher) ExplanationsAvailable() bool {
	return d.explainer.Available()
}

// Dispatch runs a and reports the outcome. Failures are reported through
// the Result's notice; no action leaves the session unusable.
func (d *Dispatcher) Dispatch(ctx context.Context, st *session.State, a Action) Result {
	switch a.Kind {
	case KindReveal:
		st.RevealAnswer(a.Key)
		return Result{}
	case KindHide:
		st.HideAnswer(a.Key)
		return Result{}
	case KindToggleAnswer:
		st.ToggleAnswer(a.Key)
		return Result{}
	case KindGrade:
		st.SetDraft(a.Key, a.Student)
		r := grading.GradeQuestion(a.Student, a.Question)
		return Result{Notice: r.Notice, Verdict: r.Verdict}
	case KindExplain:
		st.SetDraft(a.Key, a.Student)
		return d.explain(ctx, a)
	case KindBookmark:
		if st.Notebook.Add(a.Question) {
			return Result{Notice: notice.Success("Added to the notebook.")}
		}
		return Result{Notice: notice.Info("Already in the notebook.")}
	case KindRemoveBookmark:
		if err := st.Notebook.RemoveAt(a.Index); err != nil {
			return Result{Notice: notice.Error("That notebook entry no longer exists; the list has been refreshed."), Err: err}
		}
		st.ResetMode(session.ModeNotebook)
		return Result{Notice: notice.Success("Removed from the notebook.")}
	case KindClearNotebook:
		st.Notebook.Clear()
		st.ResetMode(session.ModeNotebook)
		return Result{Notice: notice.Info("Notebook cleared.")}
	case KindExport:
		return d.export(ctx, st)
	case KindImport:
		if err := st.Notebook.Import(a.Data); err != nil {
			return Result{Notice: notice.Error(fmt.Sprintf("Could not import the file: %v", err)), Err: err}
		}
		st.ResetMode(session.ModeNotebook)
		return Result{Notice: notice.Success(fmt.Sprintf("Imported %s.", plural(st.Notebook.Len())))}
	case KindSetPageGradeAll:
		st.SetPageGradeAll(a.PageKey, a.On)
		return Result{}
	default:
		err := fmt.Errorf("unknown action %v", a.Kind)
		return Result{Notice: notice.Error(err.Error()), Err: err}
	}
}

func (d *Dispatcher) explain(ctx context.Context, a Action) Result {
	exp, err := d.explainer.Explain(ctx, explain.InputFor(a.Question, a.Student))
	switch {
	case errors.Is(err, explain.ErrUnavailable):
		return Result{Notice: notice.Warning("Set GITHUB_TOKEN (or another LLM API key) to enable explanations."), Err: err}
	case err != nil:
		return Result{Notice: notice.Error(fmt.Sprintf("Could not get an explanation: %v", err)), Err: err}
	}
	text := exp.Text
	if exp.Truncated {
		text += "\n\n(explanation cut short)"
	}
	return Result{Notice: notice.Info(text), Explanation: exp}
}

func (d *Dispatcher) export(ctx context.Context, st *session.State) Result {
	data, err := st.Notebook.Export()
	if err != nil {
		return Result{Notice: notice.Error(fmt.Sprintf("Could not export the notebook: %v", err)), Err: err}
	}
	now := d.now()
	name := notebook.ExportFilename(now)
	n := st.Notebook.Len()

	if d.history != nil {
		snap := &store.NotebookSnapshot{
			Timestamp: now,
			SessionID: st.ID,
			Filename:  name,
			ItemCount: n,
			Data:      data,
		}
		if err := d.history.Save(ctx, snap); err != nil {
			fmt.Fprintln(os.Stderr, "warning: failed to record notebook export:", err)
		}
	}

	return Result{
		Notice:   notice.Success(fmt.Sprintf("Exported %s to %s.", plural(n), name)),
		Export:   data,
		Filename: name,
	}
}

func plural(n int) string {
	if n == 1 {
		return "1 question"
	}
	return fmt.Sprintf("%d questions", n)
}
