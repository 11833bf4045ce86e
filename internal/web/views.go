package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"os"

	"github.com/abhisek/drillpad/internal/bank"
	"github.com/abhisek/drillpad/internal/grading"
	"github.com/abhisek/drillpad/internal/notice"
	"github.com/abhisek/drillpad/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"gradeAllForm": func(target string, on bool) gradeAllForm {
		return gradeAllForm{URL: target, On: on}
	},
}

type gradeAllForm struct {
	URL string
	On  bool
}

type pageSet struct {
	drill    *template.Template
	notebook *template.Template
	problem  *template.Template
}

func parsePages() (*pageSet, error) {
	parse := func(name string) (*template.Template, error) {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("web: parse %s: %w", name, err)
		}
		return t, nil
	}

	var ps pageSet
	var err error
	if ps.drill, err = parse("drill.html"); err != nil {
		return nil, err
	}
	if ps.notebook, err = parse("notebook.html"); err != nil {
		return nil, err
	}
	if ps.problem, err = parse("error.html"); err != nil {
		return nil, err
	}
	return &ps, nil
}

// render executes t into a buffer first so a template failure never
// leaves a half-written page.
func render(w http.ResponseWriter, status int, t *template.Template, data any) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		fmt.Fprintln(os.Stderr, "warning: render page:", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

type layoutView struct {
	Title         string
	Mode          string
	NotebookCount int
	Explanations  bool
	Flashes       []notice.Notice
}

type pageOption struct {
	ID       string
	Label    string
	Selected bool
}

type questionView struct {
	Anchor    string
	ActionURL string
	Heading   string
	Source    string
	Text      string
	Hints     string
	Draft     string
	HasAnswer bool
	Answer    string
	Revealed  bool

	// Bookmarked is only meaningful in drill mode.
	Bookmarked bool
	Removable  bool

	// Grade is set when the page is in grade-all mode.
	Grade   *notice.Notice
	Flashes []notice.Notice
}

type drillView struct {
	layoutView
	Pages       []pageOption
	PageID      string
	PageLabel   string
	GradeAll    bool
	GradeAllURL string
	Questions   []questionView
}

type notebookView struct {
	layoutView
	GradeAll  bool
	Questions []questionView
}

type errorView struct {
	layoutView
	Message  string
	BankPath string
}

func (s *Server) layout(st *session.State, title string, flashKey string) layoutView {
	return layoutView{
		Title:         title,
		Mode:          string(st.Mode()),
		NotebookCount: st.Notebook.Len(),
		Explanations:  s.dispatcher.ExplanationsAvailable(),
		Flashes:       st.TakeFlashes(flashKey),
	}
}

// newQuestionView builds the view of the question at pos (0-based) of the current view.
func newQuestionView(st *session.State, mode session.Mode, q bank.Question, pos int, actionURL string, gradeAll bool) questionView {
	key := session.ItemKey(mode, q, pos)
	draft := st.Draft(key)

	v := questionView{
		Anchor:    anchor(pos),
		ActionURL: actionURL,
		Heading:   q.Heading(pos + 1),
		Text:      q.QuestionText,
		Hints:     q.Hints,
		Draft:     draft,
		HasAnswer: q.HasAnswer(),
		Answer:    q.AnswerText(),
		Revealed:  st.IsAnswerRevealed(key),
		Flashes:   st.TakeFlashes(key),
	}

	switch mode {
	case session.ModeNotebook:
		v.Source = "Page " + q.Page.String()
		v.Removable = true
	default:
		v.Bookmarked = st.Notebook.Contains(q)
	}

	if gradeAll {
		n := grading.GradeQuestion(draft, q).Notice
		v.Grade = &n
	}
	return v
}

func anchor(pos int) string {
	return fmt.Sprintf("q-%d", pos)
}

func drillURL(pageID string) string {
	return "/drill?page=" + url.QueryEscape(pageID)
}

func drillActionURL(pageID string, pos int) string {
	return fmt.Sprintf("/drill/%s/%d", url.PathEscape(pageID), pos)
}

func notebookActionURL(pos int) string {
	return fmt.Sprintf("/notebook/%d", pos)
}
