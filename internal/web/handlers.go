package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/drillpad/internal/actions"
	"github.com/abhisek/drillpad/internal/bank"
	"github.com/abhisek/drillpad/internal/notice"
	"github.com/abhisek/drillpad/internal/session"
)

// maxImportBytes caps an uploaded notebook snapshot.
const maxImportBytes = 8 << 20

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status":       "ok",
		"sessions":     s.sessions.Len(),
		"explanations": s.dispatcher.ExplanationsAvailable(),
	}
	if b, err := s.bank.Get(); err != nil {
		resp["bank"] = err.Error()
	} else {
		resp["pages"] = b.Len()
		resp["questions"] = b.QuestionCount()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) drillPage(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r)
	st.SetMode(session.ModeDrill)

	b, err := s.bank.Get()
	if err != nil {
		s.bankError(w, st, err)
		return
	}

	want := r.URL.Query().Get("page")
	if want == "" {
		want = st.PageID()
	}
	p, ok := b.Page(want)
	if !ok {
		if r.URL.Query().Get("page") != "" {
			st.AddFlash(session.PageKey(session.ModeDrill, want), notice.Warning(fmt.Sprintf("Page %s does not exist.", want)))
		}
		p, _ = b.PageAt(0)
	}
	id := p.Key
	st.SelectPage(id)

	pageKey := session.PageKey(session.ModeDrill, id)
	view := drillView{
		layoutView:  s.layout(st, "Drill", pageKey),
		PageID:      id,
		PageLabel:   p.Label(),
		GradeAll:    st.IsPageGradedAll(pageKey),
		GradeAllURL: "/drill/" + url.PathEscape(id) + "/grade-all",
	}
	if want != id {
		view.Flashes = append(view.Flashes, st.TakeFlashes(session.PageKey(session.ModeDrill, want))...)
	}
	for _, o := range b.Pages() {
		oid := o.Key
		view.Pages = append(view.Pages, pageOption{ID: oid, Label: o.Label(), Selected: oid == id})
	}
	for i, q := range p.Questions {
		view.Questions = append(view.Questions, newQuestionView(st, session.ModeDrill, q, i, drillActionURL(id, i), view.GradeAll))
	}

	render(w, http.StatusOK, s.pages.drill, view)
}

func (s *Server) drillQuestion(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r)

	b, err := s.bank.Get()
	if err != nil {
		s.bankError(w, st, err)
		return
	}

	id := pageParam(r)
	p, ok := b.Page(id)
	pos, perr := strconv.Atoi(chi.URLParam(r, "pos"))
	if !ok || perr != nil || pos < 0 || pos >= len(p.Questions) {
		st.AddFlash(session.PageKey(session.ModeDrill, id), notice.Error("That question no longer exists; the page has been refreshed."))
		http.Redirect(w, r, drillURL(id), http.StatusSeeOther)
		return
	}

	q := p.Questions[pos]
	key := session.ItemKey(session.ModeDrill, q, pos)
	answer := r.PostFormValue("answer")
	a, ok := questionAction(r.PostFormValue("op"), key, q, answer)
	if !ok {
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}

	st.SetDraft(key, answer)
	res := s.dispatcher.Dispatch(r.Context(), st, a)
	st.AddFlash(key, res.Notice)
	http.Redirect(w, r, drillURL(id)+"#"+anchor(pos), http.StatusSeeOther)
}

func (s *Server) drillGradeAll(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r)

	b, err := s.bank.Get()
	if err != nil {
		s.bankError(w, st, err)
		return
	}

	id := pageParam(r)
	p, ok := b.Page(id)
	if !ok {
		http.Redirect(w, r, drillURL(id), http.StatusSeeOther)
		return
	}

	s.gradeAll(r, st, session.PageKey(session.ModeDrill, id), session.ModeDrill, p.Questions)
	http.Redirect(w, r, drillURL(id), http.StatusSeeOther)
}

func (s *Server) notebookPage(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r)
	st.SetMode(session.ModeNotebook)

	view := notebookView{
		layoutView: s.layout(st, "Notebook", session.NotebookPageKey),
		GradeAll:   st.IsPageGradedAll(session.NotebookPageKey),
	}
	for i, q := range st.Notebook.Items() {
		view.Questions = append(view.Questions, newQuestionView(st, session.ModeNotebook, q, i, notebookActionURL(i), view.GradeAll))
	}

	render(w, http.StatusOK, s.pages.notebook, view)
}

func (s *Server) notebookQuestion(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r)

	pos, err := strconv.Atoi(chi.URLParam(r, "pos"))
	if err != nil {
		pos = -1
	}

	op := r.PostFormValue("op")
	if op == "remove" {
		res := s.dispatcher.Dispatch(r.Context(), st, actions.RemoveBookmark(pos))
		st.AddFlash(session.NotebookPageKey, res.Notice)
		http.Redirect(w, r, "/notebook", http.StatusSeeOther)
		return
	}

	q, ok := st.Notebook.At(pos)
	if !ok {
		st.AddFlash(session.NotebookPageKey, notice.Error("That notebook entry no longer exists; the list has been refreshed."))
		http.Redirect(w, r, "/notebook", http.StatusSeeOther)
		return
	}

	key := session.ItemKey(session.ModeNotebook, q, pos)
	answer := r.PostFormValue("answer")
	a, ok := questionAction(op, key, q, answer)
	if !ok {
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}

	st.SetDraft(key, answer)
	res := s.dispatcher.Dispatch(r.Context(), st, a)
	st.AddFlash(key, res.Notice)
	http.Redirect(w, r, "/notebook#"+anchor(pos), http.StatusSeeOther)
}

func (s *Server) notebookGradeAll(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r)
	s.gradeAll(r, st, session.NotebookPageKey, session.ModeNotebook, st.Notebook.Items())
	http.Redirect(w, r, "/notebook", http.StatusSeeOther)
}

func (s *Server) notebookClear(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r)
	res := s.dispatcher.Dispatch(r.Context(), st, actions.ClearNotebook())
	st.AddFlash(session.NotebookPageKey, res.Notice)
	http.Redirect(w, r, "/notebook", http.StatusSeeOther)
}

func (s *Server) notebookExport(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r)
	res := s.dispatcher.Dispatch(r.Context(), st, actions.Export())
	if res.Err != nil {
		st.AddFlash(session.NotebookPageKey, res.Notice)
		http.Redirect(w, r, "/notebook", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Export)
}

func (s *Server) notebookImport(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r)
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)

	data, err := readUpload(r, "snapshot")
	if err != nil {
		st.AddFlash(session.NotebookPageKey, notice.Error(fmt.Sprintf("Could not import the file: %v", err)))
		http.Redirect(w, r, "/notebook", http.StatusSeeOther)
		return
	}

	res := s.dispatcher.Dispatch(r.Context(), st, actions.Import(data))
	st.AddFlash(session.NotebookPageKey, res.Notice)
	http.Redirect(w, r, "/notebook", http.StatusSeeOther)
}

// gradeAll stores every posted answer as a draft and sets the page's
// grade-all flag from the "on" field.
func (s *Server) gradeAll(r *http.Request, st *session.State, pageKey string, mode session.Mode, qs []bank.Question) {
	if err := r.ParseForm(); err != nil {
		st.AddFlash(pageKey, notice.Error("Could not read the submitted answers."))
		return
	}
	for i, q := range qs {
		field := fmt.Sprintf("answer-%d", i)
		if _, ok := r.PostForm[field]; ok {
			st.SetDraft(session.ItemKey(mode, q, i), r.PostForm.Get(field))
		}
	}
	on := r.PostForm.Get("on") == "1"
	s.dispatcher.Dispatch(r.Context(), st, actions.SetPageGradeAll(pageKey, on))
}

func (s *Server) bankError(w http.ResponseWriter, st *session.State, err error) {
	view := errorView{
		layoutView: s.layout(st, "Question bank unavailable", ""),
		BankPath:   s.bank.Path(),
		Message:    bank.Describe(err),
	}
	render(w, http.StatusServiceUnavailable, s.pages.problem, view)
}

// questionAction maps a form's op to the action it requests.
func questionAction(op, key string, q bank.Question, answer string) (actions.Action, bool) {
	switch op {
	case "grade":
		return actions.Grade(key, q, answer), true
	case "explain":
		return actions.Explain(key, q, answer), true
	case "reveal":
		return actions.Reveal(key), true
	case "hide":
		return actions.Hide(key), true
	case "toggle":
		return actions.ToggleAnswer(key), true
	case "bookmark":
		return actions.Bookmark(q), true
	default:
		return actions.Action{}, false
	}
}

func readUpload(r *http.Request, field string) ([]byte, error) {
	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		return nil, fmt.Errorf("upload too large or malformed: %w", err)
	}
	f, _, err := r.FormFile(field)
	if err != nil {
		return nil, errors.New("no file selected")
	}
	defer f.Close()
	return io.ReadAll(f)
}

func pageParam(r *http.Request) string {
	raw := chi.URLParam(r, "page")
	if id, err := url.PathUnescape(raw); err == nil {
		return id
	}
	return raw
}
