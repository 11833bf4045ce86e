package actions

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/drillpad/internal/bank"
	"github.com/abhisek/drillpad/internal/explain"
	"github.com/abhisek/drillpad/internal/grading"
	"github.com/abhisek/drillpad/internal/llm"
	"github.com/abhisek/drillpad/internal/notebook"
	"github.com/abhisek/drillpad/internal/notice"
	"github.com/abhisek/drillpad/internal/session"
	"github.com/abhisek/drillpad/internal/store"
)

type fakeHistory struct {
	saved []*store.NotebookSnapshot
	err   error
}

func (f *fakeHistory) Save(_ context.Context, snap *store.NotebookSnapshot) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, snap)
	return nil
}

func (f *fakeHistory) Latest(context.Context) (*store.NotebookSnapshot, error) { return nil, nil }

func (f *fakeHistory) Get(context.Context, int) (*store.NotebookSnapshot, error) { return nil, nil }

func (f *fakeHistory) List(context.Context, int) ([]store.NotebookSnapshot, error) { return nil, nil }

func (f *fakeHistory) Prune(context.Context, int) error { return nil }

func strptr(s string) *string { return &s }

func question(page int, text, answer string) bank.Question {
	q := bank.Question{Page: bank.NumberIdent(page), ExerciseBlock: "Ex 1", QuestionText: text}
	if answer != "" {
		q.Answer = strptr(answer)
	}
	return q
}

func newDispatcher(provider llm.Provider, history store.NotebookRepo) *Dispatcher {
	d := New(explain.NewService(provider, explain.DefaultConfig()), history)
	d.now = func() time.Time { return time.Date(2026, 4, 2, 15, 0, 0, 0, time.UTC) }
	return d
}

func TestDispatch_RevealHideToggle(t *testing.T) {
	d := newDispatcher(nil, nil)
	st := session.NewState("s")
	key := session.Key(session.ModeDrill, "1", 0)
	ctx := context.Background()

	r := d.Dispatch(ctx, st, Reveal(key))
	assert.True(t, r.Notice.IsZero())
	assert.True(t, st.IsAnswerRevealed(key))

	d.Dispatch(ctx, st, Hide(key))
	assert.False(t, st.IsAnswerRevealed(key))

	d.Dispatch(ctx, st, ToggleAnswer(key))
	assert.True(t, st.IsAnswerRevealed(key))
}

func TestDispatch_Grade(t *testing.T) {
	d := newDispatcher(nil, nil)
	st := session.NewState("s")
	q := question(1, "Ils ___ (chanter)", "chantent")
	key := session.Key(session.ModeDrill, q.Page.String(), 0)
	ctx := context.Background()

	tests := []struct {
		student string
		verdict grading.Verdict
		level   notice.Level
	}{
		{"", grading.NoAnswerGiven, notice.LevelWarning},
		{"  CHANTENT ", grading.Correct, notice.LevelSuccess},
		{"chante", grading.Incorrect, notice.LevelError},
	}
	for _, tt := range tests {
		r := d.Dispatch(ctx, st, Grade(key, q, tt.student))
		assert.Equal(t, tt.verdict, r.Verdict, tt.student)
		assert.Equal(t, tt.level, r.Notice.Level, tt.student)
		assert.Equal(t, tt.student, st.Draft(key))
	}

	noAnswer := question(1, "Q", "")
	r := d.Dispatch(ctx, st, Grade(key, noAnswer, "x"))
	assert.Equal(t, grading.NoCanonicalAnswer, r.Verdict)
	assert.Equal(t, notice.LevelWarning, r.Notice.Level)
}

func TestDispatch_ExplainUnavailable(t *testing.T) {
	d := newDispatcher(nil, nil)
	st := session.NewState("s")
	q := question(1, "Q", "a")
	key := session.Key(session.ModeDrill, q.Page.String(), 0)
	st.RevealAnswer(key)
	st.Notebook.Add(q)

	r := d.Dispatch(context.Background(), st, Explain(key, q, "typed"))
	assert.False(t, d.ExplanationsAvailable())
	assert.Equal(t, notice.LevelWarning, r.Notice.Level)
	assert.ErrorIs(t, r.Err, explain.ErrUnavailable)
	assert.Nil(t, r.Explanation)

	assert.Equal(t, "typed", st.Draft(key))
	assert.True(t, st.IsAnswerRevealed(key))
	assert.Equal(t, 1, st.Notebook.Len())
}

func TestDispatch_ExplainFailureKeepsState(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("401 bad credentials")}})
	d := newDispatcher(mock, nil)
	st := session.NewState("s")
	q := question(1, "Q", "a")
	key := session.Key(session.ModeDrill, q.Page.String(), 0)
	st.RevealAnswer(key)
	st.Notebook.Add(q)

	r := d.Dispatch(context.Background(), st, Explain(key, q, "typed"))
	assert.Equal(t, notice.LevelError, r.Notice.Level)
	assert.Contains(t, r.Notice.Text, "401 bad credentials")
	var se *explain.ServiceError
	assert.ErrorAs(t, r.Err, &se)

	assert.Equal(t, "typed", st.Draft(key))
	assert.True(t, st.IsAnswerRevealed(key))
	assert.Equal(t, 1, st.Notebook.Len())
}

func TestDispatch_ExplainSuccess(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: "Because plural."})
	d := newDispatcher(mock, nil)
	st := session.NewState("s")
	q := question(1, "Q", "a")

	r := d.Dispatch(context.Background(), st, Explain("k", q, "b"))
	require.NotNil(t, r.Explanation)
	assert.Equal(t, "Because plural.", r.Explanation.Text)
	assert.Equal(t, notice.LevelInfo, r.Notice.Level)
	assert.Equal(t, "Because plural.", r.Notice.Text)
}

func TestDispatch_ExplainTruncated(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: "Because", StopReason: "max_tokens"})
	d := newDispatcher(mock, nil)
	r := d.Dispatch(context.Background(), session.NewState("s"), Explain("k", question(1, "Q", "a"), ""))
	require.NotNil(t, r.Explanation)
	assert.True(t, r.Explanation.Truncated)
	assert.Contains(t, r.Notice.Text, "cut short")
}

func TestDispatch_BookmarkLifecycle(t *testing.T) {
	d := newDispatcher(nil, nil)
	st := session.NewState("s")
	ctx := context.Background()
	a := question(1, "A", "x")
	b := question(2, "B", "")

	assert.Equal(t, notice.LevelSuccess, d.Dispatch(ctx, st, Bookmark(a)).Notice.Level)
	assert.Equal(t, notice.LevelInfo, d.Dispatch(ctx, st, Bookmark(a)).Notice.Level)
	d.Dispatch(ctx, st, Bookmark(b))
	require.Equal(t, 2, st.Notebook.Len())

	nbKey := session.Key(session.ModeNotebook, a.Page.String(), 0)
	st.RevealAnswer(nbKey)
	r := d.Dispatch(ctx, st, RemoveBookmark(0))
	assert.Equal(t, notice.LevelSuccess, r.Notice.Level)
	assert.False(t, st.IsAnswerRevealed(nbKey), "notebook reveal state resets after removal")
	first, _ := st.Notebook.At(0)
	assert.Equal(t, "B", first.QuestionText)

	r = d.Dispatch(ctx, st, RemoveBookmark(5))
	assert.Equal(t, notice.LevelError, r.Notice.Level)
	assert.ErrorIs(t, r.Err, notebook.ErrIndexOutOfRange)
	assert.Equal(t, 1, st.Notebook.Len())

	d.Dispatch(ctx, st, ClearNotebook())
	assert.Equal(t, 0, st.Notebook.Len())
}

func TestDispatch_ExportRecordsHistory(t *testing.T) {
	hist := &fakeHistory{}
	d := newDispatcher(nil, hist)
	st := session.NewState("sess-42")
	st.Notebook.Add(question(1, "A", "x"))
	st.Notebook.Add(question(2, "B", "y"))

	r := d.Dispatch(context.Background(), st, Export())
	assert.Equal(t, notice.LevelSuccess, r.Notice.Level)
	assert.Equal(t, "wrong_questions_2026-04-02.json", r.Filename)
	assert.Contains(t, r.Notice.Text, "2 questions")

	require.Len(t, hist.saved, 1)
	snap := hist.saved[0]
	assert.Equal(t, "sess-42", snap.SessionID)
	assert.Equal(t, 2, snap.ItemCount)
	assert.Equal(t, r.Export, snap.Data)

	dst := notebook.New()
	require.NoError(t, dst.Import(r.Export))
	assert.Equal(t, st.Notebook.Items(), dst.Items())
}

func TestDispatch_ExportHistoryFailureStillExports(t *testing.T) {
	d := newDispatcher(nil, &fakeHistory{err: errors.New("read-only")})
	st := session.NewState("s")
	r := d.Dispatch(context.Background(), st, Export())
	assert.Equal(t, notice.LevelSuccess, r.Notice.Level)
	assert.Equal(t, "[]\n", string(r.Export))
}

func TestDispatch_Import(t *testing.T) {
	d := newDispatcher(nil, nil)
	st := session.NewState("s")
	ctx := context.Background()
	st.Notebook.Add(question(9, "keep me", ""))

	r := d.Dispatch(ctx, st, Import([]byte("not json")))
	assert.Equal(t, notice.LevelError, r.Notice.Level)
	var mse *notebook.MalformedSnapshotError
	assert.ErrorAs(t, r.Err, &mse)
	assert.Equal(t, 1, st.Notebook.Len())

	r = d.Dispatch(ctx, st, Import([]byte(`[{"page": 1, "question_text": "A"}, {"page": "2b", "question_text": "B"}]`)))
	assert.Equal(t, notice.LevelSuccess, r.Notice.Level)
	assert.Equal(t, "Imported 2 questions.", r.Notice.Text)
	assert.Equal(t, 2, st.Notebook.Len())
}

func TestDispatch_SinglePageScenario(t *testing.T) {
	b, err := bank.Parse([]byte(`[{"page": 7, "data": [{"question_text": "Je ___ (chanter)", "answer": "chante", "hints": "présent"}]}]`))
	require.NoError(t, err)
	require.Equal(t, 1, b.Len())
	p, _ := b.PageAt(0)
	require.Len(t, p.Questions, 1)
	q := p.Questions[0]

	d := newDispatcher(nil, nil)
	st := session.NewState("s")
	ctx := context.Background()
	key := session.ItemKey(session.ModeDrill, q, 0)

	r := d.Dispatch(ctx, st, Grade(key, q, "Chante "))
	assert.Equal(t, grading.Correct, r.Verdict)

	d.Dispatch(ctx, st, Bookmark(q))
	r = d.Dispatch(ctx, st, Export())
	require.NoError(t, r.Err)

	var doc []map[string]any
	require.NoError(t, json.Unmarshal(r.Export, &doc))
	require.Len(t, doc, 1)
	assert.Equal(t, "chante", doc[0]["answer"])
}

func TestDispatch_PageGradeAll(t *testing.T) {
	d := newDispatcher(nil, nil)
	st := session.NewState("s")
	pk := session.PageKey(session.ModeDrill, "12")

	d.Dispatch(context.Background(), st, SetPageGradeAll(pk, true))
	assert.True(t, st.IsPageGradedAll(pk))
	d.Dispatch(context.Background(), st, SetPageGradeAll(pk, false))
	assert.False(t, st.IsPageGradedAll(pk))
}

func TestDispatch_UnknownKind(t *testing.T) {
	d := newDispatcher(nil, nil)
	r := d.Dispatch(context.Background(), session.NewState("s"), Action{Kind: Kind(99)})
	assert.Equal(t, notice.LevelError, r.Notice.Level)
	assert.Error(t, r.Err)
}
