package notebook

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/drillpad/internal/bank"
)

func strPtr(s string) *string { return &s }

func question(page int, text, answer string) bank.Question {
	return bank.Question{
		Page:         bank.NumberIdent(page),
		QuestionText: text,
		Answer:       strPtr(answer),
	}
}

func TestAdd_Deduplicates(t *testing.T) {
	n := New()
	q := question(7, "Je ___ (chanter)", "chante")

	assert.True(t, n.Add(q))
	assert.False(t, n.Add(q))
	assert.False(t, n.Add(q.Clone()))
	assert.Equal(t, 1, n.Len())

	other := q.Clone()
	other.Hints = "présent"
	assert.True(t, n.Add(other), "a question differing in any field is distinct")
	assert.Equal(t, 2, n.Len())
}

func TestAdd_StoresCopy(t *testing.T) {
	n := New()
	q := question(7, "Je ___ (chanter)", "chante")
	n.Add(q)

	*q.Answer = "mutated"

	got, ok := n.At(0)
	require.True(t, ok)
	assert.Equal(t, "chante", got.AnswerText())

	items := n.Items()
	*items[0].Answer = "mutated too"
	got, _ = n.At(0)
	assert.Equal(t, "chante", got.AnswerText())
}

func TestRemoveAt(t *testing.T) {
	n := New()
	n.Add(question(1, "a", "x"))
	n.Add(question(1, "b", "y"))
	n.Add(question(1, "c", "z"))

	require.NoError(t, n.RemoveAt(1))
	items := n.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].QuestionText)
	assert.Equal(t, "c", items[1].QuestionText)
}

func TestRemoveAt_OutOfRange(t *testing.T) {
	empty := New()
	err := empty.RemoveAt(0)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	assert.Equal(t, 0, empty.Len())

	n := New()
	n.Add(question(1, "a", "x"))
	for _, idx := range []int{-1, 1, 5} {
		err := n.RemoveAt(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", idx)
	}
	assert.Equal(t, 1, n.Len())
}

func TestClear(t *testing.T) {
	n := New()
	n.Add(question(1, "a", "x"))
	n.Clear()
	assert.Equal(t, 0, n.Len())
	assert.Empty(t, n.Items())
}

func TestRoundTrip(t *testing.T) {
	num := bank.StringIdent("4b")
	emptyAnswer := question(2, "empty answer", "")
	noAnswer := bank.Question{Page: bank.StringIdent("9a"), QuestionText: "no answer", QuestionNumber: &num, ExerciseBlock: "Exercice 3"}

	ops := []func(n *Notebook){
		func(n *Notebook) {},
		func(n *Notebook) { n.Add(question(7, "Je ___ (chanter)", "chante")) },
		func(n *Notebook) {
			n.Add(question(7, "Je ___ (chanter)", "chante"))
			n.Add(emptyAnswer)
			n.Add(noAnswer)
		},
		func(n *Notebook) {
			n.Add(question(1, "a", "x"))
			n.Add(noAnswer)
			n.Add(question(1, "b", "<é & ü>"))
			_ = n.RemoveAt(0)
		},
		func(n *Notebook) {
			n.Add(question(1, "a", "x"))
			n.Clear()
			n.Add(emptyAnswer)
		},
	}

	for i, op := range ops {
		src := New()
		op(src)

		data, err := src.Export()
		require.NoError(t, err, "case %d", i)

		dst := New()
		dst.Add(question(99, "stale", "gone"))
		require.NoError(t, dst.Import(data), "case %d", i)

		assert.Equal(t, src.Items(), dst.Items(), "case %d", i)
	}
}

func TestExport_Format(t *testing.T) {
	n := New()
	n.Add(bank.Question{
		Page:         bank.NumberIdent(7),
		QuestionText: "Je ___ (chanter)",
		Hints:        "présent",
		Answer:       strPtr("chante"),
	})

	data, err := n.Export()
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  {", "export is indented")
	assert.Contains(t, string(data), "présent", "non-ASCII is written as UTF-8")

	var doc []map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc, 1)
	assert.Equal(t, "chante", doc[0]["answer"])
	assert.Equal(t, float64(7), doc[0]["page"])

	empty, err := New().Export()
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(empty))
}

func TestImport_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"plain text", "not json"},
		{"object instead of list", `{"page": 1, "question_text": "x"}`},
		{"list of strings", `["a", "b"]`},
		{"missing question text", `[{"page": 1, "answer": "x"}]`},
		{"missing page", `[{"question_text": "x"}]`},
		{"answer wrong type", `[{"page": 1, "question_text": "x", "answer": 5}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := New()
			n.Add(question(7, "Je ___ (chanter)", "chante"))
			before := n.Items()

			err := n.Import([]byte(tt.data))
			require.Error(t, err)
			var malformed *MalformedSnapshotError
			assert.True(t, errors.As(err, &malformed), "got %T", err)
			assert.Equal(t, before, n.Items(), "state must be unchanged")
		})
	}
}

func TestImport_AcceptsNullOptionalFields(t *testing.T) {
	n := New()
	err := n.Import([]byte(`[{"page": 3, "question_text": "x", "answer": null, "hints": null, "exercise_block": null, "question_number": null}]`))
	require.NoError(t, err)
	q, ok := n.At(0)
	require.True(t, ok)
	assert.Nil(t, q.Answer)
	assert.Nil(t, q.QuestionNumber)
	assert.Equal(t, "x", q.QuestionText)
}

func TestImport_Replaces(t *testing.T) {
	n := New()
	n.Add(question(1, "old", "x"))
	require.NoError(t, n.Import([]byte(`[{"page": 2, "question_text": "new"}]`)))
	items := n.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "new", items[0].QuestionText)
}

func TestExportFilename(t *testing.T) {
	ts := time.Date(2026, 3, 9, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "wrong_questions_2026-03-09.json", ExportFilename(ts))
}
