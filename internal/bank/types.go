package bank

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DefaultExerciseBlock labels questions whose exercise_block is absent.
const DefaultExerciseBlock = "Exercise"

// Ident is a page identifier or question number as written in the bank
// file. The file uses JSON numbers for most pages but strings ("12a") also
// occur, so the original form is kept to round-trip exactly.
type Ident struct {
	Value   string
	Numeric bool
}

// NumberIdent returns a numeric Ident.
func NumberIdent(n int) Ident {
	return Ident{Value: fmt.Sprint(n), Numeric: true}
}

// StringIdent returns a string Ident.
func StringIdent(s string) Ident {
	return Ident{Value: s}
}

func (id Ident) String() string {
	return id.Value
}

// IsZero reports whether the identifier was absent or null.
func (id Ident) IsZero() bool {
	return id.Value == "" && !id.Numeric
}

func (id Ident) MarshalJSON() ([]byte, error) {
	if id.Numeric {
		return []byte(id.Value), nil
	}
	return json.Marshal(id.Value)
}

func (id *Ident) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = Ident{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = Ident{Value: s}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("identifier must be a number or string: %s", data)
	}
	*id = Ident{Value: n.String(), Numeric: true}
	return nil
}

// Question is one exercise item. Its identity for bookmarking is the full
// field tuple; see Equal.
type Question struct {
	Page           Ident   `json:"page"`
	ExerciseBlock  string  `json:"exercise_block,omitempty"`
	QuestionNumber *Ident  `json:"question_number,omitempty"`
	QuestionText   string  `json:"question_text"`
	Hints          string  `json:"hints,omitempty"`
	Answer         *string `json:"answer,omitempty"`

	// PageKey is the Key of the bank page the question was drawn from. It
	// is not part of the question's identity.
	PageKey string `json:"-"`
}

// Block returns the exercise block label, falling back to the default.
func (q Question) Block() string {
	if q.ExerciseBlock == "" {
		return DefaultExerciseBlock
	}
	return q.ExerciseBlock
}

// Number returns the question number, falling back to the 1-based
// position of the item within its list.
func (q Question) Number(position int) string {
	if q.QuestionNumber != nil && !q.QuestionNumber.IsZero() {
		return q.QuestionNumber.Value
	}
	return fmt.Sprint(position)
}

// Heading renders the "<block> - Q<n>" title shown above a question.
func (q Question) Heading(position int) string {
	return fmt.Sprintf("%s - Q%s", q.Block(), q.Number(position))
}

// HasAnswer reports whether a non-empty canonical answer is available.
func (q Question) HasAnswer() bool {
	return q.Answer != nil && *q.Answer != ""
}

// AnswerText returns the canonical answer, or "" when absent.
func (q Question) AnswerText() string {
	if q.Answer == nil {
		return ""
	}
	return *q.Answer
}

// Equal reports whether every field of q and o matches exactly.
func (q Question) Equal(o Question) bool {
	if q.Page != o.Page ||
		q.ExerciseBlock != o.ExerciseBlock ||
		q.QuestionText != o.QuestionText ||
		q.Hints != o.Hints {
		return false
	}
	if (q.QuestionNumber == nil) != (o.QuestionNumber == nil) {
		return false
	}
	if q.QuestionNumber != nil && *q.QuestionNumber != *o.QuestionNumber {
		return false
	}
	if (q.Answer == nil) != (o.Answer == nil) {
		return false
	}
	return q.Answer == nil || *q.Answer == *o.Answer
}

// Clone returns a deep copy that shares no pointers with q.
func (q Question) Clone() Question {
	c := q
	if q.QuestionNumber != nil {
		n := *q.QuestionNumber
		c.QuestionNumber = &n
	}
	if q.Answer != nil {
		a := *q.Answer
		c.Answer = &a
	}
	return c
}

// Page is an ordered, non-empty list of questions sharing a page id.
type Page struct {
	ID        Ident      `json:"page"`
	Questions []Question `json:"data"`

	// Key tells pages apart when the file repeats an id: it is the id
	// itself for the first page carrying it and "<id>~<n>" for the n-th.
	// Set by New.
	Key        string `json:"-"`
	occurrence int
}

// Label renders the page selector entry, e.g. "Page 7 (3 questions)".
func (p Page) Label() string {
	noun := "questions"
	if len(p.Questions) == 1 {
		noun = "question"
	}
	if p.occurrence > 1 {
		return fmt.Sprintf("Page %s #%d (%d %s)", p.ID, p.occurrence, len(p.Questions), noun)
	}
	return fmt.Sprintf("Page %s (%d %s)", p.ID, len(p.Questions), noun)
}
