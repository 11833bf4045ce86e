package grading

import (
	"testing"

	"github.com/abhisek/drillpad/internal/bank"
	"github.com/abhisek/drillpad/internal/notice"
)

func strPtr(s string) *string { return &s }

func TestGrade(t *testing.T) {
	tests := []struct {
		name      string
		student   string
		canonical *string
		want      Verdict
	}{
		{"blank answer", " ", strPtr("chante"), NoAnswerGiven},
		{"empty answer", "", strPtr("chante"), NoAnswerGiven},
		{"blank answer without canonical", "\t", nil, NoAnswerGiven},
		{"empty canonical", "chante", strPtr(""), NoCanonicalAnswer},
		{"absent canonical", "chante", nil, NoCanonicalAnswer},
		{"exact", "chante", strPtr("chante"), Correct},
		{"case differs", "Chante", strPtr("chante"), Correct},
		{"trailing space", "Chante ", strPtr("chante"), Correct},
		{"canonical padded", "chante", strPtr("  CHANTE\n"), Correct},
		{"wrong ending", "chantes", strPtr("chante"), Incorrect},
		{"accent differs", "ete", strPtr("été"), Incorrect},
		{"inner whitespace differs", "ont  chanté", strPtr("ont chanté"), Incorrect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Grade(tt.student, tt.canonical); got != tt.want {
				t.Errorf("Grade(%q) = %v, want %v", tt.student, got, tt.want)
			}
		})
	}
}

func TestGrade_CaseAndWhitespaceInsensitive(t *testing.T) {
	answers := []string{"chante", "Je suis allé", "finissons", "ÉTÉ"}
	variants := func(s string) []string {
		return []string{s, " " + s, s + "  ", "\t" + s + "\n"}
	}
	for _, a := range answers {
		for _, sv := range variants(a) {
			for _, cv := range variants(a) {
				upper := sv
				if len(upper) > 0 {
					upper = swapCase(sv)
				}
				if got := Grade(upper, &cv); got != Correct {
					t.Errorf("Grade(%q, %q) = %v, want correct", upper, cv, got)
				}
			}
		}
	}
}

func swapCase(s string) string {
	out := []rune(s)
	for i, r := range out {
		switch {
		case 'a' <= r && r <= 'z':
			out[i] = r - 'a' + 'A'
		case 'A' <= r && r <= 'Z':
			out[i] = r - 'A' + 'a'
		}
	}
	return string(out)
}

func TestGradeQuestion_Messages(t *testing.T) {
	q := bank.Question{QuestionText: "Je ___ (chanter)", Answer: strPtr("chante")}

	tests := []struct {
		student string
		verdict Verdict
		level   notice.Level
		text    string
	}{
		{"", NoAnswerGiven, notice.LevelWarning, "You haven't written an answer yet!"},
		{"Chante ", Correct, notice.LevelSuccess, "Correct! The reference answer is: chante"},
		{"chantes", Incorrect, notice.LevelError, "Not quite. Your answer: chantes | Reference answer: chante"},
	}
	for _, tt := range tests {
		res := GradeQuestion(tt.student, q)
		if res.Verdict != tt.verdict {
			t.Errorf("verdict for %q = %v, want %v", tt.student, res.Verdict, tt.verdict)
		}
		if res.Notice.Level != tt.level {
			t.Errorf("level for %q = %v, want %v", tt.student, res.Notice.Level, tt.level)
		}
		if res.Notice.Text != tt.text {
			t.Errorf("text for %q = %q, want %q", tt.student, res.Notice.Text, tt.text)
		}
	}

	noAnswer := GradeQuestion("chante", bank.Question{QuestionText: "x"})
	if noAnswer.Verdict != NoCanonicalAnswer || noAnswer.Notice.Level != notice.LevelWarning {
		t.Errorf("unexpected result without canonical answer: %+v", noAnswer)
	}
}
