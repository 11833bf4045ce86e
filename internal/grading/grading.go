package grading

import (
	"fmt"
	"strings"

	"github.com/abhisek/drillpad/internal/bank"
	"github.com/abhisek/drillpad/internal/notice"
)

// Verdict classifies a graded answer.
type Verdict int

const (
	NoAnswerGiven Verdict = iota
	NoCanonicalAnswer
	Correct
	Incorrect
)

func (v Verdict) String() string {
	switch v {
	case NoAnswerGiven:
		return "no-answer-given"
	case NoCanonicalAnswer:
		return "no-canonical-answer"
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// Grade compares a student answer against the canonical answer.
//
// Matching is exact after trimming surrounding whitespace and lowercasing
// both sides. There is deliberately no fuzzy, accent-insensitive or
// synonym matching. A nil canonical answer is treated like an empty one.
func Grade(student string, canonical *string) Verdict {
	s := strings.TrimSpace(student)
	if s == "" {
		return NoAnswerGiven
	}
	if canonical == nil || *canonical == "" {
		return NoCanonicalAnswer
	}
	if strings.ToLower(s) == strings.ToLower(strings.TrimSpace(*canonical)) {
		return Correct
	}
	return Incorrect
}

// Result is a verdict together with the message shown for it.
type Result struct {
	Verdict Verdict
	Notice  notice.Notice
}

// GradeQuestion grades student against q's answer and picks the message
// copy and severity for the verdict.
func GradeQuestion(student string, q bank.Question) Result {
	v := Grade(student, q.Answer)
	return Result{Verdict: v, Notice: Message(v, student, q.AnswerText())}
}

// Message returns the user-facing notice for a verdict. Grading outcomes
// are informational, never failures.
func Message(v Verdict, student, canonical string) notice.Notice {
	switch v {
	case NoAnswerGiven:
		return notice.Warning("You haven't written an answer yet!")
	case NoCanonicalAnswer:
		return notice.Warning("No reference answer for this question; judge it yourself or ask for an explanation.")
	case Correct:
		return notice.Success(fmt.Sprintf("Correct! The reference answer is: %s", canonical))
	default:
		return notice.Error(fmt.Sprintf("Not quite. Your answer: %s | Reference answer: %s", student, canonical))
	}
}
