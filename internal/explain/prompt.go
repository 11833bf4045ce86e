package explain

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a witty, professional French teacher helping a student who is drilling grammar exercises. Be accurate first, then friendly. Keep the explanation short.`

const none = "none"

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return none
	}
	return s
}

func buildUserMessage(in Input) string {
	var b strings.Builder

	b.WriteString("This is a French grammar exercise.\n")
	fmt.Fprintf(&b, "Question: %q\n", in.QuestionText)
	fmt.Fprintf(&b, "Hint: %q\n", orNone(in.Hints))
	if in.CanonicalAnswer != nil && *in.CanonicalAnswer != "" {
		fmt.Fprintf(&b, "Reference answer: %q\n", *in.CanonicalAnswer)
	} else {
		fmt.Fprintf(&b, "Reference answer: %s (work out the correct answer yourself)\n", none)
	}
	fmt.Fprintf(&b, "Student's answer: %q\n", orNone(in.StudentAnswer))

	b.WriteString(`
Instructions:
1. Explain why the reference answer is correct: name the specific grammar, tense or conjugation rule involved.
2. If the student wrote an answer and it is wrong, gently point out why it is wrong.`)

	return b.String()
}
