package explain

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/drillpad/internal/bank"
	"github.com/abhisek/drillpad/internal/llm"
)

func strptr(s string) *string { return &s }

func sampleInput() Input {
	return Input{
		QuestionText:    "Ils ___ (chanter) bien.",
		Hints:           "présent",
		CanonicalAnswer: strptr("chantent"),
		StudentAnswer:   "chante",
	}
}

func TestExplain_Unavailable(t *testing.T) {
	svc := NewService(nil, DefaultConfig())
	assert.False(t, svc.Available())

	_, err := svc.Explain(context.Background(), sampleInput())
	assert.ErrorIs(t, err, ErrUnavailable)

	var nilSvc *Service
	assert.False(t, nilSvc.Available())
}

func TestExplain_SendsPromptAndSettings(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: "Avec « ils », le verbe prend -ent."})
	svc := NewService(mock, DefaultConfig())

	exp, err := svc.Explain(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.Equal(t, "Avec « ils », le verbe prend -ent.", exp.Text)
	assert.Equal(t, "mock", exp.Model)
	assert.False(t, exp.Truncated)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Equal(t, 0.3, req.Temperature)
	assert.Equal(t, 800, req.MaxTokens)
	assert.Contains(t, req.System, "French teacher")
	require.Len(t, req.Messages, 1)
	msg := req.Messages[0].Content
	assert.Contains(t, msg, `Question: "Ils ___ (chanter) bien."`)
	assert.Contains(t, msg, `Hint: "présent"`)
	assert.Contains(t, msg, `Reference answer: "chantent"`)
	assert.Contains(t, msg, `Student's answer: "chante"`)
}

func TestExplain_MissingFieldsUseNone(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: "ok"})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Explain(context.Background(), Input{QuestionText: "Q"})
	require.NoError(t, err)

	msg := mock.Calls[0].Messages[0].Content
	assert.Contains(t, msg, `Hint: "none"`)
	assert.Contains(t, msg, "Reference answer: none")
	assert.Contains(t, msg, `Student's answer: "none"`)
}

func TestExplain_ProviderFailureIsServiceError(t *testing.T) {
	cause := &llm.ErrRateLimit{Err: errors.New("429")}
	mock := llm.NewMockProvider(llm.MockResponse{Err: cause})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Explain(context.Background(), sampleInput())
	var se *ServiceError
	require.ErrorAs(t, err, &se)
	var rl *llm.ErrRateLimit
	assert.ErrorAs(t, err, &rl)
	assert.True(t, strings.HasPrefix(err.Error(), "explanation request failed"))
}

func TestExplain_TruncatedReplyIsKept(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: "Parce que le sujet", StopReason: "max_tokens"})
	svc := NewService(mock, DefaultConfig())

	exp, err := svc.Explain(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.True(t, exp.Truncated)
	assert.Equal(t, "Parce que le sujet", exp.Text)
}

func TestExplain_SetsPurpose(t *testing.T) {
	var seen string
	p := purposeProbe{seen: &seen}
	svc := NewService(p, Config{Timeout: time.Second})

	_, err := svc.Explain(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.Equal(t, Purpose, seen)
}

func TestInputFor(t *testing.T) {
	q := bank.Question{Page: bank.NumberIdent(3), QuestionText: "Q", Hints: "h", Answer: strptr("a")}
	in := InputFor(q, "b")
	assert.Equal(t, "Q", in.QuestionText)
	assert.Equal(t, "h", in.Hints)
	assert.Equal(t, "a", *in.CanonicalAnswer)
	assert.Equal(t, "b", in.StudentAnswer)
}

type purposeProbe struct{ seen *string }

func (p purposeProbe) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	*p.seen = llm.PurposeFrom(ctx)
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("expected deadline")
	}
	return &llm.Response{Content: "ok"}, nil
}

func (p purposeProbe) ModelID() string { return "probe" }
