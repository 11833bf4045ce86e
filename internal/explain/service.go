package explain

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/drillpad/internal/bank"
	"github.com/abhisek/drillpad/internal/llm"
)

// Purpose labels explanation requests in the LLM event log.
const Purpose = "explain"

// ErrUnavailable is returned when no LLM credential is configured. No
// request is attempted.
var ErrUnavailable = errors.New("explanations are unavailable: no usable LLM credential is configured")

// ServiceError wraps a failed explanation request. The underlying llm
// error (rate limit, provider unavailable, ...) is reachable via Unwrap.
type ServiceError struct {
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("explanation request failed: %v", e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Input is everything the explanation prompt is built from.
type Input struct {
	QuestionText    string
	Hints           string
	CanonicalAnswer *string
	StudentAnswer   string
}

// InputFor builds the Input for a bank question and the student's text.
func InputFor(q bank.Question, student string) Input {
	return Input{
		QuestionText:    q.QuestionText,
		Hints:           q.Hints,
		CanonicalAnswer: q.Answer,
		StudentAnswer:   student,
	}
}

// Explanation is the model's reply.
type Explanation struct {
	Text  string
	Model string

	// Truncated is set when the reply hit the token limit; Text holds the
	// part that was produced.
	Truncated bool
}

// Service requests explanations from an LLM provider.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates an explanation service. A nil provider yields a
// service whose Explain always returns ErrUnavailable.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Available reports whether a provider is configured.
func (s *Service) Available() bool {
	return s != nil && s.provider != nil
}

// Explain sends one request and blocks until it completes, fails or ctx
// is done. Errors are either ErrUnavailable or *ServiceError.
func (s *Service) Explain(ctx context.Context, in Input) (*Explanation, error) {
	if !s.Available() {
		return nil, ErrUnavailable
	}

	ctx = llm.WithPurpose(ctx, Purpose)
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(in)},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		var maxTok *llm.ErrMaxTokensExceeded
		if errors.As(err, &maxTok) && maxTok.Content != "" {
			return &Explanation{Text: maxTok.Content, Model: s.provider.ModelID(), Truncated: true}, nil
		}
		return nil, &ServiceError{Err: err}
	}

	model := resp.Model
	if model == "" {
		model = s.provider.ModelID()
	}
	return &Explanation{Text: resp.Content, Model: model}, nil
}
