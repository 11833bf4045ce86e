package llm

import (
	"context"
	"strings"
	"sync"
)

// MockResponse is one scripted reply.
type MockResponse struct {
	Content    string
	Usage      Usage
	StopReason string
	Err        error
}

// MockProvider replays scripted replies in order and records every request.
// Once the script runs out it answers with Fallback, or fails as an
// unavailable provider when Fallback is nil.
type MockProvider struct {
	mu       sync.Mutex
	script   []MockResponse
	Fallback func(Request) MockResponse
	Calls    []Request
}

func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

// NewOfflineProvider backs the "mock" provider setting: every request gets
// a short canned explanation quoting the question, so drills can be tried
// without a credential.
func NewOfflineProvider() *MockProvider {
	return &MockProvider{Fallback: offlineExplanation}
}

func offlineExplanation(req Request) MockResponse {
	question := "this question"
	if n := len(req.Messages); n > 0 {
		for _, line := range strings.Split(req.Messages[n-1].Content, "\n") {
			if q, ok := strings.CutPrefix(line, "Question: "); ok && q != "" {
				question = q
				break
			}
		}
	}
	text := "(offline) No language model is configured, so there is no explanation for " +
		question + ". Set DRILLPAD_LLM_PROVIDER and a credential to get one."
	return MockResponse{Content: text}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	var next MockResponse
	switch {
	case len(m.script) > 0:
		next, m.script = m.script[0], m.script[1:]
	case m.Fallback != nil:
		next = m.Fallback(req)
	default:
		return nil, &ErrProviderUnavailable{}
	}
	if next.Err != nil {
		return nil, next.Err
	}

	stop := next.StopReason
	if stop == "" {
		stop = "end"
	}
	return finish(&Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      "mock",
		StopReason: stop,
	}, "mock")
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends to the script.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, resp)
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
