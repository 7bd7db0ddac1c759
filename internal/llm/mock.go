package llm

import (
	"context"
	"errors"
	"sync"
)

// ErrScriptExhausted is returned by MockProvider when no scripted response is left.
var ErrScriptExhausted = errors.New("mock provider: no scripted responses left")

// MockProvider replays scripted responses and records every request.
type MockProvider struct {
	Responses []ChatResponse
	Err       error

	mu       sync.Mutex
	Requests []ChatRequest
}

// Name implements Provider.
func (m *MockProvider) Name() string { return "mock" }

// Chat implements Provider.
func (m *MockProvider) Chat(_ context.Context, req ChatRequest) (*ChatResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Responses) == 0 {
		return nil, ErrScriptExhausted
	}
	resp := m.Responses[0]
	m.Responses = m.Responses[1:]
	return &resp, nil
}
