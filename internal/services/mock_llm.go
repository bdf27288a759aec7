package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/jwright-games/worldweaver/pkg/llm"
)

// MockLLM is a scripted llm.Generator for tests. Responses are returned
// in order; once exhausted it returns Fallback (or an error when
// Fallback is empty).
type MockLLM struct {
	mu        sync.Mutex
	Responses []string
	Fallback  string
	Err       error
	Calls     []MockCall
}

// MockCall records one Generate invocation.
type MockCall struct {
	System string
	Prompt string
	Opts   llm.Options
}

func (m *MockLLM) Generate(ctx context.Context, system string, prompt string, opts llm.Options) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{System: system, Prompt: prompt, Opts: opts})

	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) > 0 {
		resp := m.Responses[0]
		m.Responses = m.Responses[1:]
		return resp, nil
	}
	if m.Fallback != "" {
		return m.Fallback, nil
	}
	return "", fmt.Errorf("mock llm: no scripted response for call %d", len(m.Calls))
}

// CallCount returns the number of Generate calls so far.
func (m *MockLLM) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
