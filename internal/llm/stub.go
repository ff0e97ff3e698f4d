package llm

import (
	"context"
	"sync"
)

// StubRouter is a deterministic Router used by scheduler tests and local
// development without a real model backend. It returns fixtures keyed by
// the user prompt's content, falling back to a canned "wait" action so the
// scheduler always has something to parse.
type StubRouter struct {
	mu        sync.Mutex
	fixtures  map[string]string
	callCount int
}

// NewStubRouter creates a stub with an empty fixture table.
func NewStubRouter() *StubRouter {
	return &StubRouter{fixtures: make(map[string]string)}
}

// SetFixture registers a canned response returned whenever userPrompt is
// passed to Generate verbatim.
func (r *StubRouter) SetFixture(userPrompt, response string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fixtures[userPrompt] = response
}

// Generate returns the registered fixture for userPrompt, or a default
// wait action if none is registered.
func (r *StubRouter) Generate(ctx context.Context, tier Tier, systemPrompt, userPrompt string, opts Options) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callCount++

	if resp, ok := r.fixtures[userPrompt]; ok {
		return resp, nil
	}
	return `{"action":"wait"}`, nil
}

// CallCount returns how many times Generate has been invoked, for tests
// asserting the scheduler called the router the expected number of times.
func (r *StubRouter) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.callCount
}

var _ Router = (*StubRouter)(nil)
