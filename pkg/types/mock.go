package types

import (
	"context"
	"sync"
)

// ExecutedQuery is one recorded Execute call on a MockStore.
type ExecutedQuery struct {
	Query  string
	Params map[string]any
}

// MockStore is a Store for unit tests. It records every executed query and
// replays scripted results in FIFO order; when the script is exhausted it
// returns empty rows. An optional Handler overrides the scripted behavior
// entirely.
type MockStore struct {
	mu      sync.Mutex
	calls   []ExecutedQuery
	results []scriptedResult

	// Handler, when set, is invoked for every Execute call instead of the
	// scripted results. The call is still recorded.
	Handler func(query string, params map[string]any) ([]Row, error)
}

type scriptedResult struct {
	rows []Row
	err  error
}

var _ Store = (*MockStore)(nil)

// NewMockStore creates an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{}
}

// Script appends one response to the result queue.
func (m *MockStore) Script(rows []Row, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, scriptedResult{rows: rows, err: err})
}

// Execute records the call and returns the next scripted result.
func (m *MockStore) Execute(_ context.Context, query string, params map[string]any) ([]Row, error) {
	m.mu.Lock()
	handler := m.Handler
	m.calls = append(m.calls, ExecutedQuery{Query: query, Params: params})
	var next scriptedResult
	if handler == nil && len(m.results) > 0 {
		next = m.results[0]
		m.results = m.results[1:]
	}
	m.mu.Unlock()

	if handler != nil {
		return handler(query, params)
	}
	return next.rows, next.err
}

// Calls returns a copy of all recorded calls.
func (m *MockStore) Calls() []ExecutedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ExecutedQuery, len(m.calls))
	copy(out, m.calls)
	return out
}

// LastCall returns the most recent recorded call, or a zero value when
// nothing has executed.
func (m *MockStore) LastCall() ExecutedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return ExecutedQuery{}
	}
	return m.calls[len(m.calls)-1]
}

// CallCount returns the number of executed queries.
func (m *MockStore) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
