package falkor

import (
	"context"
	"sync"
	"time"

	"github.com/moshehbenavraham/graphmind/internal/types"
)

// MockCall represents a recorded method call on the mock client.
type MockCall struct {
	Method    string
	Args      []any
	Timestamp time.Time
}

// MockClient is a mock implementation of Client for testing. It provides
// configurable responses per command and tracks all calls for verification.
type MockClient struct {
	mu sync.Mutex

	connected bool
	calls     []MockCall

	// Configurable responses
	ConnectErr   error
	CloseErr     error
	ListErr      error
	DeleteErr    error
	Graphs       []string
	QueryErr     error
	ROQueryErr   error
	ExplainErr   error
	ProfileErr   error
	QueryResults map[string]QueryResult // keyed by cypher statement
	DefaultRes   QueryResult

	// QueryFn, when set, is consulted before QueryResults and DefaultRes,
	// letting tests dispatch on statement content.
	QueryFn func(cypher string) (QueryResult, bool)
	PlanLines    []string

	// DeleteHook runs after a successful DeleteGraph, letting tests drop
	// the name from Graphs (or deliberately leave it to simulate a server
	// that acknowledged the delete without performing it).
	DeleteHook func(name string)
}

// NewMockClient creates a mock client with empty defaults.
func NewMockClient() *MockClient {
	return &MockClient{
		QueryResults: make(map[string]QueryResult),
		PlanLines:    []string{"Results", "    Project", "        Scan"},
	}
}

// Calls returns a copy of all recorded calls.
func (m *MockClient) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallNames returns the method names of all recorded calls, in order.
func (m *MockClient) CallNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.calls))
	for _, c := range m.calls {
		out = append(out, c.Method)
	}
	return out
}

func (m *MockClient) record(method string, args ...any) {
	m.calls = append(m.calls, MockCall{
		Method:    method,
		Args:      args,
		Timestamp: time.Now(),
	})
}

func (m *MockClient) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Connect")
	if m.ConnectErr != nil {
		return m.ConnectErr
	}
	m.connected = true
	return nil
}

func (m *MockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Close")
	if m.CloseErr != nil {
		return m.CloseErr
	}
	m.connected = false
	return nil
}

func (m *MockClient) Health(ctx context.Context) types.HealthStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Health")
	if !m.connected {
		return types.Unhealthy("not connected")
	}
	return types.Healthy("mock client")
}

func (m *MockClient) ListGraphs(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("ListGraphs")
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]string, len(m.Graphs))
	copy(out, m.Graphs)
	return out, nil
}

func (m *MockClient) SelectGraph(name string) Graph {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("SelectGraph", name)
	return &mockGraph{client: m, name: name}
}

func (m *MockClient) DeleteGraph(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("DeleteGraph", name)
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	if m.DeleteHook != nil {
		m.DeleteHook(name)
	}
	return nil
}

// RemoveGraph removes a name from Graphs. Intended for use as a DeleteHook.
func (m *MockClient) RemoveGraph(name string) {
	kept := m.Graphs[:0]
	for _, g := range m.Graphs {
		if g != name {
			kept = append(kept, g)
		}
	}
	m.Graphs = kept
}

// mockGraph implements Graph against the parent mock's configured responses.
type mockGraph struct {
	client *MockClient
	name   string
}

func (g *mockGraph) Name() string {
	return g.name
}

func (g *mockGraph) result(cypher string) QueryResult {
	if g.client.QueryFn != nil {
		if res, ok := g.client.QueryFn(cypher); ok {
			return res
		}
	}
	if res, ok := g.client.QueryResults[cypher]; ok {
		return res
	}
	return g.client.DefaultRes
}

func (g *mockGraph) Query(ctx context.Context, cypher string) (QueryResult, error) {
	g.client.mu.Lock()
	defer g.client.mu.Unlock()
	g.client.record("Query", g.name, cypher)
	if g.client.QueryErr != nil {
		return QueryResult{}, g.client.QueryErr
	}
	return g.result(cypher), nil
}

func (g *mockGraph) ROQuery(ctx context.Context, cypher string) (QueryResult, error) {
	g.client.mu.Lock()
	defer g.client.mu.Unlock()
	g.client.record("ROQuery", g.name, cypher)
	if g.client.ROQueryErr != nil {
		return QueryResult{}, g.client.ROQueryErr
	}
	return g.result(cypher), nil
}

func (g *mockGraph) Explain(ctx context.Context, cypher string) ([]string, error) {
	g.client.mu.Lock()
	defer g.client.mu.Unlock()
	g.client.record("Explain", g.name, cypher)
	if g.client.ExplainErr != nil {
		return nil, g.client.ExplainErr
	}
	return g.client.PlanLines, nil
}

func (g *mockGraph) Profile(ctx context.Context, cypher string) ([]string, error) {
	g.client.mu.Lock()
	defer g.client.mu.Unlock()
	g.client.record("Profile", g.name, cypher)
	if g.client.ProfileErr != nil {
		return nil, g.client.ProfileErr
	}
	return g.client.PlanLines, nil
}
