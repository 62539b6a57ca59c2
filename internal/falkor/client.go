package falkor

import (
	"context"
	"time"

	"github.com/moshehbenavraham/graphmind/internal/types"
)

// Client provides access to one FalkorDB server over the Redis RESP protocol.
// A Client must be connected via Connect() before use. Implementations must be
// safe for sequential reuse across graphs; concurrent use is not required by
// the verification runner.
type Client interface {
	// Connect establishes and authenticates the server connection.
	Connect(ctx context.Context) error

	// Close releases the underlying connection. Safe to call when never
	// connected.
	Close() error

	// Health reports the current health of the server connection.
	Health(ctx context.Context) types.HealthStatus

	// ListGraphs returns the names of all graphs on the server.
	ListGraphs(ctx context.Context) ([]string, error)

	// SelectGraph returns a handle to the named graph. The graph is created
	// lazily by the server on its first write query.
	SelectGraph(name string) Graph

	// DeleteGraph removes the named graph and all of its data. This maps to
	// the raw GRAPH.DELETE administrative command.
	DeleteGraph(ctx context.Context, name string) error
}

// Graph is a handle to one named graph on the server.
type Graph interface {
	// Name returns the graph's name.
	Name() string

	// Query executes a Cypher statement via GRAPH.QUERY.
	Query(ctx context.Context, cypher string) (QueryResult, error)

	// ROQuery executes a read-only Cypher statement via GRAPH.RO_QUERY.
	// The server rejects statements that would write.
	ROQuery(ctx context.Context, cypher string) (QueryResult, error)

	// Explain returns the query execution plan as text lines without
	// executing the statement.
	Explain(ctx context.Context, cypher string) ([]string, error)

	// Profile executes the statement and returns the plan annotated with
	// per-operation records produced and timings.
	Profile(ctx context.Context, cypher string) ([]string, error)
}

// Options contains connection settings for a FalkorDB client.
type Options struct {
	// Addr is the host:port of the server.
	Addr string

	// Username for RESP AUTH. Empty means no username (default user).
	Username string

	// Password for RESP AUTH. Empty means no authentication.
	Password string

	// TLS enables an encrypted connection.
	TLS bool

	// ConnectTimeout bounds dialing and the connection ping.
	ConnectTimeout time.Duration
}

// Validate checks if the options are usable.
func (o Options) Validate() error {
	if o.Addr == "" {
		return types.NewError(ErrCodeInvalidOptions, "Addr cannot be empty")
	}
	if o.ConnectTimeout <= 0 {
		return types.NewError(ErrCodeInvalidOptions, "ConnectTimeout must be positive")
	}
	return nil
}
