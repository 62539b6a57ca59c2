package falkor

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/moshehbenavraham/graphmind/internal/types"
)

// redisClient implements Client on top of go-redis. FalkorDB speaks plain
// Redis RESP; every graph operation is a GRAPH.* command.
type redisClient struct {
	opts Options
	rdb  *redis.Client
}

// NewClient creates a FalkorDB client with the given options. The client must
// be connected via Connect() before use.
func NewClient(opts Options) (Client, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &redisClient{opts: opts}, nil
}

// Connect dials the server and verifies it responds to PING. Authentication
// happens during the handshake when credentials are set.
func (c *redisClient) Connect(ctx context.Context) error {
	ropts := &redis.Options{
		Addr:        c.opts.Addr,
		Username:    c.opts.Username,
		Password:    c.opts.Password,
		DialTimeout: c.opts.ConnectTimeout,
		ReadTimeout: -1, // server-side query time is unbounded
	}
	if c.opts.TLS {
		ropts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	rdb := redis.NewClient(ropts)

	pingCtx, cancel := context.WithTimeout(ctx, c.opts.ConnectTimeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return types.WrapError(ErrCodeConnectionFailed,
			"failed to connect to "+c.opts.Addr, err)
	}

	c.rdb = rdb
	return nil
}

// Close releases the underlying connection pool.
func (c *redisClient) Close() error {
	if c.rdb == nil {
		return nil
	}
	err := c.rdb.Close()
	c.rdb = nil
	if err != nil {
		return types.WrapError(ErrCodeConnectionClosed, "failed to close connection", err)
	}
	return nil
}

// Health reports connection health via PING.
func (c *redisClient) Health(ctx context.Context) types.HealthStatus {
	if c.rdb == nil {
		return types.Unhealthy("not connected")
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := c.rdb.Ping(healthCtx).Err(); err != nil {
		return types.Unhealthy(fmt.Sprintf("ping failed: %v", err))
	}
	return types.Healthy("connected to " + c.opts.Addr)
}

// ListGraphs returns all graph names on the server via GRAPH.LIST.
func (c *redisClient) ListGraphs(ctx context.Context) ([]string, error) {
	reply, err := c.do(ctx, "GRAPH.LIST")
	if err != nil {
		return nil, types.WrapError(ErrCodeListFailed, "GRAPH.LIST failed", err)
	}
	names, err := parseStrings(reply)
	if err != nil {
		return nil, types.WrapError(ErrCodeListFailed, "unexpected GRAPH.LIST reply", err)
	}
	return names, nil
}

// SelectGraph returns a handle to the named graph.
func (c *redisClient) SelectGraph(name string) Graph {
	return &redisGraph{client: c, name: name}
}

// DeleteGraph removes the named graph via the raw GRAPH.DELETE command.
func (c *redisClient) DeleteGraph(ctx context.Context, name string) error {
	if _, err := c.do(ctx, "GRAPH.DELETE", name); err != nil {
		return types.WrapError(ErrCodeDeleteFailed, "GRAPH.DELETE "+name+" failed", err)
	}
	return nil
}

// do issues one command and returns the raw reply tree.
func (c *redisClient) do(ctx context.Context, args ...any) (any, error) {
	if c.rdb == nil {
		return nil, types.NewError(ErrCodeConnectionClosed, "client not connected")
	}
	return c.rdb.Do(ctx, args...).Result()
}

// redisGraph implements Graph for one named graph.
type redisGraph struct {
	client *redisClient
	name   string
}

func (g *redisGraph) Name() string {
	return g.name
}

func (g *redisGraph) Query(ctx context.Context, cypher string) (QueryResult, error) {
	return g.query(ctx, "GRAPH.QUERY", cypher)
}

func (g *redisGraph) ROQuery(ctx context.Context, cypher string) (QueryResult, error) {
	return g.query(ctx, "GRAPH.RO_QUERY", cypher)
}

func (g *redisGraph) query(ctx context.Context, command, cypher string) (QueryResult, error) {
	reply, err := g.client.do(ctx, command, g.name, cypher)
	if err != nil {
		return QueryResult{}, types.WrapError(ErrCodeQueryFailed,
			command+" against "+g.name+" failed", err)
	}
	result, err := parseQueryReply(reply)
	if err != nil {
		return QueryResult{}, types.WrapError(ErrCodeReplyParsing,
			"unexpected "+command+" reply", err)
	}
	return result, nil
}

func (g *redisGraph) Explain(ctx context.Context, cypher string) ([]string, error) {
	return g.plan(ctx, "GRAPH.EXPLAIN", cypher)
}

func (g *redisGraph) Profile(ctx context.Context, cypher string) ([]string, error) {
	return g.plan(ctx, "GRAPH.PROFILE", cypher)
}

func (g *redisGraph) plan(ctx context.Context, command, cypher string) ([]string, error) {
	reply, err := g.client.do(ctx, command, g.name, cypher)
	if err != nil {
		return nil, types.WrapError(ErrCodeExplainFailed,
			command+" against "+g.name+" failed", err)
	}
	lines, err := parseStrings(reply)
	if err != nil {
		return nil, types.WrapError(ErrCodeExplainFailed,
			"unexpected "+command+" reply", err)
	}
	return lines, nil
}

// parseQueryReply converts a verbose GRAPH.QUERY reply into a QueryResult.
// The reply is an array whose last element is always the statistics section;
// statements with a RETURN clause carry a header array and a row array in
// front of it.
func parseQueryReply(reply any) (QueryResult, error) {
	sections, ok := reply.([]any)
	if !ok || len(sections) == 0 {
		return QueryResult{}, types.NewError(ErrCodeReplyParsing,
			fmt.Sprintf("reply is %T, want non-empty array", reply))
	}

	stats, ok := sections[len(sections)-1].([]any)
	if !ok {
		return QueryResult{}, types.NewError(ErrCodeReplyParsing,
			"statistics section is not an array")
	}
	summary, err := parseSummary(stats)
	if err != nil {
		return QueryResult{}, err
	}

	result := QueryResult{Summary: summary}
	if len(sections) >= 2 {
		columns, err := parseStrings(sections[0])
		if err != nil {
			return QueryResult{}, types.WrapError(ErrCodeReplyParsing,
				"bad header section", err)
		}
		result.Columns = columns
	}
	if len(sections) >= 3 {
		rawRows, ok := sections[1].([]any)
		if !ok {
			return QueryResult{}, types.NewError(ErrCodeReplyParsing,
				"result set section is not an array")
		}
		result.Rows = make([][]any, 0, len(rawRows))
		for _, rawRow := range rawRows {
			row, ok := rawRow.([]any)
			if !ok {
				return QueryResult{}, types.NewError(ErrCodeReplyParsing,
					"result row is not an array")
			}
			result.Rows = append(result.Rows, row)
		}
	}
	return result, nil
}

// parseStrings converts an array-of-strings reply. A bare string reply is
// split on newlines; older servers return EXPLAIN plans that way.
func parseStrings(reply any) ([]string, error) {
	if s, ok := toString(reply); ok {
		return splitLines(s), nil
	}
	items, ok := reply.([]any)
	if !ok {
		return nil, types.NewError(ErrCodeReplyParsing,
			fmt.Sprintf("reply is %T, want array of strings", reply))
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := toString(item)
		if !ok {
			return nil, types.NewError(ErrCodeReplyParsing,
				fmt.Sprintf("array element is %T, want string", item))
		}
		out = append(out, s)
	}
	return out, nil
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// toString normalizes the string-ish values go-redis produces.
func toString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	default:
		return "", false
	}
}
