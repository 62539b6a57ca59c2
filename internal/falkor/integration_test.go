package falkor

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startFalkorDBContainer starts a disposable FalkorDB instance and returns
// its host:port address.
func startFalkorDBContainer(t *testing.T, ctx context.Context) (testcontainers.Container, string) {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "falkordb/falkordb:latest",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("6379/tcp"),
			wait.ForLog("Ready to accept connections"),
		).WithDeadline(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "Failed to start FalkorDB container")

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return container, fmt.Sprintf("%s:%s", host, port.Port())
}

func TestIntegration_ClientRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	container, addr := startFalkorDBContainer(t, ctx)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	client, err := NewClient(Options{Addr: addr, ConnectTimeout: 30 * time.Second})
	require.NoError(t, err)
	require.NoError(t, client.Connect(ctx))
	t.Cleanup(func() { _ = client.Close() })

	assert.True(t, client.Health(ctx).IsHealthy())

	graphName := fmt.Sprintf("falkor_client_test_%d", time.Now().UnixNano())
	graph := client.SelectGraph(graphName)
	require.Equal(t, graphName, graph.Name())

	// Write query: counters must reflect the created subgraph.
	created, err := graph.Query(ctx,
		"CREATE (:Person {name: 'Ada', age: 36}), (:Person {name: 'Grace', age: 45})")
	require.NoError(t, err)
	assert.Equal(t, 2, created.Summary.NodesCreated)
	assert.Equal(t, 4, created.Summary.PropertiesSet)
	assert.True(t, created.Summary.Has("Nodes created"))

	// Read query: the created properties round-trip.
	rows, err := graph.ROQuery(ctx,
		"MATCH (p:Person) RETURN p.name, p.age ORDER BY p.age")
	require.NoError(t, err)
	require.Equal(t, []string{"p.name", "p.age"}, rows.Columns)
	require.Len(t, rows.Rows, 2)
	assert.Equal(t, "Ada", rows.Rows[0][0])
	assert.EqualValues(t, 36, rows.Rows[0][1])

	// Plan inspection returns non-empty textual plans.
	plan, err := graph.Explain(ctx, "MATCH (p:Person) RETURN p.name")
	require.NoError(t, err)
	assert.NotEmpty(t, plan)

	profile, err := graph.Profile(ctx, "MATCH (p:Person) RETURN p.name")
	require.NoError(t, err)
	assert.NotEmpty(t, profile)

	// The graph shows up in GRAPH.LIST and disappears after GRAPH.DELETE.
	names, err := client.ListGraphs(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, graphName)

	require.NoError(t, client.DeleteGraph(ctx, graphName))

	names, err = client.ListGraphs(ctx)
	require.NoError(t, err)
	assert.NotContains(t, names, graphName)
}
