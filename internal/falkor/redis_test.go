package falkor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryReply_ReadQuery(t *testing.T) {
	reply := []any{
		[]any{"p.name", "p.age"},
		[]any{
			[]any{"Charlie", int64(35)},
			[]any{"Alice", int64(30)},
		},
		[]any{"Query internal execution time: 0.2 milliseconds"},
	}

	result, err := parseQueryReply(reply)
	require.NoError(t, err)

	assert.Equal(t, []string{"p.name", "p.age"}, result.Columns)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, []any{"Charlie", int64(35)}, result.Rows[0])
	assert.Equal(t, []any{"Alice", int64(30)}, result.Rows[1])
	assert.False(t, result.Empty())
}

func TestParseQueryReply_WriteWithoutReturn(t *testing.T) {
	reply := []any{
		[]any{"Nodes deleted: 1", "Relationships deleted: 3"},
	}

	result, err := parseQueryReply(reply)
	require.NoError(t, err)

	assert.Empty(t, result.Columns)
	assert.True(t, result.Empty())
	assert.Equal(t, 1, result.Summary.NodesDeleted)
	assert.Equal(t, 3, result.Summary.RelationshipsDeleted)
}

func TestParseQueryReply_EmptyResultSet(t *testing.T) {
	reply := []any{
		[]any{"n"},
		[]any{},
		[]any{"Query internal execution time: 0.1 milliseconds"},
	}

	result, err := parseQueryReply(reply)
	require.NoError(t, err)

	assert.Equal(t, []string{"n"}, result.Columns)
	assert.True(t, result.Empty())
}

func TestParseQueryReply_Malformed(t *testing.T) {
	for name, reply := range map[string]any{
		"not an array":       "OK",
		"empty array":        []any{},
		"stats not an array": []any{"stats"},
		"bad row": []any{
			[]any{"n"},
			[]any{"not-a-row"},
			[]any{},
		},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := parseQueryReply(reply)
			assert.Error(t, err)
		})
	}
}

func TestParseStrings(t *testing.T) {
	lines, err := parseStrings([]any{"Results", []byte("    Scan")})
	require.NoError(t, err)
	assert.Equal(t, []string{"Results", "    Scan"}, lines)

	// Bare string replies are split on newlines.
	lines, err = parseStrings("Results\n    Scan\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"Results", "    Scan"}, lines)

	_, err = parseStrings(42)
	assert.Error(t, err)

	_, err = parseStrings([]any{42})
	assert.Error(t, err)
}

func TestNewClient_ValidatesOptions(t *testing.T) {
	_, err := NewClient(Options{})
	assert.Error(t, err)

	_, err = NewClient(Options{Addr: "localhost:6379"})
	assert.Error(t, err, "zero ConnectTimeout must be rejected")
}

func TestClientNotConnected(t *testing.T) {
	client, err := NewClient(Options{Addr: "localhost:6379", ConnectTimeout: 1})
	require.NoError(t, err)

	_, err = client.ListGraphs(context.Background())
	assert.Error(t, err)

	assert.True(t, client.Health(context.Background()).IsUnhealthy())
	assert.NoError(t, client.Close())
}
