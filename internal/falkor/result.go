package falkor

import (
	"strconv"
	"strings"
	"time"

	"github.com/moshehbenavraham/graphmind/internal/types"
)

// QueryResult represents the result of one GRAPH.QUERY / GRAPH.RO_QUERY call.
type QueryResult struct {
	// Columns contains the column names of the RETURN clause, in order.
	// Empty for statements without a RETURN clause.
	Columns []string

	// Rows contains the result rows. Each row has one value per column.
	Rows [][]any

	// Summary contains the statistics section of the reply.
	Summary Summary
}

// Empty reports whether the result set has no rows.
func (r QueryResult) Empty() bool {
	return len(r.Rows) == 0
}

// Summary holds the parsed statistics FalkorDB appends to every query reply.
type Summary struct {
	LabelsAdded          int
	NodesCreated         int
	NodesDeleted         int
	RelationshipsCreated int
	RelationshipsDeleted int
	PropertiesSet        int
	PropertiesRemoved    int
	IndicesCreated       int
	IndicesDeleted       int

	// ExecutionTime is the server-reported internal execution time, zero
	// when the server did not report one.
	ExecutionTime time.Duration

	// Raw preserves the statistics lines exactly as the server sent them,
	// for presence checks and reporting.
	Raw []string
}

// Has reports whether the server sent a statistic with the given label,
// e.g. Has("Nodes created").
func (s Summary) Has(label string) bool {
	for _, line := range s.Raw {
		if strings.HasPrefix(line, label+":") {
			return true
		}
	}
	return false
}

// parseSummary converts the statistics section of a reply into a Summary.
// Unknown statistics are retained in Raw but otherwise ignored.
func parseSummary(items []any) (Summary, error) {
	var s Summary
	for _, item := range items {
		line, ok := toString(item)
		if !ok {
			return s, types.NewError(ErrCodeReplyParsing,
				"statistics entry is not a string")
		}
		s.Raw = append(s.Raw, line)

		label, value, found := strings.Cut(line, ": ")
		if !found {
			continue
		}

		if strings.Contains(label, "execution time") {
			if d, err := parseExecutionTime(value); err == nil {
				s.ExecutionTime = d
			}
			continue
		}

		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			continue
		}
		if n < 0 {
			return s, types.NewError(ErrCodeReplyParsing,
				"negative counter in statistics: "+line)
		}

		switch label {
		case "Labels added":
			s.LabelsAdded = n
		case "Nodes created":
			s.NodesCreated = n
		case "Nodes deleted":
			s.NodesDeleted = n
		case "Relationships created":
			s.RelationshipsCreated = n
		case "Relationships deleted":
			s.RelationshipsDeleted = n
		case "Properties set":
			s.PropertiesSet = n
		case "Properties removed":
			s.PropertiesRemoved = n
		case "Indices created":
			s.IndicesCreated = n
		case "Indices deleted":
			s.IndicesDeleted = n
		}
	}
	return s, nil
}

// parseExecutionTime parses values like "0.588067 milliseconds".
func parseExecutionTime(value string) (time.Duration, error) {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return 0, types.NewError(ErrCodeReplyParsing, "empty execution time")
	}
	ms, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, types.WrapError(ErrCodeReplyParsing,
			"unparseable execution time "+value, err)
	}
	return time.Duration(ms * float64(time.Millisecond)), nil
}
