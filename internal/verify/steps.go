package verify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/moshehbenavraham/graphmind/internal/falkor"
	"github.com/moshehbenavraham/graphmind/internal/types"
)

// GraphName builds the timestamp-qualified name of the scratch graph for one
// run. The second-resolution timestamp keeps concurrent and repeated runs
// from colliding on server-side state.
func GraphName(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s", prefix, now.Format("20060102_150405"))
}

// scenario carries the cumulative state the protocol builds up: the client
// session and the graph handle the early steps establish for the later ones.
type scenario struct {
	client    falkor.Client
	graphName string
	graph     falkor.Graph
}

// Protocol returns the fixed verification step sequence. The order is load
// bearing: each step relies on the mutations of all prior steps (the graph
// must exist before nodes are created in it, nodes before relationships, and
// so on), so the sequence must run front to back without skips.
func Protocol(client falkor.Client, graphName string) []Step {
	s := &scenario{client: client, graphName: graphName}

	steps := []Step{
		{Name: "Basic Connection & Authentication", Run: s.connect},
		{Name: "List Existing Graphs", Run: s.listGraphs},
		{Name: "Create Test Graph: " + graphName, Run: s.createGraph},
		{Name: "Create Nodes", Run: s.createNodes},
		{Name: "Create Relationships", Run: s.createRelationships},
		{Name: "Query All Nodes", Run: s.queryAllNodes},
		{Name: "Query with Filtering (People over 27)", Run: s.queryFiltered},
		{Name: "Query Relationships (Who works on what)", Run: s.queryRelationships},
		{Name: "Aggregation Query (Count people by role)", Run: s.queryAggregation},
		{Name: "Create Index on Person.name", Run: s.createIndex},
		{Name: "List All Indexes", Run: s.listIndexes},
		{Name: "Get Graph Schema", Run: s.getSchema},
		{Name: "Explain Query Execution Plan", Run: s.explainQuery},
		{Name: "Profile Query Performance", Run: s.profileQuery},
		{Name: "Read-Only Query", Run: s.readOnlyQuery},
		{Name: "Path Finding (Paths from Alice to technology)", Run: s.findPaths},
		{Name: "Update Node Properties", Run: s.updateProperties},
		{Name: "Delete Specific Node", Run: s.deleteNode},
		{Name: "Cleanup - Delete Test Graph", Run: s.deleteGraph},
		{Name: "Verify Cleanup", Run: s.verifyCleanup},
	}
	for i := range steps {
		steps[i].Index = i + 1
	}
	return steps
}

func (s *scenario) connect(ctx context.Context) Outcome {
	if err := s.client.Connect(ctx); err != nil {
		return Fail(err)
	}
	health := s.client.Health(ctx)
	if health.IsUnhealthy() {
		return Failf("connected but unhealthy: %s", health.Message)
	}
	return Success("Connection established successfully",
		Obs("Health", health.State))
}

func (s *scenario) listGraphs(ctx context.Context) Outcome {
	names, err := s.client.ListGraphs(ctx)
	if err != nil {
		return Fail(err)
	}
	return Success(fmt.Sprintf("Found %d existing graphs", len(names)),
		Obs("Graphs", "["+strings.Join(names, ", ")+"]"))
}

func (s *scenario) createGraph(ctx context.Context) Outcome {
	s.graph = s.client.SelectGraph(s.graphName)
	return Success(fmt.Sprintf("Graph %q selected/created", s.graphName))
}

func (s *scenario) createNodes(ctx context.Context) Outcome {
	result, err := s.graph.Query(ctx, `
		CREATE
			(alice:Person {name: 'Alice', age: 30, role: 'Engineer'}),
			(bob:Person {name: 'Bob', age: 25, role: 'Designer'}),
			(charlie:Person {name: 'Charlie', age: 35, role: 'Manager'}),
			(graphmind:Project {name: 'GraphMind', status: 'active', year: 2025}),
			(falkordb:Technology {name: 'FalkorDB', type: 'Graph Database'})
		RETURN alice, bob, charlie, graphmind, falkordb`)
	if err != nil {
		return Fail(err)
	}
	if !result.Summary.Has("Nodes created") {
		return Failf("server reported no node-creation statistics")
	}
	if result.Summary.NodesCreated != 5 {
		return Failf("expected 5 nodes created, got %d", result.Summary.NodesCreated)
	}
	return Success("Created nodes",
		Obs("Labels added", result.Summary.LabelsAdded),
		Obs("Nodes created", result.Summary.NodesCreated),
		Obs("Properties set", result.Summary.PropertiesSet)).withExecTime(result.Summary)
}

func (s *scenario) createRelationships(ctx context.Context) Outcome {
	result, err := s.graph.Query(ctx, `
		MATCH
			(alice:Person {name: 'Alice'}),
			(bob:Person {name: 'Bob'}),
			(charlie:Person {name: 'Charlie'}),
			(project:Project {name: 'GraphMind'}),
			(tech:Technology {name: 'FalkorDB'})
		CREATE
			(alice)-[:WORKS_ON {since: 2025, role: 'Lead Developer'}]->(project),
			(bob)-[:WORKS_ON {since: 2025, role: 'UI Designer'}]->(project),
			(charlie)-[:MANAGES {since: 2025}]->(project),
			(alice)-[:KNOWS {since: 2024}]->(bob),
			(project)-[:USES {version: '1.2.0'}]->(tech)
		RETURN alice, bob, charlie, project, tech`)
	if err != nil {
		return Fail(err)
	}
	if !result.Summary.Has("Relationships created") {
		return Failf("server reported no relationship-creation statistics")
	}
	if result.Summary.RelationshipsCreated != 5 {
		return Failf("expected 5 relationships created, got %d",
			result.Summary.RelationshipsCreated)
	}
	return Success("Created relationships",
		Obs("Relationships created", result.Summary.RelationshipsCreated),
		Obs("Properties set", result.Summary.PropertiesSet)).withExecTime(result.Summary)
}

func (s *scenario) queryAllNodes(ctx context.Context) Outcome {
	result, err := s.graph.Query(ctx, "MATCH (n) RETURN n LIMIT 10")
	if err != nil {
		return Fail(err)
	}
	if err := checkArity(result, 1); err != nil {
		return Fail(err)
	}
	return Success(fmt.Sprintf("Retrieved %d nodes", len(result.Rows))).
		withExecTime(result.Summary)
}

func (s *scenario) queryFiltered(ctx context.Context) Outcome {
	result, err := s.graph.Query(ctx, `
		MATCH (p:Person)
		WHERE p.age > 27
		RETURN p.name, p.age, p.role
		ORDER BY p.age DESC`)
	if err != nil {
		return Fail(err)
	}
	if err := checkArity(result, 3); err != nil {
		return Fail(err)
	}
	names := firstColumn(result)
	if len(names) != 2 || names[0] != "Charlie" || names[1] != "Alice" {
		return Failf("expected [Charlie, Alice] ordered by age descending, got %v", names)
	}
	outcome := Success("Found 2 people over 27")
	for _, row := range result.Rows {
		outcome.Observations = append(outcome.Observations,
			Obs("Person", fmt.Sprintf("%s, age %s, %s",
				display(row[0]), display(row[1]), display(row[2]))))
	}
	return outcome.withExecTime(result.Summary)
}

func (s *scenario) queryRelationships(ctx context.Context) Outcome {
	result, err := s.graph.Query(ctx, `
		MATCH (p:Person)-[r:WORKS_ON]->(proj:Project)
		RETURN p.name, r.role, proj.name`)
	if err != nil {
		return Fail(err)
	}
	if err := checkArity(result, 3); err != nil {
		return Fail(err)
	}
	outcome := Success(fmt.Sprintf("Found %d work relationships", len(result.Rows)))
	for _, row := range result.Rows {
		outcome.Observations = append(outcome.Observations,
			Obs("Relationship", fmt.Sprintf("%s works on %s as %s",
				display(row[0]), display(row[2]), display(row[1]))))
	}
	return outcome
}

func (s *scenario) queryAggregation(ctx context.Context) Outcome {
	result, err := s.graph.Query(ctx, `
		MATCH (p:Person)
		RETURN p.role as role, COUNT(p) as count
		ORDER BY count DESC`)
	if err != nil {
		return Fail(err)
	}
	if err := checkArity(result, 2); err != nil {
		return Fail(err)
	}
	if result.Empty() {
		return Failf("aggregation over existing people returned no rows")
	}
	outcome := Success(fmt.Sprintf("Found %d roles", len(result.Rows)))
	for _, row := range result.Rows {
		outcome.Observations = append(outcome.Observations,
			Obs("Role", fmt.Sprintf("%s: %s people", display(row[0]), display(row[1]))))
	}
	return outcome
}

func (s *scenario) createIndex(ctx context.Context) Outcome {
	result, err := s.graph.Query(ctx, "CREATE INDEX FOR (p:Person) ON (p.name)")
	if err != nil {
		return Fail(err)
	}
	if !result.Summary.Has("Indices created") {
		return Failf("server reported no index-creation statistics")
	}
	if result.Summary.IndicesCreated != 1 {
		return Failf("expected 1 index created, got %d", result.Summary.IndicesCreated)
	}
	return Success("Index created",
		Obs("Indices created", result.Summary.IndicesCreated)).withExecTime(result.Summary)
}

func (s *scenario) listIndexes(ctx context.Context) Outcome {
	result, err := s.graph.Query(ctx, "CALL db.indexes()")
	if err != nil {
		return Fail(err)
	}
	if result.Empty() {
		return Failf("no indexes listed after index creation")
	}
	outcome := Success(fmt.Sprintf("Found %d indexes", len(result.Rows)))
	for _, row := range result.Rows {
		if len(row) > 0 {
			outcome.Observations = append(outcome.Observations,
				Obs("Index", display(row[0])))
		}
	}
	return outcome
}

func (s *scenario) getSchema(ctx context.Context) Outcome {
	labels, err := s.schemaValues(ctx, "CALL db.labels()")
	if err != nil {
		return Fail(err)
	}
	relTypes, err := s.schemaValues(ctx, "CALL db.relationshipTypes()")
	if err != nil {
		return Fail(err)
	}
	propKeys, err := s.schemaValues(ctx, "CALL db.propertyKeys()")
	if err != nil {
		return Fail(err)
	}
	if len(labels) == 0 || len(relTypes) == 0 || len(propKeys) == 0 {
		return Failf("schema introspection returned empty sets (labels=%d, relationship types=%d, property keys=%d)",
			len(labels), len(relTypes), len(propKeys))
	}
	return Success("Retrieved graph schema",
		Obs("Labels", "["+strings.Join(labels, ", ")+"]"),
		Obs("Relationship types", "["+strings.Join(relTypes, ", ")+"]"),
		Obs("Property keys", "["+strings.Join(propKeys, ", ")+"]"))
}

// schemaValues runs a db.* metadata procedure and extracts the first column.
func (s *scenario) schemaValues(ctx context.Context, call string) ([]string, error) {
	result, err := s.graph.Query(ctx, call)
	if err != nil {
		return nil, err
	}
	return firstColumn(result), nil
}

func (s *scenario) explainQuery(ctx context.Context) Outcome {
	plan, err := s.graph.Explain(ctx, `
		MATCH (p:Person)-[r:WORKS_ON]->(proj:Project)
		WHERE p.age > 25
		RETURN p.name, proj.name`)
	if err != nil {
		return Fail(err)
	}
	if len(plan) == 0 {
		return Failf("execution plan is empty")
	}
	outcome := Success("Query execution plan")
	for _, line := range plan {
		outcome.Observations = append(outcome.Observations, Obs("Plan", line))
	}
	return outcome
}

func (s *scenario) profileQuery(ctx context.Context) Outcome {
	profile, err := s.graph.Profile(ctx, `
		MATCH (p:Person)-[r:WORKS_ON]->(proj:Project)
		RETURN p.name, r.role, proj.name`)
	if err != nil {
		return Fail(err)
	}
	if len(profile) == 0 {
		return Failf("query profile is empty")
	}
	outcome := Success("Query profile")
	for _, line := range profile {
		outcome.Observations = append(outcome.Observations, Obs("Profile", line))
	}
	return outcome
}

func (s *scenario) readOnlyQuery(ctx context.Context) Outcome {
	result, err := s.graph.ROQuery(ctx, `
		MATCH (p:Person)
		RETURN p.name, p.age
		ORDER BY p.age`)
	if err != nil {
		return Fail(err)
	}
	if err := checkArity(result, 2); err != nil {
		return Fail(err)
	}
	return Success(fmt.Sprintf("Read-only query returned %d rows", len(result.Rows))).
		withExecTime(result.Summary)
}

func (s *scenario) findPaths(ctx context.Context) Outcome {
	result, err := s.graph.Query(ctx, `
		MATCH path = (alice:Person {name: 'Alice'})-[*]->(tech:Technology)
		RETURN path
		LIMIT 5`)
	if err != nil {
		return Fail(err)
	}
	if err := checkArity(result, 1); err != nil {
		return Fail(err)
	}
	return Success(fmt.Sprintf("Found %d paths", len(result.Rows))).
		withExecTime(result.Summary)
}

func (s *scenario) updateProperties(ctx context.Context) Outcome {
	result, err := s.graph.Query(ctx, `
		MATCH (alice:Person {name: 'Alice'})
		SET alice.level = 'Senior', alice.skills = ['Python', 'GraphDB', 'AI']
		RETURN alice`)
	if err != nil {
		return Fail(err)
	}
	if !result.Summary.Has("Properties set") {
		return Failf("server reported no property-update statistics")
	}
	if result.Summary.PropertiesSet == 0 {
		return Failf("expected properties to be set, got 0")
	}
	return Success("Updated properties",
		Obs("Properties set", result.Summary.PropertiesSet)).withExecTime(result.Summary)
}

func (s *scenario) deleteNode(ctx context.Context) Outcome {
	result, err := s.graph.Query(ctx, `
		MATCH (charlie:Person {name: 'Charlie'})
		DETACH DELETE charlie`)
	if err != nil {
		return Fail(err)
	}
	if !result.Summary.Has("Nodes deleted") {
		return Failf("server reported no node-deletion statistics")
	}
	if result.Summary.NodesDeleted != 1 {
		return Failf("expected 1 node deleted, got %d", result.Summary.NodesDeleted)
	}
	return Success("Deleted node",
		Obs("Nodes deleted", result.Summary.NodesDeleted),
		Obs("Relationships deleted", result.Summary.RelationshipsDeleted))
}

func (s *scenario) deleteGraph(ctx context.Context) Outcome {
	if err := s.client.DeleteGraph(ctx, s.graphName); err != nil {
		return Fail(err)
	}
	return Success(fmt.Sprintf("Test graph %q deleted successfully", s.graphName))
}

// verifyCleanup is the protocol's single negative assertion: the delete call
// above may succeed without having the intended effect, so absence must be
// checked explicitly against a fresh listing.
func (s *scenario) verifyCleanup(ctx context.Context) Outcome {
	names, err := s.client.ListGraphs(ctx)
	if err != nil {
		return Fail(err)
	}
	for _, name := range names {
		if name == s.graphName {
			return Failf("graph %q still exists after deletion", s.graphName)
		}
	}
	return Success("Graph successfully removed",
		Obs("Remaining graphs", "["+strings.Join(names, ", ")+"]"))
}

// withExecTime appends the server-reported execution time when present.
func (o Outcome) withExecTime(s falkor.Summary) Outcome {
	if s.ExecutionTime > 0 {
		o.Observations = append(o.Observations, Obs("Execution time", s.ExecutionTime))
	}
	return o
}

// checkArity validates the structural contract of a read result: rows form a
// finite collection and every row's width matches the RETURN clause arity.
func checkArity(result falkor.QueryResult, want int) error {
	if len(result.Columns) != 0 && len(result.Columns) != want {
		return types.NewError(types.VERIFY_ASSERTION_FAILED,
			fmt.Sprintf("expected %d columns, got %d (%v)",
				want, len(result.Columns), result.Columns))
	}
	for i, row := range result.Rows {
		if len(row) != want {
			return types.NewError(types.VERIFY_ASSERTION_FAILED,
				fmt.Sprintf("row %d has %d values, want %d", i, len(row), want))
		}
	}
	return nil
}

// firstColumn extracts the first value of each row as display text.
func firstColumn(result falkor.QueryResult) []string {
	out := make([]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		if len(row) > 0 {
			out = append(out, display(row[0]))
		}
	}
	return out
}

// display renders a reply value for report lines.
func display(v any) string {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprint(v)
}
