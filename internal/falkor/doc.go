// Package falkor provides a FalkorDB client over the Redis RESP protocol.
//
// FalkorDB exposes its graph operations as GRAPH.* commands on a plain Redis
// connection: GRAPH.QUERY and GRAPH.RO_QUERY for Cypher execution,
// GRAPH.EXPLAIN and GRAPH.PROFILE for plan inspection, and GRAPH.LIST /
// GRAPH.DELETE for store management. This package wraps those commands behind
// the Client and Graph interfaces and parses the verbose reply format into
// QueryResult values with typed summary counters.
//
// Usage:
//
//	client, err := falkor.NewClient(falkor.Options{
//		Addr:           "localhost:6379",
//		ConnectTimeout: 30 * time.Second,
//	})
//	if err != nil {
//		return err
//	}
//	if err := client.Connect(ctx); err != nil {
//		return err
//	}
//	defer client.Close()
//
//	graph := client.SelectGraph("social")
//	result, err := graph.Query(ctx, "CREATE (:Person {name: 'Alice'})")
//
// MockClient provides a configurable in-memory implementation for tests.
package falkor
