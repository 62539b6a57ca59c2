// Package verify implements the ordered verification protocol for a remote
// FalkorDB deployment.
//
// A run executes a fixed sequence of dependent steps, each performing one
// database operation and asserting a structural or numeric property of the
// response: connect, list graphs, create a timestamp-named scratch graph,
// populate it, exercise read queries, introspection and plan inspection, then
// delete the graph and verify its absence. Execution is strictly sequential
// with fail-fast semantics: the first failing step aborts the run and the
// whole result maps onto the process exit status.
//
// The package deliberately contains no retries, timeouts, or recovery; those
// are transport concerns handled by the falkor package underneath.
package verify
