package falkor

import "github.com/moshehbenavraham/graphmind/internal/types"

// Graph database error codes
const (
	// Connection errors
	ErrCodeConnectionFailed types.ErrorCode = "GRAPH_CONNECTION_FAILED"
	ErrCodeConnectionClosed types.ErrorCode = "GRAPH_CONNECTION_CLOSED"

	// Configuration errors
	ErrCodeInvalidOptions types.ErrorCode = "GRAPH_INVALID_OPTIONS"

	// Query errors
	ErrCodeQueryFailed   types.ErrorCode = "GRAPH_QUERY_FAILED"
	ErrCodeReplyParsing  types.ErrorCode = "GRAPH_REPLY_PARSING"
	ErrCodeDeleteFailed  types.ErrorCode = "GRAPH_DELETE_FAILED"
	ErrCodeListFailed    types.ErrorCode = "GRAPH_LIST_FAILED"
	ErrCodeExplainFailed types.ErrorCode = "GRAPH_EXPLAIN_FAILED"
)
