package types

// ContextKey is the private type for values this module places on a
// context.Context.
type ContextKey string

const (
	// ContextKeyQueryID carries the per-request query identifier.
	ContextKeyQueryID ContextKey = "query_id"
	// ContextKeyRequestSource carries where the request entered (http, cli).
	ContextKeyRequestSource ContextKey = "request_source"
)
