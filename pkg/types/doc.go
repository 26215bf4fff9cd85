// Package types defines the shared data model for cinegraph: graph nodes,
// conversation messages, tool calls, retrieval results and agent traces.
//
// All retrieval types are created fresh per request and discarded after the
// response is rendered; nothing in this package is persisted.
package types
