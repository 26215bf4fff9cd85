// Package dto defines the HTTP request and response shapes.
package dto

import "github.com/cinegraph/cinegraph/pkg/types"

// AskRequest is the body of POST /ask.
type AskRequest struct {
	Query string `json:"query" binding:"required"`
}

// AskResponse is the body returned by POST /ask.
type AskResponse struct {
	Response     string            `json:"response"`
	ToolsUsed    []string          `json:"tools_used"`
	Steps        []types.AgentStep `json:"steps"`
	MessageCount int               `json:"message_count"`
}

// GraphInfoResponse is the body returned by GET /graph-info.
type GraphInfoResponse struct {
	NodeCount         int64       `json:"node_count"`
	RelationshipCount int64       `json:"relationship_count"`
	NodeTypes         []string    `json:"node_types"`
	RelationshipTypes []string    `json:"relationship_types"`
	Schema            GraphSchema `json:"schema"`
}

// GraphSchema describes the fixed film ontology.
type GraphSchema struct {
	NodeLabels    []string            `json:"node_labels"`
	Relationships []string            `json:"relationships"`
	Properties    map[string][]string `json:"properties"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
