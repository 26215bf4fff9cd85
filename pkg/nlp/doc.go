// Package nlp provides reasoning-capability clients for chat completion with
// tool calling.
//
// The Client interface is the single seam the orchestration loop talks
// through; it is satisfied directly by OpenAIClient (OpenAI or any
// OpenAI-compatible endpoint) and by two decorators:
//
//   - RetryClient adds exponential backoff on transient failures
//   - CircuitBreakerClient trips after repeated failures and raises an alert
//
// Provider tool-call payloads arrive in several shapes (JSON strings,
// sometimes malformed, or decoded maps); this package normalises all of them
// into types.ToolCall before the loop sees them, repairing malformed JSON
// where possible.
package nlp
