// Package tools implements the agent's callable tools and the registry that
// dispatches to them.
//
// The dispatch contract is uniform: Invoke always returns text, never an
// error. A failing tool yields a distinctly prefixed "Error <doing X>: ..."
// string so the orchestration loop can feed the failure back into reasoning
// as ordinary context instead of aborting the query.
package tools
