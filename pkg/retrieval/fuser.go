package retrieval

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cinegraph/cinegraph/pkg/driver"
	"github.com/cinegraph/cinegraph/pkg/types"
)

// NoContextSentinel is emitted when fusion produced no nodes at all.
const NoContextSentinel = "No relevant context found."

// Fuser merges vector and traversal results into one deduplicated context.
type Fuser struct{}

// NewFuser creates a context fuser.
func NewFuser() *Fuser {
	return &Fuser{}
}

// Fuse deduplicates the two result streams on the node identity key. Vector
// results insert first and always win: a key seen in both sources keeps its
// vector score and label, never the traversal default. Traversal-sourced
// nodes carry the fixed 0.5 score. Insertion order is preserved; no re-sort
// happens here. Malformed entries are skipped, never fatal.
func (f *Fuser) Fuse(vectorResults []types.RetrievalResult, traversalRecords []driver.Record) *types.FusedContext {
	seen := make(map[string]struct{})
	fused := &types.FusedContext{}

	for _, res := range vectorResults {
		key := res.Node.Key()
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		fused.Results = append(fused.Results, res)
		fused.VectorCount++
	}

	for _, record := range traversalRecords {
		for _, node := range nodesFromRecord(record) {
			key := node.Key()
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			fused.Results = append(fused.Results, types.RetrievalResult{
				Node:   node,
				Score:  types.TraversalDefaultScore,
				Source: types.SourceTraversal,
			})
			fused.TraversalCount++
		}
	}

	fused.Context = f.Render(fused.Results)
	return fused
}

// nodesFromRecord extracts every node-shaped bound value from one traversal
// row. A row may bind several variables (actor and film in one row); path
// bindings arrive as slices of property maps. Bound-variable names are
// walked in sorted order so extraction is deterministic.
func nodesFromRecord(record driver.Record) []*types.Node {
	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var nodes []*types.Node
	for _, k := range keys {
		switch v := record[k].(type) {
		case map[string]any:
			if n := usableNode(v); n != nil {
				nodes = append(nodes, n)
			}
		case []any:
			for _, e := range v {
				if props, ok := e.(map[string]any); ok {
					if n := usableNode(props); n != nil {
						nodes = append(nodes, n)
					}
				}
			}
		}
	}
	return nodes
}

func usableNode(props map[string]any) *types.Node {
	if _, hasID := props["id"]; !hasID {
		if _, hasName := props["name"]; !hasName {
			return nil
		}
	}
	return types.NodeFromProperties(props)
}

// Render builds the text context fed to the reasoning capability: one
// "Kind: name" line per node followed by indented property lines, excluding
// the embedding and id internals.
func (f *Fuser) Render(results []types.RetrievalResult) string {
	var parts []string

	for _, res := range results {
		node := res.Node
		if node == nil {
			continue
		}

		parts = append(parts, fmt.Sprintf("%s: %s", inferKind(node), node.Name()))

		keys := make([]string, 0, len(node.Properties))
		for k := range node.Properties {
			if k == "embedding" || k == "id" {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			v := node.Properties[k]
			if v == nil || v == "" {
				continue
			}
			parts = append(parts, fmt.Sprintf("  - %s: %v", k, v))
		}
	}

	if len(parts) == 0 {
		return NoContextSentinel
	}
	return strings.Join(parts, "\n")
}

// inferKind guesses a node's kind from its property shape. The originating
// label is not carried through retrieval, so actor vs director cannot be
// told apart by shape alone; Actor is the fixed person fallback.
func inferKind(node *types.Node) string {
	person := node.Has("nationality") || node.Has("born")
	series := node.Has("seasons") || node.Has("episodes")
	film := node.Has("year") || node.Has("duration")

	switch {
	case person && series:
		return "Serie"
	case person && film:
		return "Film"
	case person:
		return "Actor"
	case film:
		return "Film"
	case series:
		return "Serie"
	case node.Has("name"):
		return "Genre"
	default:
		return "Node"
	}
}
