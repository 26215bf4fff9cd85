package driver

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// NormalizeValue converts a driver-native bound value into the canonical
// shapes consumers work with:
//
//   - dbtype.Node        -> map[string]any (the node's flat properties)
//   - dbtype.Relationship -> map[string]any (the relationship's properties)
//   - dbtype.Path        -> []any of node property maps, in path order
//   - []any              -> element-wise normalisation
//
// Scalars and already-flat maps pass through unchanged.
func NormalizeValue(v any) any {
	switch val := v.(type) {
	case dbtype.Node:
		return copyProps(val.Props)
	case dbtype.Relationship:
		return copyProps(val.Props)
	case dbtype.Path:
		nodes := make([]any, 0, len(val.Nodes))
		for _, n := range val.Nodes {
			nodes = append(nodes, copyProps(n.Props))
		}
		return nodes
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = NormalizeValue(e)
		}
		return out
	default:
		return v
	}
}

func copyProps(props map[string]any) map[string]any {
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}
