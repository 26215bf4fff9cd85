package types

import "fmt"

// Node represents a knowledge-graph entity normalised to a flat property map.
// The graph driver performs the normalisation once at its boundary, so
// consumers never see provider-native node objects.
type Node struct {
	// Properties holds the node's flat property mapping. The embedding
	// vector is extracted into Embedding and removed from this map.
	Properties map[string]any `json:"properties"`

	// Embedding is the node's stored vector, if any.
	Embedding []float32 `json:"embedding,omitempty"`
}

// NodeFromProperties builds a Node from a flat property map, pulling any
// "embedding" entry out into the typed Embedding field. The input map is not
// modified. Returns nil for a nil input.
func NodeFromProperties(props map[string]any) *Node {
	if props == nil {
		return nil
	}

	node := &Node{Properties: make(map[string]any, len(props))}
	for k, v := range props {
		if k == "embedding" {
			node.Embedding = ToFloat32Slice(v)
			continue
		}
		node.Properties[k] = v
	}
	return node
}

// Key returns the node's identity key: the "id" property when present,
// otherwise the "name" property, otherwise the empty string. Fusion dedups
// strictly on this key. Graph drivers may surface ids as int64, so scalar
// values are coerced to their string form rather than dropped.
func (n *Node) Key() string {
	if n == nil || n.Properties == nil {
		return ""
	}
	if id := scalarKey(n.Properties["id"]); id != "" {
		return id
	}
	return scalarKey(n.Properties["name"])
}

// scalarKey stringifies the scalar value shapes an identity property can
// take. Composite values do not form a usable key.
func scalarKey(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case int64, int, float64, bool:
		return fmt.Sprint(s)
	default:
		return ""
	}
}

// Name returns the node's display name, or "Unknown" when absent.
func (n *Node) Name() string {
	if n != nil {
		if name, ok := n.Properties["name"].(string); ok && name != "" {
			return name
		}
	}
	return "Unknown"
}

// Has reports whether the node carries a non-nil property with the given key.
func (n *Node) Has(key string) bool {
	if n == nil || n.Properties == nil {
		return false
	}
	v, ok := n.Properties[key]
	return ok && v != nil
}

// ToFloat32Slice coerces the numeric slice shapes that graph drivers and JSON
// decoders produce into a []float32 embedding. Returns nil when the value is
// not a usable numeric vector.
func ToFloat32Slice(v any) []float32 {
	switch vec := v.(type) {
	case []float32:
		return vec
	case []float64:
		out := make([]float32, len(vec))
		for i, f := range vec {
			out[i] = float32(f)
		}
		return out
	case []any:
		out := make([]float32, 0, len(vec))
		for _, e := range vec {
			switch f := e.(type) {
			case float64:
				out = append(out, float32(f))
			case float32:
				out = append(out, f)
			case int64:
				out = append(out, float32(f))
			case int:
				out = append(out, float32(f))
			default:
				return nil
			}
		}
		return out
	default:
		return nil
	}
}
