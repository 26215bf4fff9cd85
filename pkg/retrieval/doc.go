// Package retrieval implements hybrid retrieval over the film knowledge
// graph: embedding-similarity ranking, keyword-routed graph traversal, and
// fusion of the two result streams into a single rendered context.
//
// The three stages are independently testable:
//
//   - Ranker orders embedded candidate nodes by cosine similarity
//   - Router classifies query intent into a fixed traversal pattern and
//     yields the matching query template
//   - Fuser deduplicates the merged streams and renders them as text
//
// Pipeline wires the stages behind one HybridRetrieve call.
package retrieval
