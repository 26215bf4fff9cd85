// Package embedder provides text embedding clients for vector
// representations.
//
// The Client interface is consumed as a black-box text-to-vector function;
// the stored node embeddings and the query embedder must agree on
// dimensionality (a mismatch degrades similarity quality rather than
// erroring).
//
// # Supported providers
//
//   - OpenAI: text-embedding-3-small and friends, including
//     OpenAI-compatible services via a custom base URL
//   - Local: in-process models via go-embedeverything
//
// A badger-backed CachedClient decorator avoids re-embedding repeated query
// text.
package embedder
