// Package cinegraph provides natural-language question answering over a
// typed film and series knowledge graph.
//
// Cinegraph combines embedding-similarity ranking, keyword-routed graph
// traversal, and result fusion behind a tool-calling orchestration loop: a
// reasoning capability decides per query whether to consult the graph, run a
// calculation, or search the web, and the loop feeds each tool result back
// into reasoning until an answer settles.
//
// # Basic Usage
//
// Create a client with its collaborators:
//
//	// Create Neo4j store
//	store, err := driver.NewNeo4jStore("bolt://localhost:7687", "neo4j", "password", "neo4j", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer store.Close(ctx)
//
//	// Create embedder
//	embConfig := embedder.Config{Model: "all-MiniLM-L6-v2", Dimensions: 384}
//	embedderClient, err := embedder.NewLocalEmbedder(embConfig)
//
//	// Create reasoning client
//	nlpConfig := nlp.Config{Model: "gpt-4o-mini"}
//	reasoner, err := nlp.NewOpenAIClient("your-api-key", nlpConfig)
//
//	// Create cinegraph client
//	client, err := cinegraph.NewClient(store, reasoner, embedderClient, nil, nil)
//
// # Asking Questions
//
//	resp, err := client.Ask(ctx, "Who played in Inception?")
//	fmt.Println(resp.Response)
//	fmt.Println(resp.ToolsUsed)
//
// Concurrent Ask calls are safe: each query runs its own conversation state
// over the shared store and embedder.
package cinegraph
