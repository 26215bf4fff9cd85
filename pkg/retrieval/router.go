package retrieval

import "strings"

// Pattern identifies one of the fixed traversal query templates.
type Pattern string

const (
	// PatternActorRole links actors to the films and series they appear in.
	PatternActorRole Pattern = "actor_role"
	// PatternDirectorRole links directors to what they directed.
	PatternDirectorRole Pattern = "director_role"
	// PatternGenreMembership links content to its genres.
	PatternGenreMembership Pattern = "genre_membership"
	// PatternFilmOverview expands films with their cast and directors.
	PatternFilmOverview Pattern = "film_overview"
	// PatternSeriesOverview expands series with their cast and directors.
	PatternSeriesOverview Pattern = "series_overview"
	// PatternCollaboration links actors who appeared together.
	PatternCollaboration Pattern = "collaboration"
	// PatternGenericSubgraph is the fallback bounded neighborhood search.
	PatternGenericSubgraph Pattern = "generic_subgraph"
)

// patternKeywords pairs each pattern with its English and French synonym
// set. Scan order matters: classification is first-match, so an earlier
// pattern shadows a later one when both keywords appear.
var patternKeywords = []struct {
	pattern  Pattern
	keywords []string
}{
	{PatternActorRole, []string{"act", "actor", "played", "joué"}},
	{PatternDirectorRole, []string{"direct", "director", "réalisé"}},
	{PatternGenreMembership, []string{"genre", "type"}},
	{PatternFilmOverview, []string{"film", "movie"}},
	{PatternSeriesOverview, []string{"serie", "series", "show"}},
	{PatternCollaboration, []string{"worked", "together", "collabor"}},
}

// patternQueries maps each non-fallback pattern to its query template. Every
// template caps its result set at 20 rows.
var patternQueries = map[Pattern]string{
	PatternActorRole: `
		MATCH (a:Actor)-[:JOUE_DANS]->(content)
		RETURN a, content
		LIMIT 20`,
	PatternDirectorRole: `
		MATCH (d:Director)-[:REALISE]->(content)
		RETURN d, content
		LIMIT 20`,
	PatternGenreMembership: `
		MATCH (content)-[:APPARTIENT_A_GENRE]->(g:Genre)
		RETURN content, g
		LIMIT 20`,
	PatternFilmOverview: `
		MATCH (f:Film)
		OPTIONAL MATCH (a:Actor)-[:JOUE_DANS]->(f)
		OPTIONAL MATCH (d:Director)-[:REALISE]->(f)
		RETURN f, a, d
		LIMIT 20`,
	PatternSeriesOverview: `
		MATCH (s:Serie)
		OPTIONAL MATCH (a:Actor)-[:JOUE_DANS]->(s)
		OPTIONAL MATCH (d:Director)-[:REALISE]->(s)
		RETURN s, a, d
		LIMIT 20`,
	PatternCollaboration: `
		MATCH (a1:Actor)-[:A_JOUÉ_AVEC]->(a2:Actor)
		RETURN a1, a2
		LIMIT 20`,
}

// genericSubgraphQuery anchors a bounded undirected neighborhood search on
// any node whose name text-contains the query.
const genericSubgraphQuery = `
	MATCH path = (start)-[*1..2]-(connected)
	WHERE start.name CONTAINS $query OR connected.name CONTAINS $query
	RETURN path
	LIMIT 20`

// Router classifies query intent into a traversal pattern over the fixed
// film ontology and yields the matching query template. Routing is a
// case-insensitive first-match keyword scan; a learned query planner is
// deliberately out of scope at this graph size.
type Router struct{}

// NewRouter creates a traversal router.
func NewRouter() *Router {
	return &Router{}
}

// Classify returns the traversal pattern for the query text.
func (r *Router) Classify(query string) Pattern {
	lower := strings.ToLower(query)
	for _, entry := range patternKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.pattern
			}
		}
	}
	return PatternGenericSubgraph
}

// Route returns the query template and parameters for the query text. Only
// the generic fallback is parameterised; the fixed patterns ignore the query
// body entirely.
func (r *Router) Route(query string) (string, map[string]any) {
	pattern := r.Classify(query)
	if pattern == PatternGenericSubgraph {
		return genericSubgraphQuery, map[string]any{"query": query}
	}
	return patternQueries[pattern], nil
}
