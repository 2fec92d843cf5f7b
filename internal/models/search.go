// ABOUTME: SearchResult represents a ranked vector search hit with its payload text
// ABOUTME: Transient result type, produced fresh per query and never persisted
package models

// SearchResult is one ranked hit from a vector index search.
// Score is cosine similarity in [0, 1]; results are ordered best-first.
type SearchResult struct {
	Key   string  `json:"key"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}
