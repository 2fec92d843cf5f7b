// ABOUTME: Chunk represents a bounded-length span of document text for embedding
// ABOUTME: Created during ingestion, discarded once the index holds vector and text
package models

import "fmt"

// Chunk is one bounded-length segment of a source document.
// Ordinal reflects the chunk's position within its document.
type Chunk struct {
	DocumentID string `json:"document_id"`
	Ordinal    int    `json:"ordinal"`
	Text       string `json:"text"`
}

// Key derives the deterministic index key for this chunk.
// The "doc:" prefix matches the index schema prefix used for bulk deletes.
func (c Chunk) Key() string {
	return fmt.Sprintf("doc:%s:%d", c.DocumentID, c.Ordinal)
}
