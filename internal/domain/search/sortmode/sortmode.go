// Package sortmode defines the closed enumeration of ranking keys.
package sortmode

// Mode is the ranking key for search results.
type Mode string

const (
	// Score ranks by the fused proximity+similarity score.
	Score Mode = "score"
	// Similarity ranks by raw cosine similarity. Requires a text query.
	Similarity Mode = "similarity"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Score || m == Similarity
}
