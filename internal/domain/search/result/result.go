// Package result defines the per-query search hit.
package result

import "github.com/triply-cloud/poidex/internal/domain"

// Result is a single search hit: a POI plus its per-query scoring.
// Constructed fresh for every query and discarded with the response.
type Result struct {
	poi        domain.POI
	score      float64
	distance   float64  // meters from the search center
	similarity *float64 // present iff the query included free text
}

// New creates a search result.
func New(poi domain.POI, score, distance float64, similarity *float64) Result {
	return Result{poi: poi, score: score, distance: distance, similarity: similarity}
}

// POI returns the underlying point of interest.
func (r *Result) POI() domain.POI { return r.poi }

// Score returns the fused ranking score.
func (r *Result) Score() float64 { return r.score }

// Distance returns the distance from the search center in meters.
func (r *Result) Distance() float64 { return r.distance }

// Similarity returns the cosine similarity to the query, or nil when the
// search had no free-text query.
func (r *Result) Similarity() *float64 { return r.similarity }
