package search

import (
	"context"

	"github.com/triply-cloud/poidex/internal/domain"
	"github.com/triply-cloud/poidex/internal/repository/geoindex"
)

// CandidateSource answers "ids within radius of a point", ascending by
// distance and already radius-filtered.
type CandidateSource interface {
	Candidates(ctx context.Context, lon, lat, radiusMeters float64) ([]geoindex.Candidate, error)
}

// CatalogReader reads the immutable POI + embedding catalog.
type CatalogReader interface {
	Lookup(id string) (domain.POI, []float32, bool)
}

// Encoder vectorizes the free-text query. Called at most once per search.
type Encoder interface {
	Encode(ctx context.Context, text string) (domain.EncodeResult, error)
}
