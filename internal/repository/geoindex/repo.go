// Package geoindex adapts the db geo driver to the engine's candidate contract.
package geoindex

import (
	"context"
	"fmt"

	"github.com/triply-cloud/poidex/internal/db"
	"github.com/triply-cloud/poidex/internal/domain"
)

// store is the consumer interface for radius search (ISP).
type store interface {
	RadiusSearch(ctx context.Context, set string, lon, lat, radiusMeters float64) ([]db.GeoHit, error)
}

// Candidate is a radius search hit: a POI id with its distance in meters.
type Candidate struct {
	ID       string
	Distance float64
}

// Repo answers "ids within radius of a point" against a single geo set.
type Repo struct {
	store store
	set   string
}

// New creates a geo index repository bound to the given set name.
func New(s store, set string) *Repo {
	return &Repo{store: s, set: set}
}

// Candidates returns radius-filtered hits ascending by distance.
// A driver failure wraps domain.ErrIndexUnavailable; the engine never retries,
// retry policy belongs to the caller.
func (r *Repo) Candidates(
	ctx context.Context, lon, lat, radiusMeters float64,
) ([]Candidate, error) {
	hits, err := r.store.RadiusSearch(ctx, r.set, lon, lat, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("%w: radius search: %w", domain.ErrIndexUnavailable, err)
	}

	candidates := make([]Candidate, len(hits))
	for i, h := range hits {
		candidates[i] = Candidate{ID: h.ID, Distance: h.Distance}
	}
	return candidates, nil
}
