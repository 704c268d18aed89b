// Package place provides single-id POI lookup.
package place

import (
	"context"
	"fmt"

	"github.com/triply-cloud/poidex/internal/domain"
)

// CatalogReader reads the immutable POI catalog.
type CatalogReader interface {
	Lookup(id string) (domain.POI, []float32, bool)
}

// Service answers single-id lookups. No scoring, no filtering.
type Service struct {
	catalog CatalogReader
}

// New creates a place lookup service.
func New(catalog CatalogReader) *Service {
	return &Service{catalog: catalog}
}

// Get returns the POI for the given id or domain.ErrNotFound.
func (s *Service) Get(_ context.Context, id string) (domain.POI, error) {
	if id == "" {
		return domain.POI{}, fmt.Errorf("%w: id is required", domain.ErrInvalidArgument)
	}

	poi, _, ok := s.catalog.Lookup(id)
	if !ok {
		return domain.POI{}, fmt.Errorf("%w: poi %q", domain.ErrNotFound, id)
	}
	return poi, nil
}
