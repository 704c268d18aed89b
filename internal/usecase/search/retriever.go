package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/triply-cloud/poidex/internal/domain"
	"github.com/triply-cloud/poidex/internal/domain/category"
)

// candidate is a retrieved POI with its per-query distance, in the geo
// index's ascending-distance order.
type candidate struct {
	poi      domain.POI
	vector   []float32
	distance float64
}

// Retriever joins geo index hits with the catalog and applies category filtering.
type Retriever struct {
	source  CandidateSource
	catalog CatalogReader
	logger  *zap.Logger
}

// NewRetriever creates a candidate retriever.
func NewRetriever(source CandidateSource, catalog CatalogReader, logger *zap.Logger) *Retriever {
	return &Retriever{source: source, catalog: catalog, logger: logger}
}

// Retrieve returns radius-filtered candidates ascending by distance.
// Hits whose id is missing from the catalog (index/catalog drift) are logged
// and dropped, never fatal. When categories is non-empty, a candidate is kept
// only if its POI's category set intersects it.
func (r *Retriever) Retrieve(
	ctx context.Context, lat, lon, radius float64, categories category.Set,
) ([]candidate, error) {
	hits, err := r.source.Candidates(ctx, lon, lat, radius)
	if err != nil {
		return nil, fmt.Errorf("retrieve candidates: %w", err)
	}

	candidates := make([]candidate, 0, len(hits))
	for _, hit := range hits {
		poi, vector, ok := r.catalog.Lookup(hit.ID)
		if !ok {
			r.logger.Warn("geo index hit missing from catalog, dropping",
				zap.String("id", hit.ID))
			continue
		}

		if categories.Len() > 0 && !poi.Categories().Intersects(categories) {
			continue
		}

		candidates = append(candidates, candidate{
			poi:      poi,
			vector:   vector,
			distance: hit.Distance,
		})
	}

	return candidates, nil
}
