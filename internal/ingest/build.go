package ingest

import (
	"fmt"

	"github.com/triply-cloud/poidex/internal/catalog"
	"github.com/triply-cloud/poidex/internal/domain"
)

// BuildCatalog joins entity rows with their parallel embedding rows into the
// immutable catalog. Row counts must match exactly.
func BuildCatalog(pois []domain.POI, vectors [][]float32) (*catalog.Catalog, error) {
	if len(pois) != len(vectors) {
		return nil, fmt.Errorf("entity/vector row count mismatch: %d entities, %d vectors",
			len(pois), len(vectors))
	}

	b := catalog.NewBuilder()
	for i, poi := range pois {
		if err := b.Add(poi, vectors[i]); err != nil {
			return nil, fmt.Errorf("add row %d: %w", i, err)
		}
	}
	return b.Build(), nil
}
