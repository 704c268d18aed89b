// Package ingest performs the one-time startup ETL: it reads the entity
// table and its parallel vector file, builds the immutable catalog, and bulk
// loads the geo set.
package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/triply-cloud/poidex/internal/domain"
)

// ReadEntities reads an entity table, picking the reader by file extension.
// Row i of the returned slice pairs with row i of the vector file.
func ReadEntities(path string) ([]domain.POI, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadEntitiesCSV(path)
	case ".parquet":
		return ReadEntitiesParquet(path)
	default:
		return nil, fmt.Errorf("unsupported entity table format %q", filepath.Ext(path))
	}
}
