package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/triply-cloud/poidex/internal/domain"
	"github.com/triply-cloud/poidex/internal/domain/category"
)

// ReadEntitiesParquet reads an entity table from a parquet file carrying the
// same logical columns as the CSV format. Uses the generic row reader —
// Schema.Reconstruct chokes on nullable columns.
func ReadEntitiesParquet(path string) ([]domain.POI, error) {
	h, err := openParquet(path)
	if err != nil {
		return nil, err
	}
	defer h.Close()

	cols, err := resolveParquetColumns(h.pf)
	if err != nil {
		return nil, err
	}

	var pois []domain.POI
	seq := 0

	for _, rg := range h.pf.RowGroups() {
		rows := parquet.NewRowGroupReader(rg)
		buf := make([]parquet.Row, 256)

		for {
			n, readErr := rows.ReadRows(buf)
			for i := 0; i < n; i++ {
				poi, err := parquetRowToPOI(buf[i], cols)
				if err != nil {
					return nil, fmt.Errorf("row %d: %w", seq, err)
				}
				pois = append(pois, poi)
				seq++
			}

			if readErr != nil {
				if errors.Is(readErr, io.EOF) {
					break
				}
				return nil, fmt.Errorf("read rows: %w", readErr)
			}
		}
	}

	return pois, nil
}

func resolveParquetColumns(pf *parquet.File) (entityColumns, error) {
	cols := entityColumns{
		id: -1, name: -1, description: -1,
		lon: -1, lat: -1, categories: -1, openingHours: -1,
	}
	for i, path := range pf.Schema().Columns() {
		if len(path) == 0 {
			continue
		}
		switch path[0] {
		case "id":
			cols.id = i
		case "name":
			cols.name = i
		case "description":
			cols.description = i
		case "lon":
			cols.lon = i
		case "lat":
			cols.lat = i
		case "categories":
			cols.categories = i
		case "opening_hours":
			cols.openingHours = i
		}
	}
	for col, idx := range map[string]int{
		"id": cols.id, "name": cols.name, "lon": cols.lon,
		"lat": cols.lat, "categories": cols.categories,
	} {
		if idx < 0 {
			return entityColumns{}, fmt.Errorf("parquet schema missing column %q", col)
		}
	}
	return cols, nil
}

func parquetRowToPOI(row parquet.Row, cols entityColumns) (domain.POI, error) {
	var id, name, description, categories, openingHours string
	var lon, lat float64

	for _, v := range row {
		if v.IsNull() {
			continue
		}
		switch v.Column() {
		case cols.id:
			id = v.String()
		case cols.name:
			name = v.String()
		case cols.description:
			description = v.String()
		case cols.lon:
			lon = v.Double()
		case cols.lat:
			lat = v.Double()
		case cols.categories:
			categories = v.String()
		case cols.openingHours:
			openingHours = v.String()
		}
	}

	return domain.NewPOI(
		id, name, description, lon, lat,
		category.ParseList(categories, "/"),
		openingHours,
	)
}

// parquetHandle wraps parquet.File + underlying os.File for proper cleanup.
type parquetHandle struct {
	pf   *parquet.File
	file *os.File
}

func (h *parquetHandle) Close() {
	_ = h.file.Close()
}

func openParquet(path string) (*parquetHandle, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	return &parquetHandle{pf: pf, file: f}, nil
}
