package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/triply-cloud/poidex/internal/domain"
	"github.com/triply-cloud/poidex/internal/domain/category"
)

// entityColumns holds the header positions of the entity table columns.
type entityColumns struct {
	id           int
	name         int
	description  int
	lon          int
	lat          int
	categories   int
	openingHours int
}

// ReadEntitiesCSV reads a row-oriented entity table with columns
// id, name, description, lon, lat, categories (slash-separated), opening_hours.
func ReadEntitiesCSV(path string) ([]domain.POI, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open entities: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := resolveEntityColumns(header)
	if err != nil {
		return nil, err
	}

	var pois []domain.POI
	row := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}

		poi, err := recordToPOI(record, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		pois = append(pois, poi)
		row++
	}

	return pois, nil
}

func resolveEntityColumns(header []string) (entityColumns, error) {
	cols := entityColumns{
		id: -1, name: -1, description: -1,
		lon: -1, lat: -1, categories: -1, openingHours: -1,
	}
	for i, name := range header {
		switch name {
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
			return entityColumns{}, fmt.Errorf("entity table missing column %q", col)
		}
	}
	return cols, nil
}

func recordToPOI(record []string, cols entityColumns) (domain.POI, error) {
	field := func(idx int) string {
		if idx < 0 || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	lon, err := strconv.ParseFloat(field(cols.lon), 64)
	if err != nil {
		return domain.POI{}, fmt.Errorf("parse lon: %w", err)
	}
	lat, err := strconv.ParseFloat(field(cols.lat), 64)
	if err != nil {
		return domain.POI{}, fmt.Errorf("parse lat: %w", err)
	}

	return domain.NewPOI(
		field(cols.id),
		field(cols.name),
		field(cols.description),
		lon, lat,
		category.ParseList(field(cols.categories), "/"),
		field(cols.openingHours),
	)
}
