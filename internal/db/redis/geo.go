package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/triply-cloud/poidex/internal/db"
)

// GeoAdd loads a batch of members into a geo set via GEOADD.
func (s *Store) GeoAdd(ctx context.Context, set string, members []db.GeoMember) error {
	if len(members) == 0 {
		return nil
	}

	args := make([]string, 0, 1+len(members)*3)
	args = append(args, set)
	for _, m := range members {
		args = append(args,
			strconv.FormatFloat(m.Lon, 'f', -1, 64),
			strconv.FormatFloat(m.Lat, 'f', -1, 64),
			m.ID,
		)
	}

	cmd := s.b().Arbitrary(db.OpGeoAdd).Args(args...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpGeoAdd, Err: err}
	}
	return nil
}

// RadiusSearch runs GEOSEARCH FROMLONLAT BYRADIUS m ASC WITHDIST.
// Hits come back ascending by distance, already radius-filtered by Redis.
func (s *Store) RadiusSearch(
	ctx context.Context, set string, lon, lat, radiusMeters float64,
) ([]db.GeoHit, error) {
	cmd := s.b().Arbitrary(db.OpGeoSearch).Args(
		set,
		"FROMLONLAT",
		strconv.FormatFloat(lon, 'f', -1, 64),
		strconv.FormatFloat(lat, 'f', -1, 64),
		"BYRADIUS",
		strconv.FormatFloat(radiusMeters, 'f', -1, 64),
		"m",
		"ASC",
		"WITHDIST",
	).Build()

	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpGeoSearch, Err: err}
	}

	hits := make([]db.GeoHit, 0, len(raw))
	for _, msg := range raw {
		entry, err := msg.ToArray()
		if err != nil || len(entry) < 2 {
			return nil, &db.Error{Op: db.OpGeoSearch, Err: fmt.Errorf("malformed reply entry")}
		}

		id, err := entry[0].ToString()
		if err != nil {
			return nil, &db.Error{Op: db.OpGeoSearch, Err: fmt.Errorf("parse member: %w", err)}
		}

		distStr, err := entry[1].ToString()
		if err != nil {
			return nil, &db.Error{Op: db.OpGeoSearch, Err: fmt.Errorf("parse distance: %w", err)}
		}
		dist, err := strconv.ParseFloat(distStr, 64)
		if err != nil {
			return nil, &db.Error{Op: db.OpGeoSearch, Err: fmt.Errorf("parse distance %q: %w", distStr, err)}
		}

		hits = append(hits, db.GeoHit{ID: id, Distance: dist})
	}

	return hits, nil
}

// DelSet removes a geo set entirely (ingest starts from a clean slate).
func (s *Store) DelSet(ctx context.Context, set string) error {
	cmd := s.b().Del().Key(set).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}
