// Package memory implements db.Store in-process. It backs tests and the
// single-node local driver; radius search is a linear haversine scan.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/triply-cloud/poidex/internal/db"
	"github.com/triply-cloud/poidex/internal/domain/geo"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

type point struct {
	lon float64
	lat float64
}

// Store is an in-process db.Store.
type Store struct {
	mu   sync.RWMutex
	sets map[string]map[string]point
	kv   map[string][]byte
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		sets: make(map[string]map[string]point),
		kv:   make(map[string][]byte),
	}
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() {}

// WaitForReady always succeeds.
func (s *Store) WaitForReady(_ context.Context, _ time.Duration) error { return nil }

// GeoAdd registers members in a geo set.
func (s *Store) GeoAdd(_ context.Context, set string, members []db.GeoMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.sets[set]
	if !ok {
		m = make(map[string]point, len(members))
		s.sets[set] = m
	}
	for _, mem := range members {
		m[mem.ID] = point{lon: mem.Lon, lat: mem.Lat}
	}
	return nil
}

// RadiusSearch scans the set with haversine, filters by radius and returns
// hits ascending by distance. Equal distances tie-break by id for determinism.
func (s *Store) RadiusSearch(
	_ context.Context, set string, lon, lat, radiusMeters float64,
) ([]db.GeoHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hits := make([]db.GeoHit, 0)
	for id, p := range s.sets[set] {
		d := geo.Haversine(lat, lon, p.lat, p.lon)
		if d <= radiusMeters {
			hits = append(hits, db.GeoHit{ID: id, Distance: d})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].ID < hits[j].ID
	})

	return hits, nil
}

// DelSet removes a geo set.
func (s *Store) DelSet(_ context.Context, set string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sets, set)
	return nil
}

// Get retrieves a value by key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.kv[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Set stores a value at the given key.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := make([]byte, len(value))
	copy(data, value)
	s.kv[key] = data
	return nil
}

// SetWithTTL stores a value; the in-memory driver does not expire keys.
func (s *Store) SetWithTTL(ctx context.Context, key string, value []byte, _ time.Duration) error {
	return s.Set(ctx, key, value)
}
