package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
// Consumers depend on the narrow sub-interfaces (ISP).
type Store interface {
	Pinger
	GeoIndex
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// GeoMember is a single (lon, lat, id) triple for bulk geo loading.
type GeoMember struct {
	Lon float64
	Lat float64
	ID  string
}

// GeoHit is a radius search match. Distance is meters from the center.
type GeoHit struct {
	ID       string
	Distance float64
}

// GeoIndex provides geo set loading and radius search.
// RadiusSearch returns hits ascending by distance, already radius-filtered.
type GeoIndex interface {
	GeoAdd(ctx context.Context, set string, members []GeoMember) error
	RadiusSearch(ctx context.Context, set string, lon, lat, radiusMeters float64) ([]GeoHit, error)
	DelSet(ctx context.Context, set string) error
}

// KVStore provides simple key-value operations (embedding cache).
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
