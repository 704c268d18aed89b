package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/triply-cloud/poidex/internal/db"
)

// newLiveStore connects to the Redis named by POIDEX_TEST_REDIS_ADDR, or
// skips the test when the variable is unset.
func newLiveStore(t *testing.T) *Store {
	t.Helper()
	addr := os.Getenv("POIDEX_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("POIDEX_TEST_REDIS_ADDR not set")
	}

	s, err := NewStore(Config{Addrs: []string{addr}})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(s.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.WaitForReady(ctx, 5*time.Second); err != nil {
		t.Fatalf("WaitForReady: %v", err)
	}
	return s
}

func TestGeoRoundtrip(t *testing.T) {
	s := newLiveStore(t)
	ctx := context.Background()
	set := "poidex:test:geo"
	t.Cleanup(func() { _ = s.DelSet(context.Background(), set) })

	err := s.GeoAdd(ctx, set, []db.GeoMember{
		{ID: "center", Lon: 13.405, Lat: 52.52},
		{ID: "near", Lon: 13.41, Lat: 52.522},
		{ID: "far", Lon: 13.7, Lat: 52.6},
	})
	if err != nil {
		t.Fatalf("GeoAdd: %v", err)
	}

	hits, err := s.RadiusSearch(ctx, set, 13.405, 52.52, 3_000)
	if err != nil {
		t.Fatalf("RadiusSearch: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2: %v", len(hits), hits)
	}
	if hits[0].ID != "center" || hits[1].ID != "near" {
		t.Errorf("hits not ascending by distance: %v", hits)
	}
	if hits[1].Distance <= 0 || hits[1].Distance > 3_000 {
		t.Errorf("near distance = %v", hits[1].Distance)
	}
}

func TestKVRoundtrip(t *testing.T) {
	s := newLiveStore(t)
	ctx := context.Background()
	key := "poidex:test:kv"

	if err := s.SetWithTTL(ctx, key, []byte("value"), time.Minute); err != nil {
		t.Fatalf("SetWithTTL: %v", err)
	}
	got, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "value" {
		t.Errorf("Get = %q", got)
	}

	_, err = s.Get(ctx, "poidex:test:absent")
	if !errors.Is(err, db.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}
