package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/triply-cloud/poidex/internal/catalog"
	"github.com/triply-cloud/poidex/internal/db"
	"github.com/triply-cloud/poidex/internal/domain"
	"github.com/triply-cloud/poidex/internal/domain/category"
)

type fakeGeoStore struct {
	mu       sync.Mutex
	batches  [][]db.GeoMember
	delCalls []string
	addErr   error
	delErr   error
}

func (f *fakeGeoStore) GeoAdd(_ context.Context, _ string, members []db.GeoMember) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return f.addErr
	}
	cp := make([]db.GeoMember, len(members))
	copy(cp, members)
	f.batches = append(f.batches, cp)
	return nil
}

func (f *fakeGeoStore) DelSet(_ context.Context, set string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delCalls = append(f.delCalls, set)
	return f.delErr
}

func (f *fakeGeoStore) totalMembers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.batches {
		n += len(b)
	}
	return n
}

func buildTestCatalog(t *testing.T, n int) *catalog.Catalog {
	t.Helper()
	b := catalog.NewBuilder()
	for i := 0; i < n; i++ {
		poi, err := domain.NewPOI(
			fmt.Sprintf("p%03d", i), "poi", "",
			float64(i)*0.001, 52.0,
			category.FromSlice([]string{"cafe"}), "",
		)
		if err != nil {
			t.Fatalf("NewPOI: %v", err)
		}
		if err := b.Add(poi, nil); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	return b.Build()
}

func TestLoader_BatchBoundaries(t *testing.T) {
	store := &fakeGeoStore{}
	l := NewLoader(store, "entities", 10, 2, zap.NewNop())

	// 25 members with batch size 10: two full batches and a remainder of 5.
	if err := l.Load(context.Background(), buildTestCatalog(t, 25)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(store.delCalls) != 1 || store.delCalls[0] != "entities" {
		t.Errorf("DelSet calls = %v", store.delCalls)
	}
	if len(store.batches) != 3 {
		t.Fatalf("got %d batches, want 3", len(store.batches))
	}
	if store.totalMembers() != 25 {
		t.Errorf("loaded %d members, want 25", store.totalMembers())
	}

	sizes := map[int]int{}
	for _, b := range store.batches {
		sizes[len(b)]++
	}
	if sizes[10] != 2 || sizes[5] != 1 {
		t.Errorf("batch sizes = %v, want two of 10 and one of 5", sizes)
	}
}

func TestLoader_ExactMultipleHasNoEmptyFlush(t *testing.T) {
	store := &fakeGeoStore{}
	l := NewLoader(store, "entities", 5, 1, zap.NewNop())

	if err := l.Load(context.Background(), buildTestCatalog(t, 10)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(store.batches) != 2 {
		t.Errorf("got %d batches, want 2", len(store.batches))
	}
}

func TestLoader_EmptyCatalog(t *testing.T) {
	store := &fakeGeoStore{}
	l := NewLoader(store, "entities", 5, 1, zap.NewNop())

	if err := l.Load(context.Background(), buildTestCatalog(t, 0)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(store.batches) != 0 {
		t.Errorf("empty catalog produced batches: %v", store.batches)
	}
	if len(store.delCalls) != 1 {
		t.Error("geo set should still be cleared")
	}
}

func TestLoader_GeoAddErrorPropagates(t *testing.T) {
	sentinel := errors.New("connection reset")
	store := &fakeGeoStore{addErr: sentinel}
	l := NewLoader(store, "entities", 5, 2, zap.NewNop())

	err := l.Load(context.Background(), buildTestCatalog(t, 12))
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected GeoAdd error to propagate, got %v", err)
	}
}

func TestLoader_DelSetErrorAborts(t *testing.T) {
	store := &fakeGeoStore{delErr: errors.New("down")}
	l := NewLoader(store, "entities", 5, 1, zap.NewNop())

	err := l.Load(context.Background(), buildTestCatalog(t, 3))
	if err == nil || !strings.Contains(err.Error(), "clear geo set") {
		t.Fatalf("expected clear error, got %v", err)
	}
	if len(store.batches) != 0 {
		t.Error("no batches should be sent after a failed clear")
	}
}

func TestLoader_CanceledContext(t *testing.T) {
	store := &fakeGeoStore{}
	l := NewLoader(store, "entities", 5, 1, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Load(ctx, buildTestCatalog(t, 20))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBuildCatalog_RowCountMismatch(t *testing.T) {
	pois := make([]domain.POI, 0, 2)
	for i := 0; i < 2; i++ {
		poi, err := domain.NewPOI(fmt.Sprintf("p%d", i), "poi", "", 0, 0,
			category.FromSlice([]string{"cafe"}), "")
		if err != nil {
			t.Fatalf("NewPOI: %v", err)
		}
		pois = append(pois, poi)
	}

	_, err := BuildCatalog(pois, [][]float32{{1}})
	if err == nil || !strings.Contains(err.Error(), "row count mismatch") {
		t.Fatalf("expected mismatch error, got %v", err)
	}

	cat, err := BuildCatalog(pois, [][]float32{{1}, {2}})
	if err != nil {
		t.Fatalf("BuildCatalog: %v", err)
	}
	if cat.Len() != 2 {
		t.Errorf("Len = %d, want 2", cat.Len())
	}
}
