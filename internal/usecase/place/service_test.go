package place

import (
	"context"
	"errors"
	"testing"

	"github.com/triply-cloud/poidex/internal/catalog"
	"github.com/triply-cloud/poidex/internal/domain"
	"github.com/triply-cloud/poidex/internal/domain/category"
)

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	poi, err := domain.NewPOI("p1", "Corner Cafe", "", 13.405, 52.52,
		category.FromSlice([]string{"cafe"}), "")
	if err != nil {
		t.Fatalf("NewPOI: %v", err)
	}
	b := catalog.NewBuilder()
	if err := b.Add(poi, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}
	return b.Build()
}

func TestGet(t *testing.T) {
	s := New(newTestCatalog(t))

	poi, err := s.Get(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if poi.ID() != "p1" || poi.Name() != "Corner Cafe" {
		t.Errorf("got poi %q (%q)", poi.ID(), poi.Name())
	}
}

func TestGet_NotFound(t *testing.T) {
	s := New(newTestCatalog(t))

	_, err := s.Get(context.Background(), "unknown")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGet_EmptyID(t *testing.T) {
	s := New(newTestCatalog(t))

	_, err := s.Get(context.Background(), "")
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}
