package catalog

import (
	"errors"
	"fmt"
	"testing"

	"github.com/triply-cloud/poidex/internal/domain"
	"github.com/triply-cloud/poidex/internal/domain/category"
)

func mustPOI(t *testing.T, id string, lon, lat float64) domain.POI {
	t.Helper()
	p, err := domain.NewPOI(id, "poi "+id, "", lon, lat, category.FromSlice([]string{"cafe"}), "")
	if err != nil {
		t.Fatalf("NewPOI(%q): %v", id, err)
	}
	return p
}

func TestBuilder_AddAndLookup(t *testing.T) {
	b := NewBuilder()
	vec := []float32{0.1, 0.2, 0.3}

	if err := b.Add(mustPOI(t, "a", 13.4, 52.5), vec); err != nil {
		t.Fatalf("Add: %v", err)
	}
	c := b.Build()

	poi, got, ok := c.Lookup("a")
	if !ok {
		t.Fatal("Lookup(a) missed")
	}
	if poi.ID() != "a" {
		t.Errorf("Lookup returned poi %q", poi.ID())
	}
	if len(got) != 3 || got[0] != 0.1 {
		t.Errorf("Lookup vector = %v", got)
	}

	if _, _, ok := c.Lookup("missing"); ok {
		t.Error("Lookup(missing) should miss")
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d", c.Len())
	}
}

func TestBuilder_DuplicateID(t *testing.T) {
	b := NewBuilder()
	if err := b.Add(mustPOI(t, "a", 0, 0), nil); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	err := b.Add(mustPOI(t, "a", 1, 1), nil)
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("duplicate id: expected ErrInvalidArgument, got %v", err)
	}
}

func TestCatalog_EachPreservesInsertionOrder(t *testing.T) {
	b := NewBuilder()
	want := []string{"c", "a", "b"}
	for _, id := range want {
		if err := b.Add(mustPOI(t, id, 0, 0), nil); err != nil {
			t.Fatalf("Add(%q): %v", id, err)
		}
	}
	c := b.Build()

	var got []string
	c.Each(func(p domain.POI) bool {
		got = append(got, p.ID())
		return true
	})
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("Each order = %v, want %v", got, want)
	}
}

func TestCatalog_EachEarlyStop(t *testing.T) {
	b := NewBuilder()
	for i := 0; i < 5; i++ {
		if err := b.Add(mustPOI(t, fmt.Sprintf("p%d", i), 0, 0), nil); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	c := b.Build()

	visited := 0
	c.Each(func(domain.POI) bool {
		visited++
		return visited < 2
	})
	if visited != 2 {
		t.Errorf("visited %d entries, want 2", visited)
	}
}
