package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/triply-cloud/poidex/internal/domain/category"
)

func TestNewPOI(t *testing.T) {
	cats := category.FromSlice([]string{"cafe", "bar"})

	p, err := NewPOI("poi-1", "Corner Cafe", "espresso and cake", 13.405, 52.52, cats, "Mo-Fr 08:00-18:00")
	if err != nil {
		t.Fatalf("NewPOI: %v", err)
	}

	if p.ID() != "poi-1" {
		t.Errorf("ID = %q", p.ID())
	}
	if p.Name() != "Corner Cafe" {
		t.Errorf("Name = %q", p.Name())
	}
	if p.Description() != "espresso and cake" {
		t.Errorf("Description = %q", p.Description())
	}
	if p.Lon() != 13.405 || p.Lat() != 52.52 {
		t.Errorf("coordinates = (%v, %v)", p.Lat(), p.Lon())
	}
	if !p.Categories().Equal(cats) {
		t.Errorf("Categories = %v", p.Categories().Slice())
	}
	if p.OpeningHours() != "Mo-Fr 08:00-18:00" {
		t.Errorf("OpeningHours = %q", p.OpeningHours())
	}
}

func TestNewPOI_OptionalFieldsEmpty(t *testing.T) {
	p, err := NewPOI("poi-2", "Park", "", 0, 0, category.FromSlice([]string{"park"}), "")
	if err != nil {
		t.Fatalf("NewPOI: %v", err)
	}
	if p.Description() != "" || p.OpeningHours() != "" {
		t.Error("optional fields should stay empty")
	}
}

func TestNewPOI_Invalid(t *testing.T) {
	cats := category.FromSlice([]string{"cafe"})

	tests := []struct {
		name     string
		id, poiN string
		lon, lat float64
		cats     category.Set
		wantMsg  string
	}{
		{"missing id", "", "Cafe", 0, 0, cats, "id is required"},
		{"missing name", "poi-1", "", 0, 0, cats, "name is required"},
		{"lat out of range", "poi-1", "Cafe", 0, 91, cats, "coordinates out of range"},
		{"lon out of range", "poi-1", "Cafe", -181, 0, cats, "coordinates out of range"},
		{"no categories", "poi-1", "Cafe", 0, 0, category.Set{}, "at least one category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPOI(tt.id, tt.poiN, "", tt.lon, tt.lat, tt.cats, "")
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}
