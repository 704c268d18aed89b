package domain

import (
	"fmt"

	"github.com/triply-cloud/poidex/internal/domain/category"
	"github.com/triply-cloud/poidex/internal/domain/geo"
)

// POI is an immutable point of interest. Fields are fixed at load time;
// the catalog hands out copies by value, so concurrent reads never race.
type POI struct {
	id           string
	name         string
	description  string // empty = absent
	lon          float64
	lat          float64
	categories   category.Set
	openingHours string // empty = absent
}

// NewPOI validates and constructs a point of interest.
// Every POI must carry a non-empty id, valid coordinates and at least one category.
func NewPOI(
	id, name, description string,
	lon, lat float64,
	categories category.Set,
	openingHours string,
) (POI, error) {
	if id == "" {
		return POI{}, fmt.Errorf("%w: poi id is required", ErrInvalidArgument)
	}
	if name == "" {
		return POI{}, fmt.Errorf("%w: poi %q: name is required", ErrInvalidArgument, id)
	}
	if !geo.ValidateCoordinates(lat, lon) {
		return POI{}, fmt.Errorf("%w: poi %q: coordinates out of range (%f, %f)",
			ErrInvalidArgument, id, lat, lon)
	}
	if categories.Len() == 0 {
		return POI{}, fmt.Errorf("%w: poi %q: at least one category is required", ErrInvalidArgument, id)
	}

	return POI{
		id:           id,
		name:         name,
		description:  description,
		lon:          lon,
		lat:          lat,
		categories:   categories,
		openingHours: openingHours,
	}, nil
}

// ID returns the unique POI identifier.
func (p *POI) ID() string { return p.id }

// Name returns the POI name.
func (p *POI) Name() string { return p.name }

// Description returns the optional description ("" = absent).
func (p *POI) Description() string { return p.description }

// Lon returns the longitude in degrees.
func (p *POI) Lon() float64 { return p.lon }

// Lat returns the latitude in degrees.
func (p *POI) Lat() float64 { return p.lat }

// Categories returns the non-empty category set.
func (p *POI) Categories() category.Set { return p.categories }

// OpeningHours returns the optional opening hours string ("" = absent).
func (p *POI) OpeningHours() string { return p.openingHours }
