// Package request defines the validated search query.
package request

import (
	"fmt"

	"github.com/triply-cloud/poidex/internal/domain"
	"github.com/triply-cloud/poidex/internal/domain/category"
	"github.com/triply-cloud/poidex/internal/domain/geo"
	"github.com/triply-cloud/poidex/internal/domain/search/sortmode"
)

// MaxQueryLength is the maximum allowed free-text query length.
const MaxQueryLength = 1024

// Request is a validated search query. Construct via New; a zero Request
// is not valid.
type Request struct {
	lat        float64
	lon        float64
	radius     float64
	categories category.Set // len 0 = no category filter
	query      string       // "" = no free-text query
	sort       sortmode.Mode
	offset     int
	limit      int // 0 = no limit
}

// New validates and normalizes search parameters. Validation failures are
// reported before any retrieval happens; all wrap domain.ErrInvalidArgument.
// Defaults: sort=score, offset=0, limit=0 (unbounded).
func New(
	lat, lon, radius float64,
	categories category.Set,
	query string,
	sort sortmode.Mode,
	offset, limit int,
) (Request, error) {
	if !geo.ValidateCoordinates(lat, lon) {
		return Request{}, fmt.Errorf("%w: coordinates out of range (%f, %f)",
			domain.ErrInvalidArgument, lat, lon)
	}
	if radius <= 0 {
		return Request{}, fmt.Errorf("%w: radius must be positive, got %f",
			domain.ErrInvalidArgument, radius)
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)",
			domain.ErrInvalidArgument, MaxQueryLength)
	}
	if sort == "" {
		sort = sortmode.Score
	}
	if !sort.IsValid() {
		return Request{}, fmt.Errorf("%w: invalid sort mode %q", domain.ErrInvalidArgument, sort)
	}
	if sort == sortmode.Similarity && query == "" {
		return Request{}, fmt.Errorf("%w: similarity ranking requires a query", domain.ErrInvalidArgument)
	}
	if offset < 0 {
		return Request{}, fmt.Errorf("%w: offset must be non-negative, got %d",
			domain.ErrInvalidArgument, offset)
	}
	if limit < 0 {
		return Request{}, fmt.Errorf("%w: limit must be positive, got %d",
			domain.ErrInvalidArgument, limit)
	}

	return Request{
		lat:        lat,
		lon:        lon,
		radius:     radius,
		categories: categories,
		query:      query,
		sort:       sort,
		offset:     offset,
		limit:      limit,
	}, nil
}

// Lat returns the search center latitude in degrees.
func (r *Request) Lat() float64 { return r.lat }

// Lon returns the search center longitude in degrees.
func (r *Request) Lon() float64 { return r.lon }

// Radius returns the search radius in meters.
func (r *Request) Radius() float64 { return r.radius }

// Categories returns the category filter (empty set = no filter).
func (r *Request) Categories() category.Set { return r.categories }

// Query returns the free-text query ("" = none).
func (r *Request) Query() string { return r.query }

// HasQuery reports whether a free-text query was supplied.
func (r *Request) HasQuery() bool { return r.query != "" }

// Sort returns the ranking key.
func (r *Request) Sort() sortmode.Mode { return r.sort }

// Offset returns the pagination offset.
func (r *Request) Offset() int { return r.offset }

// Limit returns the pagination limit (0 = unbounded).
func (r *Request) Limit() int { return r.limit }
