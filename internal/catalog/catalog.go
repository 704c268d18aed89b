// Package catalog holds the immutable process-wide POI + embedding store.
// It is built once at startup by the ingest step and read-only thereafter,
// so concurrent pipeline invocations read it without locking.
package catalog

import (
	"fmt"

	"github.com/triply-cloud/poidex/internal/domain"
)

// Entry pairs a POI with its embedding vector.
type Entry struct {
	POI    domain.POI
	Vector []float32
}

// Builder accumulates entries before freezing them into a Catalog.
// It is the single writer; not safe for concurrent use.
type Builder struct {
	entries map[string]Entry
	order   []string
}

// NewBuilder creates an empty catalog builder.
func NewBuilder() *Builder {
	return &Builder{entries: make(map[string]Entry)}
}

// Add registers a POI with its embedding. Duplicate ids are rejected.
func (b *Builder) Add(poi domain.POI, vector []float32) error {
	id := poi.ID()
	if _, ok := b.entries[id]; ok {
		return fmt.Errorf("%w: duplicate poi id %q", domain.ErrInvalidArgument, id)
	}
	b.entries[id] = Entry{POI: poi, Vector: vector}
	b.order = append(b.order, id)
	return nil
}

// Build freezes the accumulated entries into a read-only Catalog.
// The builder must not be reused afterwards.
func (b *Builder) Build() *Catalog {
	c := &Catalog{entries: b.entries, order: b.order}
	b.entries = nil
	b.order = nil
	return c
}

// Catalog is the immutable id → (POI, embedding) mapping.
type Catalog struct {
	entries map[string]Entry
	order   []string
}

// Lookup returns the POI and its embedding for the given id.
func (c *Catalog) Lookup(id string) (domain.POI, []float32, bool) {
	e, ok := c.entries[id]
	if !ok {
		return domain.POI{}, nil, false
	}
	return e.POI, e.Vector, true
}

// Each visits every POI in insertion order until fn returns false.
func (c *Catalog) Each(fn func(poi domain.POI) bool) {
	for _, id := range c.order {
		if !fn(c.entries[id].POI) {
			return
		}
	}
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int { return len(c.entries) }
