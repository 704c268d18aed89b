// Package category provides the POI category set container.
package category

import (
	"sort"
	"strings"
)

// Set is an unordered collection of category names.
type Set map[string]struct{}

// FromSlice builds a set from a slice, ignoring empty strings.
func FromSlice(names []string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		if n != "" {
			s[n] = struct{}{}
		}
	}
	return s
}

// ParseList splits a separated list (e.g. "cafe/bar" or "cafe,bar") into a set.
// Empty segments are dropped; an all-empty input yields an empty set.
func ParseList(list, sep string) Set {
	if list == "" {
		return Set{}
	}
	return FromSlice(strings.Split(list, sep))
}

// Contains reports whether name is in the set.
func (s Set) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Intersects reports whether the two sets share at least one category.
func (s Set) Intersects(other Set) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for n := range small {
		if _, ok := large[n]; ok {
			return true
		}
	}
	return false
}

// Equal reports whether both sets contain exactly the same categories.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for n := range s {
		if _, ok := other[n]; !ok {
			return false
		}
	}
	return true
}

// Slice returns the categories sorted alphabetically, for deterministic output.
func (s Set) Slice() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of categories.
func (s Set) Len() int { return len(s) }
