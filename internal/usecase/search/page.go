package search

import "github.com/triply-cloud/poidex/internal/domain/search/result"

// page applies the half-open window [offset, offset+limit) over the ranked
// list, or [offset, end) when limit is 0. An offset past the end yields an
// empty page, never an error.
func page(results []result.Result, offset, limit int) []result.Result {
	if offset >= len(results) {
		return []result.Result{}
	}

	end := len(results)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return results[offset:end]
}
