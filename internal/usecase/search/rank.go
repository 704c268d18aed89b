package search

import (
	"sort"

	"github.com/triply-cloud/poidex/internal/domain/search/result"
	"github.com/triply-cloud/poidex/internal/domain/search/sortmode"
)

// rank orders results by the chosen key, descending. The sort is stable:
// equal keys keep retrieval order, so the candidate with the smaller distance
// ranks first whenever the key alone produces a tie.
func rank(results []result.Result, mode sortmode.Mode) {
	key := func(r *result.Result) float64 { return r.Score() }
	if mode == sortmode.Similarity {
		key = func(r *result.Result) float64 {
			if s := r.Similarity(); s != nil {
				return *s
			}
			return 0
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return key(&results[i]) > key(&results[j])
	})
}
