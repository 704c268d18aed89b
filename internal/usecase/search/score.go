package search

// DefaultAlpha is the default weight of semantic similarity in the fused score.
const DefaultAlpha = 0.7

// Score fuses distance closeness and semantic similarity into one ranking value.
//
//	closeness = (radius - distance) / radius          // 1 at the center, 0 at the rim
//	simNorm   = (similarity + 1) / 2                  // cosine [-1,1] -> [0,1]
//	score     = alpha*simNorm + (1-alpha)*closeness   // closeness only when similarity is nil
//
// The geo index contract keeps distance within [0, radius]; closeness is still
// clamped at 0 so a boundary-exceeding distance from floating-point rounding
// cannot contribute a negative score.
func Score(alpha, radius, distance float64, similarity *float64) float64 {
	closeness := (radius - distance) / radius
	if closeness < 0 {
		closeness = 0
	}

	if similarity == nil {
		return closeness
	}

	simNorm := (*similarity + 1) / 2
	return alpha*simNorm + (1-alpha)*closeness
}
