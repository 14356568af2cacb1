package face

import (
	"math"
)

// Normalize returns a unit-length (L2 norm = 1) copy of the embedding.
// Zero vectors are returned unchanged; callers reject them via Validate.
func Normalize(embedding []float64) []float64 {
	if len(embedding) == 0 {
		return embedding
	}

	var norm float64
	for _, v := range embedding {
		norm += v * v
	}

	if norm == 0 {
		return embedding
	}

	norm = math.Sqrt(norm)
	normalized := make([]float64, len(embedding))
	for i, v := range embedding {
		normalized[i] = v / norm
	}

	return normalized
}

// EuclideanDistance computes ||a - b||. Vectors must have equal length.
func EuclideanDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Confidence maps a distance in [0, inf) monotonically to (0, 1].
// Distance 0 yields confidence 1.
func Confidence(distance float64) float64 {
	return 1 / (1 + distance)
}

// Finite reports whether every component of the embedding is a finite number.
func Finite(embedding []float64) bool {
	for _, v := range embedding {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
