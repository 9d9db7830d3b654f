package domain

import "math"

// Vector is a sparse document vector over vocabulary column indexes.
// Weights are non-negative; absent columns are zero. A fitted vector is
// either unit-length or the zero vector.
type Vector map[int]float64

// Dot returns the inner product of two sparse vectors.
// For unit-normalized vectors this is the cosine similarity; the zero
// vector yields 0 against anything.
func (v Vector) Dot(other Vector) float64 {
	// Iterate the smaller side.
	if len(other) < len(v) {
		v, other = other, v
	}
	var sum float64
	for col, w := range v {
		if ow, ok := other[col]; ok {
			sum += w * ow
		}
	}
	return sum
}

// Norm returns the L2 norm.
func (v Vector) Norm() float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Normalize scales the vector to unit L2 norm in place.
// The zero vector stays zero.
func (v Vector) Normalize() {
	norm := v.Norm()
	if norm == 0 {
		return
	}
	for col, w := range v {
		v[col] = w / norm
	}
}

// IsZero reports whether the vector has no non-zero components.
func (v Vector) IsZero() bool { return len(v) == 0 }
