package index

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func vectorNorm(v []float32) float64 {
	var sum float64
	for _, val := range v {
		sum += float64(val) * float64(val)
	}
	return math.Sqrt(sum)
}

func TestNormalizeVector(t *testing.T) {
	v := []float32{3, 4}
	normalized := NormalizeVector(v)

	assert.InDelta(t, 1.0, vectorNorm(normalized), 1e-6)
	assert.InDelta(t, 0.6, normalized[0], 1e-6)
	assert.InDelta(t, 0.8, normalized[1], 1e-6)

	// Input must not be mutated.
	assert.Equal(t, []float32{3, 4}, v)
}

func TestNormalizeVector_AlreadyNormalized(t *testing.T) {
	v := []float32{1, 0, 0}
	normalized := NormalizeVector(v)
	assert.InDelta(t, 1.0, vectorNorm(normalized), 1e-6)
}

func TestNormalizeVector_ZeroVector(t *testing.T) {
	normalized := NormalizeVector([]float32{0, 0, 0})
	assert.Equal(t, []float32{0, 0, 0}, normalized)
}

func TestNormalizeVector_Empty(t *testing.T) {
	assert.Empty(t, NormalizeVector(nil))
	assert.Empty(t, NormalizeVector([]float32{}))
}
