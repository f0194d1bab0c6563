package impact

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeight_PlateauInsidePeak(t *testing.T) {
	assert.Equal(t, 1.0, Weight(0, 5, 50, 3))
	assert.Equal(t, 1.0, Weight(4.9, 5, 50, 3))
	assert.Equal(t, 1.0, Weight(5, 5, 50, 3))
}

func TestWeight_ZeroBeyondMax(t *testing.T) {
	assert.Equal(t, 0.0, Weight(50, 5, 50, 3))
	assert.Equal(t, 0.0, Weight(1000, 5, 50, 3))
}

func TestWeight_ExponentialTail(t *testing.T) {
	// One decay constant past the peak the weight is 1/e.
	w := Weight(8, 5, 50, 3)
	assert.InDelta(t, math.Exp(-1), w, 1e-9)
}

func TestWeight_MonotonicNonIncreasing(t *testing.T) {
	prev := math.Inf(1)
	for d := 0.0; d <= 60; d += 0.25 {
		w := Weight(d, 5, 50, 3)
		assert.LessOrEqual(t, w, prev, "weight increased at distance %v", d)
		assert.GreaterOrEqual(t, w, 0.0)
		assert.LessOrEqual(t, w, 1.0)
		prev = w
	}
}

func TestWeight_NonPositiveDecayConstantFloored(t *testing.T) {
	// A zero or negative constant must not blow up the division; it
	// degrades to an effectively instant falloff instead.
	w := Weight(6, 5, 50, 0)
	assert.False(t, math.IsNaN(w))
	assert.False(t, math.IsInf(w, 0))
	assert.InDelta(t, 0, w, 1e-9)

	w = Weight(6, 5, 50, -2)
	assert.InDelta(t, 0, w, 1e-9)
}
