package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHalfBreadthAt(t *testing.T) {
	h := &Hull{
		Stations: []Station{
			{Index: 0, X: 0}, {Index: 1, X: 5}, {Index: 2, X: 10},
		},
		Waterlines: []Waterline{
			{Index: 0, Z: 0}, {Index: 1, Z: 1}, {Index: 2, Z: 2},
		},
		// V-shaped section at station 0, wall-sided at station 1.
		Offsets: [][]float64{
			{0, 5, 10},
			{4, 4, 4},
			{0, 0, 0},
		},
	}

	assert.Equal(t, 0.0, h.HalfBreadthAt(0, 0))
	assert.InDelta(t, 2.5, h.HalfBreadthAt(0, 0.5), 1e-12)
	assert.InDelta(t, 5.0, h.HalfBreadthAt(0, 1), 1e-12)
	assert.InDelta(t, 7.5, h.HalfBreadthAt(0, 1.5), 1e-12)

	// Below the lowest waterline there is no section.
	assert.Equal(t, 0.0, h.HalfBreadthAt(1, -0.5))
	// Above the top waterline the top offset holds, never extrapolated.
	assert.Equal(t, 10.0, h.HalfBreadthAt(0, 3))
}

func TestHullDimensions(t *testing.T) {
	h := &Hull{
		Stations:   []Station{{Index: 0, X: -2}, {Index: 1, X: 3}, {Index: 2, X: 8}},
		Waterlines: []Waterline{{Index: 0, Z: -1}, {Index: 1, Z: 0}, {Index: 2, Z: 4}},
	}
	assert.Equal(t, 10.0, h.Length())
	assert.Equal(t, 4.0, h.TopZ())
}
