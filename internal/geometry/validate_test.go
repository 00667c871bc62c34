package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boxHull() *Hull {
	h := &Hull{
		Stations: []Station{
			{Index: 0, X: 0}, {Index: 1, X: 50}, {Index: 2, X: 100},
		},
		Waterlines: []Waterline{
			{Index: 0, Z: 0}, {Index: 1, Z: 2}, {Index: 2, Z: 4},
		},
	}
	for range h.Stations {
		h.Offsets = append(h.Offsets, []float64{10, 10, 10})
	}
	return h
}

func TestValidateAccepts(t *testing.T) {
	require.Empty(t, Validate(boxHull()))
}

func TestValidateStations(t *testing.T) {
	t.Run("too few", func(t *testing.T) {
		h := boxHull()
		h.Stations = h.Stations[:2]
		h.Offsets = h.Offsets[:2]
		issues := Validate(h)
		require.Len(t, issues, 1)
		assert.Equal(t, "stations", issues[0].Field)
	})

	t.Run("non increasing x", func(t *testing.T) {
		h := boxHull()
		h.Stations[1].X = 0
		issues := Validate(h)
		require.Len(t, issues, 1)
		assert.Equal(t, "stations", issues[0].Field)
		assert.Equal(t, 1, issues[0].Station)
	})

	t.Run("duplicate index", func(t *testing.T) {
		h := boxHull()
		h.Stations[2].Index = 1
		issues := Validate(h)
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0].Message, "duplicate")
	})
}

func TestValidateWaterlines(t *testing.T) {
	t.Run("lowest above zero", func(t *testing.T) {
		h := boxHull()
		h.Waterlines[0].Z = 0.5
		issues := Validate(h)
		require.Len(t, issues, 1)
		assert.Equal(t, "waterlines", issues[0].Field)
		assert.Contains(t, issues[0].Message, "at or below z=0")
	})

	t.Run("non increasing z", func(t *testing.T) {
		h := boxHull()
		h.Waterlines[2].Z = 2
		issues := Validate(h)
		require.Len(t, issues, 1)
		assert.Equal(t, 2, issues[0].Waterline)
	})
}

func TestValidateOffsets(t *testing.T) {
	t.Run("missing cell is locatable", func(t *testing.T) {
		h := boxHull()
		h.Offsets[1] = h.Offsets[1][:2] // drop waterline 2 at station 1
		issues := Validate(h)
		require.Len(t, issues, 1)
		assert.Equal(t, "offsets", issues[0].Field)
		assert.Equal(t, 1, issues[0].Station)
		assert.Equal(t, 2, issues[0].Waterline)
		assert.Equal(t, "offset missing", issues[0].Message)
	})

	t.Run("negative half-breadth", func(t *testing.T) {
		h := boxHull()
		h.Offsets[0][1] = -0.01
		issues := Validate(h)
		require.Len(t, issues, 1)
		assert.Equal(t, 0, issues[0].Station)
		assert.Equal(t, 1, issues[0].Waterline)
	})

	t.Run("non finite half-breadth", func(t *testing.T) {
		h := boxHull()
		h.Offsets[2][0] = math.NaN()
		issues := Validate(h)
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0].Message, "finite")
	})
}

func TestValidateReportsEverything(t *testing.T) {
	// Several independent defects must all surface in one pass.
	h := boxHull()
	h.Stations[1].X = -1
	h.Waterlines[0].Z = 1
	h.Offsets[2][2] = -5
	issues := Validate(h)
	assert.GreaterOrEqual(t, len(issues), 3)

	fields := map[string]bool{}
	for _, is := range issues {
		fields[is.Field] = true
	}
	assert.True(t, fields["stations"])
	assert.True(t, fields["waterlines"])
	assert.True(t, fields["offsets"])
}
