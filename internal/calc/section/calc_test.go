package section

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"Keel/internal/geometry"
)

// rectHull is a wall-sided barge section ladder: half-breadth 10 m from
// keel to z=6 m at every station.
func rectHull() *geometry.Hull {
	h := &geometry.Hull{}
	for i := 0; i <= 2; i++ {
		h.Stations = append(h.Stations, geometry.Station{Index: i, X: float64(i) * 50})
	}
	for j := 0; j <= 6; j++ {
		h.Waterlines = append(h.Waterlines, geometry.Waterline{Index: j, Z: float64(j)})
	}
	for range h.Stations {
		row := make([]float64, len(h.Waterlines))
		for j := range row {
			row[j] = 10
		}
		h.Offsets = append(h.Offsets, row)
	}
	return h
}

func TestPropertiesRectangle(t *testing.T) {
	p := Properties(rectHull(), 0, 5)
	assert.InDelta(t, 100.0, p.AreaM2, 1e-12)   // 2 * 10 * 5
	assert.InDelta(t, 2.5, p.CentroidZM, 1e-12) // half draft
}

func TestPropertiesPartialStrip(t *testing.T) {
	// Draft between waterlines: strip up to z=draft is interpolated.
	p := Properties(rectHull(), 1, 2.5)
	assert.InDelta(t, 50.0, p.AreaM2, 1e-12)
	assert.InDelta(t, 1.25, p.CentroidZM, 1e-12)
}

func TestPropertiesVSection(t *testing.T) {
	h := rectHull()
	// Deadrise at station 0: y grows linearly 0..10 over z 0..6 (wl j has
	// slope 10/6 per meter, sampled at the ladder so strips see a
	// piecewise-linear flank).
	for j := range h.Waterlines {
		h.Offsets[0][j] = 10 * float64(j) / 6
	}
	p := Properties(h, 0, 6)
	// Triangle flank: one-sided area = 10*6/2, mirrored = 60.
	assert.InDelta(t, 60.0, p.AreaM2, 1e-9)
	assert.Greater(t, p.CentroidZM, 3.0) // top-heavy section
}

func TestPropertiesDegenerateDraft(t *testing.T) {
	h := rectHull()
	for _, draft := range []float64{0, -1.5} {
		p := Properties(h, 0, draft)
		assert.Zero(t, p.AreaM2)
		assert.Equal(t, draft, p.CentroidZM)
	}
}

func TestPropertiesClampsAboveLadder(t *testing.T) {
	// Drafts beyond the top waterline integrate the defined ladder only.
	p6 := Properties(rectHull(), 0, 6)
	p9 := Properties(rectHull(), 0, 9)
	assert.Equal(t, p6.AreaM2, p9.AreaM2)
}
