package hydrostatics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Keel/internal/geometry"
)

// barge is the analytical reference hull: L=100, B=20, wall-sided.
func barge() *geometry.Hull {
	h := &geometry.Hull{}
	for i := 0; i <= 10; i++ {
		h.Stations = append(h.Stations, geometry.Station{Index: i, X: float64(i) * 10})
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

// wigley samples the parabolic benchmark hull
// y = (B/2)(1-(2x'/L)^2)(1-(d/T)^2), d measured down from the design
// waterline, on a 21x11 grid.
func wigley(L, B, T float64) *geometry.Hull {
	h := &geometry.Hull{}
	nSt, nWl := 21, 11
	for i := 0; i < nSt; i++ {
		h.Stations = append(h.Stations, geometry.Station{Index: i, X: L * float64(i) / float64(nSt-1)})
	}
	for j := 0; j < nWl; j++ {
		h.Waterlines = append(h.Waterlines, geometry.Waterline{Index: j, Z: T * float64(j) / float64(nWl-1)})
	}
	for i := 0; i < nSt; i++ {
		xr := (2*h.Stations[i].X - L) / L
		row := make([]float64, nWl)
		for j := 0; j < nWl; j++ {
			dr := (T - h.Waterlines[j].Z) / T
			row[j] = (B / 2) * (1 - xr*xr) * (1 - dr*dr)
		}
		h.Offsets = append(h.Offsets, row)
	}
	return h
}

func bargeInput(draft float64) Input {
	return Input{Hull: barge(), RhoKgM3: 1025, LppM: 100, BeamM: 20, DraftM: draft}
}

func TestCalculateBargeReference(t *testing.T) {
	res, err := Calculate(bargeInput(5))
	require.NoError(t, err)

	assert.InDelta(t, 10000.0, res.VolumeM3, 1e-6)
	assert.InDelta(t, 10250000.0, res.DisplacementKg, 0.005*10250000)
	assert.InDelta(t, 2.5, res.KBM, 0.001) // within 1 mm
	assert.InDelta(t, 50.0, res.LCBXM, 1e-9)
	assert.Zero(t, res.TCBM)

	require.NotNil(t, res.BMtM)
	assert.InDelta(t, 20.0*20.0/(12*5), *res.BMtM, 0.005*6.667) // B^2/(12T)
	require.NotNil(t, res.KMtM)
	assert.InDelta(t, 2.5+6.667, *res.KMtM, 0.05)

	require.NotNil(t, res.Cb)
	assert.InDelta(t, 1.0, *res.Cb, 1e-9)
	require.NotNil(t, res.Cm)
	assert.InDelta(t, 1.0, *res.Cm, 1e-9)
	require.NotNil(t, res.Cp)
	assert.InDelta(t, 1.0, *res.Cp, 1e-9)
	require.NotNil(t, res.Cwp)
	assert.InDelta(t, 1.0, *res.Cwp, 1e-9)
}

func TestCalculateWigleyBenchmark(t *testing.T) {
	L, B, T := 100.0, 10.0, 5.0
	res, err := Calculate(Input{Hull: wigley(L, B, T), RhoKgM3: 1000, LppM: L, BeamM: B, DraftM: T})
	require.NoError(t, err)

	// Closed form: volume = (4/9) L B T, LCB amidships, Cb = 4/9.
	exact := 4.0 / 9 * L * B * T
	assert.InDelta(t, exact, res.VolumeM3, 0.02*exact)
	assert.InDelta(t, L/2, res.LCBXM, 0.02*L/2)
	require.NotNil(t, res.Cb)
	assert.InDelta(t, 4.0/9, *res.Cb, 0.02*4.0/9)
}

func TestCalculateDeterministic(t *testing.T) {
	in := bargeInput(3.21)
	kg := 4.0
	in.KGM = &kg

	a := Evaluate(in)
	b := Evaluate(in)
	// Bit-identical, including the derived pointer fields.
	assert.Equal(t, a.VolumeM3, b.VolumeM3)
	assert.Equal(t, a.DisplacementKg, b.DisplacementKg)
	assert.Equal(t, a.KBM, b.KBM)
	assert.Equal(t, *a.BMtM, *b.BMtM)
	assert.Equal(t, *a.GMtM, *b.GMtM)
	assert.Equal(t, *a.Cb, *b.Cb)
}

func TestCalculateMetacentricHeights(t *testing.T) {
	in := bargeInput(5)
	res := Evaluate(in)
	assert.Nil(t, res.GMtM, "GM is unknown without KG, not zero")
	assert.Nil(t, res.GMlM)

	kg := 4.0
	in.KGM = &kg
	res = Evaluate(in)
	require.NotNil(t, res.GMtM)
	assert.InDelta(t, *res.KMtM-4.0, *res.GMtM, 1e-12)
}

func TestCalculateZeroDraft(t *testing.T) {
	res := Evaluate(bargeInput(0))
	assert.Zero(t, res.VolumeM3)
	assert.Nil(t, res.BMtM)
	assert.Nil(t, res.Cb)
	assert.NotEmpty(t, res.Notes)
	assert.False(t, math.IsNaN(res.KBM))
}

func TestCalculateRejectsBadInput(t *testing.T) {
	_, err := Calculate(Input{Hull: barge(), RhoKgM3: 0, DraftM: 5})
	assert.Error(t, err)

	bad := barge()
	bad.Offsets[3] = bad.Offsets[3][:2]
	_, err = Calculate(Input{Hull: bad, RhoKgM3: 1025, DraftM: 5})
	assert.Error(t, err)

	_, err = Calculate(Input{RhoKgM3: 1025, DraftM: 5})
	assert.Error(t, err)
}

func TestCalculateMethodMetadata(t *testing.T) {
	res := Evaluate(bargeInput(5))
	assert.Equal(t, "simpson", string(res.Method))

	h := barge()
	h.Stations[4].X = 42 // irregular spacing forces the fallback
	res = Evaluate(Input{Hull: h, RhoKgM3: 1025, LppM: 100, BeamM: 20, DraftM: 5})
	assert.Equal(t, "trapezoid", string(res.Method))
}
