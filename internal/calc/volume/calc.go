package volume

import (
	"Keel/internal/calc/section"
	"Keel/internal/geometry"
)

// Method names the longitudinal quadrature rule actually used, so the
// provenance of a result is auditable. Simpson needs an even interval count
// and uniform station spacing; anything else falls back to the trapezoidal
// rule, deterministically.
type Method string

const (
	MethodSimpson   Method = "simpson"
	MethodTrapezoid Method = "trapezoid"
)

// Props is the submerged volume up to a draft together with its raw first
// moments. LCB = MomentXM4 / VolumeM3, KB = MomentZM4 / VolumeM3.
type Props struct {
	VolumeM3  float64 `json:"volume_m3"`
	MomentXM4 float64 `json:"moment_x_m4"`
	MomentZM4 float64 `json:"moment_z_m4"`
	Method    Method  `json:"method"`
}

// Spacing deviations below this relative tolerance still count as uniform.
const uniformTol = 1e-9

// ChooseMethod is the pure decision function for the quadrature rule.
func ChooseMethod(stations []geometry.Station) Method {
	n := len(stations) - 1 // interval count
	if n < 2 || n%2 != 0 {
		return MethodTrapezoid
	}
	h := stations[1].X - stations[0].X
	span := stations[n].X - stations[0].X
	for i := 2; i <= n; i++ {
		d := stations[i].X - stations[i-1].X
		if d < h-uniformTol*span || d > h+uniformTol*span {
			return MethodTrapezoid
		}
	}
	return MethodSimpson
}

// Integrate computes sectional areas at every station up to the draft and
// integrates them along x. The volume uses Simpson's rule when the station
// grid allows it; the first moments are always trapezoid-weighted.
// Assumes a validated hull.
func Integrate(h *geometry.Hull, draft float64) Props {
	n := len(h.Stations)
	areas := make([]float64, n)
	zbars := make([]float64, n)
	for i := 0; i < n; i++ {
		p := section.Properties(h, i, draft)
		areas[i] = p.AreaM2
		zbars[i] = p.CentroidZM
	}

	method := ChooseMethod(h.Stations)

	var vol float64
	if method == MethodSimpson {
		step := h.Stations[1].X - h.Stations[0].X
		vol = areas[0] + areas[n-1]
		for i := 1; i < n-1; i++ {
			if i%2 == 1 {
				vol += 4 * areas[i]
			} else {
				vol += 2 * areas[i]
			}
		}
		vol *= step / 3
	} else {
		for i := 1; i < n; i++ {
			dx := h.Stations[i].X - h.Stations[i-1].X
			vol += (areas[i-1] + areas[i]) / 2 * dx
		}
	}

	var mx, mz float64
	for i := 1; i < n; i++ {
		x0, x1 := h.Stations[i-1].X, h.Stations[i].X
		dx := x1 - x0
		mx += (areas[i-1]*x0 + areas[i]*x1) / 2 * dx
		mz += (areas[i-1]*zbars[i-1] + areas[i]*zbars[i]) / 2 * dx
	}

	return Props{VolumeM3: vol, MomentXM4: mx, MomentZM4: mz, Method: method}
}
