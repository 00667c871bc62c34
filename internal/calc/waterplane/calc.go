package waterplane

import (
	"Keel/internal/geometry"
)

// Props describes the waterplane cut at one draft: area, longitudinal
// center of flotation and second moments about the centerline (It) and
// about the transverse axis through the LCF (Il).
type Props struct {
	AreaM2 float64 `json:"area_m2"`
	LCFXM  float64 `json:"lcf_x_m"`
	ItM4   float64 `json:"it_m4"`
	IlM4   float64 `json:"il_m4"`
}

// Properties takes the interpolated half-breadth at z = draft as the
// waterline curve y(x) and integrates it along the stations with the
// trapezoidal rule:
//
//	Awp = ∫ 2 y dx
//	It  = ∫ (2/3) y³ dx   (thin strip about the centerline)
//	Il  = ∫ 2 y (x-LCF)² dx
//
// Assumes a validated hull. A draft below the lowest waterline has no
// waterplane; everything is zero and the LCF defaults to mid-length.
func Properties(h *geometry.Hull, draft float64) Props {
	n := len(h.Stations)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		ys[i] = h.HalfBreadthAt(i, draft)
	}

	var area, mx, it float64
	for i := 1; i < n; i++ {
		x0, x1 := h.Stations[i-1].X, h.Stations[i].X
		dx := x1 - x0
		y0, y1 := ys[i-1], ys[i]
		area += (y0 + y1) * dx // (2y0+2y1)/2
		mx += (2*y0*x0 + 2*y1*x1) / 2 * dx
		it += (y0*y0*y0 + y1*y1*y1) / 3 * dx // ((2/3)y0³+(2/3)y1³)/2
	}

	lcf := (h.Stations[0].X + h.Stations[n-1].X) / 2
	if area > 0 {
		lcf = mx / area
	}

	var il float64
	for i := 1; i < n; i++ {
		x0, x1 := h.Stations[i-1].X, h.Stations[i].X
		dx := x1 - x0
		a0 := 2 * ys[i-1] * (x0 - lcf) * (x0 - lcf)
		a1 := 2 * ys[i] * (x1 - lcf) * (x1 - lcf)
		il += (a0 + a1) / 2 * dx
	}

	return Props{AreaM2: area, LCFXM: lcf, ItM4: it, IlM4: il}
}
