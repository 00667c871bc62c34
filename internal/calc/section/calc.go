package section

import (
	"Keel/internal/geometry"
)

// Props is the submerged cross-section at one station: mirrored area and
// the height of its centroid above baseline.
type Props struct {
	AreaM2     float64 `json:"area_m2"`
	CentroidZM float64 `json:"centroid_z_m"`
}

// Properties integrates the half-breadth ladder of one station up to the
// given draft with the trapezoidal rule, one strip per adjacent waterline
// pair, interpolating the half-breadth at z = draft when it falls inside a
// strip. The one-sided result is doubled for port/starboard symmetry. The
// centroid is the area-weighted mean of the strip mid-heights.
//
// Assumes a validated hull. A draft at or below the lowest waterline is the
// degenerate dry section: zero area, centroid at the draft itself.
func Properties(h *geometry.Hull, station int, draft float64) Props {
	wls := h.Waterlines
	row := h.Offsets[station]
	if draft <= wls[0].Z {
		return Props{AreaM2: 0, CentroidZM: draft}
	}

	var area, moment float64
	z0, y0 := wls[0].Z, row[0]
	for j := 1; j < len(wls); j++ {
		z1, y1 := wls[j].Z, row[j]
		if z1 >= draft {
			// Partial strip up to the waterline at z = draft.
			t := (draft - z0) / (z1 - z0)
			yd := y0 + t*(y1-y0)
			a := (y0 + yd) / 2 * (draft - z0)
			area += a
			moment += a * (z0 + draft) / 2
			break
		}
		a := (y0 + y1) / 2 * (z1 - z0)
		area += a
		moment += a * (z0 + z1) / 2
		z0, y0 = z1, y1
	}

	area *= 2
	moment *= 2
	centroid := draft
	if area > 0 {
		centroid = moment / area
	}
	return Props{AreaM2: area, CentroidZM: centroid}
}
