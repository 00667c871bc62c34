package geometry

// Hull is a half-breadth offset table: a dense grid of half-breadths
// sampled at longitudinal stations and vertical waterlines. The grid is
// one-sided; every computation mirrors it about the centerline.
//
// Offsets[i][j] is the half-breadth at Stations[i], Waterlines[j].
// A Hull is treated as an immutable snapshot once validated; the calc
// packages never modify it.
type Hull struct {
	Stations   []Station   `json:"stations"`
	Waterlines []Waterline `json:"waterlines"`
	Offsets    [][]float64 `json:"offsets"`
}

type Station struct {
	Index int     `json:"index"`
	X     float64 `json:"x_m"`
}

type Waterline struct {
	Index int     `json:"index"`
	Z     float64 `json:"z_m"`
}

// Length returns the longitudinal extent covered by the station grid.
func (h *Hull) Length() float64 {
	if len(h.Stations) == 0 {
		return 0
	}
	return h.Stations[len(h.Stations)-1].X - h.Stations[0].X
}

// TopZ returns the z of the highest defined waterline. Offsets are never
// extrapolated above it; drafts beyond TopZ integrate the full ladder only.
func (h *Hull) TopZ() float64 {
	if len(h.Waterlines) == 0 {
		return 0
	}
	return h.Waterlines[len(h.Waterlines)-1].Z
}

// HalfBreadthAt returns the half-breadth of the given station at z = draft,
// linearly interpolated between the two bracketing waterlines. Below the
// lowest waterline there is no section, so the half-breadth is zero. Above
// the highest waterline the topmost offset is used.
func (h *Hull) HalfBreadthAt(station int, draft float64) float64 {
	wls := h.Waterlines
	row := h.Offsets[station]
	if draft < wls[0].Z {
		return 0
	}
	for j := 1; j < len(wls); j++ {
		if draft <= wls[j].Z {
			z0, z1 := wls[j-1].Z, wls[j].Z
			t := (draft - z0) / (z1 - z0)
			return row[j-1] + t*(row[j]-row[j-1])
		}
	}
	return row[len(row)-1]
}
