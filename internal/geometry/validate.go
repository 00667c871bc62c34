package geometry

import (
	"fmt"
	"math"
)

// Issue is a single validation finding. Station and Waterline locate the
// finding in the grid; -1 means the issue is not tied to that axis.
type Issue struct {
	Field     string `json:"field"`
	Station   int    `json:"station"`
	Waterline int    `json:"waterline"`
	Message   string `json:"message"`
}

func (i Issue) String() string {
	switch {
	case i.Station >= 0 && i.Waterline >= 0:
		return fmt.Sprintf("%s[station %d, waterline %d]: %s", i.Field, i.Station, i.Waterline, i.Message)
	case i.Station >= 0:
		return fmt.Sprintf("%s[station %d]: %s", i.Field, i.Station, i.Message)
	case i.Waterline >= 0:
		return fmt.Sprintf("%s[waterline %d]: %s", i.Field, i.Waterline, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// Validate checks a hull snapshot for structural and numeric usability and
// returns every problem found, not just the first. An empty list means the
// hull is safe to hand to the calc packages, which assume a validated grid.
func Validate(h *Hull) []Issue {
	var issues []Issue

	add := func(field string, st, wl int, format string, args ...any) {
		issues = append(issues, Issue{Field: field, Station: st, Waterline: wl, Message: fmt.Sprintf(format, args...)})
	}

	if len(h.Stations) < 3 {
		add("stations", -1, -1, "need at least 3 stations, got %d", len(h.Stations))
	}
	seenSt := make(map[int]bool, len(h.Stations))
	for i, st := range h.Stations {
		if seenSt[st.Index] {
			add("stations", st.Index, -1, "duplicate station index")
		}
		seenSt[st.Index] = true
		if math.IsNaN(st.X) || math.IsInf(st.X, 0) {
			add("stations", st.Index, -1, "x is not a finite number")
			continue
		}
		if i > 0 && st.X <= h.Stations[i-1].X {
			add("stations", st.Index, -1, "x must be strictly increasing (%.4f after %.4f)", st.X, h.Stations[i-1].X)
		}
	}

	if len(h.Waterlines) < 3 {
		add("waterlines", -1, -1, "need at least 3 waterlines, got %d", len(h.Waterlines))
	}
	seenWl := make(map[int]bool, len(h.Waterlines))
	for j, wl := range h.Waterlines {
		if seenWl[wl.Index] {
			add("waterlines", -1, wl.Index, "duplicate waterline index")
		}
		seenWl[wl.Index] = true
		if math.IsNaN(wl.Z) || math.IsInf(wl.Z, 0) {
			add("waterlines", -1, wl.Index, "z is not a finite number")
			continue
		}
		if j > 0 && wl.Z <= h.Waterlines[j-1].Z {
			add("waterlines", -1, wl.Index, "z must be strictly increasing (%.4f after %.4f)", wl.Z, h.Waterlines[j-1].Z)
		}
	}
	if len(h.Waterlines) > 0 && h.Waterlines[0].Z > 0 {
		add("waterlines", -1, h.Waterlines[0].Index, "lowest waterline must be at or below z=0, got %.4f", h.Waterlines[0].Z)
	}

	// Dense grid: one row per station, one offset per waterline, all
	// present, finite and non-negative.
	if len(h.Offsets) != len(h.Stations) {
		add("offsets", -1, -1, "offset rows (%d) do not match station count (%d)", len(h.Offsets), len(h.Stations))
	}
	for i := 0; i < len(h.Offsets) && i < len(h.Stations); i++ {
		stIdx := h.Stations[i].Index
		row := h.Offsets[i]
		for j := len(row); j < len(h.Waterlines); j++ {
			add("offsets", stIdx, h.Waterlines[j].Index, "offset missing")
		}
		if len(row) > len(h.Waterlines) {
			add("offsets", stIdx, -1, "row has %d offsets, want %d", len(row), len(h.Waterlines))
		}
		for j := 0; j < len(row) && j < len(h.Waterlines); j++ {
			wlIdx := h.Waterlines[j].Index
			y := row[j]
			if math.IsNaN(y) || math.IsInf(y, 0) {
				add("offsets", stIdx, wlIdx, "half-breadth is not a finite number")
			} else if y < 0 {
				add("offsets", stIdx, wlIdx, "half-breadth must not be negative, got %.4f", y)
			}
		}
	}

	return issues
}
