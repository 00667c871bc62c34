package importer

import (
	"fmt"
	"strconv"
	"strings"

	"Keel/internal/geometry"
)

// ParseOffsetTable builds a hull from a rectangular offset table:
//
//	row 1, columns B..: station x positions (m)
//	column A, rows 2..: waterline z positions (m)
//	body: half-breadths (m), one cell per station/waterline pair
//
// Cell A1 is ignored. The table layout is stations across, waterlines
// down, which is how offset tables are usually typed up; the hull grid
// stores the transpose (stations are the outer axis).
func ParseOffsetTable(rows [][]string) (*geometry.Hull, error) {
	if len(rows) < 2 || len(rows[0]) < 2 {
		return nil, fmt.Errorf("offset table needs a station header row and at least one waterline row")
	}

	header := rows[0]
	nStations := len(header) - 1
	hull := &geometry.Hull{
		Stations: make([]geometry.Station, nStations),
		Offsets:  make([][]float64, nStations),
	}
	for j := 0; j < nStations; j++ {
		x, err := cellFloat(header[j+1])
		if err != nil {
			return nil, fmt.Errorf("station header column %d: %w", j+2, err)
		}
		hull.Stations[j] = geometry.Station{Index: j, X: x}
	}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue // blank trailing row
		}
		z, err := cellFloat(row[0])
		if err != nil {
			return nil, fmt.Errorf("waterline row %d: %w", i+1, err)
		}
		wl := len(hull.Waterlines)
		hull.Waterlines = append(hull.Waterlines, geometry.Waterline{Index: wl, Z: z})
		for j := 0; j < nStations; j++ {
			if j+1 >= len(row) || strings.TrimSpace(row[j+1]) == "" {
				return nil, fmt.Errorf("row %d column %d: missing half-breadth", i+1, j+2)
			}
			y, err := cellFloat(row[j+1])
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i+1, j+2, err)
			}
			hull.Offsets[j] = append(hull.Offsets[j], y)
		}
	}

	return hull, nil
}

func cellFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}
