package table

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Keel/internal/geometry"
)

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

func TestCalculateRows(t *testing.T) {
	res, err := Calculate(context.Background(), Input{
		Hull: barge(), RhoKgM3: 1025, LppM: 100, BeamM: 20,
		DraftMinM: 1, DraftMaxM: 5, StepM: 1,
	})
	require.NoError(t, err)
	require.Len(t, res.Rows, 5)
	assert.False(t, res.Partial)
	assert.Equal(t, 1.0, res.Rows[0].DraftM)
	assert.Equal(t, 5.0, res.Rows[4].DraftM)
	for i := 1; i < len(res.Rows); i++ {
		assert.Greater(t, res.Rows[i].DraftM, res.Rows[i-1].DraftM)
		assert.Greater(t, res.Rows[i].VolumeM3, res.Rows[i-1].VolumeM3)
	}
}

func TestCalculateClampsLastRow(t *testing.T) {
	// 0..5 in steps of 2 is not an exact fit; the top draft is still
	// sampled, clamped to the range end.
	res, err := Calculate(context.Background(), Input{
		Hull: barge(), RhoKgM3: 1025, LppM: 100, BeamM: 20,
		DraftMinM: 0, DraftMaxM: 5, StepM: 2,
	})
	require.NoError(t, err)
	require.Len(t, res.Rows, 4)
	assert.Equal(t, []float64{0, 2, 4, 5}, []float64{
		res.Rows[0].DraftM, res.Rows[1].DraftM, res.Rows[2].DraftM, res.Rows[3].DraftM,
	})
}

func TestCalculateCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Calculate(ctx, Input{
		Hull: barge(), RhoKgM3: 1025, LppM: 100, BeamM: 20,
		DraftMinM: 1, DraftMaxM: 5, StepM: 0.1,
	})
	require.NoError(t, err)
	assert.True(t, res.Partial)
	assert.Empty(t, res.Rows)
}

func TestCalculateRejectsBadRange(t *testing.T) {
	_, err := Calculate(context.Background(), Input{
		Hull: barge(), RhoKgM3: 1025, DraftMinM: 5, DraftMaxM: 1, StepM: 1,
	})
	assert.Error(t, err)

	_, err = Calculate(context.Background(), Input{
		Hull: barge(), RhoKgM3: 1025, DraftMinM: 1, DraftMaxM: 5, StepM: 0,
	})
	assert.Error(t, err)
}
