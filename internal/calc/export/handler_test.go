package export

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"Keel/internal/calc/table"
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

func postExport(t *testing.T, in table.Input) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(in)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/user/tools/hydro/export", bytes.NewReader(body))
	(&Handler{}).Table(rec, req)
	return rec
}

func TestTableHandlerStreamsWorkbook(t *testing.T) {
	rec := postExport(t, table.Input{
		Hull: barge(), RhoKgM3: 1025, LppM: 100, BeamM: 20,
		DraftMinM: 1, DraftMaxM: 5, StepM: 1,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "hydrostatics.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 6) // header + 5 drafts
	assert.Equal(t, "Draft (m)", rows[0][0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "5", rows[5][0])
}

func TestTableHandlerRejectsInvalidHull(t *testing.T) {
	h := barge()
	h.Offsets[2] = h.Offsets[2][:3]
	rec := postExport(t, table.Input{
		Hull: h, RhoKgM3: 1025, LppM: 100, BeamM: 20,
		DraftMinM: 1, DraftMaxM: 5, StepM: 1,
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Issues []geometry.Issue `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Issues)
}
