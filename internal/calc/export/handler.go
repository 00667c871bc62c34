package export

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"

	"Keel/internal/calc/table"
	"Keel/internal/geometry"
)

type Handler struct{}

// Table computes a hydrostatic table and streams it as an xlsx workbook.
func (h *Handler) Table(w http.ResponseWriter, r *http.Request) {
	var input table.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Hull == nil {
		http.Error(w, "Hull geometry required", http.StatusBadRequest)
		return
	}
	if issues := geometry.Validate(input.Hull); len(issues) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{"issues": issues})
		return
	}
	res, err := table.Calculate(r.Context(), input)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headers := []string{"Draft (m)", "Volume (m3)", "Displacement (kg)", "Displacement (t)",
		"KB (m)", "LCB (m)", "LCF (m)", "Awp (m2)", "It (m4)", "Il (m4)",
		"TPC (t/cm)", "MCT1cm (t m)", "BMt (m)", "BMl (m)", "KMt (m)", "KMl (m)",
		"GMt (m)", "GMl (m)", "Cb", "Cp", "Cm", "Cwp", "Method"}
	for i, hd := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, hd)
	}

	for rowIdx, row := range res.Rows {
		values := []any{
			row.DraftM, row.VolumeM3, row.DisplacementKg, row.DisplacementT,
			row.KBM, row.LCBXM, row.LCFXM, row.AwpM2, row.ItM4, row.IlM4,
			row.TPCTCm, row.MCT1cmTM,
			cellPtr(row.BMtM), cellPtr(row.BMlM), cellPtr(row.KMtM), cellPtr(row.KMlM),
			cellPtr(row.GMtM), cellPtr(row.GMlM),
			cellPtr(row.Cb), cellPtr(row.Cp), cellPtr(row.Cm), cellPtr(row.Cwp),
			string(row.Method),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := "hydrostatics.xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := f.Write(w); err != nil {
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
}

// cellPtr maps an undefined quantity to an empty cell instead of zero.
func cellPtr(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
