package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/phpdave11/gofpdf"

	"Keel/internal/calc/table"
	"Keel/internal/geometry"
)

type Input struct {
	Project string      `json:"project"`
	Author  string      `json:"author"`
	Vessel  string      `json:"vessel"`
	Notes   string      `json:"notes"`
	Table   table.Input `json:"table"`
}

type Handler struct{}

// Generate computes a hydrostatic table and renders it as a PDF report.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Table.Hull == nil {
		http.Error(w, "Hull geometry required", http.StatusBadRequest)
		return
	}
	if issues := geometry.Validate(input.Table.Hull); len(issues) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{"issues": issues})
		return
	}
	res, err := table.Calculate(r.Context(), input.Table)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Intact Hydrostatics Report")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", input.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Vessel: %s", input.Vessel))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", input.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Lpp: %.2f m   Beam: %.2f m   Density: %.1f kg/m3",
		input.Table.LppM, input.Table.BeamM, input.Table.RhoKgM3))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	headers := []string{"T (m)", "Vol (m3)", "Disp (t)", "KB (m)", "LCB (m)", "LCF (m)",
		"Awp (m2)", "TPC", "MCT1cm", "BMt (m)", "KMt (m)", "GMt (m)", "Cb", "Cwp"}
	widths := []float64{16, 22, 22, 18, 18, 18, 22, 16, 18, 18, 18, 18, 14, 14}

	pdf.SetFont("Helvetica", "B", 8)
	for i, hd := range headers {
		pdf.CellFormat(widths[i], 6, hd, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range res.Rows {
		cells := []string{
			fmt.Sprintf("%.3f", row.DraftM),
			fmt.Sprintf("%.1f", row.VolumeM3),
			fmt.Sprintf("%.1f", row.DisplacementT),
			fmt.Sprintf("%.3f", row.KBM),
			fmt.Sprintf("%.3f", row.LCBXM),
			fmt.Sprintf("%.3f", row.LCFXM),
			fmt.Sprintf("%.1f", row.AwpM2),
			fmt.Sprintf("%.2f", row.TPCTCm),
			fmt.Sprintf("%.1f", row.MCT1cmTM),
			fmtPtr(row.BMtM, "%.3f"),
			fmtPtr(row.KMtM, "%.3f"),
			fmtPtr(row.GMtM, "%.3f"),
			fmtPtr(row.Cb, "%.4f"),
			fmtPtr(row.Cwp, "%.4f"),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 5, c, "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 8)
	method := ""
	if len(res.Rows) > 0 {
		method = string(res.Rows[0].Method)
	}
	pdf.Cell(0, 5, fmt.Sprintf("Longitudinal integration: %s rule.", method))
	if res.Partial {
		pdf.Ln(5)
		pdf.Cell(0, 5, "Warning: computation canceled, table is partial.")
	}
	if input.Notes != "" {
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, input.Notes, "", "L", false)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"hydrostatics.pdf\"")
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}

func fmtPtr(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}
