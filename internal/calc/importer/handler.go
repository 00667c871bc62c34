package importer

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"Keel/internal/geometry"
)

type Handler struct{}

type ImportResult struct {
	Hull   *geometry.Hull   `json:"hull"`
	Issues []geometry.Issue `json:"issues"`
}

// Offsets ingests an uploaded offset table (.xlsx or .csv), parses it into
// a hull grid and returns it together with the validation findings, so the
// client sees every problem with the geometry at once.
func (h *Handler) Offsets(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	var rows [][]string
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".csv":
		reader := csv.NewReader(file)
		reader.FieldsPerRecord = -1
		rows, err = reader.ReadAll()
		if err != nil {
			http.Error(w, "Invalid CSV file", http.StatusBadRequest)
			return
		}
	default:
		f, err := excelize.OpenReader(file)
		if err != nil {
			http.Error(w, "Invalid spreadsheet", http.StatusBadRequest)
			return
		}
		defer f.Close()
		sheet := f.GetSheetName(0)
		rows, err = f.GetRows(sheet)
		if err != nil {
			http.Error(w, "Empty sheet", http.StatusBadRequest)
			return
		}
	}

	hull, err := ParseOffsetTable(rows)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	issues := geometry.Validate(hull)
	if issues == nil {
		issues = []geometry.Issue{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ImportResult{Hull: hull, Issues: issues})
}
