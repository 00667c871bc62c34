package vessel

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"Keel/internal/auth"
	"Keel/internal/calc/table"
	"Keel/internal/geometry"
	"Keel/internal/repo"
)

// Handler owns the vessel metadata, stored geometry and stored result
// endpoints. Everything is scoped to the authenticated user.
type Handler struct {
	Repo repo.VesselRepository
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	vessels, err := h.Repo.ListVessels(r.Context(), userID)
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	if vessels == nil {
		vessels = []repo.Vessel{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(vessels)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var v repo.Vessel
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if v.Name == "" || v.LppM <= 0 || v.BeamM <= 0 {
		http.Error(w, "Name, lpp_m and beam_m required", http.StatusBadRequest)
		return
	}
	id, err := h.Repo.CreateVessel(r.Context(), userID, v)
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	v.ID = id
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, vesselID, ok := h.scope(w, r)
	if !ok {
		return
	}
	v, err := h.Repo.GetVessel(r.Context(), userID, vesselID)
	if err != nil {
		http.Error(w, "Vessel not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, vesselID, ok := h.scope(w, r)
	if !ok {
		return
	}
	var v repo.Vessel
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	v.ID = vesselID
	if err := h.Repo.UpdateVessel(r.Context(), userID, v); err != nil {
		http.Error(w, "Vessel not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, vesselID, ok := h.scope(w, r)
	if !ok {
		return
	}
	if err := h.Repo.DeleteVessel(r.Context(), userID, vesselID); err != nil {
		http.Error(w, "Vessel not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PutGeometry validates and stores the hull snapshot for a vessel. A hull
// that fails validation is rejected with the full issue list; nothing
// invalid ever reaches the calc packages.
func (h *Handler) PutGeometry(w http.ResponseWriter, r *http.Request) {
	userID, vesselID, ok := h.scope(w, r)
	if !ok {
		return
	}
	var hull geometry.Hull
	if err := json.NewDecoder(r.Body).Decode(&hull); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if issues := geometry.Validate(&hull); len(issues) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{"issues": issues})
		return
	}
	raw, err := json.Marshal(&hull)
	if err != nil {
		http.Error(w, "Encoding error", http.StatusInternalServerError)
		return
	}
	if err := h.Repo.SaveGeometry(r.Context(), userID, vesselID, raw); err != nil {
		http.Error(w, "Vessel not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetGeometry(w http.ResponseWriter, r *http.Request) {
	userID, vesselID, ok := h.scope(w, r)
	if !ok {
		return
	}
	raw, err := h.Repo.GetGeometry(r.Context(), userID, vesselID)
	if err != nil || len(raw) == 0 {
		http.Error(w, "Geometry not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(raw)
}

type ComputeTableRequest struct {
	Name      string   `json:"name"`
	RhoKgM3   float64  `json:"rho_kg_m3"`
	KGM       *float64 `json:"kg_m,omitempty"`
	DraftMinM float64  `json:"draft_min_m"`
	DraftMaxM float64  `json:"draft_max_m"`
	StepM     float64  `json:"step_m"`
}

// ComputeTable runs a hydrostatic table against the vessel's stored
// geometry and principal dimensions, persists the rows and returns them.
func (h *Handler) ComputeTable(w http.ResponseWriter, r *http.Request) {
	userID, vesselID, ok := h.scope(w, r)
	if !ok {
		return
	}
	var req ComputeTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	v, err := h.Repo.GetVessel(r.Context(), userID, vesselID)
	if err != nil {
		http.Error(w, "Vessel not found", http.StatusNotFound)
		return
	}
	raw, err := h.Repo.GetGeometry(r.Context(), userID, vesselID)
	if err != nil || len(raw) == 0 {
		http.Error(w, "Geometry not found", http.StatusNotFound)
		return
	}
	var hull geometry.Hull
	if err := json.Unmarshal(raw, &hull); err != nil {
		http.Error(w, "Stored geometry is corrupt", http.StatusInternalServerError)
		return
	}

	res, err := table.Calculate(r.Context(), table.Input{
		Hull: &hull, RhoKgM3: req.RhoKgM3, KGM: req.KGM,
		LppM: v.LppM, BeamM: v.BeamM,
		DraftMinM: req.DraftMinM, DraftMaxM: req.DraftMaxM, StepM: req.StepM,
	})
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}

	name := req.Name
	if name == "" {
		name = "hydrostatic table"
	}
	rowsJSON, err := json.Marshal(res.Rows)
	if err != nil {
		http.Error(w, "Encoding error", http.StatusInternalServerError)
		return
	}
	id, err := h.Repo.SaveTable(r.Context(), userID, vesselID, name, rowsJSON)
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{"id": id, "name": name, "rows": res.Rows, "partial": res.Partial})
}

func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	userID, vesselID, ok := h.scope(w, r)
	if !ok {
		return
	}
	tables, err := h.Repo.ListTables(r.Context(), userID, vesselID)
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	if tables == nil {
		tables = []repo.StoredTable{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tables)
}

func (h *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	userID, vesselID, ok := h.scope(w, r)
	if !ok {
		return
	}
	tableID, err := strconv.Atoi(mux.Vars(r)["tableID"])
	if err != nil {
		http.Error(w, "Invalid table id", http.StatusBadRequest)
		return
	}
	t, err := h.Repo.GetTable(r.Context(), userID, vesselID, tableID)
	if err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "Table not found", http.StatusNotFound)
			return
		}
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(t)
}

// scope pulls the authenticated user and the {id} path variable.
func (h *Handler) scope(w http.ResponseWriter, r *http.Request) (userID, vesselID int, ok bool) {
	userID, ok = auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return 0, 0, false
	}
	vesselID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid vessel id", http.StatusBadRequest)
		return 0, 0, false
	}
	return userID, vesselID, true
}
