package curves

import (
	"encoding/json"
	"net/http"

	"Keel/internal/diagram"
	"Keel/internal/geometry"
)

type Handler struct{}

// checkHull rejects a missing or invalid hull, answering 422 with the full
// issue list so every geometry problem surfaces at once.
func checkHull(w http.ResponseWriter, hull *geometry.Hull) bool {
	if hull == nil {
		http.Error(w, "Hull geometry required", http.StatusBadRequest)
		return false
	}
	if issues := geometry.Validate(hull); len(issues) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{"issues": issues})
		return false
	}
	return true
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if !checkHull(w, input.Hull) {
		return
	}
	res, err := Generate(r.Context(), input)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *Handler) Bonjean(w http.ResponseWriter, r *http.Request) {
	var input BonjeanInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if !checkHull(w, input.Hull) {
		return
	}
	res, err := Bonjean(r.Context(), input)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

type PlotInput struct {
	Input
	Title string `json:"title"`
}

// Plot renders the generated curves to a PNG chart.
func (h *Handler) Plot(w http.ResponseWriter, r *http.Request) {
	var input PlotInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if !checkHull(w, input.Hull) {
		return
	}
	res, err := Generate(r.Context(), input.Input)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	series := make([]diagram.Series, 0, len(res.Curves))
	for _, c := range res.Curves {
		pts := make([][2]float64, len(c.Points))
		for i, p := range c.Points {
			pts[i] = [2]float64{p.X, p.Y}
		}
		series = append(series, diagram.Series{Name: c.Name, Points: pts})
	}
	title := input.Title
	if title == "" {
		title = "Hydrostatic curves"
	}
	if res.Partial {
		title += " (partial)"
	}
	img, err := diagram.RenderCurves(title, "draft (m)", series)
	if err != nil {
		http.Error(w, "Plot rendering error", http.StatusInternalServerError)
		return
	}
	if res.Partial {
		w.Header().Set("X-Partial-Result", "true")
	}
	w.Header().Set("Content-Type", "image/png")
	if _, err := img.WriteTo(w); err != nil {
		return
	}
}
