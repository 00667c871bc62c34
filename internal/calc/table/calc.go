package table

import (
	"context"
	"fmt"
	"math"

	"Keel/internal/calc/hydrostatics"
	"Keel/internal/geometry"
)

type Input struct {
	Hull      *geometry.Hull `json:"hull"`
	RhoKgM3   float64        `json:"rho_kg_m3"`
	KGM       *float64       `json:"kg_m,omitempty"`
	LppM      float64        `json:"lpp_m"`
	BeamM     float64        `json:"beam_m"`
	DraftMinM float64        `json:"draft_min_m"`
	DraftMaxM float64        `json:"draft_max_m"`
	StepM     float64        `json:"step_m"`
}

// Result is a hydrostatic table, one sample per draft. Partial is set when
// the context was canceled between rows; the rows computed so far are
// complete and valid.
type Result struct {
	Rows    []hydrostatics.Result `json:"rows"`
	Partial bool                  `json:"partial,omitempty"`
}

// Calculate samples the calculator from DraftMinM to DraftMaxM in StepM
// increments, inclusive of both ends. Cancellation is checked between
// draft evaluations only, never mid-sample.
func Calculate(ctx context.Context, in Input) (Result, error) {
	if in.Hull == nil || in.RhoKgM3 <= 0 {
		return Result{}, fmt.Errorf("invalid input")
	}
	if in.StepM <= 0 || in.DraftMaxM < in.DraftMinM {
		return Result{}, fmt.Errorf("invalid draft range")
	}
	if issues := geometry.Validate(in.Hull); len(issues) > 0 {
		return Result{}, fmt.Errorf("invalid hull geometry: %d issues", len(issues))
	}

	// The upper endpoint is always sampled, clamped if the range is not an
	// exact multiple of the step.
	n := int(math.Ceil((in.DraftMaxM-in.DraftMinM)/in.StepM - 1e-9))
	if n < 0 {
		n = 0
	}
	var out Result
	for i := 0; i <= n; i++ {
		if ctx.Err() != nil {
			out.Partial = true
			return out, nil
		}
		d := in.DraftMinM + float64(i)*in.StepM
		if d > in.DraftMaxM {
			d = in.DraftMaxM
		}
		out.Rows = append(out.Rows, hydrostatics.Evaluate(hydrostatics.Input{
			Hull: in.Hull, RhoKgM3: in.RhoKgM3, KGM: in.KGM,
			LppM: in.LppM, BeamM: in.BeamM, DraftM: d,
		}))
	}
	return out, nil
}
