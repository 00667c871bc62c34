package trim

import (
	"fmt"
	"math"

	"Keel/internal/calc/volume"
	"Keel/internal/calc/waterplane"
	"Keel/internal/geometry"
)

type Input struct {
	Hull                 *geometry.Hull `json:"hull"`
	RhoKgM3              float64        `json:"rho_kg_m3"`
	TargetDisplacementKg float64        `json:"target_displacement_kg"`
	LppM                 float64        `json:"lpp_m"`
	DesignDraftM         float64        `json:"design_draft_m"`
	MaxIterations        int            `json:"max_iterations,omitempty"` // default 20
	ToleranceKg          float64        `json:"tolerance_kg,omitempty"`   // default 1e-6 * target
}

// Result always carries the best estimate reached, whether or not the
// solve converged. Callers must check Converged before trusting the drafts
// to satisfy the target.
type Result struct {
	DraftAPM     float64 `json:"draft_ap_m"`
	DraftFPM     float64 `json:"draft_fp_m"`
	MeanDraftM   float64 `json:"mean_draft_m"`
	TrimM        float64 `json:"trim_m"` // positive by the stern
	TrimAngleDeg float64 `json:"trim_angle_deg"`
	LCFXM        float64 `json:"lcf_x_m"`
	Converged    bool    `json:"converged"`
	Iterations   int     `json:"iterations"`
}

// state is one point of the solver's iteration. step is a pure function
// state -> state, so convergence behavior is testable without running the
// whole solve loop.
type state struct {
	draftAP, draftFP float64
	dispErrKg        float64 // rho*volume - target, at the drafts above
	momentErrKgM     float64 // unbalanced trimming moment
	lcf              float64
	iterations       int
	converged        bool
}

// step evaluates the hull at the current mean draft, records the
// displacement and trimming-moment errors, and either declares convergence
// or applies one Newton-style correction:
//
//	dT    = -dispErr / (rho * Awp)          d(displacement)/dT ≈ rho*Awp
//	dTrim = -momentErr * Lpp / (rho * Il)   restoring moment ≈ rho*Il*trim/Lpp
func step(in Input, s state) state {
	mean := (s.draftAP + s.draftFP) / 2
	vol := volume.Integrate(in.Hull, mean)
	wp := waterplane.Properties(in.Hull, mean)

	disp := in.RhoKgM3 * vol.VolumeM3
	s.dispErrKg = disp - in.TargetDisplacementKg
	s.lcf = wp.LCFXM
	if vol.VolumeM3 > 0 {
		lcb := vol.MomentXM4 / vol.VolumeM3
		s.momentErrKgM = (lcb - wp.LCFXM) * disp
	} else {
		s.momentErrKgM = 0
	}
	s.iterations++

	tol := in.ToleranceKg
	if math.Abs(s.dispErrKg) <= tol && math.Abs(s.momentErrKgM) <= tol*in.LppM {
		s.converged = true
		return s
	}

	var dT float64
	if wp.AreaM2 > 0 {
		dT = -s.dispErrKg / (in.RhoKgM3 * wp.AreaM2)
	} else {
		// Dry or degenerate waterplane: nudge the draft toward the target.
		if s.dispErrKg < 0 {
			dT = in.Hull.TopZ() / 10
		} else {
			dT = -mean / 10
		}
	}

	var dTrim float64
	if wp.IlM4 > 0 {
		dTrim = -s.momentErrKgM * in.LppM / (in.RhoKgM3 * wp.IlM4)
	}

	trim := s.draftAP - s.draftFP + dTrim
	mean += dT
	s.draftAP = mean + trim/2
	s.draftFP = mean - trim/2
	return s
}

// Solve iterates step from an even keel at the design draft until both the
// displacement and trimming-moment errors are inside tolerance, or the
// iteration budget runs out. Non-convergence is data, not an error.
func Solve(in Input) (Result, error) {
	if in.Hull == nil {
		return Result{}, fmt.Errorf("hull geometry required")
	}
	if in.RhoKgM3 <= 0 || in.TargetDisplacementKg <= 0 || in.LppM <= 0 {
		return Result{}, fmt.Errorf("invalid input")
	}
	if issues := geometry.Validate(in.Hull); len(issues) > 0 {
		return Result{}, fmt.Errorf("invalid hull geometry: %d issues", len(issues))
	}
	if in.MaxIterations <= 0 {
		in.MaxIterations = 20
	}
	if in.ToleranceKg <= 0 {
		in.ToleranceKg = 1e-6 * in.TargetDisplacementKg
	}

	s := state{draftAP: in.DesignDraftM, draftFP: in.DesignDraftM}
	for s.iterations < in.MaxIterations {
		s = step(in, s)
		if s.converged {
			break
		}
	}

	trim := s.draftAP - s.draftFP
	return Result{
		DraftAPM:     s.draftAP,
		DraftFPM:     s.draftFP,
		MeanDraftM:   (s.draftAP + s.draftFP) / 2,
		TrimM:        trim,
		TrimAngleDeg: math.Atan2(trim, in.LppM) * 180 / math.Pi,
		LCFXM:        s.lcf,
		Converged:    s.converged,
		Iterations:   s.iterations,
	}, nil
}
