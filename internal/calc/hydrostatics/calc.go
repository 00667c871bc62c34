package hydrostatics

import (
	"fmt"
	"math"

	"Keel/internal/calc/section"
	"Keel/internal/calc/volume"
	"Keel/internal/calc/waterplane"
	"Keel/internal/geometry"
)

type Input struct {
	Hull *geometry.Hull `json:"hull"`
	// Loading condition.
	RhoKgM3 float64  `json:"rho_kg_m3"`
	KGM     *float64 `json:"kg_m,omitempty"` // vertical center of gravity, optional
	// Principal dimensions for coefficient normalization.
	LppM  float64 `json:"lpp_m"`
	BeamM float64 `json:"beam_m"`

	DraftM float64 `json:"draft_m"`
}

// Result is one hydrostatic sample at a single draft. Quantities whose
// denominator vanishes at this draft (zero volume, zero beam, missing KG)
// are nil rather than zero: unknown is not the same state as zero.
type Result struct {
	DraftM         float64 `json:"draft_m"`
	VolumeM3       float64 `json:"volume_m3"`
	DisplacementKg float64 `json:"displacement_kg"`
	DisplacementT  float64 `json:"displacement_t"`

	KBM   float64 `json:"kb_m"`
	LCBXM float64 `json:"lcb_x_m"`
	TCBM  float64 `json:"tcb_m"` // zero for a symmetric offset table

	AwpM2    float64 `json:"awp_m2"`
	LCFXM    float64 `json:"lcf_x_m"`
	ItM4     float64 `json:"it_m4"`
	IlM4     float64 `json:"il_m4"`
	TPCTCm   float64 `json:"tpc_t_cm"`
	MCT1cmTM float64 `json:"mct1cm_t_m"`

	BMtM *float64 `json:"bmt_m,omitempty"`
	BMlM *float64 `json:"bml_m,omitempty"`
	KMtM *float64 `json:"kmt_m,omitempty"`
	KMlM *float64 `json:"kml_m,omitempty"`
	GMtM *float64 `json:"gmt_m,omitempty"`
	GMlM *float64 `json:"gml_m,omitempty"`

	MidshipAreaM2 float64  `json:"midship_area_m2"`
	Cb            *float64 `json:"cb,omitempty"`
	Cp            *float64 `json:"cp,omitempty"`
	Cm            *float64 `json:"cm,omitempty"`
	Cwp           *float64 `json:"cwp,omitempty"`

	Method volume.Method `json:"integration_method"`
	Notes  string        `json:"notes,omitempty"`
}

// Calculate validates the hull and evaluates one draft. Identical input
// always produces bit-identical output: every loop below runs in a fixed
// order over the station grid.
func Calculate(in Input) (Result, error) {
	if in.Hull == nil {
		return Result{}, fmt.Errorf("hull geometry required")
	}
	if in.RhoKgM3 <= 0 {
		return Result{}, fmt.Errorf("invalid fluid density")
	}
	if issues := geometry.Validate(in.Hull); len(issues) > 0 {
		return Result{}, fmt.Errorf("invalid hull geometry: %d issues, first: %s", len(issues), issues[0])
	}
	return Evaluate(in), nil
}

// Evaluate assumes a validated hull and positive density. The outer loops
// (curves, tables, trim) validate once and call this per draft.
func Evaluate(in Input) Result {
	vol := volume.Integrate(in.Hull, in.DraftM)
	wp := waterplane.Properties(in.Hull, in.DraftM)

	res := Result{
		DraftM:         in.DraftM,
		VolumeM3:       vol.VolumeM3,
		DisplacementKg: in.RhoKgM3 * vol.VolumeM3,
		DisplacementT:  in.RhoKgM3 * vol.VolumeM3 / 1000,
		AwpM2:          wp.AreaM2,
		LCFXM:          wp.LCFXM,
		ItM4:           wp.ItM4,
		IlM4:           wp.IlM4,
		TPCTCm:         in.RhoKgM3 * wp.AreaM2 / 1e5,
		Method:         vol.Method,
	}

	if vol.VolumeM3 <= 0 {
		res.Notes = "zero displaced volume at this draft; centers and coefficients undefined"
		return res
	}

	res.KBM = vol.MomentZM4 / vol.VolumeM3
	res.LCBXM = vol.MomentXM4 / vol.VolumeM3

	bmt := wp.ItM4 / vol.VolumeM3
	bml := wp.IlM4 / vol.VolumeM3
	kmt := res.KBM + bmt
	kml := res.KBM + bml
	res.BMtM, res.BMlM = &bmt, &bml
	res.KMtM, res.KMlM = &kmt, &kml
	if in.KGM != nil {
		gmt := kmt - *in.KGM
		gml := kml - *in.KGM
		res.GMtM, res.GMlM = &gmt, &gml
	}

	if in.LppM > 0 {
		// MCT1cm ≈ ρ Il / (100 Lpp), in tonne·m per cm of trim.
		res.MCT1cmTM = (in.RhoKgM3 / 1000) * wp.IlM4 / (100 * in.LppM)
	}

	res.MidshipAreaM2 = midshipArea(in)

	// Form coefficients, each guarded against a vanishing denominator.
	if d := in.LppM * in.BeamM * in.DraftM; d > 0 {
		res.Cb = ptr(vol.VolumeM3 / d)
	}
	if d := in.BeamM * in.DraftM; d > 0 {
		res.Cm = ptr(res.MidshipAreaM2 / d)
	}
	if d := res.MidshipAreaM2 * in.LppM; d > 0 {
		res.Cp = ptr(vol.VolumeM3 / d)
	}
	if d := in.LppM * in.BeamM; d > 0 {
		res.Cwp = ptr(wp.AreaM2 / d)
	}

	return res
}

// midshipArea is the sectional area at the station nearest x = Lpp/2, with
// x measured from the aft perpendicular. Without principal dimensions the
// middle of the station range is used instead.
func midshipArea(in Input) float64 {
	target := in.LppM / 2
	if in.LppM <= 0 {
		first := in.Hull.Stations[0].X
		target = first + in.Hull.Length()/2
	}
	best := 0
	bestDist := math.Abs(in.Hull.Stations[0].X - target)
	for i := 1; i < len(in.Hull.Stations); i++ {
		d := math.Abs(in.Hull.Stations[i].X - target)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return section.Properties(in.Hull, best, in.DraftM).AreaM2
}

func ptr(v float64) *float64 { return &v }
