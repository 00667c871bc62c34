package curves

import (
	"context"
	"fmt"

	"Keel/internal/calc/hydrostatics"
	"Keel/internal/calc/section"
	"Keel/internal/geometry"
)

// Kind tags which scalar of the hydrostatic sample a curve tracks.
type Kind string

const (
	KindDisplacement Kind = "displacement"
	KindVolume       Kind = "volume"
	KindKB           Kind = "kb"
	KindLCB          Kind = "lcb"
	KindLCF          Kind = "lcf"
	KindAwp          Kind = "awp"
	KindTPC          Kind = "tpc"
	KindMCT          Kind = "mct"
	KindBMt          Kind = "bmt"
	KindKMt          Kind = "kmt"
	KindGMt          Kind = "gmt"
	KindCb           Kind = "cb"
	KindCp           Kind = "cp"
	KindCm           Kind = "cm"
	KindCwp          Kind = "cwp"
	KindBonjean      Kind = "bonjean"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Curve struct {
	Kind   Kind    `json:"kind"`
	Name   string  `json:"name"`
	XLabel string  `json:"x_label"`
	YLabel string  `json:"y_label"`
	Points []Point `json:"points"`
}

type Input struct {
	Hull      *geometry.Hull `json:"hull"`
	RhoKgM3   float64        `json:"rho_kg_m3"`
	KGM       *float64       `json:"kg_m,omitempty"`
	LppM      float64        `json:"lpp_m"`
	BeamM     float64        `json:"beam_m"`
	Kinds     []Kind         `json:"kinds"`
	DraftMinM float64        `json:"draft_min_m"`
	DraftMaxM float64        `json:"draft_max_m"`
	Points    int            `json:"points"`
}

// Result carries one curve per requested kind. Partial is set when the
// context was canceled between draft evaluations; the points computed so
// far are still returned, ordered and uncorrupted.
type Result struct {
	Curves  []Curve `json:"curves"`
	Partial bool    `json:"partial,omitempty"`
}

var yLabels = map[Kind]string{
	KindDisplacement: "displacement (t)",
	KindVolume:       "volume (m³)",
	KindKB:           "KB (m)",
	KindLCB:          "LCB (m)",
	KindLCF:          "LCF (m)",
	KindAwp:          "waterplane area (m²)",
	KindTPC:          "TPC (t/cm)",
	KindMCT:          "MCT 1cm (t·m)",
	KindBMt:          "BMt (m)",
	KindKMt:          "KMt (m)",
	KindGMt:          "GMt (m)",
	KindCb:           "Cb",
	KindCp:           "Cp",
	KindCm:           "Cm",
	KindCwp:          "Cwp",
	KindBonjean:      "sectional area (m²)",
}

// Generate samples the calculator at Points equally spaced drafts over
// [DraftMinM, DraftMaxM], both ends inclusive, and extracts one scalar per
// requested kind. Each call builds fresh curves; nothing is shared between
// calls. Every returned curve has exactly Points points: a range over which
// a requested scalar is undefined (a coefficient at a dry draft, say) is
// rejected instead of thinning the curve.
func Generate(ctx context.Context, in Input) (Result, error) {
	if err := checkRange(in.DraftMinM, in.DraftMaxM, in.Points); err != nil {
		return Result{}, err
	}
	if in.Hull == nil || in.RhoKgM3 <= 0 {
		return Result{}, fmt.Errorf("invalid input")
	}
	if len(in.Kinds) == 0 {
		return Result{}, fmt.Errorf("no curve kinds requested")
	}
	if issues := geometry.Validate(in.Hull); len(issues) > 0 {
		return Result{}, fmt.Errorf("invalid hull geometry: %d issues", len(issues))
	}
	for _, k := range in.Kinds {
		if _, ok := yLabels[k]; !ok || k == KindBonjean {
			return Result{}, fmt.Errorf("unknown curve kind %q", k)
		}
		if k == KindGMt && in.KGM == nil {
			return Result{}, fmt.Errorf("curve kind %q requires kg_m", k)
		}
	}

	out := Result{Curves: make([]Curve, len(in.Kinds))}
	for i, k := range in.Kinds {
		out.Curves[i] = Curve{
			Kind:   k,
			Name:   string(k),
			XLabel: "draft (m)",
			YLabel: yLabels[k],
			Points: make([]Point, 0, in.Points),
		}
	}

	for i := 0; i < in.Points; i++ {
		if ctx.Err() != nil {
			out.Partial = true
			return out, nil
		}
		d := draftAt(in.DraftMinM, in.DraftMaxM, i, in.Points)
		sample := hydrostatics.Evaluate(hydrostatics.Input{
			Hull: in.Hull, RhoKgM3: in.RhoKgM3, KGM: in.KGM,
			LppM: in.LppM, BeamM: in.BeamM, DraftM: d,
		})
		for j, k := range in.Kinds {
			v := scalar(k, sample)
			if v == nil {
				return Result{}, fmt.Errorf("curve kind %q is undefined at draft %.4f m", k, d)
			}
			out.Curves[j].Points = append(out.Curves[j].Points, Point{X: d, Y: *v})
		}
	}
	return out, nil
}

type BonjeanInput struct {
	Hull      *geometry.Hull `json:"hull"`
	DraftMinM float64        `json:"draft_min_m"`
	DraftMaxM float64        `json:"draft_max_m"`
	Points    int            `json:"points"`
}

// Bonjean produces one sectional-area-vs-draft curve per station over the
// same inclusive draft range as Generate.
func Bonjean(ctx context.Context, in BonjeanInput) (Result, error) {
	if err := checkRange(in.DraftMinM, in.DraftMaxM, in.Points); err != nil {
		return Result{}, err
	}
	if in.Hull == nil {
		return Result{}, fmt.Errorf("invalid input")
	}
	if issues := geometry.Validate(in.Hull); len(issues) > 0 {
		return Result{}, fmt.Errorf("invalid hull geometry: %d issues", len(issues))
	}

	out := Result{Curves: make([]Curve, len(in.Hull.Stations))}
	for s, st := range in.Hull.Stations {
		out.Curves[s] = Curve{
			Kind:   KindBonjean,
			Name:   fmt.Sprintf("station %d (x=%.2f m)", st.Index, st.X),
			XLabel: "draft (m)",
			YLabel: yLabels[KindBonjean],
			Points: make([]Point, 0, in.Points),
		}
	}
	for i := 0; i < in.Points; i++ {
		if ctx.Err() != nil {
			out.Partial = true
			return out, nil
		}
		d := draftAt(in.DraftMinM, in.DraftMaxM, i, in.Points)
		for s := range in.Hull.Stations {
			a := section.Properties(in.Hull, s, d).AreaM2
			out.Curves[s].Points = append(out.Curves[s].Points, Point{X: d, Y: a})
		}
	}
	return out, nil
}

func checkRange(min, max float64, points int) error {
	if points < 2 {
		return fmt.Errorf("need at least 2 points, got %d", points)
	}
	if max <= min {
		return fmt.Errorf("draft range is empty")
	}
	return nil
}

// draftAt keeps both endpoints exact so repeated generations are
// bit-identical and the range is covered inclusively.
func draftAt(min, max float64, i, points int) float64 {
	if i == points-1 {
		return max
	}
	return min + (max-min)*float64(i)/float64(points-1)
}

func scalar(k Kind, s hydrostatics.Result) *float64 {
	switch k {
	case KindDisplacement:
		return &s.DisplacementT
	case KindVolume:
		return &s.VolumeM3
	case KindKB:
		return &s.KBM
	case KindLCB:
		return &s.LCBXM
	case KindLCF:
		return &s.LCFXM
	case KindAwp:
		return &s.AwpM2
	case KindTPC:
		return &s.TPCTCm
	case KindMCT:
		return &s.MCT1cmTM
	case KindBMt:
		return s.BMtM
	case KindKMt:
		return s.KMtM
	case KindGMt:
		return s.GMtM
	case KindCb:
		return s.Cb
	case KindCp:
		return s.Cp
	case KindCm:
		return s.Cm
	case KindCwp:
		return s.Cwp
	}
	return nil
}
