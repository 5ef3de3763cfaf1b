package series

import (
	"github.com/kavelabs/tscodec/alphabet"
	"github.com/kavelabs/tscodec/errs"
	"github.com/kavelabs/tscodec/numeric"
	"github.com/kavelabs/tscodec/precision"
)

// Plan is the output of Solve (C4): the minimal sufficient codec
// parameters for a batch of observations, plus the regularity
// classification needed by the frame codec (C5).
type Plan struct {
	Start int64

	Regular  bool
	Interval int64 // valid iff Regular

	TimeParams numeric.Params // valid iff !Regular

	Static      bool
	StaticValue float64 // valid iff Static
	StaticCount int     // valid iff Static

	ValueParams numeric.Params // valid iff !Static
}

// Solve derives a Plan from obs, which must already be in the order the
// caller intends to encode rows (i.e. after any optional sort-by-time).
//
// For an irregular series, Start is the minimum timestamp across obs,
// independent of encode order, so that time offsets are never negative.
// For a regular series, Start is the first timestamp in the given
// order, so that Start + i*Interval reproduces every row even when the
// interval is negative. Regularity is classified over the successive
// gaps of obs in the given order, per spec section 4.4.
func Solve(obs []Observation, base alphabet.Size) (Plan, error) {
	if len(obs) == 0 {
		return Plan{}, errs.ErrEmptySeries
	}
	if !base.Valid() {
		return Plan{}, errs.ErrUnsupportedAlphabet
	}

	var plan Plan

	start := obs[0].T
	vmin, vmax := obs[0].V, obs[0].V
	smax := 0
	for _, o := range obs {
		if o.T < start {
			start = o.T
		}
		if o.V < vmin {
			vmin = o.V
		}
		if o.V > vmax {
			vmax = o.V
		}
		if _, scale := precision.Probe(o.V); scale > smax {
			smax = scale
		}
	}
	plan.Start = start

	signed := vmin < 0
	maxAbs := absMax(vmin, vmax)

	magnitude := maxAbs
	for i := 0; i < smax; i++ {
		magnitude *= 10
	}
	if signed {
		magnitude *= 2
	}

	if vmin == vmax {
		plan.Static = true
		plan.StaticValue = vmax
		plan.StaticCount = len(obs)
	} else {
		kind := numeric.KindInt
		if smax > 0 {
			kind = numeric.KindFloat
		}
		width := numeric.MinWidth(base, magnitude)
		plan.ValueParams = numeric.Params{
			Kind:      kind,
			Precision: smax,
			Signed:    signed,
			Width:     width,
			Base:      base,
		}
	}

	if len(obs) < 2 {
		plan.Regular = true
		plan.Interval = 0
		return plan, nil
	}

	interval := obs[1].T - obs[0].T
	regular := true
	for i := 1; i < len(obs); i++ {
		if obs[i].T-obs[i-1].T != interval {
			regular = false
			break
		}
	}

	plan.Regular = regular
	if regular {
		plan.Start = obs[0].T
		plan.Interval = interval
		return plan, nil
	}

	maxOffset := int64(0)
	for _, o := range obs {
		if off := o.T - start; off > maxOffset {
			maxOffset = off
		}
	}
	timeWidth := numeric.MinWidth(base, float64(maxOffset))
	plan.TimeParams = numeric.Params{
		Kind:      numeric.KindInt,
		Precision: 0,
		Signed:    false,
		Width:     timeWidth,
		Base:      base,
	}

	return plan, nil
}

func absMax(a, b float64) float64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	if a > b {
		return a
	}
	return b
}
