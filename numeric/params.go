package numeric

import (
	"math"

	"github.com/kavelabs/tscodec/alphabet"
	"github.com/kavelabs/tscodec/errs"
)

// Kind distinguishes integer from scaled-float numeric values.
type Kind int

const (
	// KindInt marks a value domain with no decimal scaling (Precision must be 0).
	KindInt Kind = iota
	// KindFloat marks a value domain scaled by 10^Precision before encoding.
	KindFloat
)

// Params fully describes how a vector of numbers maps onto fixed-width
// base-B digit groups: the decimal scale applied before rounding, the
// signed bias, and the digit-group width.
//
// Invariants: if Kind == KindInt then Precision == 0. The encodable
// integer domain is [0, Base^Width) unsigned, or
// [-floor(Base^Width/2), floor(Base^Width/2)) signed, after scaling
// floats by 10^Precision. Width is the minimum w such that the maximal
// pre-shifted magnitude fits.
type Params struct {
	Kind      Kind
	Precision int
	Signed    bool
	Width     int
	Base      alphabet.Size
}

// Validate checks the struct-level invariants that don't depend on a
// particular data vector.
func (p Params) Validate() error {
	if !p.Base.Valid() {
		return errs.ErrUnsupportedAlphabet
	}
	if p.Width < 1 {
		return errs.ErrInconsistentHeader
	}
	if p.Kind == KindInt && p.Precision != 0 {
		return errs.ErrInconsistentHeader
	}
	if p.Precision < 0 {
		return errs.ErrInconsistentHeader
	}

	return nil
}

// Domain returns B^Width, the number of distinct states a digit group
// of this width can represent. Returns an error if B^Width overflows
// uint64 — in practice Width is always solved to keep this well within
// range (see MinWidth), but Decode must still defend against a
// maliciously large Width value in a hand-crafted header.
func (p Params) Domain() (uint64, error) {
	return pow(uint64(p.Base), p.Width)
}

// Bias returns floor(Domain/2), the offset added to signed values so
// the encoded domain is non-negative. Zero when Signed is false.
func (p Params) Bias() (uint64, error) {
	if !p.Signed {
		return 0, nil
	}
	domain, err := p.Domain()
	if err != nil {
		return 0, err
	}
	return domain / 2, nil
}

// Scale returns 10^Precision as a float64 multiplier.
func (p Params) Scale() float64 {
	return math.Pow(10, float64(p.Precision))
}

// pow computes base^exp over uint64, returning ErrOutOfRange on overflow.
func pow(base uint64, exp int) (uint64, error) {
	result := uint64(1)
	for i := 0; i < exp; i++ {
		next := result * base
		if base != 0 && next/base != result {
			return 0, errs.ErrOutOfRange
		}
		result = next
	}
	return result, nil
}

// MinWidth returns the least w such that Base^w > domain, where domain
// is the maximal non-negative magnitude that must be representable
// (already scaled and biased by the caller). Used by the frame-param
// solver (series package) to derive the minimal sufficient width.
func MinWidth(base alphabet.Size, domain float64) int {
	if domain < 0 {
		domain = 0
	}
	w := 1
	b := float64(base)
	limit := b
	for limit <= domain {
		limit *= b
		w++
	}
	return w
}
