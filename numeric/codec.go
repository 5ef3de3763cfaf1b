// Package numeric implements the fixed-width positional numeric codec
// (C2): encoding a vector of numbers as fixed-width base-B digit
// groups, and its exact inverse.
//
// Side effects: none. Encode/Decode are pure functions of their
// arguments; the only shared state is the read-only alphabet tables.
package numeric

import (
	"fmt"
	"math"

	"github.com/kavelabs/tscodec/alphabet"
	"github.com/kavelabs/tscodec/errs"
	"github.com/kavelabs/tscodec/internal/pool"
)

// Encode produces exactly len(values) * p.Width characters: each value
// is scaled by 10^p.Precision (if Kind is KindFloat), biased into a
// non-negative domain (if Signed), rounded half-away-from-zero, and
// emitted as p.Width base-B digits, most-significant-first.
//
// Returns ErrOutOfRange if any value's post-scale, post-bias integer
// falls outside [0, Base^Width).
func Encode(values []float64, p Params) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	table, err := alphabet.Forward(p.Base)
	if err != nil {
		return "", err
	}

	domain, err := p.Domain()
	if err != nil {
		return "", err
	}
	bias, err := p.Bias()
	if err != nil {
		return "", err
	}

	buf := pool.Get()
	defer pool.Put(buf)
	buf.Grow(len(values) * p.Width)

	placeValues := make([]uint64, p.Width)
	for i := range placeValues {
		v, err := pow(uint64(p.Base), p.Width-1-i)
		if err != nil {
			return "", err
		}
		placeValues[i] = v
	}

	scale := p.Scale()
	for idx, x := range values {
		scaled := x
		if p.Kind == KindFloat {
			scaled = x * scale
		}

		biased := scaled + float64(bias)
		rounded := math.Floor(biased + 0.5)

		if rounded < 0 || rounded >= float64(domain) {
			return "", fmt.Errorf("%w: value[%d]=%v encodes to %v, outside [0,%d)", errs.ErrOutOfRange, idx, x, rounded, domain)
		}

		remaining := uint64(rounded)
		for i := 0; i < p.Width; i++ {
			digit := remaining / placeValues[i]
			remaining %= placeValues[i]
			buf.WriteByte(table[digit])
		}
	}

	return string(buf.Bytes()), nil
}

// Decode is the exact inverse of Encode. len(s) must be a multiple of
// p.Width, otherwise ErrMalformedInput. Bytes not present in the
// declared alphabet yield ErrUnknownSymbol.
func Decode(s string, p Params) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if p.Width == 0 || len(s)%p.Width != 0 {
		return nil, fmt.Errorf("%w: length %d not a multiple of width %d", errs.ErrMalformedInput, len(s), p.Width)
	}

	inv, err := alphabet.Inverse(p.Base)
	if err != nil {
		return nil, err
	}

	bias, err := p.Bias()
	if err != nil {
		return nil, err
	}

	placeValues := make([]uint64, p.Width)
	for i := range placeValues {
		v, err := pow(uint64(p.Base), p.Width-1-i)
		if err != nil {
			return nil, err
		}
		placeValues[i] = v
	}

	scale := p.Scale()
	n := len(s) / p.Width
	out := make([]float64, n)

	for row := 0; row < n; row++ {
		var acc uint64
		for i := 0; i < p.Width; i++ {
			b := s[row*p.Width+i]
			digit := inv[b]
			if digit < 0 {
				return nil, fmt.Errorf("%w: byte %q at offset %d", errs.ErrUnknownSymbol, b, row*p.Width+i)
			}
			acc += uint64(digit) * placeValues[i]
		}

		signedAcc := int64(acc) - int64(bias)
		v := float64(signedAcc)
		if p.Kind == KindFloat {
			v /= scale
		}
		out[row] = v
	}

	return out, nil
}

// EncodeInts is a convenience wrapper for KindInt callers that want to
// pass []int64 instead of []float64.
func EncodeInts(values []int64, p Params) (string, error) {
	floats := make([]float64, len(values))
	for i, v := range values {
		floats[i] = float64(v)
	}
	return Encode(floats, p)
}

// DecodeInts is the []int64 counterpart to EncodeInts.
func DecodeInts(s string, p Params) ([]int64, error) {
	floats, err := Decode(s, p)
	if err != nil {
		return nil, err
	}
	out := make([]int64, len(floats))
	for i, v := range floats {
		out[i] = int64(math.Round(v))
	}
	return out, nil
}
