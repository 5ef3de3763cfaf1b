package series

import (
	"encoding/json"
	"fmt"

	"github.com/kavelabs/tscodec/alphabet"
	"github.com/kavelabs/tscodec/errs"
	"github.com/kavelabs/tscodec/numeric"
)

// frameDiscriminator is the fixed "encoder" value every wire frame
// carries, per spec section 6.1.
const frameDiscriminator = "TimeSeriesEncoder"

// Frame is the self-describing wire object for one encoded time
// series: header fields plus the concatenated body, discriminated by
// (Regular, Static) into the four variants of spec section 6.1.
type Frame struct {
	Start        int64
	TSKey        string
	TSValue      string
	EncodingSize alphabet.Size
	Signed       bool

	Regular  bool
	Interval int64 // valid iff Regular

	TimeEncodingDepth int // valid iff !Regular

	Static      bool
	StaticValue float64 // valid iff Static
	StaticCount int     // valid iff Static

	EncodingDepth  int // valid iff !Static
	FloatPrecision int // valid iff !Static

	Data string // body; empty for Regular+Static
}

// hasData reports whether this variant carries a data body at all.
// Per spec section 6.1, Regular+Static omits data entirely.
func (f Frame) hasData() bool {
	return !(f.Regular && f.Static)
}

// MarshalJSON renders the Frame using the exact field set of its
// variant, per spec section 6.1. The static-vs-varying and
// regular-vs-irregular axes are independent; which fields are present
// depends on both.
func (f Frame) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.ToMap())
}

// ToMap renders the Frame as a generic JSON object, for callers (like
// the document transformer) that build up a larger any-tree and need
// to splice this frame in without a marshal/unmarshal round trip.
func (f Frame) ToMap() map[string]any {
	m := map[string]any{
		"encoder":       frameDiscriminator,
		"start":         f.Start,
		"ts_key":        f.TSKey,
		"ts_value":      f.TSValue,
		"encoding_size": int(f.EncodingSize),
	}
	if f.Signed {
		m["signed"] = true
	}

	if f.Regular {
		m["interval"] = f.Interval
	} else {
		m["time_encoding_depth"] = f.TimeEncodingDepth
	}

	if f.Static {
		m["static_value"] = f.StaticValue
		m["static_count"] = f.StaticCount
	} else {
		m["encoding_depth"] = f.EncodingDepth
		m["float_precision"] = f.FloatPrecision
	}

	if f.hasData() {
		m["data"] = f.Data
	}

	return m
}

// UnmarshalJSON parses any of the four wire variants. The static
// branch is checked before the varying branch, per the design note in
// spec section 9: a frame without "data" must be recognized as static
// first, or it is misparsed.
func (f *Frame) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	parsed, err := FrameFromMap(m)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// FrameFromMap builds a Frame from an already-decoded JSON object
// (map[string]any, numbers as float64), as produced by the document
// transformer's generic tree walk. Shared so document doesn't need to
// re-marshal/unmarshal a detected frame object.
func FrameFromMap(m map[string]any) (Frame, error) {
	var f Frame

	enc, _ := m["encoder"].(string)
	if enc != frameDiscriminator {
		return Frame{}, fmt.Errorf("%w: encoder field is %q, want %q", errs.ErrInconsistentHeader, enc, frameDiscriminator)
	}

	start, ok := asInt64(m["start"])
	if !ok {
		return Frame{}, fmt.Errorf("%w: missing or invalid start", errs.ErrInconsistentHeader)
	}
	f.Start = start

	f.TSKey, _ = m["ts_key"].(string)
	f.TSValue, _ = m["ts_value"].(string)
	if f.TSKey == "" || f.TSValue == "" {
		return Frame{}, fmt.Errorf("%w: missing ts_key/ts_value", errs.ErrInconsistentHeader)
	}

	sizeN, ok := asInt64(m["encoding_size"])
	if !ok {
		return Frame{}, fmt.Errorf("%w: missing or invalid encoding_size", errs.ErrInconsistentHeader)
	}
	f.EncodingSize = alphabet.Size(sizeN)
	if !f.EncodingSize.Valid() {
		return Frame{}, errs.ErrUnsupportedAlphabet
	}

	if signed, ok := m["signed"].(bool); ok {
		f.Signed = signed
	}

	intervalVal, hasInterval := m["interval"]
	timeDepthVal, hasTimeDepth := m["time_encoding_depth"]
	switch {
	case hasInterval:
		f.Regular = true
		iv, ok := asInt64(intervalVal)
		if !ok {
			return Frame{}, fmt.Errorf("%w: invalid interval", errs.ErrInconsistentHeader)
		}
		f.Interval = iv
	case hasTimeDepth:
		f.Regular = false
		td, ok := asInt64(timeDepthVal)
		if !ok {
			return Frame{}, fmt.Errorf("%w: invalid time_encoding_depth", errs.ErrInconsistentHeader)
		}
		f.TimeEncodingDepth = int(td)
	default:
		return Frame{}, fmt.Errorf("%w: frame has neither interval nor time_encoding_depth", errs.ErrInconsistentHeader)
	}

	// Static must be checked before varying: a frame without "data" at
	// all (regular+static) would otherwise fall through to the varying
	// branch and be misread as missing its body.
	if staticVal, ok := m["static_value"]; ok {
		f.Static = true
		sv, ok := asFloat64(staticVal)
		if !ok {
			return Frame{}, fmt.Errorf("%w: invalid static_value", errs.ErrInconsistentHeader)
		}
		f.StaticValue = sv

		sc, ok := asInt64(m["static_count"])
		if !ok {
			return Frame{}, fmt.Errorf("%w: missing or invalid static_count", errs.ErrInconsistentHeader)
		}
		f.StaticCount = int(sc)
	} else {
		f.Static = false
		ed, ok := asInt64(m["encoding_depth"])
		if !ok {
			return Frame{}, fmt.Errorf("%w: missing or invalid encoding_depth", errs.ErrInconsistentHeader)
		}
		f.EncodingDepth = int(ed)

		fp, ok := asInt64(m["float_precision"])
		if !ok {
			return Frame{}, fmt.Errorf("%w: missing or invalid float_precision", errs.ErrInconsistentHeader)
		}
		f.FloatPrecision = int(fp)
	}

	if f.hasData() {
		d, ok := m["data"].(string)
		if !ok {
			return Frame{}, fmt.Errorf("%w: missing data body", errs.ErrInconsistentHeader)
		}
		f.Data = d
	}

	return f, nil
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		if err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err == nil {
			return int64(f), true
		}
		return 0, false
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// rowWidth returns the per-row width in characters: the time token
// width (irregular only) plus the value token width (varying only).
func (f Frame) rowWidth() int {
	w := 0
	if !f.Regular {
		w += f.TimeEncodingDepth
	}
	if !f.Static {
		w += f.EncodingDepth
	}
	return w
}

func (f Frame) valueParams() numeric.Params {
	return numeric.Params{
		Kind:      kindOf(f.FloatPrecision),
		Precision: f.FloatPrecision,
		Signed:    f.Signed,
		Width:     f.EncodingDepth,
		Base:      f.EncodingSize,
	}
}

func (f Frame) timeParams() numeric.Params {
	return numeric.Params{
		Kind:      numeric.KindInt,
		Precision: 0,
		Signed:    false,
		Width:     f.TimeEncodingDepth,
		Base:      f.EncodingSize,
	}
}

func kindOf(precision int) numeric.Kind {
	if precision > 0 {
		return numeric.KindFloat
	}
	return numeric.KindInt
}
