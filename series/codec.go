package series

import (
	"fmt"

	"github.com/kavelabs/tscodec/alphabet"
	"github.com/kavelabs/tscodec/errs"
	"github.com/kavelabs/tscodec/internal/options"
	"github.com/kavelabs/tscodec/numeric"
)

// codecConfig holds Codec construction-time settings, following the
// teacher's pattern of a small unexported config struct configured
// through functional options (see blob.NumericEncoderConfig).
type codecConfig struct {
	base       alphabet.Size
	sortValues bool
}

// Option configures a Codec.
type Option = options.Option[*codecConfig]

// WithBase sets the alphabet size used for encoding. Default: Base64.
func WithBase(base alphabet.Size) Option {
	return options.New(func(c *codecConfig) error {
		if !base.Valid() {
			return errs.ErrUnsupportedAlphabet
		}
		c.base = base
		return nil
	})
}

// WithSortValues enables stable sorting of observations by timestamp
// before encoding. Default: false (preserve input order).
func WithSortValues(sort bool) Option {
	return options.NoError(func(c *codecConfig) {
		c.sortValues = sort
	})
}

// Codec encodes/decodes a single logical series into/from a Frame (C5).
// A Codec instance holds only its derived configuration; it keeps no
// reference to any series it has encoded or decoded.
type Codec struct {
	cfg codecConfig
}

// NewCodec creates a Codec with the given options.
func NewCodec(opts ...Option) (*Codec, error) {
	cfg := codecConfig{base: alphabet.Base64}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}
	return &Codec{cfg: cfg}, nil
}

// Encode produces a self-describing Frame for obs. tsKey/tsValue are
// carried in the frame header for the document transformer to use when
// reconstructing JSON objects on decode.
func (c *Codec) Encode(obs []Observation, tsKey, tsValue string) (Frame, error) {
	if len(obs) == 0 {
		return Frame{}, errs.ErrEmptySeries
	}

	ordered := obs
	if c.cfg.sortValues {
		ordered = sortStable(obs)
	}

	plan, err := Solve(ordered, c.cfg.base)
	if err != nil {
		return Frame{}, err
	}

	frame := Frame{
		Start:        plan.Start,
		TSKey:        tsKey,
		TSValue:      tsValue,
		EncodingSize: c.cfg.base,
		Regular:      plan.Regular,
		Interval:     plan.Interval,
		Static:       plan.Static,
	}

	if plan.Static {
		frame.StaticValue = plan.StaticValue
		frame.StaticCount = plan.StaticCount
	} else {
		frame.Signed = plan.ValueParams.Signed
		frame.EncodingDepth = plan.ValueParams.Width
		frame.FloatPrecision = plan.ValueParams.Precision
	}

	if !plan.Regular {
		frame.TimeEncodingDepth = plan.TimeParams.Width
	}

	data, err := encodeBody(ordered, plan)
	if err != nil {
		return Frame{}, err
	}
	frame.Data = data

	return frame, nil
}

// encodeBody concatenates, in ordered's order, the time token (if
// irregular) and the value token (if varying) for each observation.
func encodeBody(ordered []Observation, plan Plan) (string, error) {
	if plan.Regular && plan.Static {
		return "", nil
	}

	var timeTokens []string
	if !plan.Regular {
		offsets := make([]int64, len(ordered))
		for i, o := range ordered {
			offsets[i] = o.T - plan.Start
		}
		encoded, err := numeric.EncodeInts(offsets, plan.TimeParams)
		if err != nil {
			return "", err
		}
		timeTokens = chunk(encoded, plan.TimeParams.Width)
	}

	var valueTokens []string
	if !plan.Static {
		values := make([]float64, len(ordered))
		for i, o := range ordered {
			values[i] = o.V
		}
		encoded, err := numeric.Encode(values, plan.ValueParams)
		if err != nil {
			return "", err
		}
		valueTokens = chunk(encoded, plan.ValueParams.Width)
	}

	var out string
	for i := range ordered {
		if timeTokens != nil {
			out += timeTokens[i]
		}
		if valueTokens != nil {
			out += valueTokens[i]
		}
	}

	return out, nil
}

func chunk(s string, width int) []string {
	if width == 0 {
		return nil
	}
	n := len(s) / width
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = s[i*width : (i+1)*width]
	}
	return out
}

// Decode reconstructs the observations encoded in f.
func (c *Codec) Decode(f Frame) ([]Observation, error) {
	if f.Static && f.Regular {
		return decodeStaticRegular(f)
	}
	if f.Static {
		return decodeStaticIrregular(f)
	}
	if f.Regular {
		return decodeVaryingRegular(f)
	}
	return decodeVaryingIrregular(f)
}

func decodeStaticRegular(f Frame) ([]Observation, error) {
	out := make([]Observation, f.StaticCount)
	t := f.Start
	for i := range out {
		out[i] = Observation{T: t, V: f.StaticValue}
		t += f.Interval
	}
	return out, nil
}

func decodeStaticIrregular(f Frame) ([]Observation, error) {
	width := f.TimeEncodingDepth
	if width == 0 || len(f.Data)%width != 0 {
		return nil, fmt.Errorf("%w: static irregular body length %d not a multiple of time width %d", errs.ErrMalformedInput, len(f.Data), width)
	}

	offsets, err := numeric.DecodeInts(f.Data, f.timeParams())
	if err != nil {
		return nil, err
	}

	out := make([]Observation, len(offsets))
	for i, off := range offsets {
		out[i] = Observation{T: f.Start + off, V: f.StaticValue}
	}
	return out, nil
}

func decodeVaryingRegular(f Frame) ([]Observation, error) {
	width := f.EncodingDepth
	if width == 0 || len(f.Data)%width != 0 {
		return nil, fmt.Errorf("%w: regular body length %d not a multiple of value width %d", errs.ErrMalformedInput, len(f.Data), width)
	}

	values, err := numeric.Decode(f.Data, f.valueParams())
	if err != nil {
		return nil, err
	}

	out := make([]Observation, len(values))
	t := f.Start
	for i, v := range values {
		out[i] = Observation{T: t, V: v}
		t += f.Interval
	}
	return out, nil
}

func decodeVaryingIrregular(f Frame) ([]Observation, error) {
	row := f.rowWidth()
	if row == 0 || len(f.Data)%row != 0 {
		return nil, fmt.Errorf("%w: irregular body length %d not a multiple of row width %d", errs.ErrMalformedInput, len(f.Data), row)
	}

	n := len(f.Data) / row
	timeParams := f.timeParams()
	valueParams := f.valueParams()

	out := make([]Observation, n)
	for i := 0; i < n; i++ {
		rowStr := f.Data[i*row : (i+1)*row]
		timeTok := rowStr[:f.TimeEncodingDepth]
		valTok := rowStr[f.TimeEncodingDepth:]

		offs, err := numeric.DecodeInts(timeTok, timeParams)
		if err != nil {
			return nil, err
		}
		vals, err := numeric.Decode(valTok, valueParams)
		if err != nil {
			return nil, err
		}

		out[i] = Observation{T: f.Start + offs[0], V: vals[0]}
	}

	return out, nil
}
