package series

import (
	"testing"

	"github.com/kavelabs/tscodec/alphabet"
	"github.com/kavelabs/tscodec/errs"
	"github.com/stretchr/testify/require"
)

func TestDecodeTruncatedBody(t *testing.T) {
	f := Frame{
		Start:          0,
		TSKey:          "t",
		TSValue:        "v",
		EncodingSize:   alphabet.Base64,
		Regular:        true,
		Interval:       1,
		EncodingDepth:  2,
		FloatPrecision: 0,
		Data:           "A", // not a multiple of width 2
	}
	codec, err := NewCodec()
	require.NoError(t, err)
	_, err = codec.Decode(f)
	require.ErrorIs(t, err, errs.ErrMalformedInput)
}

func TestFrameFromMapMissingEncoder(t *testing.T) {
	_, err := FrameFromMap(map[string]any{"start": 0.0})
	require.ErrorIs(t, err, errs.ErrInconsistentHeader)
}

func TestSolveEmptySeries(t *testing.T) {
	_, err := Solve(nil, alphabet.Base64)
	require.ErrorIs(t, err, errs.ErrEmptySeries)
}

func TestSortValuesOption(t *testing.T) {
	obs := []Observation{
		{T: 300, V: 3},
		{T: 100, V: 1},
		{T: 200, V: 2},
	}

	codec, err := NewCodec(WithSortValues(true))
	require.NoError(t, err)
	frame, err := codec.Encode(obs, "t", "v")
	require.NoError(t, err)
	require.True(t, frame.Regular)
	require.Equal(t, int64(100), frame.Start)

	decoded, err := codec.Decode(frame)
	require.NoError(t, err)
	require.Equal(t, []Observation{{T: 100, V: 1}, {T: 200, V: 2}, {T: 300, V: 3}}, decoded)
}
