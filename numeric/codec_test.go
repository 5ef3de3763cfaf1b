package numeric

import (
	"testing"

	"github.com/kavelabs/tscodec/alphabet"
	"github.com/kavelabs/tscodec/errs"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeUnsignedInt(t *testing.T) {
	p := Params{Kind: KindInt, Width: 2, Base: alphabet.Base64}
	values := []float64{0, 1, 63, 64, 4095}
	encoded, err := Encode(values, p)
	require.NoError(t, err)
	require.Len(t, encoded, len(values)*2)

	decoded, err := Decode(encoded, p)
	require.NoError(t, err)
	require.Equal(t, values, decoded)
}

func TestEncodeDecodeSignedRangeS3(t *testing.T) {
	// Spec S3: signed integers, B=64, w=1, domain [-32, 32).
	p := Params{Kind: KindInt, Width: 1, Signed: true, Base: alphabet.Base64}
	for v := int64(-32); v < 32; v++ {
		encoded, err := EncodeInts([]int64{v}, p)
		require.NoError(t, err)
		require.Len(t, encoded, 1)

		decoded, err := DecodeInts(encoded, p)
		require.NoError(t, err)
		require.Equal(t, []int64{v}, decoded)
	}
}

func TestEncodeDecodeFloatPrecision(t *testing.T) {
	p := Params{Kind: KindFloat, Precision: 1, Width: 2, Base: alphabet.Base64}
	values := []float64{0.0, 12.3, 40.9}
	encoded, err := Encode(values, p)
	require.NoError(t, err)

	decoded, err := Decode(encoded, p)
	require.NoError(t, err)
	for i, v := range values {
		require.InDelta(t, v, decoded[i], 1e-9)
	}
}

func TestEncodeOutOfRange(t *testing.T) {
	p := Params{Kind: KindInt, Width: 1, Base: alphabet.Base16}
	_, err := Encode([]float64{16}, p)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestEncodeOutOfRangeNoPartialOutput(t *testing.T) {
	p := Params{Kind: KindInt, Width: 1, Base: alphabet.Base16}
	out, err := Encode([]float64{0, 16, 1}, p)
	require.Error(t, err)
	require.Empty(t, out)
}

func TestDecodeMalformedInput(t *testing.T) {
	p := Params{Kind: KindInt, Width: 2, Base: alphabet.Base64}
	_, err := Decode("abc", p)
	require.ErrorIs(t, err, errs.ErrMalformedInput)
}

func TestDecodeUnknownSymbol(t *testing.T) {
	p := Params{Kind: KindInt, Width: 2, Base: alphabet.Base16}
	_, err := Decode("0Z", p)
	require.ErrorIs(t, err, errs.ErrUnknownSymbol)
}

func TestSizeMonotonicity(t *testing.T) {
	// Property 6: for fixed data, encoded size strictly decreases as B grows,
	// up to width-rounding effects -- here 16 -> 64 drops from width 4 to 3,
	// while 64 and 91 both land on width 3, so only non-increase is checked
	// for the last step.
	values := make([]float64, 50)
	for i := range values {
		values[i] = float64(i * 1000)
	}

	var sizes []int
	for _, base := range []alphabet.Size{alphabet.Base16, alphabet.Base64, alphabet.Base91} {
		w := MinWidth(base, 49000)
		p := Params{Kind: KindInt, Width: w, Base: base}
		encoded, err := Encode(values, p)
		require.NoError(t, err)
		sizes = append(sizes, len(encoded))
	}

	require.Greater(t, sizes[0], sizes[1])
	require.GreaterOrEqual(t, sizes[1], sizes[2])
}

func TestAlphabetByteExactness(t *testing.T) {
	p := Params{Kind: KindInt, Width: 3, Base: alphabet.Base91}
	values := []float64{0, 12345, 753570}
	encoded, err := Encode(values, p)
	require.NoError(t, err)

	table, err := alphabet.Forward(alphabet.Base91)
	require.NoError(t, err)
	allowed := make(map[byte]bool, len(table))
	for _, b := range table {
		allowed[b] = true
	}
	for _, b := range []byte(encoded) {
		require.True(t, allowed[b], "byte %q not in base-91 alphabet", b)
	}
}
