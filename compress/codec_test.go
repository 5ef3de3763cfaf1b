package compress

import (
	"testing"

	"github.com/kavelabs/tscodec/format"
	"github.com/stretchr/testify/require"
)

func TestRoundTripAllCodecs(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, repeated: the quick brown fox jumps over the lazy dog")

	for _, ct := range []format.CompressionType{format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		codec, err := CreateCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(data)
		require.NoError(t, err)

		decompressed, err := codec.Decompress(compressed)
		require.NoError(t, err)
		require.Equal(t, data, decompressed)
	}
}

func TestCreateCodecUnsupported(t *testing.T) {
	_, err := CreateCodec(format.CompressionType(99))
	require.Error(t, err)
}
