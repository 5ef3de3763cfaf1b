package precision

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProbeInteger(t *testing.T) {
	magnitude, scale := Probe(0)
	require.Equal(t, 1, magnitude)
	require.Equal(t, 0, scale)

	magnitude, scale = Probe(42)
	require.Equal(t, 2, magnitude)
	require.Equal(t, 0, scale)
}

func TestProbeOneDecimal(t *testing.T) {
	_, scale := Probe(12.3)
	require.Equal(t, 1, scale)

	_, scale = Probe(0.1)
	require.Equal(t, 1, scale)
}

func TestProbeCapped(t *testing.T) {
	magnitude, scale := Probe(12345678901234.5)
	require.GreaterOrEqual(t, magnitude, MaxSignificantDigits)
	require.Equal(t, 0, scale)
	require.LessOrEqual(t, magnitude+scale, MaxSignificantDigits+1)
}

func TestScaleHelper(t *testing.T) {
	require.Equal(t, Scale(100.25), 2)
}
