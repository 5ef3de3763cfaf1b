package series

import (
	"encoding/json"
	"testing"

	"github.com/kavelabs/tscodec/alphabet"
	"github.com/stretchr/testify/require"
)

func regularObservations(n int, start, interval int64, value float64) []Observation {
	out := make([]Observation, n)
	t := start
	for i := range out {
		out[i] = Observation{T: t, V: value}
		t += interval
	}
	return out
}

func TestS1RegularHourlyBase64(t *testing.T) {
	obs := make([]Observation, 75)
	t0 := int64(1618192800)
	for i := range obs {
		obs[i] = Observation{T: t0 + int64(i)*3600, V: float64(i) / 10.0}
	}

	codec, err := NewCodec(WithBase(alphabet.Base64))
	require.NoError(t, err)

	frame, err := codec.Encode(obs, "UTC", "Value")
	require.NoError(t, err)

	require.True(t, frame.Regular)
	require.False(t, frame.Static)
	require.Equal(t, int64(3600), frame.Interval)
	require.Equal(t, 1, frame.FloatPrecision)
	require.Equal(t, 0, frame.TimeEncodingDepth)

	decoded, err := codec.Decode(frame)
	require.NoError(t, err)
	require.Len(t, decoded, 75)
	for i, o := range decoded {
		require.Equal(t, obs[i].T, o.T)
		require.InDelta(t, obs[i].V, o.V, 1e-9)
	}
}

func TestS4StaticZeroQuarterHourly(t *testing.T) {
	obs := regularObservations(48, 1618192800, 900, 0.0)

	codec, err := NewCodec(WithBase(alphabet.Base64))
	require.NoError(t, err)

	frame, err := codec.Encode(obs, "UTC", "Value")
	require.NoError(t, err)

	require.True(t, frame.Static)
	require.True(t, frame.Regular)
	require.Equal(t, float64(0), frame.StaticValue)
	require.Equal(t, 48, frame.StaticCount)
	require.Equal(t, int64(900), frame.Interval)
	require.Empty(t, frame.Data)

	decoded, err := codec.Decode(frame)
	require.NoError(t, err)
	require.Len(t, decoded, 48)
	for _, o := range decoded {
		require.Equal(t, 0.0, o.V)
	}
}

func TestStaticNonZero(t *testing.T) {
	obs := regularObservations(10, 1000, 60, 400.0)
	codec, err := NewCodec()
	require.NoError(t, err)

	frame, err := codec.Encode(obs, "UTC", "Value")
	require.NoError(t, err)
	require.True(t, frame.Static)
	require.Equal(t, 400.0, frame.StaticValue)

	decoded, err := codec.Decode(frame)
	require.NoError(t, err)
	for _, o := range decoded {
		require.Equal(t, 400.0, o.V)
	}
}

func TestIrregularSeries(t *testing.T) {
	obs := []Observation{
		{T: 100, V: 1.5},
		{T: 250, V: -2.25},
		{T: 450, V: 3.0},
	}
	codec, err := NewCodec(WithBase(alphabet.Base91))
	require.NoError(t, err)

	frame, err := codec.Encode(obs, "t", "v")
	require.NoError(t, err)
	require.False(t, frame.Regular)
	require.True(t, frame.Signed)

	decoded, err := codec.Decode(frame)
	require.NoError(t, err)
	require.Len(t, decoded, 3)
	for i, o := range obs {
		require.Equal(t, o.T, decoded[i].T)
		require.InDelta(t, o.V, decoded[i].V, 1e-9)
	}
}

func TestFrameJSONRoundTrip(t *testing.T) {
	obs := []Observation{{T: 100, V: 1.5}, {T: 250, V: -2.25}, {T: 400, V: 3.0}}
	codec, err := NewCodec(WithBase(alphabet.Base91))
	require.NoError(t, err)

	frame, err := codec.Encode(obs, "UTC", "Value")
	require.NoError(t, err)

	raw, err := json.Marshal(frame)
	require.NoError(t, err)

	var roundTripped Frame
	require.NoError(t, json.Unmarshal(raw, &roundTripped))
	require.Equal(t, frame, roundTripped)
}

func TestFrameJSONOmitsDataWhenRegularStatic(t *testing.T) {
	obs := regularObservations(4, 0, 60, 0)
	codec, err := NewCodec()
	require.NoError(t, err)
	frame, err := codec.Encode(obs, "UTC", "Value")
	require.NoError(t, err)

	raw, err := json.Marshal(frame)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	_, hasData := m["data"]
	require.False(t, hasData)
	require.Contains(t, m, "static_value")
	require.Contains(t, m, "static_count")
}

// TestS2KnownLiteralSelfConsistent exercises the exact base-91 literal
// from the reference implementation's test corpus
// (get_encoded_sample_unsorted_base91 in
// original_source/tests/test_tse_json.py). We don't have the original
// 75-point dataset that produced it, so this test checks the byte-exact
// properties the literal locks down (alphabet ordering, rounding,
// bias, time-then-value token order): decode the literal, then
// re-encode the decoded observations with the same header parameters
// and confirm the body reproduces the literal exactly.
func TestS2KnownLiteralSelfConsistent(t *testing.T) {
	const literal = "0008M0dp860=B7`A=15}BRq6pB%C7DCF_7#CtN7!D3.7_DhY7_D@^6`EVj6JE*55jFJu5mFxG5pG7%5sGlR5{G`<6XHZc6)H.|6,INn6;I_96>JBy6!JpK6mJ~*6V1R-7.1%M7_2F,7D2tX6u33]6A3hi5#3[45U4Vt4`4*F4x5J$4V5xQ4467;4j6lb4{6`{5f7Zm5v7/85.8Nx608_J5+9B)5q9pU5V9~?5nAdf5&KdV6QK<@6MLRg6HL%26DMFr68MtD64N3!5;NhO5yN@/5hOVZ5RO)`5CPJk4{Px652Q7v58QlH5DQ`&5JRZS5PR.=5VSNd5iS-~5wTBo5*TpA5^T~z68UdL6MU<+6LVRW6LV$[6LWFh6LWt36LX3s6KXhE69X@#5|YVP5;Y):5$ZJa5tZw}5ia7l5xal75/a`w5~bZI6Eb.(6UcNT6kc->6:dBe7Gdp07ld~p7<edB8Ie<-8ofRM8uf$,8-gFX8&gs]8.h3i8>hh48^h@t8iiVF84i)$7tjJQ7Hjw;6)k7b6Xkk{6lk`m6-lZ86;l.x70mNJ7Fm-)7UnBU7,no?8Pn~f8(od19Mo<q9$pRCAJp$_ASqFNAbqs.Ajr3YAsrg^A-r@jA)sV5Afs)uACtJG9.tw%9ju7R9Huk<8=u`c8pvY|8Ov.n7}wN97xw-y7WxBK74xo*7Gx~V7Tyc@7fy<g7rzR27#z$r7;"

	frame := Frame{
		Start:             1618192800,
		TSKey:             "UTC",
		TSValue:           "Value",
		EncodingSize:      alphabet.Base91,
		Signed:            false,
		Regular:           false,
		TimeEncodingDepth: 3,
		Static:            false,
		EncodingDepth:     2,
		FloatPrecision:    1,
		Data:              literal,
	}

	codec, err := NewCodec(WithBase(alphabet.Base91))
	require.NoError(t, err)

	decoded, err := codec.Decode(frame)
	require.NoError(t, err)
	require.NotEmpty(t, decoded)

	plan := Plan{
		Start:    frame.Start,
		Regular:  false,
		TimeParams: frame.timeParams(),
		ValueParams: frame.valueParams(),
	}
	reencoded, err := encodeBody(decoded, plan)
	require.NoError(t, err)
	require.Equal(t, literal, reencoded)
}
