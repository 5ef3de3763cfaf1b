package document

import (
	"testing"

	"github.com/kavelabs/tscodec/alphabet"
	"github.com/kavelabs/tscodec/errs"
	"github.com/stretchr/testify/require"
)

func seriesArray(points [][2]any) []any {
	out := make([]any, len(points))
	for i, p := range points {
		out[i] = map[string]any{"UTC": p[0], "Value": p[1]}
	}
	return out
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	doc := map[string]any{
		"AttributeName":          "Temperature",
		"AttributeUnitOfMeasure": "C",
		"Series": seriesArray([][2]any{
			{"2021-04-12T00:00:00Z", 1.5},
			{"2021-04-12T01:00:00Z", -2.25},
			{"2021-04-12T02:00:00Z", 3.0},
		}),
	}

	tr := New("UTC", "Value", alphabet.Base91)
	encoded, err := tr.Encode(doc)
	require.NoError(t, err)

	m, ok := encoded.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Temperature", m["AttributeName"])
	require.Equal(t, "C", m["AttributeUnitOfMeasure"])

	frameMap, ok := m["Series"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "TimeSeriesEncoder", frameMap["encoder"])

	decoded, err := tr.Decode(encoded)
	require.NoError(t, err)

	dm, ok := decoded.(map[string]any)
	require.True(t, ok)
	rows, ok := dm["Series"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 3)

	row0 := rows[0].(map[string]any)
	require.Equal(t, "2021-04-12T00:00:00Z", row0["UTC"])
	require.InDelta(t, 1.5, row0["Value"].(float64), 1e-9)
}

func TestEncodeStaticValueZero(t *testing.T) {
	doc := seriesArray([][2]any{
		{"2021-04-12T00:00:00Z", 0.0},
		{"2021-04-12T01:00:00Z", 0.0},
		{"2021-04-12T02:00:00Z", 0.0},
	})

	tr := New("UTC", "Value", alphabet.Base64)
	encoded, err := tr.Encode(doc)
	require.NoError(t, err)

	m := encoded.(map[string]any)
	require.Equal(t, 0.0, m["static_value"])
	require.Equal(t, 3, m["static_count"])
	_, hasData := m["data"]
	require.False(t, hasData)

	decoded, err := tr.Decode(encoded)
	require.NoError(t, err)
	rows := decoded.([]any)
	require.Len(t, rows, 3)
	for _, r := range rows {
		require.Equal(t, 0.0, r.(map[string]any)["Value"])
	}
}

func TestEncodeStaticValueNonZero(t *testing.T) {
	doc := seriesArray([][2]any{
		{"2021-04-12T00:00:00Z", 42.0},
		{"2021-04-12T01:00:00Z", 42.0},
	})

	tr := New("UTC", "Value", alphabet.Base64)
	encoded, err := tr.Encode(doc)
	require.NoError(t, err)

	decoded, err := tr.Decode(encoded)
	require.NoError(t, err)
	for _, r := range decoded.([]any) {
		require.Equal(t, 42.0, r.(map[string]any)["Value"])
	}
}

func TestEncodeStaticValueNegative(t *testing.T) {
	doc := seriesArray([][2]any{
		{"2021-04-12T00:00:00Z", -7.5},
		{"2021-04-12T01:00:00Z", -7.5},
	})

	tr := New("UTC", "Value", alphabet.Base64)
	encoded, err := tr.Encode(doc)
	require.NoError(t, err)

	decoded, err := tr.Decode(encoded)
	require.NoError(t, err)
	for _, r := range decoded.([]any) {
		require.InDelta(t, -7.5, r.(map[string]any)["Value"].(float64), 1e-9)
	}
}

func TestNonSeriesArrayPassesThrough(t *testing.T) {
	doc := map[string]any{
		"Tags": []any{"a", "b", "c"},
	}
	tr := New("UTC", "Value", alphabet.Base64)
	encoded, err := tr.Encode(doc)
	require.NoError(t, err)
	require.Equal(t, doc, encoded)
}

func TestMalformedTimestampInSeriesArray(t *testing.T) {
	doc := seriesArray([][2]any{
		{"not-a-timestamp", 1.0},
		{"2021-04-12T01:00:00Z", 2.0},
	})
	tr := New("UTC", "Value", alphabet.Base64)
	_, err := tr.Encode(doc)
	require.ErrorIs(t, err, errs.ErrTimestampParse)
}

func TestDecodeNonFrameObjectRecurses(t *testing.T) {
	doc := map[string]any{
		"Nested": map[string]any{
			"Leaf": 1.0,
		},
	}
	tr := &Transformer{}
	decoded, err := tr.Decode(doc)
	require.NoError(t, err)
	require.Equal(t, doc, decoded)
}

func TestJSONRoundTripHelpers(t *testing.T) {
	raw := []byte(`{
		"AttributeName": "Humidity",
		"Series": [
			{"UTC": "2021-04-12T00:00:00Z", "Value": 10.1},
			{"UTC": "2021-04-12T01:00:00Z", "Value": 10.2},
			{"UTC": "2021-04-12T02:00:00Z", "Value": 10.3}
		]
	}`)

	encoded, err := EncodeJSON(raw, "UTC", "Value", alphabet.Base64, false)
	require.NoError(t, err)

	decoded, err := DecodeJSON(encoded)
	require.NoError(t, err)
	require.Contains(t, string(decoded), "Humidity")
	require.Contains(t, string(decoded), "2021-04-12T00:00:00Z")
}
