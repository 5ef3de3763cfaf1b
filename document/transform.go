// Package document implements the JSON tree transformer (C6): a
// recursive rewrite of an arbitrary decoded-JSON tree
// (map[string]any/[]any/scalars) that detects embedded time-series
// arrays and swaps them for series.Frame objects on encode, and
// reverses the swap on decode. Grounded on the recursive-descent tree
// walks in original_source/tests/test_tse_json.py (sortvalues,
// get_count_of_key) and the wire shape embedded in that file's
// get_encoded_sample_unsorted_base91 fixture.
package document

import (
	"fmt"
	"time"

	"github.com/kavelabs/tscodec/alphabet"
	"github.com/kavelabs/tscodec/errs"
	"github.com/kavelabs/tscodec/series"
)

// timeLayout is RFC3339 pinned to a literal trailing "Z": observations
// are always stored and rendered in UTC.
const timeLayout = "2006-01-02T15:04:05Z"

// Transformer walks a decoded-JSON tree, encoding/decoding time series
// arrays under the configured key names wherever they appear.
type Transformer struct {
	TSKey      string
	TSValue    string
	Base       alphabet.Size
	SortValues bool
}

// New returns a Transformer with the given ts_key/ts_value field names
// and alphabet size. Base defaults to alphabet.Base64 if zero.
func New(tsKey, tsValue string, base alphabet.Size) *Transformer {
	if base == 0 {
		base = alphabet.Base64
	}
	return &Transformer{TSKey: tsKey, TSValue: tsValue, Base: base}
}

// Encode walks doc, replacing every array recognized as a time series
// (every element an object carrying both t.TSKey and t.TSValue) with
// its encoded series.Frame, rendered as a map[string]any. All other
// structure is preserved and recursed into; scalars pass through.
func (t *Transformer) Encode(doc any) (any, error) {
	switch v := doc.(type) {
	case []any:
		if isSeriesArray(v, t.TSKey, t.TSValue) {
			obs, err := t.toObservations(v)
			if err != nil {
				return nil, err
			}
			frame, err := t.encodeSeries(obs)
			if err != nil {
				return nil, err
			}
			return frame.ToMap(), nil
		}
		out := make([]any, len(v))
		for i, elem := range v {
			encoded, err := t.Encode(elem)
			if err != nil {
				return nil, err
			}
			out[i] = encoded
		}
		return out, nil

	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			encoded, err := t.Encode(val)
			if err != nil {
				return nil, err
			}
			out[k] = encoded
		}
		return out, nil

	default:
		return v, nil
	}
}

// isSeriesArray reports whether arr is a time-series array under the
// given field names: non-empty, and every element an object carrying a
// string tsKey and a numeric tsValue. Parse validity of the timestamp
// string is checked separately, in toObservations, so a malformed
// timestamp inside an otherwise-recognized series surfaces
// errs.ErrTimestampParse rather than being silently treated as a plain
// array.
func isSeriesArray(arr []any, tsKey, tsValue string) bool {
	if len(arr) == 0 {
		return false
	}
	for _, elem := range arr {
		row, ok := elem.(map[string]any)
		if !ok {
			return false
		}
		if _, ok := row[tsKey].(string); !ok {
			return false
		}
		if _, ok := asNumber(row[tsValue]); !ok {
			return false
		}
	}
	return true
}

// toObservations converts a detected series array into Observations,
// parsing each ts_key as an RFC3339 UTC timestamp.
func (t *Transformer) toObservations(arr []any) ([]series.Observation, error) {
	obs := make([]series.Observation, len(arr))
	for i, elem := range arr {
		row := elem.(map[string]any)
		tsRaw := row[t.TSKey].(string)
		val, _ := asNumber(row[t.TSValue])

		sec, err := parseTimestamp(tsRaw)
		if err != nil {
			return nil, err
		}
		obs[i] = series.Observation{T: sec, V: val}
	}
	return obs, nil
}

func (t *Transformer) encodeSeries(obs []series.Observation) (series.Frame, error) {
	codec, err := series.NewCodec(series.WithBase(t.Base), series.WithSortValues(t.SortValues))
	if err != nil {
		return series.Frame{}, err
	}
	return codec.Encode(obs, t.TSKey, t.TSValue)
}

// Decode walks doc, replacing every object recognized as an encoded
// frame (its "encoder" field matching the TimeSeriesEncoder
// discriminator) with a []any of {ts_key, ts_value} row objects.
func (t *Transformer) Decode(doc any) (any, error) {
	switch v := doc.(type) {
	case map[string]any:
		if isFrame(v) {
			return t.decodeFrame(v)
		}
		out := make(map[string]any, len(v))
		for k, val := range v {
			decoded, err := t.Decode(val)
			if err != nil {
				return nil, err
			}
			out[k] = decoded
		}
		return out, nil

	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			decoded, err := t.Decode(elem)
			if err != nil {
				return nil, err
			}
			out[i] = decoded
		}
		return out, nil

	default:
		return v, nil
	}
}

func isFrame(m map[string]any) bool {
	enc, ok := m["encoder"].(string)
	return ok && enc == "TimeSeriesEncoder"
}

func (t *Transformer) decodeFrame(m map[string]any) (any, error) {
	frame, err := series.FrameFromMap(m)
	if err != nil {
		return nil, err
	}

	codec, err := series.NewCodec(series.WithBase(frame.EncodingSize))
	if err != nil {
		return nil, err
	}

	obs, err := codec.Decode(frame)
	if err != nil {
		return nil, err
	}

	rows := make([]any, len(obs))
	for i, o := range obs {
		rows[i] = map[string]any{
			frame.TSKey:   time.Unix(o.T, 0).UTC().Format(timeLayout),
			frame.TSValue: o.V,
		}
	}
	return rows, nil
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func parseTimestamp(raw string) (int64, error) {
	ts, err := time.Parse(timeLayout, raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errs.ErrTimestampParse, raw)
	}
	return ts.Unix(), nil
}
