// Package tscodec provides a compact textual codec for numeric
// time-series and tabular data.
//
// Given a collection of observations — each a (timestamp, value) pair
// — it produces a fixed-width textual representation over a
// configurable positional alphabet (base 16, 64, or 91), and
// losslessly reconstructs the original observations. A companion
// document transformer walks JSON and CSV documents, replacing every
// recognized time-series array with an encoded frame in place.
//
// # Core Features
//
//   - Minimal sufficient parameter derivation per batch (width,
//     signedness, decimal precision, regular-vs-irregular timestamps)
//   - Four self-describing wire variants, chosen automatically:
//     regular+varying, irregular+varying, regular+static, irregular+static
//   - JSON tree rewriting that detects and replaces embedded series in
//     place, leaving sibling fields untouched
//   - CSV factoring into parallel time, key-dictionary, and per-column
//     value streams
//   - Optional transport-layer compression (None, Zstd, S2, LZ4),
//     applied outside the core codec
//
// # Basic Usage
//
// Encoding a series of observations:
//
//	import "github.com/kavelabs/tscodec"
//
//	obs := []series.Observation{
//	    {T: 1618192800, V: 1.5},
//	    {T: 1618196400, V: 2.25},
//	}
//	frame, err := tscodec.EncodeSeries(obs, "UTC", "Value")
//
// Decoding it back:
//
//	decoded, err := tscodec.DecodeSeries(frame)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the
// series, document, and table packages, covering the most common use
// cases. The wrappers take the alphabet size, the sort-before-encode
// setting and the CSV key columns as arguments or options; each call
// builds a fresh codec. Use those packages directly to keep a codec or
// transformer across calls.
package tscodec

import (
	"github.com/kavelabs/tscodec/alphabet"
	"github.com/kavelabs/tscodec/compress"
	"github.com/kavelabs/tscodec/document"
	"github.com/kavelabs/tscodec/format"
	"github.com/kavelabs/tscodec/series"
	"github.com/kavelabs/tscodec/table"
)

// EncodeSeries derives minimal codec parameters for obs and encodes
// them into a self-describing Frame. tsKey/tsValue are carried in the
// frame header for the document transformer to use when reconstructing
// JSON field names on decode.
//
// Available options:
//   - series.WithBase(alphabet.Base16|Base64|Base91)
//   - series.WithSortValues(true|false)
func EncodeSeries(obs []series.Observation, tsKey, tsValue string, opts ...series.Option) (series.Frame, error) {
	codec, err := series.NewCodec(opts...)
	if err != nil {
		return series.Frame{}, err
	}
	return codec.Encode(obs, tsKey, tsValue)
}

// DecodeSeries reconstructs the observations encoded in f.
func DecodeSeries(f series.Frame, opts ...series.Option) ([]series.Observation, error) {
	codec, err := series.NewCodec(append([]series.Option{series.WithBase(f.EncodingSize)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return codec.Decode(f)
}

// EncodeSeriesCompressed encodes obs exactly as EncodeSeries, renders
// the Frame as JSON, and compresses it with the given transport-layer
// codec. Compression sits outside the core series package: it trades
// CPU for a smaller payload on top of the already-compact textual
// encoding, and is meaningful only once data leaves memory, so it is
// never embedded in the wire Frame itself.
func EncodeSeriesCompressed(obs []series.Observation, tsKey, tsValue string, compression format.CompressionType, opts ...series.Option) ([]byte, error) {
	frame, err := EncodeSeries(obs, tsKey, tsValue, opts...)
	if err != nil {
		return nil, err
	}
	return marshalCompressed(frame, compression)
}

// DecodeSeriesCompressed reverses EncodeSeriesCompressed.
func DecodeSeriesCompressed(data []byte, compression format.CompressionType) ([]series.Observation, error) {
	var frame series.Frame
	if err := unmarshalCompressed(data, compression, &frame); err != nil {
		return nil, err
	}
	codec, err := series.NewCodec(series.WithBase(frame.EncodingSize))
	if err != nil {
		return nil, err
	}
	return codec.Decode(frame)
}

// EncodeJSON walks raw JSON, replacing every array recognized as a
// time series (elements carrying both tsKey and tsValue) with its
// encoded frame.
func EncodeJSON(raw []byte, tsKey, tsValue string, base alphabet.Size, sortValues bool) ([]byte, error) {
	return document.EncodeJSON(raw, tsKey, tsValue, base, sortValues)
}

// DecodeJSON reverses EncodeJSON, replacing every encoded frame with
// its reconstructed {ts_key, ts_value} rows.
func DecodeJSON(raw []byte) ([]byte, error) {
	return document.DecodeJSON(raw)
}

// EncodeTable factors csvText into time, key-dictionary, and per-column
// value streams and fuses them into a table.Frame. Numeric value
// columns are every column other than timeColumn and keyColumns.
//
// Available options:
//   - table.WithSortValues(true|false)
func EncodeTable(csvText, timeColumn string, keyColumns []string, base alphabet.Size, opts ...table.Option) (table.Frame, error) {
	codec := table.NewCodec(timeColumn, keyColumns, base)
	return codec.Encode(csvText, opts...)
}

// DecodeTable reconstructs the original CSV text from f.
func DecodeTable(f table.Frame) (string, error) {
	codec := table.NewCodec(f.TimeColumn, f.KeyColumns, f.EncodingSize)
	return codec.Decode(f)
}

// jsonMarshaler/jsonUnmarshaler let marshalCompressed/unmarshalCompressed
// work over either series.Frame or table.Frame without importing
// encoding/json here just for the interface names.
type jsonMarshaler interface {
	MarshalJSON() ([]byte, error)
}

type jsonUnmarshaler interface {
	UnmarshalJSON([]byte) error
}

func marshalCompressed(v jsonMarshaler, compression format.CompressionType) ([]byte, error) {
	raw, err := v.MarshalJSON()
	if err != nil {
		return nil, err
	}

	codec, err := compress.CreateCodec(compression)
	if err != nil {
		return nil, err
	}

	return codec.Compress(raw)
}

func unmarshalCompressed(data []byte, compression format.CompressionType, v jsonUnmarshaler) error {
	codec, err := compress.CreateCodec(compression)
	if err != nil {
		return err
	}

	raw, err := codec.Decompress(data)
	if err != nil {
		return err
	}
	return v.UnmarshalJSON(raw)
}
