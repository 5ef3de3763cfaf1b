// Package table implements the tabular transformer (C7): it factors a
// CSV dataset into parallel time, key-dictionary, and per-column value
// streams and fuses them into a single self-describing Frame, per
// spec section 6.2. Grounded on the dictionary-then-stream shape of
// original_source/tests/test_tse_csv.py's CSVEncoder tests
// (encode_keys/decode_key/decode_values) and on series.Frame's
// map-based (Un)marshalJSON pattern.
package table

import (
	"encoding/json"
	"fmt"

	"github.com/kavelabs/tscodec/alphabet"
	"github.com/kavelabs/tscodec/errs"
	"github.com/kavelabs/tscodec/numeric"
)

const frameDiscriminator = "CSVEncoder"

// ColumnMeta describes one numeric value column: either a constant
// (Static, recording StaticValue and contributing no stream) or a
// varying column with its own solved numeric.Params.
type ColumnMeta struct {
	Name   string
	Static bool

	StaticValue float64 // valid iff Static

	Kind      numeric.Kind // valid iff !Static
	Precision int
	Signed    bool
	Width     int
}

func (m ColumnMeta) params(base alphabet.Size) numeric.Params {
	return numeric.Params{
		Kind:      m.Kind,
		Precision: m.Precision,
		Signed:    m.Signed,
		Width:     m.Width,
		Base:      base,
	}
}

// Frame is the self-describing wire object for one encoded CSV table,
// per spec section 6.2.
type Frame struct {
	Columns      []string
	TimeColumn   string
	KeyColumns   []string
	EncodingSize alphabet.Size

	Start     int64
	TimeWidth int
	KeyWidth  int

	// Dictionary holds one entry per distinct key-tuple, in
	// first-seen order; each entry has one value per KeyColumns
	// entry.
	Dictionary [][]string

	ColumnsMeta []ColumnMeta

	RowCount int
	Data     string
}

func (f Frame) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.ToMap())
}

// ToMap renders the Frame as a generic JSON object.
func (f Frame) ToMap() map[string]any {
	dict := make([]any, len(f.Dictionary))
	for i, tuple := range f.Dictionary {
		row := make([]any, len(tuple))
		for j, v := range tuple {
			row[j] = v
		}
		dict[i] = row
	}

	meta := make([]any, len(f.ColumnsMeta))
	for i, cm := range f.ColumnsMeta {
		if cm.Static {
			meta[i] = map[string]any{"name": cm.Name, "static_value": cm.StaticValue, "precision": cm.Precision}
		} else {
			meta[i] = map[string]any{
				"name":      cm.Name,
				"kind":      int(cm.Kind),
				"precision": cm.Precision,
				"signed":    cm.Signed,
				"width":     cm.Width,
			}
		}
	}

	columns := make([]any, len(f.Columns))
	for i, c := range f.Columns {
		columns[i] = c
	}
	keyColumns := make([]any, len(f.KeyColumns))
	for i, c := range f.KeyColumns {
		keyColumns[i] = c
	}

	return map[string]any{
		"encoder":       frameDiscriminator,
		"columns":       columns,
		"time_column":   f.TimeColumn,
		"key_columns":   keyColumns,
		"encoding_size": int(f.EncodingSize),
		"start":         f.Start,
		"time_width":    f.TimeWidth,
		"key_width":     f.KeyWidth,
		"dictionary":    dict,
		"columns_meta":  meta,
		"row_count":     f.RowCount,
		"data":          f.Data,
	}
}

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

// FrameFromMap builds a Frame from an already-decoded JSON object.
func FrameFromMap(m map[string]any) (Frame, error) {
	var f Frame

	enc, _ := m["encoder"].(string)
	if enc != frameDiscriminator {
		return Frame{}, fmt.Errorf("%w: encoder field is %q, want %q", errs.ErrInconsistentHeader, enc, frameDiscriminator)
	}

	cols, err := stringSlice(m["columns"])
	if err != nil {
		return Frame{}, fmt.Errorf("%w: columns: %v", errs.ErrInconsistentHeader, err)
	}
	f.Columns = cols

	f.TimeColumn, _ = m["time_column"].(string)
	if f.TimeColumn == "" {
		return Frame{}, fmt.Errorf("%w: missing time_column", errs.ErrInconsistentHeader)
	}

	keyCols, err := stringSlice(m["key_columns"])
	if err != nil {
		return Frame{}, fmt.Errorf("%w: key_columns: %v", errs.ErrInconsistentHeader, err)
	}
	f.KeyColumns = keyCols

	sizeN, ok := asInt(m["encoding_size"])
	if !ok {
		return Frame{}, fmt.Errorf("%w: missing or invalid encoding_size", errs.ErrInconsistentHeader)
	}
	f.EncodingSize = alphabet.Size(sizeN)
	if !f.EncodingSize.Valid() {
		return Frame{}, errs.ErrUnsupportedAlphabet
	}

	start, ok := asInt(m["start"])
	if !ok {
		return Frame{}, fmt.Errorf("%w: missing or invalid start", errs.ErrInconsistentHeader)
	}
	f.Start = int64(start)

	tw, ok := asInt(m["time_width"])
	if !ok {
		return Frame{}, fmt.Errorf("%w: missing or invalid time_width", errs.ErrInconsistentHeader)
	}
	f.TimeWidth = tw

	kw, ok := asInt(m["key_width"])
	if !ok {
		return Frame{}, fmt.Errorf("%w: missing or invalid key_width", errs.ErrInconsistentHeader)
	}
	f.KeyWidth = kw

	dictRaw, ok := m["dictionary"].([]any)
	if !ok {
		return Frame{}, fmt.Errorf("%w: missing dictionary", errs.ErrInconsistentHeader)
	}
	dict := make([][]string, len(dictRaw))
	for i, rowRaw := range dictRaw {
		row, err := stringSlice(rowRaw)
		if err != nil {
			return Frame{}, fmt.Errorf("%w: dictionary[%d]: %v", errs.ErrInconsistentHeader, i, err)
		}
		dict[i] = row
	}
	f.Dictionary = dict

	metaRaw, ok := m["columns_meta"].([]any)
	if !ok {
		return Frame{}, fmt.Errorf("%w: missing columns_meta", errs.ErrInconsistentHeader)
	}
	meta := make([]ColumnMeta, len(metaRaw))
	for i, entryRaw := range metaRaw {
		entry, ok := entryRaw.(map[string]any)
		if !ok {
			return Frame{}, fmt.Errorf("%w: columns_meta[%d] not an object", errs.ErrInconsistentHeader, i)
		}
		cm, err := columnMetaFromMap(entry)
		if err != nil {
			return Frame{}, err
		}
		meta[i] = cm
	}
	f.ColumnsMeta = meta

	rc, ok := asInt(m["row_count"])
	if !ok {
		return Frame{}, fmt.Errorf("%w: missing or invalid row_count", errs.ErrInconsistentHeader)
	}
	f.RowCount = rc

	f.Data, _ = m["data"].(string)

	return f, nil
}

func columnMetaFromMap(m map[string]any) (ColumnMeta, error) {
	var cm ColumnMeta
	cm.Name, _ = m["name"].(string)
	if cm.Name == "" {
		return ColumnMeta{}, fmt.Errorf("%w: column meta missing name", errs.ErrInconsistentHeader)
	}

	// Static must be checked before varying, same reasoning as
	// series.FrameFromMap: a static column's object has no
	// kind/precision/width fields at all.
	if sv, ok := m["static_value"]; ok {
		cm.Static = true
		f, ok := asFloat(sv)
		if !ok {
			return ColumnMeta{}, fmt.Errorf("%w: invalid static_value for column %q", errs.ErrInconsistentHeader, cm.Name)
		}
		cm.StaticValue = f
		if p, ok := asInt(m["precision"]); ok {
			cm.Precision = p
		}
		return cm, nil
	}

	kindN, ok := asInt(m["kind"])
	if !ok {
		return ColumnMeta{}, fmt.Errorf("%w: missing kind for column %q", errs.ErrInconsistentHeader, cm.Name)
	}
	cm.Kind = numeric.Kind(kindN)

	precision, ok := asInt(m["precision"])
	if !ok {
		return ColumnMeta{}, fmt.Errorf("%w: missing precision for column %q", errs.ErrInconsistentHeader, cm.Name)
	}
	cm.Precision = precision

	signed, _ := m["signed"].(bool)
	cm.Signed = signed

	width, ok := asInt(m["width"])
	if !ok {
		return ColumnMeta{}, fmt.Errorf("%w: missing width for column %q", errs.ErrInconsistentHeader, cm.Name)
	}
	cm.Width = width

	return cm, nil
}

func stringSlice(v any) ([]string, error) {
	raw, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("not an array")
	}
	out := make([]string, len(raw))
	for i, elem := range raw {
		s, ok := elem.(string)
		if !ok {
			return nil, fmt.Errorf("element %d not a string", i)
		}
		out[i] = s
	}
	return out, nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	default:
		return 0, false
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
