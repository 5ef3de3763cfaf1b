package table

import (
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kavelabs/tscodec/alphabet"
	"github.com/kavelabs/tscodec/errs"
	"github.com/kavelabs/tscodec/internal/hash"
	"github.com/kavelabs/tscodec/internal/options"
	"github.com/kavelabs/tscodec/numeric"
	"github.com/kavelabs/tscodec/precision"
)

// timeLayout matches document's: RFC3339 pinned to a literal "Z".
const timeLayout = "2006-01-02T15:04:05Z"

// encodeConfig holds Encode-time settings, applied through Option.
type encodeConfig struct {
	sortValues bool
}

// Option configures a single Encode call.
type Option = options.Option[*encodeConfig]

// WithSortValues stably sorts rows by time_column before encoding.
func WithSortValues(sort bool) Option {
	return options.NoError(func(c *encodeConfig) {
		c.sortValues = sort
	})
}

// Codec encodes/decodes one CSV table into/from a Frame (C7).
type Codec struct {
	TimeColumn string
	KeyColumns []string
	Base       alphabet.Size
}

// NewCodec returns a Codec for the given time/key columns. Base
// defaults to alphabet.Base64 if zero.
func NewCodec(timeColumn string, keyColumns []string, base alphabet.Size) *Codec {
	if base == 0 {
		base = alphabet.Base64
	}
	return &Codec{TimeColumn: timeColumn, KeyColumns: keyColumns, Base: base}
}

type parsedRow struct {
	t      int64
	keyIdx int // index into the dictionary slice
	values []float64
}

// Encode parses csvText (header row + data rows), factors it into
// time/key-dictionary/value streams, and fuses them into a Frame.
func (c *Codec) Encode(csvText string, opts ...Option) (Frame, error) {
	cfg := encodeConfig{}
	if err := options.Apply(&cfg, opts...); err != nil {
		return Frame{}, err
	}

	r := csv.NewReader(strings.NewReader(csvText))
	// Row length is checked below against the header, so a short or long
	// row surfaces as ErrColumnMismatch rather than a reader error.
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return Frame{}, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}
	if len(records) < 1 {
		return Frame{}, errs.ErrEmptySeries
	}

	header := records[0]
	rows := records[1:]
	if len(rows) == 0 {
		return Frame{}, errs.ErrEmptySeries
	}

	timeIdx := -1
	keyIdxs := make([]int, len(c.KeyColumns))
	for i := range c.KeyColumns {
		keyIdxs[i] = -1
	}
	for i, name := range header {
		if name == c.TimeColumn {
			timeIdx = i
		}
		for j, k := range c.KeyColumns {
			if name == k {
				keyIdxs[j] = i
			}
		}
	}
	if timeIdx == -1 {
		return Frame{}, fmt.Errorf("%w: time_column %q not found", errs.ErrInconsistentHeader, c.TimeColumn)
	}
	for i, idx := range keyIdxs {
		if idx == -1 {
			return Frame{}, fmt.Errorf("%w: key_column %q not found", errs.ErrInconsistentHeader, c.KeyColumns[i])
		}
	}

	excluded := map[int]bool{timeIdx: true}
	for _, idx := range keyIdxs {
		excluded[idx] = true
	}
	var valueIdxs []int
	var valueNames []string
	for i, name := range header {
		if !excluded[i] {
			valueIdxs = append(valueIdxs, i)
			valueNames = append(valueNames, name)
		}
	}

	buckets := map[uint64][]int{}
	var dictionary [][]string
	parsed := make([]parsedRow, len(rows))

	for i, rec := range rows {
		if len(rec) != len(header) {
			return Frame{}, fmt.Errorf("%w: row %d has %d columns, want %d", errs.ErrColumnMismatch, i, len(rec), len(header))
		}

		t, err := parseTimestamp(rec[timeIdx])
		if err != nil {
			return Frame{}, err
		}

		tuple := make([]string, len(keyIdxs))
		for j, idx := range keyIdxs {
			tuple[j] = rec[idx]
		}
		dictIdx := internKey(tuple, buckets, &dictionary)

		values := make([]float64, len(valueIdxs))
		for j, idx := range valueIdxs {
			v, err := strconv.ParseFloat(rec[idx], 64)
			if err != nil {
				return Frame{}, fmt.Errorf("%w: row %d column %q: %v", errs.ErrMalformedInput, i, header[idx], err)
			}
			values[j] = v
		}

		parsed[i] = parsedRow{t: t, keyIdx: dictIdx, values: values}
	}

	if cfg.sortValues {
		sort.SliceStable(parsed, func(i, j int) bool { return parsed[i].t < parsed[j].t })
	}

	start := parsed[0].t
	for _, p := range parsed {
		if p.t < start {
			start = p.t
		}
	}
	maxOffset := int64(0)
	for _, p := range parsed {
		if off := p.t - start; off > maxOffset {
			maxOffset = off
		}
	}
	timeWidth := numeric.MinWidth(c.Base, float64(maxOffset))
	keyWidth := numeric.MinWidth(c.Base, float64(len(dictionary)-1))

	colsMeta := make([]ColumnMeta, len(valueNames))
	for col, name := range valueNames {
		vmin, vmax := parsed[0].values[col], parsed[0].values[col]
		smax := 0
		for _, p := range parsed {
			v := p.values[col]
			if v < vmin {
				vmin = v
			}
			if v > vmax {
				vmax = v
			}
			if _, scale := precision.Probe(v); scale > smax {
				smax = scale
			}
		}
		signed := vmin < 0
		maxAbs := vmax
		if -vmin > maxAbs {
			maxAbs = -vmin
		}

		if vmin == vmax {
			colsMeta[col] = ColumnMeta{Name: name, Static: true, StaticValue: vmax, Precision: smax}
			continue
		}

		magnitude := maxAbs
		for i := 0; i < smax; i++ {
			magnitude *= 10
		}
		if signed {
			magnitude *= 2
		}
		kind := numeric.KindInt
		if smax > 0 {
			kind = numeric.KindFloat
		}
		colsMeta[col] = ColumnMeta{
			Name:      name,
			Kind:      kind,
			Precision: smax,
			Signed:    signed,
			Width:     numeric.MinWidth(c.Base, magnitude),
		}
	}

	timeParams := numeric.Params{Kind: numeric.KindInt, Width: timeWidth, Base: c.Base}
	keyParams := numeric.Params{Kind: numeric.KindInt, Width: keyWidth, Base: c.Base}

	offsets := make([]int64, len(parsed))
	keyVals := make([]int64, len(parsed))
	for i, p := range parsed {
		offsets[i] = p.t - start
		keyVals[i] = int64(p.keyIdx)
	}
	timeEnc, err := numeric.EncodeInts(offsets, timeParams)
	if err != nil {
		return Frame{}, err
	}
	keyEnc, err := numeric.EncodeInts(keyVals, keyParams)
	if err != nil {
		return Frame{}, err
	}
	timeToks := chunk(timeEnc, timeWidth)
	keyToks := chunk(keyEnc, keyWidth)

	colToks := make([][]string, len(valueNames))
	for col, meta := range colsMeta {
		if meta.Static {
			continue
		}
		vals := make([]float64, len(parsed))
		for i, p := range parsed {
			vals[i] = p.values[col]
		}
		enc, err := numeric.Encode(vals, meta.params(c.Base))
		if err != nil {
			return Frame{}, err
		}
		colToks[col] = chunk(enc, meta.Width)
	}

	var data strings.Builder
	for i := range parsed {
		data.WriteString(timeToks[i])
		data.WriteString(keyToks[i])
		for col, meta := range colsMeta {
			if meta.Static {
				continue
			}
			data.WriteString(colToks[col][i])
		}
	}

	return Frame{
		Columns:      header,
		TimeColumn:   c.TimeColumn,
		KeyColumns:   c.KeyColumns,
		EncodingSize: c.Base,
		Start:        start,
		TimeWidth:    timeWidth,
		KeyWidth:     keyWidth,
		Dictionary:   dictionary,
		ColumnsMeta:  colsMeta,
		RowCount:     len(parsed),
		Data:         data.String(),
	}, nil
}

// internKey resolves tuple to a dictionary index, appending a new
// first-seen entry if it hasn't been seen before. Hash collisions
// within a bucket are disambiguated by direct string-slice equality.
func internKey(tuple []string, buckets map[uint64][]int, dictionary *[][]string) int {
	h := hash.TupleID(tuple)
	for _, idx := range buckets[h] {
		if tupleEqual((*dictionary)[idx], tuple) {
			return idx
		}
	}
	idx := len(*dictionary)
	*dictionary = append(*dictionary, tuple)
	buckets[h] = append(buckets[h], idx)
	return idx
}

func tupleEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
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

func parseTimestamp(raw string) (int64, error) {
	ts, err := time.Parse(timeLayout, raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errs.ErrTimestampParse, raw)
	}
	return ts.Unix(), nil
}

// Decode reconstructs the original CSV text from f.
func (c *Codec) Decode(f Frame) (string, error) {
	row := f.TimeWidth + f.KeyWidth
	for _, meta := range f.ColumnsMeta {
		if !meta.Static {
			row += meta.Width
		}
	}
	if row == 0 || len(f.Data)%row != 0 {
		return "", fmt.Errorf("%w: body length %d not a multiple of row width %d", errs.ErrMalformedInput, len(f.Data), row)
	}
	n := len(f.Data) / row

	timeParams := numeric.Params{Kind: numeric.KindInt, Width: f.TimeWidth, Base: f.EncodingSize}
	keyParams := numeric.Params{Kind: numeric.KindInt, Width: f.KeyWidth, Base: f.EncodingSize}

	buf := &strings.Builder{}
	w := csv.NewWriter(buf)
	if err := w.Write(f.Columns); err != nil {
		return "", err
	}

	colIdx := make(map[string]int, len(f.Columns))
	for i, name := range f.Columns {
		colIdx[name] = i
	}

	for i := 0; i < n; i++ {
		rec := f.Data[i*row : (i+1)*row]
		pos := 0

		timeTok := rec[pos : pos+f.TimeWidth]
		pos += f.TimeWidth
		offs, err := numeric.DecodeInts(timeTok, timeParams)
		if err != nil {
			return "", err
		}

		keyTok := rec[pos : pos+f.KeyWidth]
		pos += f.KeyWidth
		keyIdxVal, err := numeric.DecodeInts(keyTok, keyParams)
		if err != nil {
			return "", err
		}
		if keyIdxVal[0] < 0 || int(keyIdxVal[0]) >= len(f.Dictionary) {
			return "", fmt.Errorf("%w: dictionary index %d out of range", errs.ErrMalformedInput, keyIdxVal[0])
		}
		tuple := f.Dictionary[keyIdxVal[0]]

		out := make([]string, len(f.Columns))
		out[colIdx[f.TimeColumn]] = time.Unix(f.Start+offs[0], 0).UTC().Format(timeLayout)
		for j, name := range f.KeyColumns {
			out[colIdx[name]] = tuple[j]
		}

		for _, meta := range f.ColumnsMeta {
			if meta.Static {
				out[colIdx[meta.Name]] = formatValue(meta.StaticValue, meta)
				continue
			}
			tok := rec[pos : pos+meta.Width]
			pos += meta.Width
			vals, err := numeric.Decode(tok, meta.params(f.EncodingSize))
			if err != nil {
				return "", err
			}
			out[colIdx[meta.Name]] = formatValue(vals[0], meta)
		}

		if err := w.Write(out); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatValue(v float64, meta ColumnMeta) string {
	if meta.Static || meta.Kind == numeric.KindFloat {
		return strconv.FormatFloat(v, 'f', meta.Precision, 64)
	}
	return strconv.FormatFloat(v, 'f', 0, 64)
}
