package document

import (
	"encoding/json"

	"github.com/kavelabs/tscodec/alphabet"
)

// EncodeJSON unmarshals raw JSON, encodes every embedded time series
// under tsKey/tsValue, and marshals the result back out. This mirrors
// the original implementation's encode_json entry point.
func EncodeJSON(raw []byte, tsKey, tsValue string, base alphabet.Size, sortValues bool) ([]byte, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	t := New(tsKey, tsValue, base)
	t.SortValues = sortValues

	encoded, err := t.Encode(doc)
	if err != nil {
		return nil, err
	}
	return json.Marshal(encoded)
}

// DecodeJSON unmarshals raw JSON, decodes every embedded TimeSeriesEncoder
// frame back into a list of {ts_key, ts_value} rows, and marshals the
// result back out.
func DecodeJSON(raw []byte) ([]byte, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	t := &Transformer{}
	decoded, err := t.Decode(doc)
	if err != nil {
		return nil, err
	}
	return json.Marshal(decoded)
}
