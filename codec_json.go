package tadow

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
)

// JSONCodec handles "application/json".
type JSONCodec struct{}

// Decode implements [Codec]. Documents nested deeper than encoding/json allows are rejected.
func (JSONCodec) Decode(data []byte) (any, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid json")
	}

	return unmarshalJSON(data)
}

// Encode implements [Codec].
func (JSONCodec) Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal json")
	}

	return data, nil
}

// normalize turns typed values (structs, typed maps and slices) into structured data by passing them through
// their json representation.
func normalize(v any) (any, error) {
	switch v.(type) {
	case nil, string, bool, float64, map[string]any, []any:
		return v, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to normalize %T", v)
	}

	return unmarshalJSON(data)
}

func unmarshalJSON(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(err, "invalid json")
	}

	return v, nil
}
