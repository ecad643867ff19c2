package tadow

import (
	"fmt"
)

// TextCodec handles "text/plain". Decoding never fails, encoding formats non-string values with fmt.
type TextCodec struct{}

// Decode implements [Codec].
func (TextCodec) Decode(data []byte) (any, error) {
	return string(data), nil
}

// Encode implements [Codec].
func (TextCodec) Encode(v any) ([]byte, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case error:
		return []byte(x.Error()), nil
	case fmt.Stringer:
		return []byte(x.String()), nil
	default:
		return []byte(fmt.Sprint(x)), nil
	}
}
