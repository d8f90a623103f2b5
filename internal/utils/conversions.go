package utils

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"
)

// ToInt converts a decoded request field into an int. msgpack picks the
// smallest integer width for a value and YAML yields int, so every width is
// accepted, as are integral floats and decimal strings.
func ToInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("integer %d overflows int", n)
		}
		return int(n), nil
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("invalid integer %q", n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("invalid integer type %T", v)
	}
}

// floatToInt rejects fractions, NaN, infinities and values outside int's range
func floatToInt(f float64) (int, error) {
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid integer %v", f)
	}
	if f < float64(math.MinInt) || f >= -float64(math.MinInt) {
		return 0, fmt.Errorf("integer %v overflows int", f)
	}
	return int(f), nil
}

// EncodeResponse serializes a response map into a byte slice
func EncodeResponse(response map[string]interface{}) ([]byte, error) {
	return msgpack.Marshal(response)
}

// DecodeRequest deserializes a byte slice into a request map
func DecodeRequest(data []byte) (map[string]interface{}, error) {
	var request map[string]interface{}
	err := msgpack.Unmarshal(data, &request)
	return request, err
}
