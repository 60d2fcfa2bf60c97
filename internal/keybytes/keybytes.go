// Package keybytes turns comparable keys into deterministic byte slices
// for hashing. Typed keys get an explicit, documented encoding (required
// for floats and strings per spec.md §4.1); anything else falls back to
// the same fmt.Sprintf("%v", key) trick the teacher's own
// internal/sketch/sketch.go uses unconditionally.
package keybytes

import (
	"encoding/binary"
	"fmt"
	"math"
)

// lengthPrefixedString prevents collisions between the concatenation of
// "a"+"bc" and "ab"+"c" by encoding the byte length ahead of the
// content, per spec.md §4.1.
func lengthPrefixedString(s string) []byte {
	out := make([]byte, 8+len(s))
	binary.LittleEndian.PutUint64(out, uint64(len(s)))
	copy(out[8:], s)
	return out
}

// Encode serializes a comparable key into bytes suitable for hashing.
// NaN float keys hash by their raw bit pattern like any other float;
// callers that care about NaN-equality semantics must filter upstream.
func Encode[K comparable](key K) []byte {
	switch v := any(key).(type) {
	case string:
		return lengthPrefixedString(v)
	case []byte:
		return lengthPrefixedString(string(v))
	case int:
		return encodeInt64(int64(v))
	case int8:
		return encodeInt64(int64(v))
	case int16:
		return encodeInt64(int64(v))
	case int32:
		return encodeInt64(int64(v))
	case int64:
		return encodeInt64(v)
	case uint:
		return encodeUint64(uint64(v))
	case uint8:
		return encodeUint64(uint64(v))
	case uint16:
		return encodeUint64(uint64(v))
	case uint32:
		return encodeUint64(uint64(v))
	case uint64:
		return encodeUint64(v)
	case float32:
		return encodeUint64(uint64(math.Float32bits(v)))
	case float64:
		return encodeUint64(math.Float64bits(v))
	case bool:
		if v {
			return []byte{1}
		}
		return []byte{0}
	default:
		return []byte(fmt.Sprintf("%v", v))
	}
}

func encodeInt64(v int64) []byte {
	return encodeUint64(uint64(v))
}

func encodeUint64(v uint64) []byte {
	out := make([]byte, 8)
	binary.LittleEndian.PutUint64(out, v)
	return out
}
