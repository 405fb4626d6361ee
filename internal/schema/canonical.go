package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// MarshalStable produces deterministic JSON for digests and golden
// snapshots. It follows RFC 8785 object ordering and string handling:
//
//  1. Object keys sorted by UTF-16 code units (not UTF-8 bytes)
//  2. No HTML escaping (< > & are written as-is)
//  3. Strings NFC normalized
//  4. Integral numbers written without a fractional part
//
// Non-integral numbers use Go's shortest round-trip form rather than the
// full RFC 8785 number grammar; inputs here are decoded JSON documents,
// so equal documents always serialize to equal bytes.
func MarshalStable(v any) ([]byte, error) {
	return marshalStable(v)
}

// CanonicalizeJSON parses a JSON document and re-serializes it in stable
// form.
func CanonicalizeJSON(data []byte) ([]byte, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return marshalStable(doc)
}

func marshalStable(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return []byte("null"), nil
	case bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case string:
		return marshalStableString(val)
	case int:
		return strconv.AppendInt(nil, int64(val), 10), nil
	case int64:
		return strconv.AppendInt(nil, val, 10), nil
	case float64:
		return marshalStableNumber(val)
	case []any:
		return marshalStableArray(val)
	case map[string]any:
		return marshalStableObject(val)
	default:
		return nil, fmt.Errorf("unsupported type for stable JSON: %T", v)
	}
}

// marshalStableNumber writes integral values without a fractional part
// and everything else in Go's shortest round-trip form.
func marshalStableNumber(f float64) ([]byte, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("non-finite number in stable JSON: %v", f)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.AppendInt(nil, int64(f), 10), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// marshalStableString produces a stable JSON string with NFC
// normalization. Per RFC 8785:
//   - No HTML escaping (<, >, & are NOT escaped)
//   - U+2028 and U+2029 are NOT escaped
//   - Only control characters, backslash, and quote are escaped
func marshalStableString(s string) ([]byte, error) {
	// NFC normalize at the serialization boundary
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	// json.Encoder adds a trailing newline, remove it
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}

	// Go's encoder escapes U+2028/U+2029 for JavaScript compatibility,
	// which RFC 8785 forbids.
	return unescapeSeparators(result), nil
}

// unescapeSeparators converts \u2028 and \u2029 escape sequences back to
// literal characters. It walks escape sequences whole, so a literal
// backslash followed by "u2028" text (encoded as \\u2028) stays escaped.
func unescapeSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); {
		if data[i] == '\\' && i+1 < len(data) {
			if data[i+1] == 'u' && i+6 <= len(data) {
				seq := data[i : i+6]
				switch {
				case bytes.Equal(seq, []byte(`\u2028`)):
					out = append(out, "\u2028"...)
				case bytes.Equal(seq, []byte(`\u2029`)):
					out = append(out, "\u2029"...)
				default:
					out = append(out, seq...)
				}
				i += 6
				continue
			}
			// Two-byte escape (\\, \", \n, ...): copy it whole so the
			// second byte is never misread as the start of \u2028.
			out = append(out, data[i], data[i+1])
			i += 2
			continue
		}
		out = append(out, data[i])
		i++
	}
	return out
}

// marshalStableArray marshals an array element-wise.
func marshalStableArray(arr []any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')

	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		elemBytes, err := marshalStable(elem)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(elemBytes)
	}

	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// marshalStableObject marshals an object with RFC 8785 key ordering.
func marshalStableObject(obj map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sortKeysRFC8785(keys)

	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		keyBytes, err := marshalStableString(k)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valBytes, err := marshalStable(obj[k])
		if err != nil {
			return nil, fmt.Errorf("value for key %q: %w", k, err)
		}
		buf.Write(valBytes)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// sortKeysRFC8785 sorts keys in RFC 8785 canonical order.
func sortKeysRFC8785(keys []string) {
	slices.SortFunc(keys, compareKeysRFC8785)
}

// compareKeysRFC8785 compares strings by UTF-16 code units as required
// by RFC 8785. Go's sort.Strings compares UTF-8 bytes, which produces a
// DIFFERENT order for strings outside the BMP.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	minLen := len(a16)
	if len(b16) < minLen {
		minLen = len(b16)
	}

	for i := 0; i < minLen; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	// All compared units equal, shorter string comes first
	if len(a16) < len(b16) {
		return -1
	}
	if len(a16) > len(b16) {
		return 1
	}
	return 0
}
