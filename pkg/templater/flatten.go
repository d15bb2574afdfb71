package templater

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Flatten serializes value to JSON and flattens the result into a dot-path
// dictionary suitable as the data argument of Generate.
//
//	{"a": [1, {"b": "x"}]}  ->  {"a.0": "1", "a.1.b": "x"}
func Flatten(value any) (map[string]string, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, &SerializeError{Err: err}
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, &SerializeError{Err: err}
	}
	return FlattenValue(tree), nil
}

// FlattenValue flattens an already decoded tree of maps, slices and scalars.
// When two paths are spelled the same the last one written wins.
func FlattenValue(value any) map[string]string {
	out := make(map[string]string)
	flatten("", value, out)
	return out
}

func flatten(prefix string, value any, out map[string]string) {
	switch node := value.(type) {
	case map[string]any:
		for k, v := range node {
			flatten(joinPath(prefix, k), v, out)
		}
	case map[any]any:
		for k, v := range node {
			flatten(joinPath(prefix, fmt.Sprint(k)), v, out)
		}
	case map[string]string:
		for k, v := range node {
			out[joinPath(prefix, k)] = v
		}
	case []any:
		for i, v := range node {
			flatten(prefix+"."+strconv.Itoa(i), v, out)
		}
	case []map[string]any:
		for i, v := range node {
			flatten(prefix+"."+strconv.Itoa(i), v, out)
		}
	case []string:
		for i, v := range node {
			out[prefix+"."+strconv.Itoa(i)] = v
		}
	default:
		out[prefix] = scalarText(node)
	}
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func scalarText(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return formatFloat(v, 64)
	case float32:
		return formatFloat(float64(v), 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case time.Time:
		return v.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(v)
	}
}

// formatFloat renders f the way encoding/json does, so a number reads the
// same whether it reached FlattenValue directly or through Flatten.
func formatFloat(f float64, bits int) string {
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 {
		if bits == 64 && (abs < 1e-6 || abs >= 1e21) ||
			bits == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			format = 'e'
		}
	}
	b := strconv.AppendFloat(nil, f, format, -1, bits)
	if format == 'e' {
		// e-09 -> e-9
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return string(b)
}
