package jsonnode

import (
	"fmt"
	"math"
	"math/big"
	"slices"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
)

// Marshal renders n as compact JSON with members in stored order.
func Marshal(n Node) ([]byte, error) {
	return AppendJSON(nil, n)
}

// AppendJSON appends the compact JSON rendering of n to dst.
func AppendJSON(dst []byte, n Node) ([]byte, error) {
	if n == nil {
		return append(dst, "null"...), nil
	}
	switch v := n.(type) {
	case Null:
		return append(dst, "null"...), nil
	case Bool:
		return strconv.AppendBool(dst, bool(v)), nil
	case Number:
		if !isJSONNumber(string(v)) {
			return nil, fmt.Errorf("jsonnode: invalid number literal %q", string(v))
		}
		return append(dst, v...), nil
	case String:
		return appendString(dst, string(v))
	case Array:
		dst = append(dst, '[')
		for i, e := range v {
			if i > 0 {
				dst = append(dst, ',')
			}
			var err error
			if dst, err = AppendJSON(dst, e); err != nil {
				return nil, err
			}
		}
		return append(dst, ']'), nil
	case *Object:
		dst = append(dst, '{')
		for i, m := range v.members {
			if i > 0 {
				dst = append(dst, ',')
			}
			var err error
			if dst, err = appendString(dst, m.Key); err != nil {
				return nil, err
			}
			dst = append(dst, ':')
			if dst, err = AppendJSON(dst, m.Value); err != nil {
				return nil, err
			}
		}
		return append(dst, '}'), nil
	}
	return nil, fmt.Errorf("jsonnode: unknown node %T", n)
}

func appendString(dst []byte, s string) ([]byte, error) {
	b, err := gojson.MarshalNoEscape(s)
	if err != nil {
		return nil, err
	}
	return append(dst, b...), nil
}

// Render returns n as a JSON string for debugging; invalid trees render as an
// error marker.
func Render(n Node) string {
	b, err := Marshal(n)
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return string(b)
}

// MarshalJSON lets arrays participate in encoding/json and go-json output.
func (a Array) MarshalJSON() ([]byte, error) { return Marshal(a) }

// MarshalJSON lets objects participate in encoding/json and go-json output.
func (o *Object) MarshalJSON() ([]byte, error) { return Marshal(o) }

func isJSONNumber(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[i] == '-' {
		i++
	}
	if i >= len(s) {
		return false
	}
	switch {
	case s[i] == '0':
		i++
	case s[i] >= '1' && s[i] <= '9':
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	default:
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return false
		}
	}
	return i == len(s)
}

// FromAny converts decoded Go values into a Node. Map keys are sorted since Go
// maps carry no order.
func FromAny(v any) (Node, error) {
	switch x := v.(type) {
	case nil:
		return Null{}, nil
	case Node:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case *big.Int:
		return Number(x.String()), nil
	case jsonNumber:
		return Number(x.String()), nil
	case int:
		return Number(strconv.Itoa(x)), nil
	case int32:
		return Number(strconv.FormatInt(int64(x), 10)), nil
	case int64:
		return Number(strconv.FormatInt(x, 10)), nil
	case uint64:
		return Number(strconv.FormatUint(x, 10)), nil
	case float32:
		return Float(float64(x), 32), nil
	case float64:
		return Float(x, 64), nil
	case []any:
		arr := make(Array, len(x))
		for i, e := range x {
			n, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			arr[i] = n
		}
		return arr, nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		b := NewObjectBuilder()
		for _, k := range keys {
			n, err := FromAny(x[k])
			if err != nil {
				return nil, err
			}
			b.Set(k, n)
		}
		return b.Build(), nil
	}
	return nil, fmt.Errorf("jsonnode: unsupported value %T", v)
}

// jsonNumber matches json.Number from both encoding/json and go-json.
type jsonNumber interface {
	Int64() (int64, error)
	String() string
}

// Float renders a float of the given bit size as a node that re-parses as a
// fractional number. NaN and infinities become the strings "NaN",
// "Infinity" and "-Infinity".
func Float(f float64, bits int) Node {
	switch {
	case math.IsNaN(f):
		return String("NaN")
	case math.IsInf(f, 1):
		return String("Infinity")
	case math.IsInf(f, -1):
		return String("-Infinity")
	}
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return Number(s)
}
