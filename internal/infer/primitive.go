package infer

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/reoring/jsonframe/dtype"
	"github.com/reoring/jsonframe/frame"
	"github.com/reoring/jsonframe/jsonnode"
)

// nanSentinel is the string that stands for an IEEE NaN in JSON output.
const nanSentinel = "NaN"

// primitive converts a scalar node. The second result reports the NaN
// sentinel, whose value is decided once the column type is known.
func primitive(n jsonnode.Node) (any, bool) {
	switch v := n.(type) {
	case jsonnode.String:
		if v == nanSentinel {
			return nil, true
		}
		return string(v), false
	case jsonnode.Bool:
		return bool(v), false
	case jsonnode.Number:
		return parseNumber(string(v)), false
	}
	return nil, false
}

// parseNumber picks the narrowest representation of a number literal:
// integers become int32, int64 or *big.Int; anything with a fraction or
// exponent becomes float64, or decimal.Decimal when out of float64 range.
func parseNumber(s string) any {
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 32); err == nil {
			return int32(i)
		}
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
		if b, ok := new(big.Int).SetString(s, 10); ok {
			return b
		}
		return s
	}
	f, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return f
	}
	if d, derr := decimal.NewFromString(s); derr == nil {
		return d
	}
	return s
}

// valueColumn types values, converts them to the chosen representation and
// fills the NaN sentinel positions.
func valueColumn(name string, values []any, nan []int) *frame.Column {
	t := dtype.Guess(values)
	values = dtype.ConvertAll(values, t)
	if len(nan) > 0 {
		var fill any
		switch t.Kind {
		case dtype.Double:
			fill = math.NaN()
		case dtype.Float:
			fill = float32(math.NaN())
		case dtype.String:
			fill = nanSentinel
		}
		if fill != nil {
			for _, i := range nan {
				values[i] = fill
			}
			t.Nullable = hasNil(values)
		}
	}
	return frame.NewValueColumn(name, t, values)
}

func hasNil(values []any) bool {
	for _, v := range values {
		if v == nil {
			return true
		}
	}
	return false
}

// primitiveColumn keeps scalar records and nulls out objects and arrays.
func primitiveColumn(name string, records []jsonnode.Node) *frame.Column {
	values := make([]any, len(records))
	var nan []int
	for i, r := range records {
		v, isNaN := primitive(r)
		if isNaN {
			nan = append(nan, i)
			continue
		}
		values[i] = v
	}
	return valueColumn(name, values, nan)
}
