package dtype

import (
	"math"
	"math/big"
	"slices"

	"github.com/shopspring/decimal"
)

// numberSupertypes lists, for every numeric kind, itself followed by its
// supertypes nearest first. Two kinds unify to the first entry of the left
// list that also appears in the right list.
var numberSupertypes = map[Kind][]Kind{
	Int:        {Int, Long, Double, BigInteger, BigDecimal},
	Long:       {Long, BigInteger, BigDecimal},
	Float:      {Float, Double, BigDecimal},
	Double:     {Double, BigDecimal},
	BigInteger: {BigInteger, BigDecimal},
	BigDecimal: {BigDecimal},
}

// CommonNumber returns the nearest shared supertype of two numeric kinds.
func CommonNumber(a, b Kind) Kind {
	if a == b {
		return a
	}
	right := numberSupertypes[b]
	for _, k := range numberSupertypes[a] {
		if slices.Contains(right, k) {
			return k
		}
	}
	return BigDecimal
}

// CommonType returns the narrowest type every operand converts to:
//
//	same kind                 that kind (lists unify their elements)
//	numbers only              nearest numeric supertype
//	Bool, numbers, String     Comparable
//	anything else mixed       Any
//
// Nothing is the identity and any nullable operand makes the result nullable.
func CommonType(types ...Type) Type {
	nullable := false
	rest := make([]Type, 0, len(types))
	for _, t := range types {
		if t.Nullable {
			nullable = true
		}
		if t.Kind != Nothing {
			rest = append(rest, t)
		}
	}
	if len(rest) == 0 {
		return Type{Kind: Nothing, Nullable: nullable}
	}
	first := rest[0].Kind
	same, numbers, primitives := true, true, true
	for _, t := range rest {
		same = same && t.Kind == first
		numbers = numbers && t.Kind.IsNumber()
		primitives = primitives && t.Kind.IsPrimitive()
	}
	switch {
	case same && first == List:
		elems := make([]Type, len(rest))
		for i, t := range rest {
			elems[i] = t.Element()
		}
		return ListOf(CommonType(elems...)).WithNullable(nullable)
	case same:
		return Type{Kind: first, Nullable: nullable}
	case numbers:
		k := first
		for _, t := range rest[1:] {
			k = CommonNumber(k, t.Kind)
		}
		return Type{Kind: k, Nullable: nullable}
	case primitives:
		return Type{Kind: Comparable, Nullable: nullable}
	}
	return Type{Kind: Any, Nullable: nullable}
}

// TypeOf classifies one non-nil value. Lists are classified by guessing over
// their elements.
func TypeOf(v any) Type {
	switch x := v.(type) {
	case nil:
		return NullableOf(Nothing)
	case bool:
		return Of(Bool)
	case int32:
		return Of(Int)
	case int64, int:
		return Of(Long)
	case *big.Int:
		return Of(BigInteger)
	case float32:
		return Of(Float)
	case float64:
		return Of(Double)
	case decimal.Decimal:
		return Of(BigDecimal)
	case string:
		return Of(String)
	case []any:
		return ListOf(Guess(x))
	case Typed:
		return x.DataType()
	}
	return Of(Any)
}

// Guess infers the element type of a column from its values; nils make it
// nullable and an empty sequence yields Nothing.
func Guess(values []any) Type {
	types := make([]Type, 0, len(values))
	for _, v := range values {
		types = append(types, TypeOf(v))
	}
	return CommonType(types...)
}

// Convert returns v in the Go representation of t. Only numeric widening is
// performed; values already matching, or of non-numeric target types, are
// returned as is.
func Convert(v any, t Type) any {
	if v == nil {
		return nil
	}
	switch t.Kind {
	case Long:
		switch x := v.(type) {
		case int32:
			return int64(x)
		case int:
			return int64(x)
		}
	case BigInteger:
		switch x := v.(type) {
		case int32:
			return big.NewInt(int64(x))
		case int64:
			return big.NewInt(x)
		case int:
			return big.NewInt(int64(x))
		}
	case Double:
		switch x := v.(type) {
		case int32:
			return float64(x)
		case int64:
			return float64(x)
		case float32:
			return float64(x)
		}
	case BigDecimal:
		switch x := v.(type) {
		case int32:
			return decimal.NewFromInt(int64(x))
		case int64:
			return decimal.NewFromInt(x)
		case int:
			return decimal.NewFromInt(int64(x))
		case *big.Int:
			return decimal.NewFromBigInt(x, 0)
		case float32:
			if finite(float64(x)) {
				return decimal.NewFromFloat32(x)
			}
		case float64:
			if finite(x) {
				return decimal.NewFromFloat(x)
			}
		}
	case List:
		if xs, ok := v.([]any); ok {
			return ConvertAll(xs, t.Element())
		}
	}
	return v
}

// ConvertAll converts every element; the input slice is returned untouched
// when no element needs a new representation.
func ConvertAll(values []any, t Type) []any {
	var out []any
	for i, v := range values {
		c := Convert(v, t)
		if out == nil && !sameRepr(c, v) {
			out = make([]any, len(values))
			copy(out, values[:i])
		}
		if out != nil {
			out[i] = c
		}
	}
	if out == nil {
		return values
	}
	return out
}

func sameRepr(a, b any) bool {
	switch x := a.(type) {
	case []any:
		y, ok := b.([]any)
		return ok && len(x) == len(y) && (len(x) == 0 || &x[0] == &y[0])
	case *big.Int, decimal.Decimal:
		return false
	}
	switch b.(type) {
	case *big.Int, decimal.Decimal, []any:
		return false
	}
	return a == b
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
