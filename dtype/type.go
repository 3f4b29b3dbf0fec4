// Package dtype describes the element types of value columns and implements
// the promotion rules used to find one type for a heterogeneous sequence.
//
// Every kind has a fixed Go representation:
//
//	Bool        bool
//	Int         int32
//	Long        int64
//	BigInteger  *big.Int
//	Float       float32
//	Double      float64
//	BigDecimal  decimal.Decimal
//	String      string
//	List        []any
//	Row, Frame  values implementing Typed
//
// A nil element is the null value.
package dtype

import "strings"

// Kind enumerates element type kinds.
type Kind int

const (
	Nothing Kind = iota
	Bool
	Int
	Long
	BigInteger
	Float
	Double
	BigDecimal
	String
	Comparable
	List
	Row
	Frame
	Any
)

var kindNames = [...]string{
	Nothing:    "Nothing",
	Bool:       "Bool",
	Int:        "Int",
	Long:       "Long",
	BigInteger: "BigInteger",
	Float:      "Float",
	Double:     "Double",
	BigDecimal: "BigDecimal",
	String:     "String",
	Comparable: "Comparable",
	List:       "List",
	Row:        "Row",
	Frame:      "Frame",
	Any:        "Any",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsNumber reports whether k is one of the numeric kinds.
func (k Kind) IsNumber() bool {
	switch k {
	case Int, Long, BigInteger, Float, Double, BigDecimal:
		return true
	}
	return false
}

// IsPrimitive reports whether k is a scalar kind that participates in the
// Comparable supertype.
func (k Kind) IsPrimitive() bool {
	return k == Bool || k == String || k == Comparable || k.IsNumber()
}

// Type is an element type. Elem is set for List only.
type Type struct {
	Kind     Kind
	Nullable bool
	Elem     *Type
}

// Of returns the non-nullable type of kind k.
func Of(k Kind) Type { return Type{Kind: k} }

// ListOf returns List<elem>.
func ListOf(elem Type) Type {
	e := elem
	return Type{Kind: List, Elem: &e}
}

// NullableOf returns the nullable type of kind k.
func NullableOf(k Kind) Type { return Type{Kind: k, Nullable: true} }

// WithNullable returns a copy of t with the given nullability.
func (t Type) WithNullable(n bool) Type {
	t.Nullable = n
	return t
}

// Element returns the element type of a list, or Nothing.
func (t Type) Element() Type {
	if t.Kind != List || t.Elem == nil {
		return Of(Nothing)
	}
	return *t.Elem
}

// Equal compares structurally.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind || t.Nullable != o.Nullable {
		return false
	}
	if t.Kind == List {
		return t.Element().Equal(o.Element())
	}
	return true
}

func (t Type) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t Type) write(b *strings.Builder) {
	b.WriteString(t.Kind.String())
	if t.Kind == List {
		b.WriteByte('<')
		t.Element().write(b)
		b.WriteByte('>')
	}
	if t.Nullable {
		b.WriteByte('?')
	}
}

// MarshalText renders the type name, for example "List<Int?>?".
func (t Type) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Typed is implemented by nested values that live in value columns (rows and
// frames).
type Typed interface {
	DataType() Type
}
