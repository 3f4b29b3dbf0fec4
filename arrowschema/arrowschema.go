// Package arrowschema projects inferred frames onto Apache Arrow schemas and
// record batches.
//
// Value types map as follows:
//
//	Bool        boolean
//	Int         int32
//	Long        int64
//	Float       float32
//	Double      float64
//	BigInteger  decimal128(38, 0)
//	BigDecimal  utf8 (decimal text)
//	String      utf8
//	List<T>     list<T>
//	Nothing     null
//	Comparable, Any, Row and Frame values  utf8 (JSON text)
//
// Group columns become structs and frame columns lists of structs. Every
// field carries its jsonframe type in the "jsonframe.type" metadata key.
package arrowschema

import (
	"fmt"
	"math/big"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/shopspring/decimal"

	"github.com/reoring/jsonframe"
	"github.com/reoring/jsonframe/dtype"
	"github.com/reoring/jsonframe/frame"
	"github.com/reoring/jsonframe/jsonnode"
)

// MetadataKey names the field metadata entry holding the jsonframe type.
const MetadataKey = "jsonframe.type"

var bigIntegerType = &arrow.Decimal128Type{Precision: 38, Scale: 0}

// FromSchema converts a frame schema.
func FromSchema(s frame.Schema) *arrow.Schema {
	return arrow.NewSchema(fields(s), nil)
}

func fields(s frame.Schema) []arrow.Field {
	names := s.Names()
	out := make([]arrow.Field, len(names))
	for i, name := range names {
		cs, _ := s.Field(name)
		out[i] = field(name, cs)
	}
	return out
}

func field(name string, cs frame.ColumnSchema) arrow.Field {
	md := arrow.NewMetadata([]string{MetadataKey}, []string{cs.String()})
	switch cs.Kind {
	case frame.GroupKind:
		return arrow.Field{Name: name, Type: arrow.StructOf(fields(element(cs))...), Nullable: cs.Nullable, Metadata: md}
	case frame.FrameKind:
		st := arrow.StructOf(fields(element(cs))...)
		return arrow.Field{Name: name, Type: arrow.ListOf(st), Nullable: cs.Nullable, Metadata: md}
	}
	return arrow.Field{Name: name, Type: DataType(cs.Type), Nullable: cs.Type.Nullable, Metadata: md}
}

func element(cs frame.ColumnSchema) frame.Schema {
	if cs.Fields == nil {
		return frame.Schema{}
	}
	return *cs.Fields
}

// DataType maps an element type.
func DataType(t dtype.Type) arrow.DataType {
	switch t.Kind {
	case dtype.Nothing:
		return arrow.Null
	case dtype.Bool:
		return arrow.FixedWidthTypes.Boolean
	case dtype.Int:
		return arrow.PrimitiveTypes.Int32
	case dtype.Long:
		return arrow.PrimitiveTypes.Int64
	case dtype.Float:
		return arrow.PrimitiveTypes.Float32
	case dtype.Double:
		return arrow.PrimitiveTypes.Float64
	case dtype.BigInteger:
		return bigIntegerType
	case dtype.List:
		return arrow.ListOf(DataType(t.Element()))
	}
	return arrow.BinaryTypes.String
}

// Record copies df into a single record batch laid out as FromSchema(df.Schema()).
// Frame cells are read against the shared frame schema, so a cell missing a
// field appends null. The caller releases the record.
func Record(mem memory.Allocator, df *frame.DataFrame) (arrow.Record, error) {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	schema := df.Schema()
	rb := array.NewRecordBuilder(mem, FromSchema(schema))
	defer rb.Release()
	for j, c := range df.Columns() {
		cs, _ := schema.Field(c.Name())
		for i := 0; i < df.NumRows(); i++ {
			if err := appendCell(rb.Field(j), cs, c, i); err != nil {
				return nil, fmt.Errorf("arrowschema: column %s row %d: %w", c.Name(), i, err)
			}
		}
	}
	return rb.NewRecord(), nil
}

func appendCell(b array.Builder, cs frame.ColumnSchema, c *frame.Column, i int) error {
	if c == nil {
		b.AppendNull()
		return nil
	}
	switch {
	case cs.Kind == frame.GroupKind && c.Kind() == frame.GroupKind:
		return appendRow(b.(*array.StructBuilder), element(cs), c.Group(), i)
	case cs.Kind == frame.FrameKind && c.Kind() == frame.FrameKind:
		f := c.Frames()[i]
		lb := b.(*array.ListBuilder)
		lb.Append(true)
		sb := lb.ValueBuilder().(*array.StructBuilder)
		for r := 0; r < f.NumRows(); r++ {
			if err := appendRow(sb, element(cs), f, r); err != nil {
				return err
			}
		}
		return nil
	case cs.Kind == frame.ValueKind && c.Kind() == frame.ValueKind:
		return appendValue(b, cs.Type, c.Value(i))
	}
	n := jsonframe.EncodeCell(c, i)
	if jsonnode.IsNull(n) {
		b.AppendNull()
		return nil
	}
	return appendValue(b, cs.Type, n)
}

func appendRow(sb *array.StructBuilder, s frame.Schema, df *frame.DataFrame, i int) error {
	sb.Append(true)
	for j, name := range s.Names() {
		cs, _ := s.Field(name)
		c, _ := df.Column(name)
		if err := appendCell(sb.FieldBuilder(j), cs, c, i); err != nil {
			return err
		}
	}
	return nil
}

func appendValue(b array.Builder, t dtype.Type, v any) error {
	if v == nil {
		b.AppendNull()
		return nil
	}
	v = dtype.Convert(v, t)
	switch bb := b.(type) {
	case *array.NullBuilder:
		bb.AppendNull()
	case *array.BooleanBuilder:
		x, ok := v.(bool)
		if !ok {
			return mismatch(t, v)
		}
		bb.Append(x)
	case *array.Int32Builder:
		x, ok := v.(int32)
		if !ok {
			return mismatch(t, v)
		}
		bb.Append(x)
	case *array.Int64Builder:
		x, ok := v.(int64)
		if !ok {
			return mismatch(t, v)
		}
		bb.Append(x)
	case *array.Float32Builder:
		x, ok := v.(float32)
		if !ok {
			return mismatch(t, v)
		}
		bb.Append(x)
	case *array.Float64Builder:
		x, ok := v.(float64)
		if !ok {
			return mismatch(t, v)
		}
		bb.Append(x)
	case *array.Decimal128Builder:
		x, ok := v.(*big.Int)
		if !ok {
			return mismatch(t, v)
		}
		if x.BitLen() > 126 {
			return fmt.Errorf("integer %s exceeds decimal128", x)
		}
		bb.Append(decimal128.FromBigInt(x))
	case *array.ListBuilder:
		xs, ok := v.([]any)
		if !ok {
			return mismatch(t, v)
		}
		bb.Append(true)
		for _, x := range xs {
			if err := appendValue(bb.ValueBuilder(), t.Element(), x); err != nil {
				return err
			}
		}
	case *array.StringBuilder:
		bb.Append(text(t, v))
	default:
		return fmt.Errorf("unsupported builder %T", b)
	}
	return nil
}

// text renders String and BigDecimal elements as themselves and everything
// else as JSON, so Any columns keep "1" apart from 1.
func text(t dtype.Type, v any) string {
	switch x := v.(type) {
	case string:
		if t.Kind == dtype.String {
			return x
		}
	case decimal.Decimal:
		if t.Kind == dtype.BigDecimal {
			return x.String()
		}
	case jsonnode.Node:
		return jsonnode.Render(x)
	}
	return jsonnode.Render(jsonframe.EncodeValue(v))
}

func mismatch(t dtype.Type, v any) error {
	return fmt.Errorf("value %v (%T) does not fit %s", v, v, t)
}
