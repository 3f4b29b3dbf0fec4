package frame

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// Equal compares name, type and content. The path a handle was resolved
// through is ignored.
func (c *Column) Equal(o *Column) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.name != o.name || c.kind != o.kind || c.Len() != o.Len() {
		return false
	}
	switch c.kind {
	case GroupKind:
		return c.group.Equal(o.group)
	case FrameKind:
		for i, f := range c.frames {
			if !f.Equal(o.frames[i]) {
				return false
			}
		}
		return true
	}
	if !c.typ.Equal(o.typ) {
		return false
	}
	for i, v := range c.values {
		if !valuesEqual(v, o.values[i]) {
			return false
		}
	}
	return true
}

// Equal compares row counts and columns in order.
func (df *DataFrame) Equal(o *DataFrame) bool {
	if df == nil || o == nil {
		return df.NumRows() == o.NumRows() && df.NumCols() == o.NumCols()
	}
	if df.nrow != o.nrow || df.NumCols() != o.NumCols() {
		return false
	}
	for i, c := range df.cols.Values {
		if !c.Equal(o.cols.Values[i]) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case float64:
		y, ok := b.(float64)
		return ok && (x == y || math.IsNaN(x) && math.IsNaN(y))
	case float32:
		y, ok := b.(float32)
		return ok && (x == y || x != x && y != y)
	case *big.Int:
		y, ok := b.(*big.Int)
		return ok && x.Cmp(y) == 0
	case decimal.Decimal:
		y, ok := b.(decimal.Decimal)
		return ok && x.Equal(y)
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !valuesEqual(x[i], y[i]) {
				return false
			}
		}
		return true
	case Row:
		y, ok := b.(Row)
		return ok && x.Equal(y)
	case *DataFrame:
		y, ok := b.(*DataFrame)
		return ok && x.Equal(y)
	}
	switch b.(type) {
	case []any, Row, *DataFrame:
		return false
	}
	return a == b
}

// Hash is consistent with Equal.
func (c *Column) Hash() uint64 {
	h := fnv.New64a()
	hashColumn(h, c)
	return h.Sum64()
}

// Hash is consistent with Equal.
func (df *DataFrame) Hash() uint64 {
	h := fnv.New64a()
	hashFrame(h, df)
	return h.Sum64()
}

func hashFrame(h hash.Hash64, df *DataFrame) {
	writeInt(h, int64(df.NumRows()))
	if df == nil {
		return
	}
	for _, c := range df.cols.Values {
		hashColumn(h, c)
	}
}

func hashColumn(h hash.Hash64, c *Column) {
	h.Write([]byte(c.name))
	writeInt(h, int64(c.kind))
	switch c.kind {
	case GroupKind:
		hashFrame(h, c.group)
	case FrameKind:
		for _, f := range c.frames {
			hashFrame(h, f)
		}
	default:
		h.Write([]byte(c.typ.String()))
		for _, v := range c.values {
			hashValue(h, v)
		}
	}
}

func hashValue(h hash.Hash64, v any) {
	switch x := v.(type) {
	case nil:
		h.Write([]byte{0})
	case bool:
		if x {
			h.Write([]byte{1, 1})
		} else {
			h.Write([]byte{1, 0})
		}
	case int32:
		h.Write([]byte{2})
		writeInt(h, int64(x))
	case int64:
		h.Write([]byte{3})
		writeInt(h, x)
	case *big.Int:
		h.Write([]byte{4})
		h.Write([]byte(x.String()))
	case float32:
		h.Write([]byte{5})
		writeFloat(h, float64(x))
	case float64:
		h.Write([]byte{6})
		writeFloat(h, x)
	case decimal.Decimal:
		h.Write([]byte{7})
		writeFloat(h, x.InexactFloat64())
	case string:
		h.Write([]byte{8})
		h.Write([]byte(x))
	case []any:
		h.Write([]byte{9})
		writeInt(h, int64(len(x)))
		for _, e := range x {
			hashValue(h, e)
		}
	case Row:
		h.Write([]byte{10})
		for i, c := range x.df.cols.Values {
			h.Write([]byte(x.df.cols.Keys[i]))
			hashValue(h, c.Value(x.index))
		}
	case *DataFrame:
		h.Write([]byte{11})
		hashFrame(h, x)
	default:
		h.Write([]byte{12})
	}
}

func writeInt(h hash.Hash64, v int64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	h.Write(buf[:])
}

func writeFloat(h hash.Hash64, f float64) {
	switch {
	case math.IsNaN(f):
		f = math.NaN()
	case f == 0:
		f = 0 // -0 equals 0
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
	h.Write(buf[:])
}
