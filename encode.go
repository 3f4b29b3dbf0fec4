package jsonframe

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/reoring/jsonframe/dtype"
	"github.com/reoring/jsonframe/frame"
	"github.com/reoring/jsonframe/jsonnode"
)

// Encode renders df as a JSON array with one element per row. It is the
// inverse of InferDocument: group cells become objects, frame cells become
// arrays of objects (objects for key-value frames), NaN becomes "NaN" and
// the synthesized value/array columns of mixed frames are unwrapped back
// into scalars and arrays.
func Encode(df *frame.DataFrame) jsonnode.Node {
	return jsonnode.Array(EncodeRecords(df))
}

// EncodeRecords renders each row of df as one record.
func EncodeRecords(df *frame.DataFrame) []jsonnode.Node {
	e := newEncoder()
	e.scanFrame(df, rootScope)
	return e.frameRows(df, rootScope)
}

// EncodeJSON renders Encode(df) as compact JSON.
func EncodeJSON(df *frame.DataFrame) ([]byte, error) {
	return jsonnode.Marshal(Encode(df))
}

// EncodeRow renders a single row as EncodeRecords would.
func EncodeRow(r frame.Row) jsonnode.Node {
	e := newEncoder()
	e.scanFrame(r.Frame(), rootScope)
	return e.row(r.Frame(), r.Index(), rootScope)
}

// EncodeCell renders row i of column c.
func EncodeCell(c *frame.Column, i int) jsonnode.Node {
	e := newEncoder()
	e.scanColumn(c, rootScope)
	return e.cell(c, i, rootScope)
}

// EncodeValue renders one element of a value column.
func EncodeValue(v any) jsonnode.Node {
	e := newEncoder()
	t := dtype.NullableOf(dtype.Any)
	e.scanValue(v, t, rootScope, true)
	return e.value(v, t, rootScope, true)
}

const (
	reservedValue = "value"
	reservedArray = "array"
)

// unwrap records which synthesized columns of a frame hold whole records.
type unwrap struct {
	value, array *frame.Column
}

func (u unwrap) reserved(c *frame.Column) bool { return c == u.value || c == u.array }

func (u unwrap) fieldsNull(df *frame.DataFrame, i int) bool {
	for _, c := range df.Columns() {
		if !u.reserved(c) && !c.IsNull(i) {
			return false
		}
	}
	return true
}

// rootScope names the inference of the top-level records. Frames and
// columns produced by one inference share a scope; they are re-read together,
// so whether a column is written at all is decided per scope.
const rootScope = "$"

type scopeStats struct {
	arrayData bool // an array column holds a non-empty cell
	fieldData bool // a row written as an object holds a field value
	valueData bool // a value column holds a non-null cell
	kept      bool // an all-null row was already written as an object
}

type encoder struct {
	plans  map[*frame.DataFrame]unwrap
	scopes map[string]*scopeStats
}

func newEncoder() *encoder {
	return &encoder{plans: map[*frame.DataFrame]unwrap{}, scopes: map[string]*scopeStats{}}
}

func (e *encoder) stats(scope string) *scopeStats {
	st, ok := e.scopes[scope]
	if !ok {
		st = &scopeStats{}
		e.scopes[scope] = st
	}
	return st
}

func (e *encoder) frameRows(df *frame.DataFrame, scope string) []jsonnode.Node {
	out := make([]jsonnode.Node, df.NumRows())
	for i := range out {
		out[i] = e.row(df, i, scope)
	}
	return out
}

func (e *encoder) plan(df *frame.DataFrame) unwrap {
	if u, ok := e.plans[df]; ok {
		return u
	}
	var u unwrap
	cols := df.Columns()
	if len(cols) == 1 && cols[0].IsKeyValue() && cols[0].Name() == reservedValue {
		u.value = cols[0]
	} else if len(cols) > 1 {
		if c := lastReserved(cols, reservedValue); c != nil && c.Kind() != frame.GroupKind && ownsRows(df, c) {
			u.value = c
		}
		if c := lastReserved(cols, reservedArray); c != nil && c.Kind() != frame.GroupKind && ownsRows(df, c) {
			u.array = c
		}
	}
	e.plans[df] = u
	return u
}

// scanFrame collects the scope statistics the writer needs before any row
// of df is written.
func (e *encoder) scanFrame(df *frame.DataFrame, scope string) {
	u := e.plan(df)
	st := e.stats(scope)
	for i := 0; i < df.NumRows(); i++ {
		if u.array != nil && !u.array.IsNull(i) {
			st.arrayData = true
			continue
		}
		if (u.value == nil || u.value.IsNull(i)) && !u.fieldsNull(df, i) {
			st.fieldData = true
		}
	}
	for _, c := range df.Columns() {
		e.scanColumn(c, scope+"/"+c.Name())
	}
}

func (e *encoder) scanColumn(c *frame.Column, scope string) {
	switch c.Kind() {
	case frame.GroupKind:
		e.scanFrame(c.Group(), scope)
		return
	case frame.FrameKind:
		for _, f := range c.Frames() {
			e.scanFrame(f, scope+"[]")
		}
		return
	}
	st := e.stats(scope)
	t := c.Type()
	for i := 0; i < c.Len(); i++ {
		v := c.Value(i)
		if v != nil {
			st.valueData = true
		}
		e.scanValue(v, t, scope, true)
	}
}

func (e *encoder) scanValue(v any, t dtype.Type, scope string, own bool) {
	switch x := v.(type) {
	case frame.Row:
		e.scanFrame(x.Frame(), frameScope(x.Frame(), scope, own))
	case *frame.DataFrame:
		e.scanFrame(x, frameScope(x, scope, own))
	case []any:
		s, et := listScope(x, t, scope)
		for _, el := range x {
			e.scanValue(el, et, s, et.Kind == dtype.Any)
		}
	}
}

// frameScope names the inference a nested frame cell came from: its own
// when the cell was inferred alone, else the shared one of its column.
func frameScope(df *frame.DataFrame, scope string, own bool) string {
	if own {
		return fmt.Sprintf("%s@%p", scope, df)
	}
	return scope
}

// listScope returns the scope and element type of list elements. Elements of
// a typed list column were inferred together; a list held by an Any cell was
// inferred on its own.
func listScope(x []any, t dtype.Type, scope string) (string, dtype.Type) {
	if t.Kind != dtype.Any {
		return scope + "[]", t.Element()
	}
	if len(x) == 0 {
		return scope + "[]", t
	}
	return fmt.Sprintf("%s@%p[]", scope, &x[0]), dtype.Guess(x)
}

// lastReserved finds the synthesized column for base: the one with the
// highest numeric suffix, since user fields take the lower names first.
func lastReserved(cols []*frame.Column, base string) *frame.Column {
	var (
		best    *frame.Column
		bestIdx = -1
	)
	for _, c := range cols {
		name := c.Name()
		if !strings.HasPrefix(name, base) {
			continue
		}
		idx := 0
		if rest := name[len(base):]; rest != "" {
			n, err := strconv.Atoi(rest)
			if err != nil || n <= 0 || rest[0] == '0' {
				continue
			}
			idx = n
		}
		if idx > bestIdx {
			best, bestIdx = c, idx
		}
	}
	return best
}

// ownsRows reports whether every row holding data in c holds nothing else.
func ownsRows(df *frame.DataFrame, c *frame.Column) bool {
	cols := df.Columns()
	for i := 0; i < df.NumRows(); i++ {
		if c.IsNull(i) {
			continue
		}
		for _, o := range cols {
			if o != c && !o.IsNull(i) {
				return false
			}
		}
	}
	return true
}

func (e *encoder) row(df *frame.DataFrame, i int, scope string) jsonnode.Node {
	u := e.plan(df)
	switch {
	case u.value != nil && !u.value.IsNull(i):
		return e.cell(u.value, i, scope+"/"+u.value.Name())
	case u.array != nil && !u.array.IsNull(i):
		return e.cell(u.array, i, scope+"/"+u.array.Name())
	case u.value != nil && u.value.IsKeyValue() && df.NumCols() == 1:
		return e.cell(u.value, i, scope+"/"+u.value.Name())
	}
	if u.array != nil && u.fieldsNull(df, i) {
		// Rows without data are written as [] when no array holds data,
		// keeping one object for the fields if no row carries a value.
		st := e.stats(scope)
		if !st.arrayData && (st.fieldData || st.kept) {
			return e.cell(u.array, i, scope+"/"+u.array.Name())
		}
		st.kept = true
	}
	b := jsonnode.NewObjectBuilder()
	fields := 0
	for _, c := range df.Columns() {
		if u.reserved(c) {
			continue
		}
		fields++
		b.Set(c.Name(), e.cell(c, i, scope+"/"+c.Name()))
	}
	if fields == 0 {
		switch {
		case u.array != nil:
			return e.cell(u.array, i, scope+"/"+u.array.Name())
		case u.value != nil:
			return jsonnode.Null{}
		}
	}
	return b.Build()
}

func (e *encoder) cell(c *frame.Column, i int, scope string) jsonnode.Node {
	switch c.Kind() {
	case frame.GroupKind:
		return e.row(c.Group(), i, scope)
	case frame.FrameKind:
		f := c.Frames()[i]
		if c.IsKeyValue() {
			return e.keyValue(f, scope+"[]")
		}
		return jsonnode.Array(e.frameRows(f, scope+"[]"))
	}
	t := c.Type()
	if t.Kind == dtype.Any && t.Nullable && !e.stats(scope).valueData {
		// a field holding only empty objects
		return jsonnode.NewObjectBuilder().Build()
	}
	return e.value(c.Value(i), t, scope, true)
}

// keyValue folds a key/value frame back into one object.
func (e *encoder) keyValue(f *frame.DataFrame, scope string) jsonnode.Node {
	b := jsonnode.NewObjectBuilder()
	if f.NumCols() < 2 {
		return b.Build()
	}
	keys, vals := f.ColumnAt(0), f.ColumnAt(1)
	for i := 0; i < f.NumRows(); i++ {
		k, _ := keys.Value(i).(string)
		b.Set(k, e.cell(vals, i, scope+"/"+vals.Name()))
	}
	return b.Build()
}

func (e *encoder) value(v any, t dtype.Type, scope string, own bool) jsonnode.Node {
	switch x := v.(type) {
	case nil:
		return jsonnode.Null{}
	case bool:
		return jsonnode.Bool(x)
	case string:
		return jsonnode.String(x)
	case int32:
		return jsonnode.Number(strconv.FormatInt(int64(x), 10))
	case int64:
		return jsonnode.Number(strconv.FormatInt(x, 10))
	case int:
		return jsonnode.Number(strconv.Itoa(x))
	case *big.Int:
		return jsonnode.Number(x.String())
	case float32:
		return jsonnode.Float(float64(x), 32)
	case float64:
		return jsonnode.Float(x, 64)
	case decimal.Decimal:
		s := x.String()
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return jsonnode.Number(s)
	case []any:
		s, et := listScope(x, t, scope)
		arr := make(jsonnode.Array, len(x))
		for j, el := range x {
			arr[j] = e.value(el, et, s, et.Kind == dtype.Any)
		}
		return arr
	case frame.Row:
		return e.row(x.Frame(), x.Index(), frameScope(x.Frame(), scope, own))
	case *frame.DataFrame:
		return jsonnode.Array(e.frameRows(x, frameScope(x, scope, own)))
	case jsonnode.Node:
		return x
	}
	if n, err := jsonnode.FromAny(v); err == nil {
		return n
	}
	return jsonnode.String(fmt.Sprint(v))
}
