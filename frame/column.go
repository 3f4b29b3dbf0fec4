package frame

import (
	"fmt"
	"sync"

	"github.com/reoring/jsonframe/dtype"
)

// ColumnKind discriminates the Column union.
type ColumnKind int

const (
	// ValueKind is an ordered sequence of elements of one dtype.Type.
	ValueKind ColumnKind = iota
	// GroupKind is a nested frame with one sub-record per row.
	GroupKind
	// FrameKind holds one independent nested frame per row.
	FrameKind
)

func (k ColumnKind) String() string {
	switch k {
	case ValueKind:
		return "value"
	case GroupKind:
		return "group"
	case FrameKind:
		return "frame"
	}
	return "unknown"
}

// Column is a named, immutable column of one of the three kinds. Handles
// obtained through Resolve or Child also carry the path of the group they
// were read from; the path never takes part in equality.
type Column struct {
	name string
	kind ColumnKind

	typ    dtype.Type
	values []any

	group *DataFrame

	frames   []*DataFrame
	schema   *lazySchema
	keyValue bool

	parent ColumnPath
}

type lazySchema struct {
	once   sync.Once
	schema Schema
}

// NewValueColumn builds a value column. The slice is retained, not copied.
func NewValueColumn(name string, typ dtype.Type, values []any) *Column {
	return &Column{name: name, kind: ValueKind, typ: typ, values: values}
}

// NewGroupColumn wraps df as a group column.
func NewGroupColumn(name string, df *DataFrame) *Column {
	if df == nil {
		df = Empty(0)
	}
	return &Column{name: name, kind: GroupKind, group: df}
}

// NewFrameColumn builds a frame column whose shared schema is computed on
// first use by intersecting the schemas of its non-empty frames. Nil frames
// are stored as empty frames; the caller's slice is left unchanged.
func NewFrameColumn(name string, frames []*DataFrame) *Column {
	copied := false
	for i, f := range frames {
		if f != nil {
			continue
		}
		if !copied {
			frames = append([]*DataFrame(nil), frames...)
			copied = true
		}
		frames[i] = Empty(0)
	}
	return &Column{name: name, kind: FrameKind, frames: frames, schema: &lazySchema{}}
}

// NewFrameColumnWithSchema builds a frame column with a known shared schema.
func NewFrameColumnWithSchema(name string, frames []*DataFrame, schema Schema) *Column {
	c := NewFrameColumn(name, frames)
	c.schema.once.Do(func() { c.schema.schema = schema })
	return c
}

// NewKeyValueColumn builds a frame column whose frames enumerate the entries
// of dictionary-like objects as key/value rows.
func NewKeyValueColumn(name string, frames []*DataFrame, schema Schema) *Column {
	c := NewFrameColumnWithSchema(name, frames, schema)
	c.keyValue = true
	return c
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Kind returns the column kind.
func (c *Column) Kind() ColumnKind { return c.kind }

// Type returns the element type: the value type, Row for groups and Frame for
// frame columns.
func (c *Column) Type() dtype.Type {
	switch c.kind {
	case GroupKind:
		return dtype.Of(dtype.Row)
	case FrameKind:
		return dtype.Of(dtype.Frame)
	}
	return c.typ
}

// IsKeyValue reports whether the frames of c were built from dictionaries.
func (c *Column) IsKeyValue() bool { return c.keyValue }

// Len returns the number of rows.
func (c *Column) Len() int {
	switch c.kind {
	case GroupKind:
		return c.group.NumRows()
	case FrameKind:
		return len(c.frames)
	}
	return len(c.values)
}

// Value returns the cell at row i: the element for value columns, a Row for
// groups and a *DataFrame for frame columns.
func (c *Column) Value(i int) any {
	switch c.kind {
	case GroupKind:
		return c.group.Row(i)
	case FrameKind:
		return c.frames[i]
	}
	return c.values[i]
}

// Values returns every cell. For value columns the backing slice is returned
// and must not be modified.
func (c *Column) Values() []any {
	if c.kind == ValueKind {
		return c.values
	}
	out := make([]any, c.Len())
	for i := range out {
		out[i] = c.Value(i)
	}
	return out
}

// Group returns the nested frame of a group column, or nil.
func (c *Column) Group() *DataFrame {
	if c.kind != GroupKind {
		return nil
	}
	return c.group
}

// Frames returns the per-row frames of a frame column, or nil. The slice must
// not be modified.
func (c *Column) Frames() []*DataFrame {
	if c.kind != FrameKind {
		return nil
	}
	return c.frames
}

// IsNull reports whether row i holds no data. Empty lists and empty nested
// frames count as null, as does a group row whose fields are all null.
func (c *Column) IsNull(i int) bool {
	switch c.kind {
	case GroupKind:
		for _, child := range c.group.cols.Values {
			if !child.IsNull(i) {
				return false
			}
		}
		return true
	case FrameKind:
		return c.frames[i].NumRows() == 0
	}
	switch v := c.values[i].(type) {
	case nil:
		return true
	case []any:
		return len(v) == 0
	case *DataFrame:
		return v.NumRows() == 0
	}
	return false
}

// Schema describes the column.
func (c *Column) Schema() ColumnSchema {
	switch c.kind {
	case GroupKind:
		s := c.group.Schema()
		return ColumnSchema{Kind: GroupKind, Fields: &s}
	case FrameKind:
		s := c.FrameSchema()
		return ColumnSchema{Kind: FrameKind, Fields: &s}
	}
	return ColumnSchema{Kind: ValueKind, Type: c.typ}
}

// FrameSchema returns the schema shared by the frames of a frame column,
// computing it once on first call.
func (c *Column) FrameSchema() Schema {
	if c.kind != FrameKind {
		return Schema{}
	}
	c.schema.once.Do(func() {
		schemas := make([]Schema, 0, len(c.frames))
		for _, f := range c.frames {
			if f.NumCols() > 0 {
				schemas = append(schemas, f.Schema())
			}
		}
		c.schema.schema = IntersectSchemas(schemas...)
	})
	return c.schema.schema
}

// Path returns the full path of the column as it was resolved.
func (c *Column) Path() ColumnPath { return c.parent.Append(c.name) }

// Parent returns the path of the group c was read from; nil for top level.
func (c *Column) Parent() ColumnPath { return c.parent }

// Child returns the named field of a group column, stamped with the path of
// this column.
func (c *Column) Child(name string) (*Column, bool) {
	if c.kind != GroupKind {
		return nil, false
	}
	child, ok := c.group.cols.AtTry(name)
	if !ok {
		return nil, false
	}
	return child.withParent(c.Path()), true
}

// Rename returns a handle with a new name sharing the content of c.
func (c *Column) Rename(name string) *Column {
	cp := *c
	cp.name = name
	return &cp
}

func (c *Column) withParent(p ColumnPath) *Column {
	cp := *c
	cp.parent = p
	return &cp
}

func (c *Column) withGroup(df *DataFrame) *Column {
	cp := *c
	cp.group = df
	return &cp
}

// Slice returns rows [start, end) sharing storage with c.
func (c *Column) Slice(start, end int) *Column {
	cp := *c
	switch c.kind {
	case GroupKind:
		cp.group = c.group.Slice(start, end)
	case FrameKind:
		cp.frames = c.frames[start:end:end]
		cp.schema = &lazySchema{}
		if c.keyValue {
			s := c.FrameSchema()
			cp.schema.once.Do(func() { cp.schema.schema = s })
		}
	default:
		cp.values = c.values[start:end:end]
	}
	return &cp
}

func (c *Column) String() string {
	return fmt.Sprintf("%s: %s[%d]", c.name, c.Schema(), c.Len())
}

// ValuesOf returns the elements of a value column as T. Null cells become the
// zero value. It reports false when c is not a value column or an element has
// a different representation.
func ValuesOf[T any](c *Column) ([]T, bool) {
	if c == nil || c.kind != ValueKind {
		return nil, false
	}
	out := make([]T, len(c.values))
	for i, v := range c.values {
		if v == nil {
			continue
		}
		t, ok := v.(T)
		if !ok {
			return nil, false
		}
		out[i] = t
	}
	return out, true
}
