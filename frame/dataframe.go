// Package frame is the hierarchical column model: a DataFrame is an ordered
// set of equal-length columns, each of which is a value sequence, a nested
// group frame, or one independent frame per row.
//
// Frames and columns are immutable. Transforms such as Rename and Select build
// new frames that share the content of untouched columns.
package frame

import (
	"errors"
	"fmt"
	"strings"

	"cogentcore.org/core/base/keylist"

	"github.com/reoring/jsonframe/dtype"
)

var (
	// ErrLengthMismatch is returned when sibling columns differ in length.
	ErrLengthMismatch = errors.New("frame: columns differ in length")
	// ErrDuplicateName is returned when two sibling columns share a name.
	ErrDuplicateName = errors.New("frame: duplicate column name")
)

// DataFrame is an ordered mapping of unique names to equal-length columns.
type DataFrame struct {
	cols *keylist.List[string, *Column]
	nrow int
}

// New builds a frame from columns. The row count is the common column length,
// or zero without columns.
func New(cols ...*Column) (*DataFrame, error) {
	df := &DataFrame{cols: keylist.New[string, *Column]()}
	for i, c := range cols {
		if i == 0 {
			df.nrow = c.Len()
		} else if c.Len() != df.nrow {
			return nil, fmt.Errorf("%w: %q has %d rows, want %d", ErrLengthMismatch, c.name, c.Len(), df.nrow)
		}
		if c.parent != nil {
			c = c.withParent(nil)
		}
		if err := df.cols.Add(c.name, c); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, c.name)
		}
	}
	return df, nil
}

// MustNew is New that panics on error.
func MustNew(cols ...*Column) *DataFrame {
	df, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return df
}

// Empty returns a frame with nrow rows and no columns.
func Empty(nrow int) *DataFrame {
	return &DataFrame{cols: keylist.New[string, *Column](), nrow: nrow}
}

// NumRows returns the row count.
func (df *DataFrame) NumRows() int {
	if df == nil {
		return 0
	}
	return df.nrow
}

// NumCols returns the number of top-level columns.
func (df *DataFrame) NumCols() int {
	if df == nil {
		return 0
	}
	return df.cols.Len()
}

// Names returns the top-level column names in order.
func (df *DataFrame) Names() []string {
	if df == nil {
		return nil
	}
	out := make([]string, len(df.cols.Keys))
	copy(out, df.cols.Keys)
	return out
}

// Columns returns the top-level columns in order.
func (df *DataFrame) Columns() []*Column {
	if df == nil {
		return nil
	}
	out := make([]*Column, len(df.cols.Values))
	copy(out, df.cols.Values)
	return out
}

// Column returns the top-level column with the given name.
func (df *DataFrame) Column(name string) (*Column, bool) {
	if df == nil {
		return nil, false
	}
	return df.cols.AtTry(name)
}

// ColumnAt returns the i-th top-level column.
func (df *DataFrame) ColumnAt(i int) *Column { return df.cols.Values[i] }

// Get resolves a path of names, failing when it does not exist.
func (df *DataFrame) Get(path ...string) (*Column, error) {
	return Resolve(df, ColumnPath(path), Fail)
}

// Slice returns rows [start, end) sharing storage with df.
func (df *DataFrame) Slice(start, end int) *DataFrame {
	if start < 0 || end > df.nrow || start > end {
		panic(fmt.Sprintf("frame: slice [%d:%d] out of range for %d rows", start, end, df.nrow))
	}
	out := &DataFrame{cols: keylist.New[string, *Column](), nrow: end - start}
	for i, c := range df.cols.Values {
		out.cols.Set(df.cols.Keys[i], c.Slice(start, end))
	}
	return out
}

// Row returns a view of row i.
func (df *DataFrame) Row(i int) Row {
	if i < 0 || i >= df.nrow {
		panic(fmt.Sprintf("frame: row %d out of range for %d rows", i, df.nrow))
	}
	return Row{df: df, index: i}
}

// Rows returns views of every row.
func (df *DataFrame) Rows() []Row {
	out := make([]Row, df.NumRows())
	for i := range out {
		out[i] = Row{df: df, index: i}
	}
	return out
}

// Schema describes the columns of df.
func (df *DataFrame) Schema() Schema {
	var s Schema
	if df == nil {
		return s
	}
	for i, c := range df.cols.Values {
		s.add(df.cols.Keys[i], c.Schema())
	}
	return s
}

// DataType classifies frames stored inside value columns.
func (df *DataFrame) DataType() dtype.Type { return dtype.Of(dtype.Frame) }

// replaceAt returns a copy of df with column i replaced.
func (df *DataFrame) replaceAt(i int, c *Column) *DataFrame {
	out := &DataFrame{cols: keylist.New[string, *Column](), nrow: df.nrow}
	for j, old := range df.cols.Values {
		if j == i {
			out.cols.Set(c.name, c)
			continue
		}
		out.cols.Set(df.cols.Keys[j], old)
	}
	return out
}

const maxPrintedRows = 20

// String renders a small text table for debugging.
func (df *DataFrame) String() string {
	if df == nil {
		return "<nil>"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "DataFrame [%d x %d]\n", df.nrow, df.NumCols())
	b.WriteString(strings.Join(df.cols.Keys, "\t"))
	b.WriteByte('\n')
	n := min(df.nrow, maxPrintedRows)
	for i := 0; i < n; i++ {
		for j, c := range df.cols.Values {
			if j > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(formatCell(c.Value(i)))
		}
		b.WriteByte('\n')
	}
	if df.nrow > n {
		fmt.Fprintf(&b, "... %d more rows\n", df.nrow-n)
	}
	return b.String()
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case *DataFrame:
		return fmt.Sprintf("[%d x %d]", x.NumRows(), x.NumCols())
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = formatCell(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return fmt.Sprint(v)
}
