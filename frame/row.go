package frame

import (
	"strings"

	"github.com/reoring/jsonframe/dtype"
)

// Row is a read-only view of one row of a DataFrame.
type Row struct {
	df    *DataFrame
	index int
}

// Index returns the row position within its frame.
func (r Row) Index() int { return r.index }

// Frame returns the frame the row belongs to.
func (r Row) Frame() *DataFrame { return r.df }

// Len returns the number of cells.
func (r Row) Len() int { return r.df.NumCols() }

// Names returns the cell names in column order.
func (r Row) Names() []string { return r.df.Names() }

// Get returns the cell of the named column.
func (r Row) Get(name string) (any, bool) {
	c, ok := r.df.Column(name)
	if !ok {
		return nil, false
	}
	return c.Value(r.index), true
}

// At returns the i-th cell.
func (r Row) At(i int) any { return r.df.ColumnAt(i).Value(r.index) }

// DataType classifies rows stored inside value columns.
func (r Row) DataType() dtype.Type { return dtype.Of(dtype.Row) }

// Equal compares names and cells.
func (r Row) Equal(o Row) bool {
	if r.Len() != o.Len() {
		return false
	}
	for i, c := range r.df.cols.Values {
		oc := o.df.cols.Values[i]
		if c.name != oc.name || !valuesEqual(c.Value(r.index), oc.Value(o.index)) {
			return false
		}
	}
	return true
}

func (r Row) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, c := range r.df.cols.Values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.name)
		b.WriteString(": ")
		b.WriteString(formatCell(c.Value(r.index)))
	}
	b.WriteByte('}')
	return b.String()
}
