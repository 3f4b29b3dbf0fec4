package frame

import (
	"errors"
	"fmt"

	"github.com/reoring/jsonframe/dtype"
)

// Policy decides what Resolve does when a path does not lead to a column.
type Policy int

const (
	// Fail returns a *PathError.
	Fail Policy = iota
	// SkipAsAbsent returns a nil column and a nil error.
	SkipAsAbsent
	// MaterializeEmpty returns a zero-length nullable Nothing column named
	// after the last path segment.
	MaterializeEmpty
)

var (
	// ErrColumnNotFound reports a missing name along a path.
	ErrColumnNotFound = errors.New("frame: column not found")
	// ErrNotAGroup reports a path continuing below a non-group column.
	ErrNotAGroup = errors.New("frame: column is not a group")
)

// PathError describes a failed resolution. At is the index of the segment
// that could not be followed.
type PathError struct {
	Path ColumnPath
	At   int
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%v: %s (at %q)", e.Err, e.Path, e.Path[:e.At+1].String())
}

func (e *PathError) Unwrap() error { return e.Err }

// Resolve walks path through nested groups of df. The returned handle
// reports its full path; no element data is copied.
func Resolve(df *DataFrame, path ColumnPath, policy Policy) (*Column, error) {
	if len(path) == 0 {
		return absent(path, 0, ErrColumnNotFound, policy)
	}
	cur := df
	var parent ColumnPath
	for i, name := range path {
		col, ok := cur.Column(name)
		if !ok {
			return absent(path, i, ErrColumnNotFound, policy)
		}
		if i == len(path)-1 {
			return col.withParent(parent), nil
		}
		if col.kind != GroupKind {
			return absent(path, i, ErrNotAGroup, policy)
		}
		parent = parent.Append(name)
		cur = col.group
	}
	panic("unreachable")
}

func absent(path ColumnPath, at int, err error, policy Policy) (*Column, error) {
	switch policy {
	case SkipAsAbsent:
		return nil, nil
	case MaterializeEmpty:
		c := NewValueColumn(path.Last(), dtype.NullableOf(dtype.Nothing), []any{})
		return c.withParent(path.Parent()), nil
	}
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: empty path", err)
	}
	return nil, &PathError{Path: path, At: at, Err: err}
}

// Rename returns a frame in which the column at path is called newName. Only
// the groups along path are rebuilt; every other column is shared.
func Rename(df *DataFrame, path ColumnPath, newName string) (*DataFrame, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrColumnNotFound)
	}
	return renameIn(df, path, 0, newName)
}

func renameIn(df *DataFrame, path ColumnPath, depth int, newName string) (*DataFrame, error) {
	name := path[depth]
	idx := df.cols.IndexByKey(name)
	if idx < 0 {
		return nil, &PathError{Path: path, At: depth, Err: ErrColumnNotFound}
	}
	col := df.cols.Values[idx]
	if depth == len(path)-1 {
		if newName != name && df.cols.IndexByKey(newName) >= 0 {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, newName)
		}
		return df.replaceAt(idx, col.Rename(newName)), nil
	}
	if col.kind != GroupKind {
		return nil, &PathError{Path: path, At: depth, Err: ErrNotAGroup}
	}
	g, err := renameIn(col.group, path, depth+1, newName)
	if err != nil {
		return nil, err
	}
	return df.replaceAt(idx, col.withGroup(g)), nil
}

// Select returns a frame holding the columns at paths as top-level columns.
func Select(df *DataFrame, paths ...ColumnPath) (*DataFrame, error) {
	cols := make([]*Column, 0, len(paths))
	for _, p := range paths {
		c, err := Resolve(df, p, Fail)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	if len(cols) == 0 {
		return Empty(df.NumRows()), nil
	}
	return New(cols...)
}
