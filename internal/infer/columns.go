package infer

import (
	"github.com/reoring/jsonframe/dtype"
	"github.com/reoring/jsonframe/frame"
	eng "github.com/reoring/jsonframe/internal/engine"
	"github.com/reoring/jsonframe/jsonnode"
	"github.com/reoring/jsonframe/jsonpath"
)

// arrayColumn concatenates the elements of array records, infers them at
// path[*] and splits the result back per record. Non-array records own no
// elements.
func (e *engine) arrayColumn(name string, records []jsonnode.Node, path jsonpath.Path) (*frame.Column, error) {
	var elems []jsonnode.Node
	starts := make([]int, len(records)+1)
	for i, r := range records {
		starts[i] = len(elems)
		if a, ok := r.(jsonnode.Array); ok {
			elems = append(elems, a...)
		}
	}
	starts[len(records)] = len(elems)

	sub, err := e.infer(elems, path.AppendWildcard(), nil)
	if err != nil {
		return nil, err
	}
	if sub.nrow != len(elems) {
		invariantf("array elements at %s: %d rows for %d elements", path, sub.nrow, len(elems))
	}
	if sub.anonymous {
		c := sub.cols[0]
		cells := c.Values()
		lists := make([]any, len(records))
		for i := range records {
			lists[i] = cells[starts[i]:starts[i+1]:starts[i+1]]
		}
		return frame.NewValueColumn(name, dtype.ListOf(c.Type()), lists), nil
	}
	df := sub.frame()
	frames := make([]*frame.DataFrame, len(records))
	for i := range records {
		frames[i] = df.Slice(starts[i], starts[i+1])
	}
	return frame.NewFrameColumn(name, frames), nil
}

// fieldColumn infers the member name of object records at path.name. Records
// that are not objects or lack the member contribute null.
func (e *engine) fieldColumn(name string, records []jsonnode.Node, path jsonpath.Path) (*frame.Column, error) {
	values := make([]jsonnode.Node, len(records))
	for i, r := range records {
		values[i] = jsonnode.Null{}
		if o, ok := r.(*jsonnode.Object); ok {
			if v, ok := o.Get(name); ok {
				values[i] = v
			}
		}
	}
	sub, err := e.infer(values, path.Append(name), nil)
	if err != nil {
		return nil, err
	}
	switch {
	case len(sub.cols) == 0:
		return frame.NewValueColumn(name, dtype.NullableOf(dtype.Any), make([]any, len(records))), nil
	case sub.anonymous:
		return sub.cols[0].Rename(name), nil
	}
	return frame.NewGroupColumn(name, sub.frame()), nil
}

// single infers one JSON value on its own and returns it as a cell: the only
// cell of a synthesized column, or the single row otherwise.
func (e *engine) single(n jsonnode.Node, path jsonpath.Path) (any, error) {
	sub, err := e.infer([]jsonnode.Node{n}, path, nil)
	if err != nil {
		return nil, err
	}
	if sub.anonymous {
		return sub.cols[0].Value(0), nil
	}
	return sub.frame().Row(0), nil
}

// keyValueColumn turns every object record into a key/value frame. The value
// type is shared by all records at this path.
func (e *engine) keyValueColumn(records []jsonnode.Node, path jsonpath.Path) (*frame.Column, error) {
	keys := make([][]any, len(records))
	values := make([][]any, len(records))
	var all []any
	for i, r := range records {
		o, ok := r.(*jsonnode.Object)
		if !ok {
			continue
		}
		for _, m := range o.Members() {
			v, err := e.single(m.Value, path.Append(m.Key))
			if err != nil {
				return nil, err
			}
			keys[i] = append(keys[i], m.Key)
			values[i] = append(values[i], v)
			all = append(all, v)
		}
	}
	valueType := dtype.Guess(all)
	keyType := dtype.Of(dtype.String)
	frames := make([]*frame.DataFrame, len(records))
	for i := range records {
		ks, vs := keys[i], values[i]
		if ks == nil {
			ks, vs = []any{}, []any{}
		}
		frames[i] = frame.MustNew(
			frame.NewValueColumn(keyName, keyType, ks),
			frame.NewValueColumn(kvValueName, valueType, dtype.ConvertAll(vs, valueType)),
		)
	}
	schema := frame.NewSchema(
		[]string{keyName, kvValueName},
		[]frame.ColumnSchema{frame.ValueSchema(keyType), frame.ValueSchema(valueType)},
	)
	e.log.Debug("key-value frame", "path", path.String(), "records", len(records), "valueType", valueType.String())
	return frame.NewKeyValueColumn(valueName, frames, schema), nil
}

// keyValueMismatch reports a primitive or array at a key-value path.
func keyValueMismatch(path jsonpath.Path) error {
	return eng.IssueError{SimpleIssue: eng.SimpleIssue{
		Code:    eng.CodeKeyValuePathMismatch,
		Path:    path.String(),
		Message: "key value path " + path.String() + " does not match objects",
		Offset:  -1,
	}}
}

// splitHeader unpacks a column of lists row-major into one column per header
// name. Short lists leave the missing cells null.
func splitHeader(col *frame.Column, header []string) []*frame.Column {
	lists := col.Values()
	out := make([]*frame.Column, len(header))
	for j, h := range header {
		vals := make([]any, len(lists))
		for i, l := range lists {
			if xs, ok := l.([]any); ok && j < len(xs) {
				vals[i] = xs[j]
			}
		}
		t := dtype.Guess(vals)
		out[j] = frame.NewValueColumn(h, t, dtype.ConvertAll(vals, t))
	}
	return out
}

// wantsHeader reports whether a top-level result collapsed to one list column
// that the header should be spread over.
func wantsHeader(cols []*frame.Column, hasArray bool, header []string) bool {
	return len(header) > 0 && hasArray && len(cols) == 1 &&
		cols[0].Kind() == frame.ValueKind && cols[0].Type().Kind == dtype.List
}
