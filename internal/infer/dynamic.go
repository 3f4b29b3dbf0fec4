package infer

import (
	"github.com/reoring/jsonframe/dtype"
	"github.com/reoring/jsonframe/frame"
	"github.com/reoring/jsonframe/jsonnode"
	"github.com/reoring/jsonframe/jsonpath"
)

// dynamic infers one path keeping mixed kinds together. Paths holding only
// arrays or only objects are split as in structured; anything else becomes one
// value column whose cells are scalars, lists, rows or frames.
func (e *engine) dynamic(records []jsonnode.Node, path jsonpath.Path, header []string) (result, error) {
	k := classify(records)
	n := len(records)

	if path.MatchesAny(e.opt.KeyValuePaths) {
		if k.primitive || k.array {
			return result{}, keyValueMismatch(path)
		}
		col, err := e.keyValueColumn(records, path)
		if err != nil {
			return result{}, err
		}
		return result{cols: []*frame.Column{col}, nrow: n, anonymous: true}, nil
	}

	switch {
	case k.array && !k.primitive && !k.object:
		col, err := e.arrayColumn(arrayName, records, path)
		if err != nil {
			return result{}, err
		}
		cols := []*frame.Column{col}
		if wantsHeader(cols, true, header) {
			e.log.Debug("header split", "path", path.String(), "columns", len(header))
			return result{cols: splitHeader(col, header), nrow: n}, nil
		}
		return result{cols: cols, nrow: n, anonymous: true}, nil

	case k.object && !k.primitive && !k.array:
		names := k.names.list()
		cols := make([]*frame.Column, 0, len(names))
		for _, name := range names {
			col, err := e.fieldColumn(name, records, path)
			if err != nil {
				return result{}, err
			}
			cols = append(cols, col)
		}
		return result{cols: cols, nrow: n}, nil
	}

	if k.object {
		e.log.Debug("mixed kinds", "path", path.String(), "tactic", Dynamic.String())
	}
	values := make([]any, n)
	var nan []int
	for i, r := range records {
		switch v := r.(type) {
		case *jsonnode.Object:
			cell, err := e.single(v, path.ReplaceLastWildcardWithIndex(i))
			if err != nil {
				return result{}, err
			}
			values[i] = cell
		case jsonnode.Array:
			sub, err := e.dynamic([]jsonnode.Node(v), path.ReplaceLastWildcardWithIndex(i).AppendWildcard(), nil)
			if err != nil {
				return result{}, err
			}
			if sub.anonymous {
				values[i] = sub.cols[0].Values()
			} else {
				values[i] = sub.frame()
			}
		default:
			cell, isNaN := primitive(r)
			if isNaN {
				nan = append(nan, i)
				continue
			}
			values[i] = cell
		}
	}
	if k.array || k.object {
		for _, i := range nan {
			values[i] = nanSentinel
		}
		col := frame.NewValueColumn(valueName, dtype.Of(dtype.Any).WithNullable(hasNil(values)), values)
		return result{cols: []*frame.Column{col}, nrow: n, anonymous: true}, nil
	}
	return result{cols: []*frame.Column{valueColumn(valueName, values, nan)}, nrow: n, anonymous: true}, nil
}
