package infer

import (
	"github.com/reoring/jsonframe/frame"
	"github.com/reoring/jsonframe/jsonnode"
	"github.com/reoring/jsonframe/jsonpath"
)

// structured infers one path keeping every JSON kind in its own column:
// object members in first-seen order, then the reserved value column for
// scalars and the reserved array column for arrays.
func (e *engine) structured(records []jsonnode.Node, path jsonpath.Path, header []string) (result, error) {
	k := classify(records)

	if path.MatchesAny(e.opt.KeyValuePaths) {
		if k.primitive || k.array {
			return result{}, keyValueMismatch(path)
		}
		col, err := e.keyValueColumn(records, path)
		if err != nil {
			return result{}, err
		}
		return result{cols: []*frame.Column{col}, nrow: len(records), anonymous: true}, nil
	}

	var value, array string
	hasValue := k.primitive || k.allNull()
	if hasValue {
		value = k.names.addUnique(valueName)
	}
	if k.array {
		array = k.names.addUnique(arrayName)
	}
	if k.object && (k.primitive || k.array) {
		e.log.Debug("mixed kinds", "path", path.String(), "tactic", Structured.String(), "value", value, "array", array)
	}

	names := k.names.list()
	cols := make([]*frame.Column, 0, len(names))
	for _, name := range names {
		var (
			col *frame.Column
			err error
		)
		switch {
		case hasValue && name == value:
			col = primitiveColumn(name, records)
		case k.array && name == array:
			col, err = e.arrayColumn(name, records, path)
		default:
			col, err = e.fieldColumn(name, records, path)
		}
		if err != nil {
			return result{}, err
		}
		cols = append(cols, col)
	}

	if wantsHeader(cols, k.array, header) {
		e.log.Debug("header split", "path", path.String(), "columns", len(header))
		return result{cols: splitHeader(cols[0], header), nrow: len(records)}, nil
	}
	anonymous := len(cols) == 1 && (hasValue && names[0] == value || k.array && names[0] == array)
	return result{cols: cols, nrow: len(records), anonymous: anonymous}, nil
}
