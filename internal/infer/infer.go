// Package infer turns lists of JSON trees into frames. Every call works on
// the sibling values observed at one path across all records and recurses
// into object members and array elements.
package infer

import (
	"fmt"
	"log/slog"

	"github.com/reoring/jsonframe/frame"
	"github.com/reoring/jsonframe/jsonnode"
	"github.com/reoring/jsonframe/jsonpath"
)

// Tactic decides how values of different JSON kinds at one path are combined.
type Tactic int

const (
	// Structured splits mixed kinds into a group of value, array and member
	// columns.
	Structured Tactic = iota
	// Dynamic keeps mixed kinds in one column of type Any.
	Dynamic
)

func (t Tactic) String() string {
	if t == Dynamic {
		return "dynamic"
	}
	return "structured"
}

// Options configures one inference.
type Options struct {
	Tactic        Tactic
	KeyValuePaths []jsonpath.Path
	Header        []string
	Logger        *slog.Logger
}

const (
	valueName   = "value"
	arrayName   = "array"
	keyName     = "key"
	kvValueName = "value"
)

// InvariantError is the panic value raised when the engine reaches a state
// its inputs cannot produce.
type InvariantError struct{ Msg string }

func (e *InvariantError) Error() string { return "infer: invariant violation: " + e.Msg }

func invariantf(format string, args ...any) {
	panic(&InvariantError{Msg: fmt.Sprintf(format, args...)})
}

// result is the outcome of one recursion. anonymous marks a single column
// synthesized by the engine (value, array or key-value) that callers rename
// or unwrap instead of nesting it in a group.
type result struct {
	cols      []*frame.Column
	nrow      int
	anonymous bool
}

func (r result) frame() *frame.DataFrame {
	if len(r.cols) == 0 {
		return frame.Empty(r.nrow)
	}
	df, err := frame.New(r.cols...)
	if err != nil {
		invariantf("assembling columns: %v", err)
	}
	return df
}

type engine struct {
	opt Options
	log *slog.Logger
}

// Infer builds a frame with one row per record. Zero records yield an empty
// frame without columns.
func Infer(records []jsonnode.Node, opt Options) (*frame.DataFrame, error) {
	e := &engine{opt: opt, log: opt.Logger}
	if e.log == nil {
		e.log = slog.New(slog.DiscardHandler)
	}
	if len(records) == 0 {
		return frame.Empty(0), nil
	}
	res, err := e.infer(records, jsonpath.Root(), opt.Header)
	if err != nil {
		return nil, err
	}
	df := res.frame()
	if df.NumRows() != len(records) {
		invariantf("inferred %d rows from %d records", df.NumRows(), len(records))
	}
	return df, nil
}

func (e *engine) infer(records []jsonnode.Node, path jsonpath.Path, header []string) (result, error) {
	if e.opt.Tactic == Dynamic {
		return e.dynamic(records, path, header)
	}
	return e.structured(records, path, header)
}

// kinds summarizes the JSON kinds seen at one path. Nulls set none of them.
type kinds struct {
	primitive, array, object bool
	names                    *nameGenerator
}

func classify(records []jsonnode.Node) kinds {
	k := kinds{names: newNameGenerator()}
	for _, r := range records {
		switch v := r.(type) {
		case nil, jsonnode.Null:
		case *jsonnode.Object:
			k.object = true
			for _, name := range v.Keys() {
				k.names.add(name)
			}
		case jsonnode.Array:
			k.array = true
		case jsonnode.Bool, jsonnode.Number, jsonnode.String:
			k.primitive = true
		default:
			invariantf("unexpected node %T", r)
		}
	}
	return k
}

func (k kinds) allNull() bool { return !k.primitive && !k.array && !k.object }
