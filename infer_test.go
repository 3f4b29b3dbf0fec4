package jsonframe_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/jsonframe"
	"github.com/reoring/jsonframe/dtype"
	"github.com/reoring/jsonframe/frame"
	"github.com/reoring/jsonframe/jsonnode"
	"github.com/reoring/jsonframe/jsonpath"
)

func read(t *testing.T, js string, opt jsonframe.Options) *frame.DataFrame {
	t.Helper()
	df, err := jsonframe.ReadJSONBytes(context.Background(), []byte(js), opt)
	require.NoError(t, err)
	return df
}

func column(t *testing.T, df *frame.DataFrame, path ...string) *frame.Column {
	t.Helper()
	c, err := df.Get(path...)
	require.NoError(t, err)
	return c
}

func TestInfer_RowCount(t *testing.T) {
	inputs := []string{
		`[]`,
		`[1]`,
		`[null, null]`,
		`[1, "a", true, null, {"x": 1}, [1, 2]]`,
		`[{"a": [1, {"b": 2}]}, {"a": "x"}, {}]`,
		`[[], [[]], [[1], [2, 3]]]`,
	}
	for _, tactic := range []jsonframe.Tactic{jsonframe.Structured, jsonframe.Dynamic} {
		for _, in := range inputs {
			doc, err := jsonframe.DecodeDocument(jsonframe.JSONBytes([]byte(in)))
			require.NoError(t, err)
			df, err := jsonframe.InferDocument(doc, jsonframe.Options{Tactic: tactic})
			require.NoError(t, err, in)
			assert.Equal(t, len(doc.(jsonnode.Array)), df.NumRows(), "%s %s", tactic, in)
		}
	}
}

func TestInfer_SingleValueDocumentIsOneRecord(t *testing.T) {
	df := read(t, `{"a": 1, "b": "x"}`, jsonframe.Options{})
	require.Equal(t, 1, df.NumRows())
	assert.Equal(t, []string{"a", "b"}, df.Names())
}

func TestInfer_EmptyRecordsGiveEmptyFrame(t *testing.T) {
	df, err := jsonframe.Infer(nil, jsonframe.Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, df.NumRows())
	assert.Equal(t, 0, df.NumCols())
}

func TestInfer_FieldUnionKeepsFirstSeenOrder(t *testing.T) {
	df := read(t, `[{"b": 1, "a": 2}, {"c": 3, "a": 4}, {"d": null, "b": 5}]`, jsonframe.Options{})
	assert.Equal(t, []string{"b", "a", "c", "d"}, df.Names())

	a := column(t, df, "a")
	assert.Equal(t, dtype.NullableOf(dtype.Int), a.Type())
	assert.Equal(t, []any{int32(2), int32(4), nil}, a.Values())
}

func TestInfer_StructuredTypeClash(t *testing.T) {
	df := read(t, `["text", {"b": 2}, [6, 7, 8]]`, jsonframe.Options{})
	require.Equal(t, 3, df.NumRows())
	assert.ElementsMatch(t, []string{"value", "b", "array"}, df.Names())

	value := column(t, df, "value")
	assert.Equal(t, frame.ValueKind, value.Kind())
	assert.Equal(t, []any{"text", nil, nil}, value.Values())

	b := column(t, df, "b")
	assert.Equal(t, []any{nil, int32(2), nil}, b.Values())

	array := column(t, df, "array")
	assert.Equal(t, dtype.ListOf(dtype.Of(dtype.Int)), array.Type())
	assert.Len(t, array.Value(0), 0)
	assert.Len(t, array.Value(1), 0)
	assert.Equal(t, []any{int32(6), int32(7), int32(8)}, array.Value(2))
}

func TestInfer_StructuredTypeClashNested(t *testing.T) {
	df := read(t, `[{"a": "text"}, {"a": {"b": 2}}, {"a": [6, 7, 8]}]`, jsonframe.Options{})
	a := column(t, df, "a")
	require.Equal(t, frame.GroupKind, a.Kind())
	assert.Equal(t, []string{"b", "value", "array"}, a.Group().Names())

	value := column(t, df, "a", "value")
	assert.Equal(t, []any{"text", nil, nil}, value.Values())
	assert.Equal(t, frame.ColumnPath{"a"}, value.Parent())
}

func TestInfer_DynamicTypeClash(t *testing.T) {
	df := read(t, `["text", {"b": 2}, [6, 7, 8]]`, jsonframe.Options{Tactic: jsonframe.Dynamic})
	require.Equal(t, []string{"value"}, df.Names())

	col := column(t, df, "value")
	assert.Equal(t, dtype.Any, col.Type().Kind)
	assert.Equal(t, "text", col.Value(0))

	row, ok := col.Value(1).(frame.Row)
	require.True(t, ok, "expected a row, got %T", col.Value(1))
	b, ok := row.Get("b")
	require.True(t, ok)
	assert.Equal(t, int32(2), b)

	assert.Equal(t, []any{int32(6), int32(7), int32(8)}, col.Value(2))
}

func TestInfer_DynamicMixedKindsAreAny(t *testing.T) {
	cases := map[string]string{
		`["NaN", {"b": 2}]`: "Any",
		`[[1], "NaN"]`:      "Any",
		`[1, {"b": 2}]`:     "Any",
		`[null, [1], "x"]`:  "Any?",
	}
	for in, want := range cases {
		df := read(t, in, jsonframe.Options{Tactic: jsonframe.Dynamic})
		col := column(t, df, "value")
		assert.Equal(t, want, col.Type().String(), in)
	}

	df := read(t, `["NaN", {"b": 2}]`, jsonframe.Options{Tactic: jsonframe.Dynamic})
	assert.Equal(t, "NaN", column(t, df, "value").Value(0), "the sentinel stays text in a mixed column")
}

func TestInfer_DynamicSplitsUniformKinds(t *testing.T) {
	df := read(t, `[{"a": {"x": 1}}, {"a": {"y": "s"}}]`, jsonframe.Options{Tactic: jsonframe.Dynamic})
	a := column(t, df, "a")
	require.Equal(t, frame.GroupKind, a.Kind())
	assert.Equal(t, []string{"x", "y"}, a.Group().Names())
}

func TestInfer_NaNSentinel(t *testing.T) {
	for _, tactic := range []jsonframe.Tactic{jsonframe.Structured, jsonframe.Dynamic} {
		df := read(t, `[1.1, "NaN"]`, jsonframe.Options{Tactic: tactic})
		col := column(t, df, "value")
		assert.Equal(t, dtype.Of(dtype.Double), col.Type(), tactic.String())
		assert.Equal(t, 1.1, col.Value(0))
		f, ok := col.Value(1).(float64)
		require.True(t, ok, "expected float64, got %T", col.Value(1))
		assert.True(t, math.IsNaN(f))
	}
}

func TestInfer_NaNStaysStringInStringColumns(t *testing.T) {
	df := read(t, `["NaN", "x"]`, jsonframe.Options{})
	col := column(t, df, "value")
	assert.Equal(t, dtype.Of(dtype.String), col.Type())
	assert.Equal(t, []any{"NaN", "x"}, col.Values())
}

func TestInfer_NumberWidening(t *testing.T) {
	df := read(t, `[{"i": 1, "l": 1, "d": 1, "b": 1}, {"i": 2, "l": 3000000000, "d": 2.5, "b": 123456789012345678901234567890}]`, jsonframe.Options{})
	assert.Equal(t, dtype.Int, column(t, df, "i").Type().Kind)
	assert.Equal(t, dtype.Long, column(t, df, "l").Type().Kind)
	assert.Equal(t, []any{int64(1), int64(3000000000)}, column(t, df, "l").Values())
	assert.Equal(t, dtype.Double, column(t, df, "d").Type().Kind)
	assert.Equal(t, []any{1.0, 2.5}, column(t, df, "d").Values())
	assert.Equal(t, dtype.BigInteger, column(t, df, "b").Type().Kind)
}

func TestInfer_KeyValuePaths(t *testing.T) {
	opt := jsonframe.Options{KeyValuePaths: []jsonpath.Path{jsonpath.Root()}}
	df := read(t, `[{"b": 1, "c": 3}]`, opt)
	require.Equal(t, 1, df.NumRows())
	require.Equal(t, 1, df.NumCols())

	col := df.ColumnAt(0)
	require.Equal(t, frame.FrameKind, col.Kind())
	assert.True(t, col.IsKeyValue())

	kv := col.Frames()[0]
	require.Equal(t, []string{"key", "value"}, kv.Names())
	assert.Equal(t, []any{"b", "c"}, column(t, kv, "key").Values())
	assert.Equal(t, []any{int32(1), int32(3)}, column(t, kv, "value").Values())
}

func TestInfer_KeyValueSharedValueType(t *testing.T) {
	opt := jsonframe.Options{KeyValuePaths: []jsonpath.Path{jsonpath.MustParse(`$["m"]`)}}
	df := read(t, `[{"m": {"a": 1, "b": 2}}, {"m": {"c": "x"}}, {"m": null}]`, opt)

	m := column(t, df, "m")
	require.True(t, m.IsKeyValue())
	frames := m.Frames()
	require.Len(t, frames, 3)
	assert.Equal(t, 2, frames[0].NumRows())
	assert.Equal(t, 1, frames[1].NumRows())
	assert.Equal(t, 0, frames[2].NumRows())
	assert.Equal(t, 2, frames[2].NumCols())

	for _, f := range frames {
		assert.Equal(t, dtype.Comparable, column(t, f, "value").Type().Kind)
	}
	fs := m.FrameSchema()
	assert.Equal(t, []string{"key", "value"}, fs.Names())
}

func TestInfer_KeyValueWildcardPattern(t *testing.T) {
	opt := jsonframe.Options{KeyValuePaths: []jsonpath.Path{jsonpath.MustParse(`$["items"][*]["attrs"]`)}}
	df := read(t, `[{"items": [{"attrs": {"k": 1}}, {"attrs": {"j": 2, "k": 3}}]}]`, opt)

	items := column(t, df, "items")
	require.Equal(t, frame.FrameKind, items.Kind())
	attrs := column(t, items.Frames()[0], "attrs")
	assert.True(t, attrs.IsKeyValue())
	assert.Equal(t, 1, attrs.Frames()[0].NumRows())
	assert.Equal(t, 2, attrs.Frames()[1].NumRows())
}

func TestInfer_KeyValueMismatch(t *testing.T) {
	opt := jsonframe.Options{KeyValuePaths: []jsonpath.Path{jsonpath.MustParse(`$["m"]`)}}
	for _, in := range []string{`[{"m": {"a": 1}}, {"m": 5}]`, `[{"m": [1]}]`} {
		_, err := jsonframe.ReadJSONBytes(context.Background(), []byte(in), opt)
		require.Error(t, err, in)
		assert.True(t, jsonframe.IsKeyValuePathMismatch(err), "%v", err)

		iss, ok := jsonframe.AsIssues(err)
		require.True(t, ok)
		assert.Equal(t, jsonframe.CodeKeyValuePathMismatch, iss[0].Code)
		assert.Equal(t, `$["m"]`, iss[0].Path)
	}
}

func TestInfer_HeaderSplit(t *testing.T) {
	df := read(t, `[[1, 2, 3], [4, 5, 6]]`, jsonframe.Options{Header: []string{"a", "b", "c"}})
	require.Equal(t, 2, df.NumRows())
	require.Equal(t, []string{"a", "b", "c"}, df.Names())
	for _, name := range df.Names() {
		assert.Equal(t, dtype.Of(dtype.Int), column(t, df, name).Type(), name)
	}
	assert.Equal(t, []any{int32(2), int32(5)}, column(t, df, "b").Values())
}

func TestInfer_HeaderShortRowsAreNull(t *testing.T) {
	df := read(t, `[[1, "x"], [2]]`, jsonframe.Options{Header: []string{"n", "s"}, Tactic: jsonframe.Dynamic})
	require.Equal(t, []string{"n", "s"}, df.Names())
	assert.Equal(t, []any{"x", nil}, column(t, df, "s").Values())
	assert.True(t, column(t, df, "s").Type().Nullable)
}

func TestInfer_HeaderIgnoredForObjects(t *testing.T) {
	df := read(t, `[{"x": 1}]`, jsonframe.Options{Header: []string{"a"}})
	assert.Equal(t, []string{"x"}, df.Names())
}

func TestInfer_ReservedNameSuffixes(t *testing.T) {
	df := read(t, `[{"value": 1, "array": 2}, "x", [1]]`, jsonframe.Options{})
	assert.Equal(t, []string{"value", "array", "value1", "array1"}, df.Names())
	assert.Equal(t, []any{int32(1), nil, nil}, column(t, df, "value").Values())
	assert.Equal(t, []any{nil, "x", nil}, column(t, df, "value1").Values())
	assert.Equal(t, []any{int32(1)}, column(t, df, "array1").Value(2))

	df = read(t, `[{"value": 1, "value1": 2}, "x"]`, jsonframe.Options{})
	assert.Equal(t, []string{"value", "value1", "value2"}, df.Names())
}

func TestInfer_ArraysOfObjectsBecomeFrames(t *testing.T) {
	df := read(t, `[{"a": [{"x": 1}, {"x": 2, "y": "s"}]}, {"a": []}, {"a": null}]`, jsonframe.Options{})
	a := column(t, df, "a")
	require.Equal(t, frame.FrameKind, a.Kind())
	frames := a.Frames()
	assert.Equal(t, 2, frames[0].NumRows())
	assert.Equal(t, 0, frames[1].NumRows())
	assert.Equal(t, 0, frames[2].NumRows())
	assert.Equal(t, []string{"x", "y"}, a.FrameSchema().Names())
}

func TestInfer_NestedEmptyArrays(t *testing.T) {
	df := read(t, `[[[], []]]`, jsonframe.Options{})
	col := df.ColumnAt(0)
	assert.Equal(t, "List<List<Nothing>>", col.Type().String())
}

func TestInfer_InvalidOptions(t *testing.T) {
	_, err := jsonframe.Infer(nil, jsonframe.Options{Header: []string{"a", "a"}})
	iss, ok := jsonframe.AsIssues(err)
	require.True(t, ok, "%v", err)
	assert.True(t, iss.HasCode(jsonframe.CodeInvalidOption))

	_, err = jsonframe.Infer(nil, jsonframe.Options{Tactic: jsonframe.Tactic(7)})
	assert.Error(t, err)
}

func TestInfer_ResolveAgainstInferredFrame(t *testing.T) {
	df := read(t, `[{"a": {"b": 1}}, {"a": {"b": 2}}]`, jsonframe.Options{})

	b, err := frame.Resolve(df, frame.ColumnPath{"a", "b"}, frame.Fail)
	require.NoError(t, err)
	assert.Equal(t, frame.ColumnPath{"a", "b"}, b.Path())

	_, err = frame.Resolve(df, frame.ColumnPath{"a", "zz"}, frame.Fail)
	assert.ErrorIs(t, err, frame.ErrColumnNotFound)

	missing, err := frame.Resolve(df, frame.ColumnPath{"a", "zz"}, frame.MaterializeEmpty)
	require.NoError(t, err)
	assert.Equal(t, 0, missing.Len())
	assert.Equal(t, frame.ColumnPath{"a", "zz"}, missing.Path())
}
