package jsonframe_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/jsonframe"
)

func TestReadJSON_DuplicateKey_Error(t *testing.T) {
	opt := jsonframe.ParseOpt{Strictness: jsonframe.Strictness{OnDuplicateKey: jsonframe.Error}}
	_, err := jsonframe.ReadJSONBytes(context.Background(), []byte(`{"a":1,"a":2}`), jsonframe.Options{}, opt)
	if err == nil {
		t.Fatalf("expected error for duplicate key")
	}
	iss, ok := jsonframe.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected Issues, got: %v", err)
	}
	if iss[0].Code != jsonframe.CodeDuplicateKey {
		t.Fatalf("expected duplicate_key issue, got: %v", iss)
	}
	if iss[0].Path != `$["a"]` {
		t.Fatalf(`expected path=$["a"], got: %s`, iss[0].Path)
	}
}

func TestReadJSON_DuplicateKey_NestedPath(t *testing.T) {
	opt := jsonframe.ParseOpt{Strictness: jsonframe.Strictness{OnDuplicateKey: jsonframe.Error}}
	_, err := jsonframe.ReadJSONBytes(context.Background(), []byte(`[{"x":1},{"a":1,"a":2}]`), jsonframe.Options{}, opt)
	iss, ok := jsonframe.AsIssues(err)
	require.True(t, ok, "expected Issues, got: %v", err)
	require.NotEmpty(t, iss)
	assert.Equal(t, `$[1]["a"]`, iss[0].Path)
}

func TestReadJSON_DuplicateKey_IgnoredByDefault(t *testing.T) {
	df := read(t, `{"a":1,"a":2}`, jsonframe.Options{})
	assert.Equal(t, []any{int32(2)}, column(t, df, "a").Values())
}

func TestReadJSON_DuplicateKey_WarnCollects(t *testing.T) {
	var got []jsonframe.Issue
	opt := jsonframe.ParseOpt{
		Strictness: jsonframe.Strictness{OnDuplicateKey: jsonframe.Warn},
		OnIssue:    func(is jsonframe.Issue) { got = append(got, is) },
	}
	df, err := jsonframe.ReadJSONBytes(context.Background(), []byte(`[{"a":1,"a":2,"b":3,"b":4}]`), jsonframe.Options{}, opt)
	require.NoError(t, err)
	assert.Equal(t, 1, df.NumRows())
	require.Len(t, got, 2)
	assert.Equal(t, `$[0]["a"]`, got[0].Path)
	assert.Equal(t, `$[0]["b"]`, got[1].Path)
	assert.Equal(t, jsonframe.CodeDuplicateKey, got[1].Code)
}

func TestReadJSON_DuplicateKey_WarnFailFast(t *testing.T) {
	opt := jsonframe.ParseOpt{Strictness: jsonframe.Strictness{OnDuplicateKey: jsonframe.Warn}, FailFast: true}
	_, err := jsonframe.ReadJSONBytes(context.Background(), []byte(`{"a":1,"a":2}`), jsonframe.Options{}, opt)
	require.Error(t, err)
	iss, _ := jsonframe.AsIssues(err)
	assert.True(t, iss.HasCode(jsonframe.CodeDuplicateKey))
}

func TestReadJSON_MaxDepth_Exceeded(t *testing.T) {
	// depth = 3 for { a: { b: { c: 1 } } }
	opt := jsonframe.ParseOpt{MaxDepth: 2}
	_, err := jsonframe.ReadJSONBytes(context.Background(), []byte(`{"a":{"b":{"c":1}}}`), jsonframe.Options{}, opt)
	if err == nil {
		t.Fatalf("expected error for max depth exceeded")
	}
	iss, ok := jsonframe.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected Issues, got: %v", err)
	}
	if iss[0].Path != `$["a"]["b"]` || iss[0].Code != jsonframe.CodeParseError {
		t.Fatalf(`expected parse_error at $["a"]["b"], got: %v`, iss)
	}
}

func TestReadJSON_MaxDepth_WithinLimit(t *testing.T) {
	opt := jsonframe.ParseOpt{MaxDepth: 3}
	df, err := jsonframe.ReadJSONBytes(context.Background(), []byte(`{"a":{"b":{"c":1}}}`), jsonframe.Options{}, opt)
	require.NoError(t, err)
	assert.Equal(t, 1, df.NumRows())
}

func TestReadJSON_MaxBytes_Exceeded(t *testing.T) {
	data := append([]byte("[1,2]"), bytes.Repeat([]byte(" "), 1024)...)
	opt := jsonframe.ParseOpt{MaxBytes: 16}
	_, err := jsonframe.ReadJSONReader(context.Background(), bytes.NewReader(data), jsonframe.Options{}, opt)
	if err == nil {
		t.Fatalf("expected error for max bytes exceeded")
	}
	iss, ok := jsonframe.AsIssues(err)
	if !ok || !iss.HasCode(jsonframe.CodeTruncated) {
		t.Fatalf("expected truncated issue, got: %v", err)
	}
}

func TestReadJSON_MaxBytes_WithinLimit(t *testing.T) {
	opt := jsonframe.ParseOpt{MaxBytes: 64}
	df, err := jsonframe.ReadJSONReader(context.Background(), strings.NewReader(`[1,2,3]`), jsonframe.Options{}, opt)
	require.NoError(t, err)
	assert.Equal(t, 3, df.NumRows())
}

func TestReadJSON_TrailingData(t *testing.T) {
	_, err := jsonframe.ReadJSONBytes(context.Background(), []byte(`{"a":1} {"a":2}`), jsonframe.Options{})
	iss, ok := jsonframe.AsIssues(err)
	require.True(t, ok, "expected Issues, got: %v", err)
	assert.Equal(t, jsonframe.CodeParseError, iss[0].Code)
}

func TestReadJSON_UnterminatedArray(t *testing.T) {
	_, err := jsonframe.ReadJSONBytes(context.Background(), []byte(`[1, 2`), jsonframe.Options{})
	iss, ok := jsonframe.AsIssues(err)
	require.True(t, ok, "expected Issues, got: %v", err)
	assert.Equal(t, jsonframe.CodeParseError, iss[0].Code)
}

func TestReadJSON_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "  \n"} {
		_, err := jsonframe.ReadJSONBytes(context.Background(), []byte(in), jsonframe.Options{})
		iss, ok := jsonframe.AsIssues(err)
		require.True(t, ok, "expected Issues for %q, got: %v", in, err)
		assert.Equal(t, jsonframe.CodeParseError, iss[0].Code)
	}
}

func TestReadJSON_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := jsonframe.ReadJSONBytes(ctx, []byte(`[1, 2, 3]`), jsonframe.Options{})
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestReadJSON_InvalidOptions(t *testing.T) {
	_, err := jsonframe.ReadJSONBytes(context.Background(), []byte(`[]`), jsonframe.Options{Header: []string{"a", "a"}})
	iss, ok := jsonframe.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, jsonframe.CodeInvalidOption, iss[0].Code)
}

func TestReadJSONLines(t *testing.T) {
	in := "{\"a\": 1}\n{\"a\": 2, \"b\": \"x\"}\n\n[1, 2]\n"
	df, err := jsonframe.ReadJSONLines(context.Background(), strings.NewReader(in), jsonframe.Options{})
	require.NoError(t, err)
	require.Equal(t, 3, df.NumRows())
	assert.Equal(t, []string{"a", "b", "array"}, df.Names())
	assert.Equal(t, []any{int32(1), int32(2), nil}, column(t, df, "a").Values())
}

func TestReadJSONLines_ArrayLineIsOneRecord(t *testing.T) {
	df, err := jsonframe.ReadJSONLines(context.Background(), strings.NewReader("[1, 2]\n[3]\n"), jsonframe.Options{})
	require.NoError(t, err)
	require.Equal(t, 2, df.NumRows())
	assert.Equal(t, []any{[]any{int32(1), int32(2)}, []any{int32(3)}}, column(t, df, "array").Values())
}

func TestReadJSONLines_EmptyStream(t *testing.T) {
	df, err := jsonframe.ReadJSONLines(context.Background(), strings.NewReader(""), jsonframe.Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, df.NumRows())
	assert.Equal(t, 0, df.NumCols())
}

func TestReadJSONLines_DuplicatePathCountsPerLine(t *testing.T) {
	opt := jsonframe.ParseOpt{Strictness: jsonframe.Strictness{OnDuplicateKey: jsonframe.Error}}
	_, err := jsonframe.ReadJSONLines(context.Background(), strings.NewReader("{\"a\":1}\n{\"a\":1,\"a\":2}\n"), jsonframe.Options{}, opt)
	iss, ok := jsonframe.AsIssues(err)
	require.True(t, ok, "expected Issues, got: %v", err)
	assert.Equal(t, `$["a"]`, iss[0].Path)
}

func TestDecodeDocument_TrailingData(t *testing.T) {
	_, err := jsonframe.DecodeDocument(jsonframe.JSONBytes([]byte(`1 2`)))
	iss, ok := jsonframe.AsIssues(err)
	require.True(t, ok, "expected Issues, got: %v", err)
	assert.Equal(t, jsonframe.CodeParseError, iss[0].Code)
}
