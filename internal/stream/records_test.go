package stream_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eng "github.com/reoring/jsonframe/internal/engine"
	"github.com/reoring/jsonframe/internal/stream"
	"github.com/reoring/jsonframe/jsonnode"
	jsonsrc "github.com/reoring/jsonframe/source/json"
)

func readAll(t *testing.T, in string, mode stream.Mode) ([]string, *stream.RecordReader, error) {
	t.Helper()
	rr := stream.NewRecordReader(jsonsrc.NewBytes([]byte(in)), mode)
	var out []string
	for {
		n, err := rr.Next()
		if n != nil {
			out = append(out, jsonnode.Render(n))
		}
		if errors.Is(err, io.EOF) {
			return out, rr, nil
		}
		if err != nil {
			return out, rr, err
		}
	}
}

func TestRecordReader_DocumentArray(t *testing.T) {
	got, rr, err := readAll(t, `[{"a":1}, 2, [3], null]`, stream.Document)
	require.NoError(t, err)
	assert.Equal(t, []string{`{"a":1}`, `2`, `[3]`, `null`}, got)
	assert.True(t, rr.TopLevelArray())
	assert.Equal(t, 4, rr.Count())
}

func TestRecordReader_DocumentEmptyArray(t *testing.T) {
	got, rr, err := readAll(t, `[]`, stream.Document)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.True(t, rr.TopLevelArray())
}

func TestRecordReader_DocumentScalar(t *testing.T) {
	got, rr, err := readAll(t, `{"a":[1,2]}`, stream.Document)
	require.NoError(t, err)
	assert.Equal(t, []string{`{"a":[1,2]}`}, got)
	assert.False(t, rr.TopLevelArray())
}

func TestRecordReader_DocumentTrailingData(t *testing.T) {
	got, _, err := readAll(t, `{"a":1} {"a":2}`, stream.Document)
	assert.ErrorIs(t, err, stream.ErrTrailingData)
	assert.Equal(t, []string{`{"a":1}`}, got)

	_, _, err = readAll(t, `[1] [2]`, stream.Document)
	assert.ErrorIs(t, err, stream.ErrTrailingData)
}

func TestRecordReader_DocumentTruncated(t *testing.T) {
	got, _, err := readAll(t, `[1, {"a": 2`, stream.Document)
	require.Error(t, err)
	assert.Equal(t, []string{`1`}, got)
}

func TestRecordReader_Lines(t *testing.T) {
	got, rr, err := readAll(t, "{\"a\":1}\n[1,2]\n\n\"x\"\n", stream.Lines)
	require.NoError(t, err)
	assert.Equal(t, []string{`{"a":1}`, `[1,2]`, `"x"`}, got)
	assert.False(t, rr.TopLevelArray())
	assert.Equal(t, 3, rr.Count())
}

func TestRecordReader_EmptyInput(t *testing.T) {
	for _, mode := range []stream.Mode{stream.Document, stream.Lines} {
		got, _, err := readAll(t, " \n", mode)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestPreloadedSource_StopsAtSubtreeEnd(t *testing.T) {
	inner := jsonsrc.NewBytes([]byte(`{"a":[1]} 5`))
	first, err := inner.NextToken()
	require.NoError(t, err)
	sub := stream.NewPreloadedSource(inner, first)
	n, err := eng.DecodeNode(sub)
	require.NoError(t, err)
	assert.Equal(t, `{"a":[1]}`, jsonnode.Render(n))
	_, err = sub.NextToken()
	assert.Equal(t, io.EOF, err)

	rest, err := inner.NextToken()
	require.NoError(t, err)
	assert.Equal(t, "5", rest.Number)
}
