package gojson_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/jsonframe"
	"github.com/reoring/jsonframe/jsonnode"
	"github.com/reoring/jsonframe/source/gojson"
)

var documents = []string{
	`[{"a": 1, "b": [1.5, "x"]}, {"a": 3000000000, "c": {"d": null}}]`,
	`["text", {"b": 2}, [6, 7, 8], null, 123456789012345678901234567890]`,
	`{"k": {"z": [], "y": [{"q": true}]}}`,
}

func TestDriver_MatchesDefault(t *testing.T) {
	t.Cleanup(jsonframe.UseDefaultJSONDriver)
	ctx := context.Background()
	for _, doc := range documents {
		jsonframe.UseDefaultJSONDriver()
		want, err := jsonframe.ReadJSONBytes(ctx, []byte(doc), jsonframe.Options{})
		require.NoError(t, err, doc)

		jsonframe.SetJSONDriver(gojson.Driver())
		require.Equal(t, "go-json", jsonframe.JSONDriverName())
		got, err := jsonframe.ReadJSONBytes(ctx, []byte(doc), jsonframe.Options{})
		require.NoError(t, err, doc)
		assert.True(t, want.Equal(got), "%s\nencoding/json:\n%s\ngo-json:\n%s", doc, want, got)
	}
}

func TestDriver_TokensPreserveNumberText(t *testing.T) {
	n, err := jsonframe.DecodeDocument(gojson.Driver().NewBytes([]byte(`{"a":[12345678901234567890, 0.10, -0]}`)))
	require.NoError(t, err)
	assert.Equal(t, `{"a":[12345678901234567890,0.10,-0]}`, jsonnode.Render(n))
}

func TestDriver_DuplicateKeyEnforcement(t *testing.T) {
	opt := jsonframe.ParseOpt{Strictness: jsonframe.Strictness{OnDuplicateKey: jsonframe.Error}}
	_, err := jsonframe.ReadJSON(context.Background(), gojson.Driver().NewBytes([]byte(`[{"a":1,"a":2}]`)), jsonframe.Options{}, opt)
	iss, ok := jsonframe.AsIssues(err)
	require.True(t, ok, "expected Issues, got: %v", err)
	assert.Equal(t, `$[0]["a"]`, iss[0].Path)
}
