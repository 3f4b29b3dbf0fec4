package yaml_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/reoring/jsonframe/jsonnode"
	"github.com/reoring/jsonframe/source/yaml"
)

func TestDecode_Scalars(t *testing.T) {
	in := `
name: web
replicas: 3
ratio: 0.5
big: !!int 123456789012345678901234567890
hex: 0x1F
when: 2001-12-14
none: ~
quoted: "12"
inf: .inf
base: &b {x: 1}
copy: *b
`
	docs, err := yaml.Decode(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t,
		`{"name":"web","replicas":3,"ratio":0.5,"big":123456789012345678901234567890,"hex":31,"when":"2001-12-14","none":null,"quoted":"12","inf":"Infinity","base":{"x":1},"copy":{"x":1}}`,
		jsonnode.Render(docs[0]))
}

func TestDecode_MultipleDocuments(t *testing.T) {
	docs, err := yaml.Decode(strings.NewReader("z: 1\na: [1, 2.0]\n---\n- x\n- null\n"))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, `{"z":1,"a":[1,2.0]}`, jsonnode.Render(docs[0]))
	assert.Equal(t, `["x",null]`, jsonnode.Render(docs[1]))
}

func TestDecode_Empty(t *testing.T) {
	docs, err := yaml.Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDecode_Errors(t *testing.T) {
	_, err := yaml.Decode(strings.NewReader("? [a]\n: 1\n"))
	assert.Error(t, err, "non-scalar keys")

	_, err = yaml.Decode(strings.NewReader("a: [1, 2\n"))
	assert.Error(t, err, "syntax")
}

func TestConvert_Node(t *testing.T) {
	var n yamlv3.Node
	require.NoError(t, yamlv3.Unmarshal([]byte("{b: true, a: -7}"), &n))
	out, err := yaml.Convert(&n)
	require.NoError(t, err)
	assert.Equal(t, `{"b":true,"a":-7}`, jsonnode.Render(out))

	empty, err := yaml.Convert(&yamlv3.Node{Kind: yamlv3.DocumentNode})
	require.NoError(t, err)
	assert.True(t, jsonnode.IsNull(empty))
}
