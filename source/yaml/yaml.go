// Package yaml converts YAML documents into ordered JSON trees. Mapping order
// is preserved so inferred columns follow the document.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reoring/jsonframe/jsonnode"
)

// Decode reads every document of r. Empty documents are skipped.
func Decode(r io.Reader) ([]jsonnode.Node, error) {
	dec := yaml.NewDecoder(r)
	var docs []jsonnode.Node
	for {
		var doc yaml.Node
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if len(doc.Content) == 0 {
			continue
		}
		n, err := Convert(&doc)
		if err != nil {
			return nil, err
		}
		docs = append(docs, n)
	}
	return docs, nil
}

// Convert maps a yaml.Node onto a JSON tree. Aliases are expanded, non-finite
// floats become the strings "NaN", "Infinity" and "-Infinity", and scalars
// with tags outside the JSON schema are kept as strings.
func Convert(n *yaml.Node) (jsonnode.Node, error) {
	return convert(n, 0)
}

const maxAliasDepth = 64

func convert(n *yaml.Node, aliases int) (jsonnode.Node, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return jsonnode.Null{}, nil
		}
		return convert(n.Content[0], aliases)
	case yaml.AliasNode:
		if aliases >= maxAliasDepth {
			return nil, fmt.Errorf("yaml: alias nesting exceeds %d at line %d", maxAliasDepth, n.Line)
		}
		return convert(n.Alias, aliases+1)
	case yaml.SequenceNode:
		out := make(jsonnode.Array, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := convert(c, aliases)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		b := jsonnode.NewObjectBuilder()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, vn := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("yaml: non-scalar mapping key at line %d", k.Line)
			}
			v, err := convert(vn, aliases)
			if err != nil {
				return nil, err
			}
			b.Set(k.Value, v)
		}
		return b.Build(), nil
	case yaml.ScalarNode:
		return scalar(n)
	}
	return nil, fmt.Errorf("yaml: unsupported node kind %d at line %d", n.Kind, n.Line)
}

func scalar(n *yaml.Node) (jsonnode.Node, error) {
	switch n.ShortTag() {
	case "!!null":
		return jsonnode.Null{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return jsonnode.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return jsonnode.Number(strconv.FormatInt(i, 10)), nil
		}
		if b, ok := new(big.Int).SetString(strings.ReplaceAll(n.Value, "_", ""), 0); ok {
			return jsonnode.Number(b.String()), nil
		}
		return jsonnode.String(n.Value), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return jsonnode.Float(f, 64), nil
	}
	return jsonnode.String(n.Value), nil
}
