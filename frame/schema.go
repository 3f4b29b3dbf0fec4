package frame

import (
	"strings"

	"cogentcore.org/core/base/keylist"
	"gopkg.in/yaml.v3"

	"github.com/reoring/jsonframe/dtype"
)

// ColumnSchema is the recursive type descriptor of a column. Type is set for
// value columns (its Nullable flag carries nullability); Fields holds the
// group fields or the frame element schema.
type ColumnSchema struct {
	Kind     ColumnKind
	Type     dtype.Type
	Fields   *Schema
	Nullable bool
}

// ValueSchema describes a value column.
func ValueSchema(t dtype.Type) ColumnSchema { return ColumnSchema{Kind: ValueKind, Type: t} }

// GroupSchema describes a group column.
func GroupSchema(fields Schema) ColumnSchema { return ColumnSchema{Kind: GroupKind, Fields: &fields} }

// FrameSchema describes a frame column by its element schema.
func FrameSchema(element Schema) ColumnSchema {
	return ColumnSchema{Kind: FrameKind, Fields: &element}
}

func (cs ColumnSchema) fields() Schema {
	if cs.Fields == nil {
		return Schema{}
	}
	return *cs.Fields
}

// AsNullable widens cs so that every row may be absent. Group fields are
// widened recursively.
func (cs ColumnSchema) AsNullable() ColumnSchema {
	switch cs.Kind {
	case ValueKind:
		cs.Type = cs.Type.WithNullable(true)
	case GroupKind:
		var s Schema
		src := cs.fields()
		for i, k := range src.fields.Keys {
			s.add(k, src.fields.Values[i].AsNullable())
		}
		cs.Fields = &s
		cs.Nullable = true
	case FrameKind:
		cs.Nullable = true
	}
	return cs
}

// Equal compares structurally.
func (cs ColumnSchema) Equal(o ColumnSchema) bool {
	if cs.Kind != o.Kind {
		return false
	}
	if cs.Kind == ValueKind {
		return cs.Type.Equal(o.Type)
	}
	return cs.Nullable == o.Nullable && cs.fields().Equal(o.fields())
}

func (cs ColumnSchema) String() string {
	var b strings.Builder
	cs.write(&b)
	return b.String()
}

func (cs ColumnSchema) write(b *strings.Builder) {
	switch cs.Kind {
	case GroupKind:
		cs.fields().write(b)
	case FrameKind:
		b.WriteByte('[')
		cs.fields().write(b)
		b.WriteByte(']')
	default:
		b.WriteString(cs.Type.String())
		return
	}
	if cs.Nullable {
		b.WriteByte('?')
	}
}

// Schema is the ordered field list of one frame level.
type Schema struct {
	fields keylist.List[string, ColumnSchema]
}

// NewSchema builds a schema from parallel slices of names and column schemas.
// A repeated name replaces the earlier field in place.
func NewSchema(names []string, cols []ColumnSchema) Schema {
	var s Schema
	for i, n := range names {
		s.fields.Set(n, cols[i])
	}
	return s
}

func (s *Schema) add(name string, cs ColumnSchema) { s.fields.Set(name, cs) }

// Len returns the number of fields.
func (s Schema) Len() int { return len(s.fields.Keys) }

// Names returns the field names in order.
func (s Schema) Names() []string {
	out := make([]string, len(s.fields.Keys))
	copy(out, s.fields.Keys)
	return out
}

// Field returns the named field.
func (s Schema) Field(name string) (ColumnSchema, bool) {
	if s.fields.Len() == 0 {
		return ColumnSchema{}, false
	}
	return s.fields.AtTry(name)
}

// Equal compares field sets structurally; field order is ignored.
func (s Schema) Equal(o Schema) bool {
	if s.Len() != o.Len() {
		return false
	}
	for i, k := range s.fields.Keys {
		oc, ok := o.Field(k)
		if !ok || !s.fields.Values[i].Equal(oc) {
			return false
		}
	}
	return true
}

func (s Schema) String() string {
	var b strings.Builder
	s.write(&b)
	return b.String()
}

func (s Schema) write(b *strings.Builder) {
	b.WriteByte('{')
	for i, k := range s.fields.Keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		s.fields.Values[i].write(b)
	}
	b.WriteByte('}')
}

// MarshalYAML renders value fields as type names, groups as nested mappings
// and frames as a one-element sequence holding the element mapping.
func (s Schema) MarshalYAML() (any, error) { return s.yamlNode(), nil }

func (s Schema) yamlNode() *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i, k := range s.fields.Keys {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		n.Content = append(n.Content, key, s.fields.Values[i].yamlNode())
	}
	return n
}

// MarshalYAML renders one column schema.
func (cs ColumnSchema) MarshalYAML() (any, error) { return cs.yamlNode(), nil }

func (cs ColumnSchema) yamlNode() *yaml.Node {
	switch cs.Kind {
	case GroupKind:
		n := cs.fields().yamlNode()
		if cs.Nullable {
			n.LineComment = "nullable"
		}
		return n
	case FrameKind:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: []*yaml.Node{cs.fields().yamlNode()}}
		if cs.Nullable {
			n.LineComment = "nullable"
		}
		return n
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: cs.Type.String()}
}
