// Package jsonschema projects inferred frame schemas onto JSON Schema,
// describing the records the frame encodes to.
package jsonschema

import (
	"github.com/reoring/jsonframe/dtype"
	"github.com/reoring/jsonframe/frame"
)

// Draft is the dialect written by FromSchema.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	SchemaURI string `json:"$schema,omitempty" yaml:"$schema,omitempty"`
	// Core
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required             []string           `json:"required,omitempty" yaml:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty" yaml:"items,omitempty"`

	// Union
	AnyOf []*Schema `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`
}

// FromSchema describes the array Encode produces for a frame with schema s.
func FromSchema(s frame.Schema) *Schema {
	return &Schema{SchemaURI: Draft, Type: "array", Items: object(s)}
}

// FromColumnSchema describes the cells of one column.
func FromColumnSchema(cs frame.ColumnSchema) *Schema {
	var out *Schema
	switch cs.Kind {
	case frame.GroupKind:
		out = object(fieldsOf(cs))
	case frame.FrameKind:
		out = &Schema{Type: "array", Items: object(fieldsOf(cs))}
	default:
		return FromType(cs.Type)
	}
	if cs.Nullable {
		return nullable(out)
	}
	return out
}

// FromType describes one element of a value column. NaN is written as the
// string "NaN", so floating kinds also admit that string.
func FromType(t dtype.Type) *Schema {
	var out *Schema
	switch t.Kind {
	case dtype.Nothing:
		return &Schema{Type: "null"}
	case dtype.Bool:
		out = &Schema{Type: "boolean"}
	case dtype.Int:
		out = &Schema{Type: "integer", Format: "int32"}
	case dtype.Long:
		out = &Schema{Type: "integer", Format: "int64"}
	case dtype.BigInteger:
		out = &Schema{Type: "integer"}
	case dtype.Float:
		out = &Schema{AnyOf: []*Schema{{Type: "number", Format: "float"}, {Type: "string"}}}
	case dtype.Double:
		out = &Schema{AnyOf: []*Schema{{Type: "number", Format: "double"}, {Type: "string"}}}
	case dtype.BigDecimal:
		out = &Schema{Type: "number"}
	case dtype.String:
		out = &Schema{Type: "string"}
	case dtype.List:
		out = &Schema{Type: "array", Items: FromType(t.Element())}
	case dtype.Row:
		out = &Schema{Type: "object"}
	case dtype.Frame:
		out = &Schema{Type: "array", Items: &Schema{Type: "object"}}
	default:
		return &Schema{}
	}
	if t.Nullable {
		return nullable(out)
	}
	return out
}

func object(s frame.Schema) *Schema {
	out := &Schema{Type: "object", Properties: make(map[string]*Schema, s.Len())}
	for _, name := range s.Names() {
		cs, _ := s.Field(name)
		out.Properties[name] = FromColumnSchema(cs)
		if !nullableColumn(cs) {
			out.Required = append(out.Required, name)
		}
	}
	return out
}

func fieldsOf(cs frame.ColumnSchema) frame.Schema {
	if cs.Fields == nil {
		return frame.Schema{}
	}
	return *cs.Fields
}

func nullableColumn(cs frame.ColumnSchema) bool {
	if cs.Kind == frame.ValueKind {
		return cs.Type.Nullable || cs.Type.Kind == dtype.Nothing
	}
	return cs.Nullable
}

func nullable(s *Schema) *Schema {
	return &Schema{AnyOf: []*Schema{s, {Type: "null"}}}
}
