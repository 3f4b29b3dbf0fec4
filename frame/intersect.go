package frame

import "github.com/reoring/jsonframe/dtype"

// IntersectSchemas computes one schema covering every operand. The field set
// is the union of operand fields in first-seen order. A field present in all
// operands with one kind is unified structurally; a field missing from some
// operand is widened to nullable, and a field whose kind differs between
// operands becomes a nullable Any value.
func IntersectSchemas(schemas ...Schema) Schema {
	var out Schema
	if len(schemas) == 0 {
		return out
	}
	var names []string
	seen := map[string]bool{}
	for _, s := range schemas {
		for _, k := range s.fields.Keys {
			if !seen[k] {
				seen[k] = true
				names = append(names, k)
			}
		}
	}
	for _, name := range names {
		present := make([]ColumnSchema, 0, len(schemas))
		for _, s := range schemas {
			if cs, ok := s.Field(name); ok {
				present = append(present, cs)
			}
		}
		cs := IntersectColumnSchemas(present...)
		if len(present) < len(schemas) {
			cs = cs.AsNullable()
		}
		out.add(name, cs)
	}
	return out
}

// IntersectColumnSchemas unifies schemas of one column seen in several frames.
func IntersectColumnSchemas(cols ...ColumnSchema) ColumnSchema {
	if len(cols) == 0 {
		return ValueSchema(dtype.NullableOf(dtype.Nothing))
	}
	kind := cols[0].Kind
	nullable := false
	for _, c := range cols {
		if c.Kind != kind {
			return ValueSchema(dtype.NullableOf(dtype.Any))
		}
		nullable = nullable || c.Nullable
	}
	switch kind {
	case GroupKind, FrameKind:
		fields := make([]Schema, len(cols))
		for i, c := range cols {
			fields[i] = c.fields()
		}
		s := IntersectSchemas(fields...)
		return ColumnSchema{Kind: kind, Fields: &s, Nullable: nullable}
	}
	types := make([]dtype.Type, len(cols))
	for i, c := range cols {
		types[i] = c.Type
	}
	return ValueSchema(dtype.CommonType(types...))
}
