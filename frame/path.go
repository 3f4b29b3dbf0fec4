package frame

import "strings"

// ColumnPath lists the names from the root frame to a column, crossing zero or
// more groups.
type ColumnPath []string

// ParseColumnPath splits a slash separated path.
func ParseColumnPath(s string) ColumnPath {
	if s == "" {
		return nil
	}
	return ColumnPath(strings.Split(s, "/"))
}

// Append returns a new path with name added.
func (p ColumnPath) Append(name string) ColumnPath {
	out := make(ColumnPath, len(p), len(p)+1)
	copy(out, p)
	return append(out, name)
}

// Parent returns the path without its last name.
func (p ColumnPath) Parent() ColumnPath {
	if len(p) <= 1 {
		return nil
	}
	return p[:len(p)-1 : len(p)-1]
}

// Last returns the final name, or "".
func (p ColumnPath) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Equal compares names.
func (p ColumnPath) Equal(o ColumnPath) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

func (p ColumnPath) String() string { return strings.Join(p, "/") }
