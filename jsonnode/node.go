// Package jsonnode defines the closed JSON tree consumed by the ingestion
// engine. Object members keep their input order.
package jsonnode

import "slices"

// Kind enumerates the node variants.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// Node is one of Null, Bool, Number, String, Array or *Object.
type Node interface {
	Kind() Kind
	isNode()
}

// Null is the JSON null literal.
type Null struct{}

// Bool is a JSON boolean.
type Bool bool

// Number keeps the literal text of a JSON number so that no precision is lost
// before the engine decides on an element type.
type Number string

// String is a JSON string.
type String string

// Array is a JSON array.
type Array []Node

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Number) Kind() Kind { return KindNumber }
func (String) Kind() Kind { return KindString }
func (Array) Kind() Kind  { return KindArray }

func (Null) isNode()   {}
func (Bool) isNode()   {}
func (Number) isNode() {}
func (String) isNode() {}
func (Array) isNode()  {}

// Member is one name/value pair of an Object.
type Member struct {
	Key   string
	Value Node
}

// Object is a JSON object with ordered members and unique keys.
type Object struct {
	members []Member
	index   map[string]int
}

// NewObject builds an object. A repeated key keeps the position of its first
// occurrence and takes the last value.
func NewObject(members ...Member) *Object {
	o := &Object{index: make(map[string]int, len(members))}
	for _, m := range members {
		o.set(m.Key, m.Value)
	}
	return o
}

func (o *Object) set(key string, v Node) {
	if v == nil {
		v = Null{}
	}
	if i, ok := o.index[key]; ok {
		o.members[i].Value = v
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: v})
}

func (*Object) Kind() Kind { return KindObject }
func (*Object) isNode()    {}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.members)
}

// Keys returns member names in input order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}

// Members returns a copy of the ordered members.
func (o *Object) Members() []Member {
	if o == nil {
		return nil
	}
	return slices.Clone(o.members)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Node, bool) {
	if o == nil {
		return nil, false
	}
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.members[i].Value, true
}

// ObjectBuilder accumulates members for an Object.
type ObjectBuilder struct{ obj *Object }

// NewObjectBuilder returns an empty builder.
func NewObjectBuilder() *ObjectBuilder {
	return &ObjectBuilder{obj: &Object{index: map[string]int{}}}
}

// Set adds or replaces a member.
func (b *ObjectBuilder) Set(key string, v Node) *ObjectBuilder {
	b.obj.set(key, v)
	return b
}

// Has reports whether key was already set.
func (b *ObjectBuilder) Has(key string) bool {
	_, ok := b.obj.index[key]
	return ok
}

// Build returns the object. The builder must not be used afterwards.
func (b *ObjectBuilder) Build() *Object {
	o := b.obj
	b.obj = nil
	return o
}

// IsNull reports whether n is nil or the null literal.
func IsNull(n Node) bool {
	if n == nil {
		return true
	}
	_, ok := n.(Null)
	return ok
}

// Equal compares two trees structurally. Object member order is significant.
func Equal(a, b Node) bool {
	if IsNull(a) || IsNull(b) {
		return IsNull(a) && IsNull(b)
	}
	switch av := a.(type) {
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv, ok := b.(*Object)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for i, m := range av.members {
			bm := bv.members[i]
			if m.Key != bm.Key || !Equal(m.Value, bm.Value) {
				return false
			}
		}
		return true
	}
	return false
}
