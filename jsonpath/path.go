// Package jsonpath models the locations visited while inferring a frame from
// a JSON tree, and the wildcard patterns matched against them.
//
// Paths render in bracket notation, for example $["a"][*]["b"]. Parse also
// accepts dot notation ($.a[*].b) and the key wildcard $.a.*.
package jsonpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SegmentKind enumerates path segment variants.
type SegmentKind int

const (
	// SegKey selects an object member by name.
	SegKey SegmentKind = iota
	// SegIndex selects one array element.
	SegIndex
	// SegAnyIndex stands for every element of an array.
	SegAnyIndex
	// SegAnyKey stands for every member of an object. Only valid in patterns.
	SegAnyKey
)

// Segment is one step of a Path.
type Segment struct {
	Kind  SegmentKind
	Key   string
	Index int
}

func (s Segment) String() string {
	switch s.Kind {
	case SegKey:
		return "[" + strconv.Quote(s.Key) + "]"
	case SegIndex:
		return "[" + strconv.Itoa(s.Index) + "]"
	case SegAnyIndex:
		return "[*]"
	case SegAnyKey:
		return ".*"
	}
	return "?"
}

// Path is an immutable sequence of segments starting at the document root.
// The zero value is the root path.
type Path struct {
	segs []Segment
}

// Root returns the root path "$".
func Root() Path { return Path{} }

// Of builds a path of member names.
func Of(keys ...string) Path {
	p := Root()
	for _, k := range keys {
		p = p.Append(k)
	}
	return p
}

func (p Path) with(s Segment) Path {
	segs := make([]Segment, len(p.segs), len(p.segs)+1)
	copy(segs, p.segs)
	return Path{segs: append(segs, s)}
}

// Append returns p extended by an object member.
func (p Path) Append(key string) Path { return p.with(Segment{Kind: SegKey, Key: key}) }

// AppendIndex returns p extended by a concrete array index.
func (p Path) AppendIndex(i int) Path { return p.with(Segment{Kind: SegIndex, Index: i}) }

// AppendWildcard returns p extended by [*].
func (p Path) AppendWildcard() Path { return p.with(Segment{Kind: SegAnyIndex}) }

// AppendAnyKey returns p extended by the key wildcard.
func (p Path) AppendAnyKey() Path { return p.with(Segment{Kind: SegAnyKey}) }

// ReplaceLastWildcardWithIndex swaps the last [*] for [i]. Paths without a
// wildcard are returned unchanged.
func (p Path) ReplaceLastWildcardWithIndex(i int) Path {
	for j := len(p.segs) - 1; j >= 0; j-- {
		if p.segs[j].Kind == SegAnyIndex {
			segs := make([]Segment, len(p.segs))
			copy(segs, p.segs)
			segs[j] = Segment{Kind: SegIndex, Index: i}
			return Path{segs: segs}
		}
	}
	return p
}

// Len returns the number of segments.
func (p Path) Len() int { return len(p.segs) }

// Segments returns a copy of the segments.
func (p Path) Segments() []Segment {
	out := make([]Segment, len(p.segs))
	copy(out, p.segs)
	return out
}

// IsRoot reports whether p has no segments.
func (p Path) IsRoot() bool { return len(p.segs) == 0 }

func (p Path) String() string {
	var b strings.Builder
	b.WriteByte('$')
	for _, s := range p.segs {
		b.WriteString(s.String())
	}
	return b.String()
}

// Equal compares segment by segment.
func (p Path) Equal(o Path) bool {
	if len(p.segs) != len(o.segs) {
		return false
	}
	for i := range p.segs {
		if p.segs[i] != o.segs[i] {
			return false
		}
	}
	return true
}

// Matches reports whether the concrete path p is covered by pattern. [*] in
// the pattern matches any index, .* matches any member name.
func (p Path) Matches(pattern Path) bool {
	if len(p.segs) != len(pattern.segs) {
		return false
	}
	for i, want := range pattern.segs {
		got := p.segs[i]
		switch want.Kind {
		case SegAnyIndex:
			if got.Kind != SegIndex && got.Kind != SegAnyIndex {
				return false
			}
		case SegAnyKey:
			if got.Kind != SegKey {
				return false
			}
		default:
			if got != want {
				return false
			}
		}
	}
	return true
}

// MatchesAny reports whether any pattern covers p.
func (p Path) MatchesAny(patterns []Path) bool {
	for _, pat := range patterns {
		if p.Matches(pat) {
			return true
		}
	}
	return false
}

// ErrSyntax is wrapped by every Parse failure.
var ErrSyntax = errors.New("jsonpath: invalid path")

// Parse reads a path in bracket or dot notation. The leading $ is optional.
func Parse(s string) (Path, error) {
	in := strings.TrimSpace(s)
	in = strings.TrimPrefix(in, "$")
	p := Root()
	for len(in) > 0 {
		switch in[0] {
		case '.':
			in = in[1:]
			if strings.HasPrefix(in, "*") {
				p = p.AppendAnyKey()
				in = in[1:]
				continue
			}
			end := strings.IndexAny(in, ".[")
			if end < 0 {
				end = len(in)
			}
			if end == 0 {
				return Path{}, fmt.Errorf("%w %q: empty member name", ErrSyntax, s)
			}
			p = p.Append(in[:end])
			in = in[end:]
		case '[':
			seg, rest, err := parseBracket(in)
			if err != nil {
				return Path{}, fmt.Errorf("%w %q: %v", ErrSyntax, s, err)
			}
			p = p.with(seg)
			in = rest
		default:
			return Path{}, fmt.Errorf("%w %q: unexpected %q", ErrSyntax, s, in[0])
		}
	}
	return p, nil
}

func parseBracket(in string) (Segment, string, error) {
	body := in[1:]
	if strings.HasPrefix(body, "*]") {
		return Segment{Kind: SegAnyIndex}, body[2:], nil
	}
	if len(body) > 0 && (body[0] == '"' || body[0] == '\'') {
		q := body[0]
		i := 1
		for i < len(body) && body[i] != q {
			if body[i] == '\\' {
				i++
			}
			i++
		}
		if i >= len(body) || i+1 >= len(body) || body[i+1] != ']' {
			return Segment{}, "", errors.New("unterminated quoted name")
		}
		lit := body[:i+1]
		if q == '\'' {
			lit = `"` + strings.ReplaceAll(lit[1:len(lit)-1], `"`, `\"`) + `"`
		}
		key, err := strconv.Unquote(lit)
		if err != nil {
			return Segment{}, "", err
		}
		return Segment{Kind: SegKey, Key: key}, body[i+2:], nil
	}
	end := strings.IndexByte(body, ']')
	if end < 0 {
		return Segment{}, "", errors.New("missing ]")
	}
	n, err := strconv.Atoi(body[:end])
	if err != nil || n < 0 {
		return Segment{}, "", fmt.Errorf("bad index %q", body[:end])
	}
	return Segment{Kind: SegIndex, Index: n}, body[end+1:], nil
}

// MustParse is Parse that panics on error. Intended for literals.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// MarshalText renders the bracket form.
func (p Path) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText parses either notation.
func (p *Path) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
