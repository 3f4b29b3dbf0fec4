// Package json adapts encoding/json's streaming decoder to the engine token
// model.
package json

import (
	"bytes"
	"encoding/json"
	"io"

	eng "github.com/reoring/jsonframe/internal/engine"
)

// level tracks one open container; wantKey is meaningful for objects only.
type level struct {
	object  bool
	wantKey bool
}

type jsonSource struct {
	dec        *json.Decoder
	stack      []level
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON. The
// stream may hold several top-level values.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec, lastOffset: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *jsonSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()
	at := s.lastOffset

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, level{object: true, wantKey: true})
			return eng.Token{Kind: eng.KindBeginObject, Offset: at}, nil
		case '[':
			s.stack = append(s.stack, level{})
			return eng.Token{Kind: eng.KindBeginArray, Offset: at}, nil
		case '}':
			s.pop()
			return eng.Token{Kind: eng.KindEndObject, Offset: at}, nil
		default:
			s.pop()
			return eng.Token{Kind: eng.KindEndArray, Offset: at}, nil
		}
	case string:
		if n := len(s.stack); n > 0 && s.stack[n-1].object && s.stack[n-1].wantKey {
			s.stack[n-1].wantKey = false
			return eng.Token{Kind: eng.KindKey, String: v, Offset: at}, nil
		}
		s.valueDone()
		return eng.Token{Kind: eng.KindString, String: v, Offset: at}, nil
	case json.Number:
		s.valueDone()
		return eng.Token{Kind: eng.KindNumber, Number: v.String(), Offset: at}, nil
	case bool:
		s.valueDone()
		return eng.Token{Kind: eng.KindBool, Bool: v, Offset: at}, nil
	}
	s.valueDone()
	return eng.Token{Kind: eng.KindNull, Offset: at}, nil
}

func (s *jsonSource) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.valueDone()
}

func (s *jsonSource) valueDone() {
	if n := len(s.stack); n > 0 && s.stack[n-1].object {
		s.stack[n-1].wantKey = true
	}
}

func (s *jsonSource) Location() int64 { return s.lastOffset }
