// Package stream reads records out of a token stream one subtree at a time.
package stream

import (
	"errors"
	"io"

	eng "github.com/reoring/jsonframe/internal/engine"
	"github.com/reoring/jsonframe/jsonnode"
)

// Mode selects how top-level values map to records.
type Mode int

const (
	// Document treats the elements of a top-level array as records; any other
	// single top-level value is one record.
	Document Mode = iota
	// Lines treats every top-level value of a concatenated stream as a record.
	Lines
)

// ErrTrailingData reports content after the single value of a document.
var ErrTrailingData = errors.New("stream: unexpected data after top-level value")

// RecordReader yields records from a token source.
type RecordReader struct {
	src     eng.TokenSource
	mode    Mode
	started bool
	inArray bool
	done    bool
	count   int
}

// NewRecordReader returns a reader over src.
func NewRecordReader(src eng.TokenSource, mode Mode) *RecordReader {
	return &RecordReader{src: src, mode: mode}
}

// TopLevelArray reports whether a document started with an array. Valid after
// the first call to Next.
func (r *RecordReader) TopLevelArray() bool { return r.inArray }

// Count returns the number of records produced so far.
func (r *RecordReader) Count() int { return r.count }

// Next returns the next record, or io.EOF once the input is exhausted.
func (r *RecordReader) Next() (jsonnode.Node, error) {
	if r.done {
		return nil, io.EOF
	}
	tok, err := r.src.NextToken()
	if err != nil {
		if err == io.EOF && (r.mode == Lines || !r.started) {
			r.done = true
			return nil, io.EOF
		}
		return nil, unexpected(err)
	}
	if r.mode == Document && !r.started {
		r.started = true
		if tok.Kind == eng.KindBeginArray {
			r.inArray = true
			return r.Next()
		}
		n, err := r.decode(tok)
		if err != nil {
			return nil, err
		}
		r.done = true
		return n, r.expectEOF()
	}
	r.started = true
	if r.inArray && tok.Kind == eng.KindEndArray {
		r.done = true
		return nil, r.finish()
	}
	return r.decode(tok)
}

func (r *RecordReader) decode(first eng.Token) (jsonnode.Node, error) {
	n, err := eng.DecodeNode(NewPreloadedSource(r.src, first))
	if err != nil {
		return nil, unexpected(err)
	}
	r.count++
	return n, nil
}

func (r *RecordReader) finish() error {
	if err := r.expectEOF(); err != nil {
		return err
	}
	return io.EOF
}

func (r *RecordReader) expectEOF() error {
	if _, err := r.src.NextToken(); err != io.EOF {
		if err != nil {
			return err
		}
		return ErrTrailingData
	}
	return nil
}

func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
