package jsonframe

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/reoring/jsonframe/frame"
	"github.com/reoring/jsonframe/internal/infer"
	"github.com/reoring/jsonframe/internal/stream"
	"github.com/reoring/jsonframe/jsonnode"
	yamlsrc "github.com/reoring/jsonframe/source/yaml"
)

// Infer builds a frame with one row per record. Zero records give a frame
// with no rows and no columns.
func Infer(records []jsonnode.Node, opt Options) (*frame.DataFrame, error) {
	if err := opt.validate(); err != nil {
		return nil, err
	}
	df, err := infer.Infer(records, opt.engine())
	if err != nil {
		return nil, toIssues(err)
	}
	return df, nil
}

// InferDocument treats an array document as the record list and any other
// value as a single record. The header applies to array documents only.
func InferDocument(doc jsonnode.Node, opt Options) (*frame.DataFrame, error) {
	if a, ok := doc.(jsonnode.Array); ok {
		return Infer([]jsonnode.Node(a), opt)
	}
	opt.Header = nil
	return Infer([]jsonnode.Node{doc}, opt)
}

// ReadJSON decodes one JSON document from src and infers it as InferDocument
// does. The last ParseOpt wins.
func ReadJSON(ctx context.Context, src Source, opt Options, popts ...ParseOpt) (*frame.DataFrame, error) {
	if err := opt.validate(); err != nil {
		return nil, err
	}
	po := lastParseOpt(popts)
	records, array, err := decodeRecords(ctx, enforce(EngineTokenSource(src), po), stream.Document)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 && !array {
		return nil, singleIssue(CodeParseError, "empty input")
	}
	if !array {
		opt.Header = nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Infer(records, opt)
}

// ReadJSONBytes is ReadJSON over a byte slice using the installed driver.
func ReadJSONBytes(ctx context.Context, b []byte, opt Options, popts ...ParseOpt) (*frame.DataFrame, error) {
	return ReadJSON(ctx, JSONBytes(b), opt, popts...)
}

// ReadJSONReader is ReadJSON over a reader. When MaxBytes is set the size cap
// is checked before decoding.
func ReadJSONReader(ctx context.Context, r io.Reader, opt Options, popts ...ParseOpt) (*frame.DataFrame, error) {
	po := lastParseOpt(popts)
	if po.MaxBytes > 0 {
		data, err := limitInput(r, po)
		if err != nil {
			return nil, toIssues(err)
		}
		return ReadJSON(ctx, JSONBytes(data), opt, popts...)
	}
	return ReadJSON(ctx, JSONReader(r), opt, popts...)
}

// ReadJSONLines reads a stream of concatenated JSON values, one record each,
// such as newline-delimited JSON.
func ReadJSONLines(ctx context.Context, r io.Reader, opt Options, popts ...ParseOpt) (*frame.DataFrame, error) {
	if err := opt.validate(); err != nil {
		return nil, err
	}
	po := lastParseOpt(popts)
	src := JSONReader(r)
	if po.MaxBytes > 0 {
		data, err := limitInput(r, po)
		if err != nil {
			return nil, toIssues(err)
		}
		src = JSONBytes(data)
	}
	records, _, err := decodeRecords(ctx, enforce(EngineTokenSource(src), po), stream.Lines)
	if err != nil {
		return nil, err
	}
	return Infer(records, opt)
}

// ReadYAML reads YAML input. A stream of several documents is a record list;
// a single document is inferred as InferDocument does.
func ReadYAML(ctx context.Context, r io.Reader, opt Options) (*frame.DataFrame, error) {
	if err := opt.validate(); err != nil {
		return nil, err
	}
	docs, err := yamlsrc.Decode(r)
	if err != nil {
		return nil, toIssues(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch len(docs) {
	case 0:
		return nil, singleIssue(CodeParseError, "empty input")
	case 1:
		return InferDocument(docs[0], opt)
	}
	opt.Header = nil
	return Infer(docs, opt)
}

// MustInferJSON infers a JSON literal and panics on error. Intended for tests
// and examples.
func MustInferJSON(s string, opt Options) *frame.DataFrame {
	df, err := ReadJSONReader(context.Background(), bytes.NewReader([]byte(s)), opt)
	if err != nil {
		panic(err)
	}
	return df
}

// IsInvariantViolation reports whether a recovered panic value came from the
// inference engine reaching an impossible state.
func IsInvariantViolation(v any) bool {
	err, ok := v.(error)
	if !ok {
		return false
	}
	var ie *infer.InvariantError
	return errors.As(err, &ie)
}
