package jsonframe

import (
	"context"
	"errors"
	"io"

	eng "github.com/reoring/jsonframe/internal/engine"
	"github.com/reoring/jsonframe/internal/stream"
	"github.com/reoring/jsonframe/jsonnode"
)

// DecodeDocument reads exactly one JSON value from src, applying the
// enforcement in opts. Trailing content is a parse error.
func DecodeDocument(src Source, opts ...ParseOpt) (jsonnode.Node, error) {
	es := enforce(EngineTokenSource(src), lastParseOpt(opts))
	n, err := eng.DecodeNode(es)
	if err != nil {
		if err == io.EOF {
			return nil, singleIssue(CodeParseError, "empty input")
		}
		return nil, toIssues(err)
	}
	if _, err := es.NextToken(); err != io.EOF {
		if err == nil {
			err = stream.ErrTrailingData
		}
		return nil, toIssues(err)
	}
	return n, nil
}

// decodeRecords collects the records of src. In document mode a top-level
// array contributes its elements; the second result reports that case.
func decodeRecords(ctx context.Context, src eng.TokenSource, mode stream.Mode) ([]jsonnode.Node, bool, error) {
	rr := stream.NewRecordReader(src, mode)
	var records []jsonnode.Node
	for {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		n, err := rr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if n != nil {
			records = append(records, n)
		}
		if err != nil {
			return nil, false, toIssues(err)
		}
	}
	return records, rr.TopLevelArray(), nil
}

// limitInput enforces MaxBytes up front, mirroring the streaming check for
// drivers that cannot report offsets.
func limitInput(r io.Reader, opt ParseOpt) ([]byte, error) {
	if opt.MaxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, opt.MaxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > opt.MaxBytes {
		return nil, singleIssue(CodeTruncated, "max bytes exceeded")
	}
	return data, nil
}
