package jsonframe

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/reoring/jsonframe/frame"
	"github.com/reoring/jsonframe/i18n"
	eng "github.com/reoring/jsonframe/internal/engine"
	"github.com/reoring/jsonframe/internal/stream"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeParseError           = eng.CodeParseError
	CodeDuplicateKey         = eng.CodeDuplicateKey
	CodeTruncated            = eng.CodeTruncated
	CodeKeyValuePathMismatch = eng.CodeKeyValuePathMismatch
	CodeColumnNotFound       = "column_not_found"
	CodeInvalidOption        = "invalid_option"
)

// Issue represents a single error entry.
type Issue struct {
	Path    string // JSONPath, for example $["items"][2]["price"].
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints.
	Cause   error  // Optional: underlying error.
	Offset  int64  // Byte offset in the input source (-1 when unknown).
	// Params carries structured parameters (e.g., {"key":"id"}) for i18n and
	// observability.
	Params map[string]any
}

// Issues is a collection of errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. key_value_path_mismatch at $["a"]
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the causes so errors.Is can match, for example,
// frame.ErrColumnNotFound.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// HasCode reports whether any issue carries code.
func (iss Issues) HasCode(code string) bool {
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// IsKeyValuePathMismatch reports whether err came from a non-object record at
// a key-value path.
func IsKeyValuePathMismatch(err error) bool {
	iss, ok := AsIssues(err)
	return ok && iss.HasCode(CodeKeyValuePathMismatch)
}

func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{
			Code:    ie.Code,
			Path:    ie.Path,
			Message: engineMessage(ie.SimpleIssue),
			Offset:  ie.Offset,
			Cause:   err,
		})
	}
	var pe *frame.PathError
	if errors.As(err, &pe) {
		return AppendIssues(nil, Issue{
			Code:    CodeColumnNotFound,
			Path:    pe.Path.String(),
			Message: i18n.T(CodeColumnNotFound, map[string]string{"path": pe.Path.String()}),
			Offset:  -1,
			Cause:   err,
		})
	}
	msg := err.Error()
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, stream.ErrTrailingData) {
		msg = i18n.T(CodeParseError, nil) + ": " + msg
	}
	return AppendIssues(nil, Issue{Code: CodeParseError, Path: "$", Message: msg, Offset: -1, Cause: err})
}

// engineMessage localizes engine issues. Duplicate keys keep the engine text
// since it names the key.
func engineMessage(si eng.SimpleIssue) string {
	switch si.Code {
	case CodeDuplicateKey:
		return si.Message
	case CodeParseError, CodeTruncated:
		return i18n.T(si.Code, nil) + ": " + si.Message
	}
	return i18n.T(si.Code, map[string]string{"path": si.Path})
}

func singleIssue(code, msg string) Issues {
	return AppendIssues(nil, Issue{Code: code, Path: "$", Message: msg, Offset: -1})
}

func invalidOption(detail string) Issues {
	return AppendIssues(nil, Issue{
		Code:    CodeInvalidOption,
		Path:    "$",
		Message: i18n.T(CodeInvalidOption, map[string]string{"detail": detail}),
		Offset:  -1,
	})
}
