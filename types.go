package jsonframe

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/reoring/jsonframe/internal/infer"
	"github.com/reoring/jsonframe/jsonpath"
)

// Tactic decides how values of different JSON kinds found at one path are
// combined into columns.
type Tactic int

const (
	// Structured keeps every kind in its own column: object members, then a
	// value column for scalars and an array column for arrays.
	Structured Tactic = iota
	// Dynamic keeps mixed kinds together in one column of type Any.
	Dynamic
)

func (t Tactic) String() string {
	switch t {
	case Structured:
		return "structured"
	case Dynamic:
		return "dynamic"
	}
	return fmt.Sprintf("Tactic(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t Tactic) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText accepts "structured" and "dynamic" in any case.
func (t *Tactic) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "", "structured":
		*t = Structured
	case "dynamic":
		*t = Dynamic
	default:
		return fmt.Errorf("unknown tactic %q", string(b))
	}
	return nil
}

func (t Tactic) engine() infer.Tactic {
	if t == Dynamic {
		return infer.Dynamic
	}
	return infer.Structured
}

// Options configures inference.
type Options struct {
	Tactic Tactic `yaml:"tactic"`
	// KeyValuePaths lists patterns whose objects become key/value frames
	// instead of groups. [*] matches any array index.
	KeyValuePaths []jsonpath.Path `yaml:"keyValuePaths"`
	// Header names the columns of a top-level array of arrays.
	Header []string `yaml:"header"`
	// Logger receives Debug records about inference decisions. Nil discards.
	Logger *slog.Logger `yaml:"-"`
}

func (o Options) validate() error {
	if o.Tactic != Structured && o.Tactic != Dynamic {
		return invalidOption(fmt.Sprintf("tactic %d", int(o.Tactic)))
	}
	seen := make(map[string]struct{}, len(o.Header))
	for _, h := range o.Header {
		if h == "" {
			return invalidOption("empty header name")
		}
		if _, dup := seen[h]; dup {
			return invalidOption(fmt.Sprintf("duplicate header name %q", h))
		}
		seen[h] = struct{}{}
	}
	return nil
}

func (o Options) engine() infer.Options {
	return infer.Options{
		Tactic:        o.Tactic.engine(),
		KeyValuePaths: o.KeyValuePaths,
		Header:        o.Header,
		Logger:        o.Logger,
	}
}

// Strictness configures enforcement for duplicate keys.
type Strictness struct {
	OnDuplicateKey Severity `yaml:"onDuplicateKey"` // Warn or Error (duplicate JSON keys).
}

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

func (s Severity) String() string {
	switch s {
	case Warn:
		return "warn"
	case Error:
		return "error"
	}
	return "ignore"
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText accepts ignore, warn and error.
func (s *Severity) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "", "ignore":
		*s = Ignore
	case "warn":
		*s = Warn
	case "error":
		*s = Error
	default:
		return fmt.Errorf("unknown severity %q", string(b))
	}
	return nil
}

// ParseOpt bundles decoding options.
type ParseOpt struct {
	Strictness Strictness `yaml:"strictness"`
	MaxDepth   int        `yaml:"maxDepth"`
	MaxBytes   int64      `yaml:"maxBytes"`
	FailFast   bool       `yaml:"failFast"`
	// OnIssue receives non-fatal issues such as duplicate key warnings.
	OnIssue func(Issue) `yaml:"-"`
}

func lastParseOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}
