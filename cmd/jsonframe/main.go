package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/davecgh/go-spew/spew"
	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/jsonframe"
	"github.com/reoring/jsonframe/arrowschema"
	"github.com/reoring/jsonframe/frame"
	"github.com/reoring/jsonframe/jsonpath"
	"github.com/reoring/jsonframe/jsonschema"
	_ "github.com/reoring/jsonframe/source"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "infer":
		inferCmd(os.Args[2:])
	case "config":
		configCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "jsonframe CLI\n\nUsage:\n  jsonframe infer [-in file] [-format json|ndjson|yaml] [-tactic structured|dynamic] [-kv path]... [-header a,b,c] [-config file] [-out schema|yaml|json|jsonschema|arrow|table|dump] [-v]\n  jsonframe config [-config file]\n\nNotes:\n  - Input defaults to stdin; -kv accepts JSONPath patterns such as $[\"items\"][*][\"labels\"].")
}

// pathList collects repeated -kv flags.
type pathList []jsonpath.Path

func (p *pathList) String() string {
	parts := make([]string, len(*p))
	for i, x := range *p {
		parts[i] = x.String()
	}
	return strings.Join(parts, ",")
}

func (p *pathList) Set(s string) error {
	path, err := jsonpath.Parse(s)
	if err != nil {
		return err
	}
	*p = append(*p, path)
	return nil
}

func inferCmd(args []string) {
	fs := flag.NewFlagSet("infer", flag.ExitOnError)
	var (
		in, format, tactic, header, config, out string
		maxDepth                                int
		maxBytes                                int64
		dupErr, verbose                         bool
		kv                                      pathList
	)
	fs.StringVar(&in, "in", "-", "input file, - for stdin")
	fs.StringVar(&format, "format", "", "input format: json, ndjson or yaml (default from extension)")
	fs.StringVar(&tactic, "tactic", "", "mixed kind tactic: structured or dynamic")
	fs.Var(&kv, "kv", "key-value path pattern (repeatable)")
	fs.StringVar(&header, "header", "", "comma-separated column names for a top-level array of arrays")
	fs.StringVar(&config, "config", "", "YAML options file")
	fs.StringVar(&out, "out", "schema", "output: schema, yaml, json, jsonschema, arrow, table or dump")
	fs.IntVar(&maxDepth, "max-depth", 0, "maximum nesting depth (0 = unlimited)")
	fs.Int64Var(&maxBytes, "max-bytes", 0, "maximum input size in bytes (0 = unlimited)")
	fs.BoolVar(&dupErr, "strict-keys", false, "reject duplicate object keys")
	fs.BoolVar(&verbose, "v", false, "enable debug logs")
	_ = fs.Parse(args)

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := loadConfig(config)
	opt, popt := cfg.Options, cfg.Parse
	opt.Logger = logger
	if tactic != "" {
		if err := opt.Tactic.UnmarshalText([]byte(tactic)); err != nil {
			fatalf("tactic: %v", err)
		}
	}
	opt.KeyValuePaths = append(opt.KeyValuePaths, kv...)
	if header != "" {
		opt.Header = splitCSV(header)
	}
	if maxDepth > 0 {
		popt.MaxDepth = maxDepth
	}
	if maxBytes > 0 {
		popt.MaxBytes = maxBytes
	}
	if dupErr {
		popt.Strictness.OnDuplicateKey = jsonframe.Error
	}
	popt.OnIssue = func(is jsonframe.Issue) {
		logger.Warn(is.Message, "code", is.Code, "path", is.Path)
	}

	r, name := openInput(in)
	defer r.Close()
	if format == "" {
		format = formatFor(name)
	}
	logger.Debug("reading", "input", name, "format", format, "driver", jsonframe.JSONDriverName(), "tactic", opt.Tactic.String())

	ctx := context.Background()
	var (
		df  *frame.DataFrame
		err error
	)
	switch format {
	case "json":
		df, err = jsonframe.ReadJSONReader(ctx, r, opt, popt)
	case "ndjson", "jsonl":
		df, err = jsonframe.ReadJSONLines(ctx, r, opt, popt)
	case "yaml", "yml":
		df, err = jsonframe.ReadYAML(ctx, r, opt)
	default:
		fatalf("unknown format %q", format)
	}
	if err != nil {
		if iss, ok := jsonframe.AsIssues(err); ok {
			for _, it := range iss {
				logger.Error(it.Message, "code", it.Code, "path", it.Path)
			}
			os.Exit(1)
		}
		fatalf("infer: %v", err)
	}
	logger.Debug("inferred", "rows", df.NumRows(), "columns", df.NumCols())
	if err := write(os.Stdout, df, out); err != nil {
		fatalf("write: %v", err)
	}
}

func write(w io.Writer, df *frame.DataFrame, out string) error {
	switch out {
	case "schema":
		_, err := fmt.Fprintln(w, df.Schema())
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(df.Schema()); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		b, err := jsonframe.EncodeJSON(df)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "jsonschema":
		b, err := gojson.MarshalIndent(jsonschema.FromSchema(df.Schema()), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "arrow":
		rec, err := arrowschema.Record(memory.NewGoAllocator(), df)
		if err != nil {
			return err
		}
		defer rec.Release()
		_, err = fmt.Fprintln(w, rec.Schema())
		if err != nil {
			return err
		}
		for i, col := range rec.Columns() {
			if _, err := fmt.Fprintf(w, "%s: %v\n", rec.ColumnName(i), col); err != nil {
				return err
			}
		}
		return nil
	case "table":
		_, err := fmt.Fprintln(w, df)
		return err
	case "dump":
		cfg := spew.ConfigState{Indent: "  ", DisableMethods: false, SortKeys: true, MaxDepth: 6}
		cfg.Fdump(w, df.Schema(), df.Rows())
		return nil
	}
	return fmt.Errorf("unknown output %q", out)
}

func configCmd(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	var config string
	fs.StringVar(&config, "config", "", "YAML options file")
	_ = fs.Parse(args)
	cfg := loadConfig(config)
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		fatalf("config: %v", err)
	}
	_ = enc.Close()
}

func loadConfig(path string) jsonframe.Config {
	if path == "" {
		return jsonframe.Config{}
	}
	f, err := os.Open(path)
	if err != nil {
		fatalf("config: %v", err)
	}
	defer f.Close()
	cfg, err := jsonframe.LoadConfigYAML(f)
	if err != nil {
		fatalf("config %s: %v", path, err)
	}
	return cfg
}

func openInput(in string) (io.ReadCloser, string) {
	if in == "" || in == "-" {
		return io.NopCloser(os.Stdin), "stdin"
	}
	f, err := os.Open(in)
	if err != nil {
		fatalf("open: %v", err)
	}
	return f, in
}

func formatFor(name string) string {
	switch {
	case strings.HasSuffix(name, ".ndjson"), strings.HasSuffix(name, ".jsonl"):
		return "ndjson"
	case strings.HasSuffix(name, ".yaml"), strings.HasSuffix(name, ".yml"):
		return "yaml"
	}
	return "json"
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
