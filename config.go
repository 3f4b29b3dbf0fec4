package jsonframe

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// Config is the file form of Options plus decoding limits.
//
//	tactic: dynamic
//	keyValuePaths: ['$["labels"]', '$["items"][*]["attrs"]']
//	header: [a, b, c]
//	parse:
//	  maxDepth: 64
//	  strictness: {onDuplicateKey: error}
type Config struct {
	Options `yaml:",inline"`
	Parse   ParseOpt `yaml:"parse"`
}

// LoadConfigYAML decodes a Config. Unknown keys are rejected and an empty
// document yields the zero Config.
func LoadConfigYAML(r io.Reader) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, invalidOption(err.Error())
	}
	if err := cfg.Options.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOptionsYAML decodes Options from YAML, ignoring the parse section.
func LoadOptionsYAML(r io.Reader) (Options, error) {
	cfg, err := LoadConfigYAML(r)
	if err != nil {
		return Options{}, err
	}
	return cfg.Options, nil
}
