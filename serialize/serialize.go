// Package serialize renders pipeline values as JSON or YAML, for error
// messages and for introspection output.
package serialize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v3"
)

// Format is an output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat returns the format named by s, ignoring case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (expected json or yaml)", s)
}

// Option configures serialization behavior.
type Option func(*options)

type options struct {
	indent int
	pretty bool
}

// Indent sets the indentation width. Defaults to 2.
func Indent(width int) Option {
	return func(o *options) {
		o.indent = width
	}
}

// Pretty formats JSON output over multiple lines. YAML is always multi-line.
var Pretty Option = func(o *options) {
	o.pretty = true
}

func newOptions(opts []Option) *options {
	o := &options{indent: 2}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ToJSON serializes v to JSON bytes with the given options.
func ToJSON(v any, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if !o.pretty {
		return data, nil
	}
	return pretty.PrettyOptions(data, &pretty.Options{
		Width:  80,
		Prefix: "",
		Indent: strings.Repeat(" ", o.indent),
	}), nil
}

// ToYAML serializes v to YAML bytes with the given options.
func ToYAML(v any, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(o.indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Marshal serializes v in the given format.
func Marshal(v any, format Format, opts ...Option) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ToJSON(v, opts...)
	case FormatYAML:
		return ToYAML(v, opts...)
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

// Snapshot returns a compact, single-line JSON rendering of v for messages.
// Values that cannot be encoded fall back to their Go syntax representation.
func Snapshot(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return string(data)
}
