package formats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/magiconair/properties"
	"github.com/spf13/afero"
)

// Properties is an ordered set of Java-style key/value properties, such as
// gradle.properties. Values are kept literally; ${} references are not expanded.
// Setters return a copy.
//
// The layout of a parsed file is kept: comments, blank lines and the lines of
// unchanged properties are written back as they were read.
type Properties struct {
	p     *properties.Properties
	lines []propertyLine
}

// propertyLine is one logical line of a parsed file. Key is empty for
// comments and blank lines.
type propertyLine struct {
	raw   string
	key   string
	value string
}

// NewProperties returns an empty property set.
func NewProperties() Properties {
	return Properties{p: newPropertySet()}
}

func newPropertySet() *properties.Properties {
	p := properties.NewProperties()
	p.DisableExpansion = true
	p.WriteSeparator = "="
	return p
}

// ParseProperties parses data in properties format.
func ParseProperties(data []byte) (Properties, error) {
	p, err := loadProperties(data)
	if err != nil {
		return Properties{}, err
	}
	lines, err := splitPropertyLines(string(data))
	if err != nil {
		return Properties{}, err
	}
	return Properties{p: p, lines: lines}, nil
}

func loadProperties(data []byte) (*properties.Properties, error) {
	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadBytes(data)
	if err != nil {
		return nil, err
	}
	p.WriteSeparator = "="
	return p, nil
}

// splitPropertyLines splits data into logical lines, joining lines continued
// with a trailing backslash, and records the property each one defines.
func splitPropertyLines(data string) ([]propertyLine, error) {
	physical := strings.Split(data, "\n")
	if len(physical) > 0 && physical[len(physical)-1] == "" {
		physical = physical[:len(physical)-1]
	}

	var lines []propertyLine
	for i := 0; i < len(physical); i++ {
		raw := physical[i]
		trimmed := strings.TrimLeft(raw, " \t\f")
		if trimmed == "" || trimmed == "\r" || trimmed[0] == '#' || trimmed[0] == '!' {
			lines = append(lines, propertyLine{raw: raw})
			continue
		}
		for continued(raw) && i+1 < len(physical) {
			i++
			raw += "\n" + physical[i]
		}

		p, err := loadProperties([]byte(raw))
		if err != nil {
			return nil, err
		}
		line := propertyLine{raw: raw}
		if keys := p.Keys(); len(keys) == 1 {
			line.key = keys[0]
			line.value, _ = p.Get(line.key)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// continued reports whether a line ends with an unescaped backslash.
func continued(line string) bool {
	line = strings.TrimSuffix(line, "\r")
	n := len(line) - len(strings.TrimRight(line, "\\"))
	return n%2 == 1
}

func (p Properties) props() *properties.Properties {
	if p.p == nil {
		return newPropertySet()
	}
	return p.p
}

func (p Properties) clone() Properties {
	out := Properties{p: newPropertySet(), lines: p.lines}
	src := p.props()
	for _, key := range src.Keys() {
		value, _ := src.Get(key)
		_, _, _ = out.p.Set(key, value)
	}
	return out
}

// Get returns the value of key.
func (p Properties) Get(key string) (string, bool) {
	return p.props().Get(key)
}

// Keys returns the keys in file order.
func (p Properties) Keys() []string {
	return p.props().Keys()
}

// Len returns the number of properties.
func (p Properties) Len() int {
	return p.props().Len()
}

// Set returns a copy of p with key set to value. New keys are appended.
func (p Properties) Set(key, value string) (Properties, error) {
	out := p.clone()
	if _, _, err := out.p.Set(key, value); err != nil {
		return p, fmt.Errorf("failed to set %q: %w", key, err)
	}
	return out, nil
}

// Delete returns a copy of p without key.
func (p Properties) Delete(key string) Properties {
	out := p.clone()
	out.p.Delete(key)
	return out
}

// Map returns the properties as a map.
func (p Properties) Map() map[string]string {
	return p.props().Map()
}

// Bytes returns the properties in file format. Lines read from a file are
// kept unless their property changed or was deleted; new properties are
// appended as key=value.
func (p Properties) Bytes() ([]byte, error) {
	props := p.props()
	var buf bytes.Buffer
	written := make(map[string]bool, props.Len())
	for _, line := range p.lines {
		if line.key == "" {
			buf.WriteString(line.raw)
			buf.WriteByte('\n')
			continue
		}
		if written[line.key] {
			continue
		}
		value, ok := props.Get(line.key)
		if !ok {
			continue
		}
		written[line.key] = true
		if value == line.value {
			buf.WriteString(line.raw)
			buf.WriteByte('\n')
			continue
		}
		if err := writeProperty(&buf, line.key, value); err != nil {
			return nil, err
		}
	}

	for _, key := range props.Keys() {
		if written[key] {
			continue
		}
		value, _ := props.Get(key)
		if err := writeProperty(&buf, key, value); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// writeProperty writes a single escaped key=value line.
func writeProperty(buf *bytes.Buffer, key, value string) error {
	single := newPropertySet()
	if _, _, err := single.Set(key, value); err != nil {
		return err
	}
	_, err := single.Write(buf, properties.UTF8)
	return err
}

// MarshalJSON renders the properties as a JSON object.
func (p Properties) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Map())
}

// MarshalYAML renders the properties as a YAML mapping.
func (p Properties) MarshalYAML() (any, error) {
	return p.Map(), nil
}

// ReadProperties reads the properties file at path. A missing file is an empty set.
func ReadProperties(fsys afero.Fs, path string) (Properties, error) {
	data, found, err := ReadFileIfExists(fsys, path)
	if err != nil || !found {
		return NewProperties(), err
	}
	props, err := ParseProperties(data)
	if err != nil {
		return Properties{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return props, nil
}

// WriteProperties writes props to path.
func WriteProperties(fsys afero.Fs, path string, props Properties) error {
	data, err := props.Bytes()
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return WriteFile(fsys, path, data)
}
