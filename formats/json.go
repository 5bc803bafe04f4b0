package formats

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// JSONDocument is an immutable JSON object. Paths use gjson syntax; keys
// containing dots must be escaped with Key.
type JSONDocument struct {
	raw []byte
}

// ParseJSONDocument parses raw as a JSON document. Empty input is an empty object.
func ParseJSONDocument(raw []byte) (JSONDocument, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return EmptyJSONDocument(), nil
	}
	if !gjson.ValidBytes(trimmed) {
		return JSONDocument{}, errors.New("invalid JSON document")
	}
	if !gjson.ParseBytes(trimmed).IsObject() {
		return JSONDocument{}, errors.New("JSON document must be an object")
	}
	return JSONDocument{raw: bytes.Clone(trimmed)}, nil
}

// EmptyJSONDocument returns {}.
func EmptyJSONDocument() JSONDocument {
	return JSONDocument{raw: []byte("{}")}
}

// Key escapes a single object key for use as a path.
func Key(key string) string {
	return gjson.Escape(key)
}

func (d JSONDocument) bytes() []byte {
	if len(d.raw) == 0 {
		return []byte("{}")
	}
	return d.raw
}

// Get returns the value at path.
func (d JSONDocument) Get(path string) gjson.Result {
	return gjson.GetBytes(d.bytes(), path)
}

// Set returns a copy of d with value stored at path.
func (d JSONDocument) Set(path string, value any) (JSONDocument, error) {
	raw, err := sjson.SetBytes(bytes.Clone(d.bytes()), path, value)
	if err != nil {
		return d, fmt.Errorf("failed to set %q: %w", path, err)
	}
	return JSONDocument{raw: raw}, nil
}

// Delete returns a copy of d without the value at path.
func (d JSONDocument) Delete(path string) (JSONDocument, error) {
	raw, err := sjson.DeleteBytes(bytes.Clone(d.bytes()), path)
	if err != nil {
		return d, fmt.Errorf("failed to delete %q: %w", path, err)
	}
	return JSONDocument{raw: raw}, nil
}

// Map returns the top-level object as a map.
func (d JSONDocument) Map() map[string]any {
	m, _ := gjson.ParseBytes(d.bytes()).Value().(map[string]any)
	return m
}

// Bytes returns the document formatted for writing to disk.
func (d JSONDocument) Bytes() []byte {
	return pretty.Pretty(d.bytes())
}

// MarshalJSON returns the compact document.
func (d JSONDocument) MarshalJSON() ([]byte, error) {
	return pretty.Ugly(d.bytes()), nil
}

// MarshalYAML renders the document as a YAML mapping.
func (d JSONDocument) MarshalYAML() (any, error) {
	return d.Map(), nil
}

// ReadJSON reads the JSON document at path. A missing file is an empty document.
func ReadJSON(fsys afero.Fs, path string) (JSONDocument, error) {
	data, found, err := ReadFileIfExists(fsys, path)
	if err != nil || !found {
		return EmptyJSONDocument(), err
	}
	doc, err := ParseJSONDocument(data)
	if err != nil {
		return JSONDocument{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// WriteJSON writes doc to path, pretty-printed.
func WriteJSON(fsys afero.Fs, path string, doc JSONDocument) error {
	return WriteFile(fsys, path, doc.Bytes())
}
