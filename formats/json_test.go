package formats

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseJSONDocument(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"object", `{"a":1}`, false},
		{"empty input", "  \n", false},
		{"invalid", `{"a":`, true},
		{"array", `[1,2]`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSONDocument([]byte(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJSONDocumentSetIsCopy(t *testing.T) {
	doc, err := ParseJSONDocument([]byte(`{"expo.jsEngine":"jsc"}`))
	require.NoError(t, err)

	updated, err := doc.Set(Key("expo.jsEngine"), "hermes")
	require.NoError(t, err)

	assert.Equal(t, "jsc", doc.Get(Key("expo.jsEngine")).String())
	assert.Equal(t, "hermes", updated.Get(Key("expo.jsEngine")).String())
}

func TestJSONDocumentNestedAndDelete(t *testing.T) {
	doc, err := EmptyJSONDocument().Set("ios.deploymentTarget", "15.1")
	require.NoError(t, err)
	doc, err = doc.Set("ios.useFrameworks", "static")
	require.NoError(t, err)

	want := map[string]any{"ios": map[string]any{"deploymentTarget": "15.1", "useFrameworks": "static"}}
	if diff := cmp.Diff(want, doc.Map()); diff != "" {
		t.Errorf("Map() mismatch (-want +got):\n%s", diff)
	}

	doc, err = doc.Delete("ios.useFrameworks")
	require.NoError(t, err)
	assert.False(t, doc.Get("ios.useFrameworks").Exists())
}

func TestJSONDocumentZeroValue(t *testing.T) {
	var doc JSONDocument
	assert.Empty(t, doc.Map())

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestJSONDocumentMarshalYAML(t *testing.T) {
	doc, err := ParseJSONDocument([]byte(`{"b":"2","a":"1"}`))
	require.NoError(t, err)

	data, err := yaml.Marshal(map[string]any{"doc": doc})
	require.NoError(t, err)
	assert.Equal(t, "doc:\n    a: \"1\"\n    b: \"2\"\n", string(data))
}

func TestReadWriteJSON(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := "/project/ios/Podfile.properties.json"

	doc, err := ReadJSON(fsys, path)
	require.NoError(t, err)
	assert.Empty(t, doc.Map(), "missing file reads as empty document")

	doc, err = doc.Set(Key("expo.jsEngine"), "hermes")
	require.NoError(t, err)
	require.NoError(t, WriteJSON(fsys, path, doc))

	data, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"expo.jsEngine\": \"hermes\"\n}\n", string(data))

	back, err := ReadJSON(fsys, path)
	require.NoError(t, err)
	assert.Equal(t, "hermes", back.Get(Key("expo.jsEngine")).String())
}

func TestReadJSONInvalid(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/bad.json", []byte("{nope"), 0644))

	_, err := ReadJSON(fsys, "/bad.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/bad.json")
}
