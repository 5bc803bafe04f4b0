package mods

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssertModResults(t *testing.T) {
	valid := &ExportedConfigWithProps{ExportedConfig: ExportedConfig{Mods: ModConfig{}}}

	tests := []struct {
		name     string
		results  any
		wantErr  bool
		snapshot string
	}{
		{name: "valid pointer", results: valid},
		{name: "valid value", results: *valid},
		{name: "nil", results: nil, wantErr: true, snapshot: "null"},
		{name: "typed nil", results: (*ExportedConfigWithProps)(nil), wantErr: true, snapshot: "null"},
		{name: "not a document", results: map[string]int{"x": 1}, wantErr: true, snapshot: `{"x":1}`},
		{name: "string", results: "oops", wantErr: true, snapshot: `"oops"`},
		{
			name:     "missing mods",
			results:  &ExportedConfigWithProps{ExportedConfig: ExportedConfig{Name: "app"}},
			wantErr:  true,
			snapshot: `{"name":"app","modRequest":{"platform":"","modName":""}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AssertModResults(tt.results, PlatformIOS, "plist")
			if !tt.wantErr {
				require.NoError(t, err)
				assert.NotNil(t, got.Mods)
				return
			}

			require.Error(t, err)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, ErrMalformedResult)

			var malformed *MalformedResultError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, PlatformIOS, malformed.Platform)
			assert.Equal(t, "plist", malformed.ModName)
			assert.Equal(t, tt.snapshot, malformed.Snapshot)
			assert.Equal(t,
				"Mod `mods.ios.plist` evaluated to an object that is not a valid project config. Instead got: "+tt.snapshot,
				err.Error())
		})
	}
}

func TestAssertModResultsReturnsSameDocument(t *testing.T) {
	valid := &ExportedConfigWithProps{ExportedConfig: ExportedConfig{Mods: ModConfig{}}}
	got, err := AssertModResults(valid, PlatformAndroid, "manifest")
	require.NoError(t, err)
	assert.Same(t, valid, got)
}
