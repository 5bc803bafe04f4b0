package plugins

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex00/wetwire-mods-go/basemods"
	"github.com/lex00/wetwire-mods-go/formats"
	"github.com/lex00/wetwire-mods-go/mods"
)

func TestEmptyPropsRegisterNothing(t *testing.T) {
	cfg := &mods.ExportedConfig{Name: "app"}

	out, err := WithPodfileProperties(cfg, nil)
	require.NoError(t, err)
	assert.Same(t, cfg, out)

	out, err = WithGradleProperties(cfg, map[string]string{})
	require.NoError(t, err)
	assert.Same(t, cfg, out)
}

func TestWithPodfileProperties(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := "/app/ios/" + basemods.PodfilePropertiesFile

	cfg, err := WithPodfileProperties(&mods.ExportedConfig{}, map[string]string{
		"expo.jsEngine":  "hermes",
		"newArchEnabled": "true",
	})
	require.NoError(t, err)

	_, err = basemods.Compile(context.Background(), cfg, basemods.CompileOptions{Fs: fsys, ProjectRoot: "/app"})
	require.NoError(t, err)

	data, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"expo.jsEngine\": \"hermes\",\n  \"newArchEnabled\": \"true\"\n}\n", string(data))
}

func TestWithGradleProperties(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := "/app/android/" + basemods.GradlePropertiesFile
	require.NoError(t, afero.WriteFile(fsys, path, []byte("org.gradle.jvmargs=-Xmx2048m\nandroid.useAndroidX=true\n"), 0644))

	cfg, err := WithGradleProperties(&mods.ExportedConfig{}, map[string]string{
		"org.gradle.jvmargs": "-Xmx4096m",
		"hermesEnabled":      "true",
	})
	require.NoError(t, err)

	_, err = basemods.Compile(context.Background(), cfg, basemods.CompileOptions{Fs: fsys, ProjectRoot: "/app"})
	require.NoError(t, err)

	props, err := formats.ReadProperties(fsys, path)
	require.NoError(t, err)
	assert.Equal(t, []string{"org.gradle.jvmargs", "android.useAndroidX", "hermesEnabled"}, props.Keys())
	v, _ := props.Get("org.gradle.jvmargs")
	assert.Equal(t, "-Xmx4096m", v)
}

func TestPluginsComposeOnSameMod(t *testing.T) {
	fsys := afero.NewMemMapFs()

	cfg, err := WithGradleProperties(&mods.ExportedConfig{}, map[string]string{"a": "1", "b": "1"})
	require.NoError(t, err)
	cfg, err = WithGradleProperties(cfg, map[string]string{"b": "2"})
	require.NoError(t, err)

	out, err := basemods.Compile(context.Background(), cfg, basemods.CompileOptions{
		Fs:          fsys,
		ProjectRoot: "/app",
		Options:     []mods.Option{mods.SaveToInternal(true)},
	})
	require.NoError(t, err)

	saved, ok := out.ModResult(mods.PlatformAndroid, basemods.ModGradleProperties)
	require.True(t, ok)
	// The last registered plugin runs first, so the earlier one has the final word.
	assert.Equal(t, map[string]string{"a": "1", "b": "1"}, saved.(formats.Properties).Map())
}

func TestPluginRejectsWrongWorkingState(t *testing.T) {
	cfg, err := WithPodfileProperties(&mods.ExportedConfig{}, map[string]string{"k": "v"})
	require.NoError(t, err)

	mod := cfg.Mods.Get(mods.PlatformIOS, basemods.ModPodfileProperties)
	require.NotNil(t, mod)

	_, err = mod.Run(context.Background(), &mods.ExportedConfigWithProps{
		ExportedConfig: *cfg,
		ModResults:     "not a document",
		ModRequest:     mods.ModRequest{Platform: mods.PlatformIOS, ModName: basemods.ModPodfileProperties},
	})
	var typeErr *mods.ModResultsTypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestWithGradlePropertiesKeepsComments(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := "/app/android/" + basemods.GradlePropertiesFile
	original := "# Project-wide Gradle settings.\n\n# JVM args\norg.gradle.jvmargs=-Xmx2048m -XX:MaxMetaspaceSize=512m\nandroid.useAndroidX=true\n"
	require.NoError(t, afero.WriteFile(fsys, path, []byte(original), 0644))

	cfg, err := WithGradleProperties(&mods.ExportedConfig{}, map[string]string{"hermesEnabled": "true"})
	require.NoError(t, err)

	_, err = basemods.Compile(context.Background(), cfg, basemods.CompileOptions{Fs: fsys, ProjectRoot: "/app"})
	require.NoError(t, err)

	data, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	assert.Equal(t, original+"hermesEnabled=true\n", string(data))
}
