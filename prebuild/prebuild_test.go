package prebuild

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex00/wetwire-mods-go/basemods"
	"github.com/lex00/wetwire-mods-go/formats"
	"github.com/lex00/wetwire-mods-go/logging"
	"github.com/lex00/wetwire-mods-go/mods"
)

const projectYAML = `name: demo
ios:
  podfileProperties:
    expo.jsEngine: hermes
android:
  gradleProperties:
    hermesEnabled: "true"
`

func newTestRunner(t *testing.T, files map[string]string) (*Runner, afero.Fs, *bytes.Buffer) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0644))
	}
	var buf bytes.Buffer
	return &Runner{Fs: fsys, Logger: logging.New(&buf, false)}, fsys, &buf
}

func TestPrebuildWritesNativeFiles(t *testing.T) {
	r, fsys, logs := newTestRunner(t, map[string]string{
		"/app/mods.yaml":                 projectYAML,
		"/app/android/gradle.properties": "org.gradle.jvmargs=-Xmx2048m\n",
	})

	out, err := r.Prebuild(context.Background(), Options{ProjectDir: "/app"})
	require.NoError(t, err)
	assert.Equal(t, "demo", out.Name)
	assert.Equal(t, "/app", out.Internal.ProjectRoot)

	doc, err := formats.ReadJSON(fsys, "/app/ios/"+basemods.PodfilePropertiesFile)
	require.NoError(t, err)
	assert.Equal(t, "hermes", doc.Get(formats.Key("expo.jsEngine")).String())

	props, err := formats.ReadProperties(fsys, "/app/android/"+basemods.GradlePropertiesFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"org.gradle.jvmargs", "hermesEnabled"}, props.Keys())

	assert.Contains(t, logs.String(), "evaluating mods")
	assert.NotContains(t, logs.String(), "running mod", "debug trace is off by default")
}

func TestPrebuildFromSubdirectory(t *testing.T) {
	r, fsys, _ := newTestRunner(t, map[string]string{
		"/app/mods.yaml": projectYAML,
		"/app/src/.keep": "",
	})

	_, err := r.Prebuild(context.Background(), Options{ProjectDir: "/app/src"})
	require.NoError(t, err)

	exists, err := afero.Exists(fsys, "/app/ios/"+basemods.PodfilePropertiesFile)
	require.NoError(t, err)
	assert.True(t, exists, "native projects live next to the project file")
}

func TestPrebuildPlatformOverride(t *testing.T) {
	r, fsys, _ := newTestRunner(t, map[string]string{"/app/mods.yaml": projectYAML})

	_, err := r.Prebuild(context.Background(), Options{
		ProjectDir: "/app",
		Platforms:  []mods.Platform{mods.PlatformAndroid},
	})
	require.NoError(t, err)

	exists, err := afero.Exists(fsys, "/app/ios/"+basemods.PodfilePropertiesFile)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = afero.Exists(fsys, "/app/android/"+basemods.GradlePropertiesFile)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPrebuildConfigPlatforms(t *testing.T) {
	r, fsys, _ := newTestRunner(t, map[string]string{"/app/mods.yaml": "platforms: [ios]\n" + projectYAML})

	_, err := r.Prebuild(context.Background(), Options{ProjectDir: "/app"})
	require.NoError(t, err)

	exists, err := afero.Exists(fsys, "/app/android/"+basemods.GradlePropertiesFile)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPrebuildVerboseTracesMods(t *testing.T) {
	r, _, logs := newTestRunner(t, map[string]string{"/app/mods.yaml": projectYAML})

	_, err := r.Prebuild(context.Background(), Options{ProjectDir: "/app", Verbose: true})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "running mod")
	assert.Contains(t, logs.String(), "ios.podfileProperties")
}

func TestPrebuildDebugFromConfig(t *testing.T) {
	r, _, logs := newTestRunner(t, map[string]string{"/app/mods.yaml": "debug: true\n" + projectYAML})

	_, err := r.Prebuild(context.Background(), Options{ProjectDir: "/app"})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "running mod")
}

func TestPrebuildReportsStageErrors(t *testing.T) {
	r, _, _ := newTestRunner(t, map[string]string{
		"/app/mods.yaml": projectYAML,
		"/app/ios/" + basemods.PodfilePropertiesFile: "[1, 2]",
	})

	_, err := r.Prebuild(context.Background(), Options{ProjectDir: "/app"})
	require.Error(t, err)

	var stageErr *mods.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, mods.PlatformIOS, stageErr.Platform)
	assert.Contains(t, err.Error(), "[ios.podfileProperties]: withIosPodfilePropertiesBaseMod: ")
}

func TestPrebuildInvalidConfig(t *testing.T) {
	r, _, _ := newTestRunner(t, map[string]string{"/app/mods.yaml": "platforms: [web]\n"})

	_, err := r.Prebuild(context.Background(), Options{ProjectDir: "/app"})
	assert.Error(t, err)
}

func TestPrebuildWithoutConfig(t *testing.T) {
	r, _, _ := newTestRunner(t, nil)

	out, err := r.Prebuild(context.Background(), Options{ProjectDir: "/app"})
	require.NoError(t, err)
	assert.Equal(t, "/app", out.Internal.ProjectRoot)
}

func TestIntrospect(t *testing.T) {
	r, fsys, _ := newTestRunner(t, map[string]string{
		"/app/mods.yaml": projectYAML,
		"/app/ios/" + basemods.PodfilePropertiesFile: `{"newArchEnabled":"true"}`,
	})

	out, err := r.Introspect(context.Background(), Options{ProjectDir: "/app"})
	require.NoError(t, err)

	saved, ok := out.ModResult(mods.PlatformIOS, basemods.ModPodfileProperties)
	require.True(t, ok)
	doc := saved.(formats.JSONDocument)
	assert.Equal(t, "hermes", doc.Get(formats.Key("expo.jsEngine")).String())
	assert.Equal(t, "true", doc.Get("newArchEnabled").String())

	_, ok = out.ModResult(mods.PlatformAndroid, basemods.ModGradleProperties)
	assert.True(t, ok)

	data, err := afero.ReadFile(fsys, "/app/ios/"+basemods.PodfilePropertiesFile)
	require.NoError(t, err)
	assert.Equal(t, `{"newArchEnabled":"true"}`, string(data), "introspection leaves files untouched")

	exists, err := afero.Exists(fsys, "/app/android/"+basemods.GradlePropertiesFile)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestZeroRunner(t *testing.T) {
	r := &Runner{Fs: afero.NewMemMapFs()}
	_, err := r.Prebuild(context.Background(), Options{ProjectDir: "/app"})
	assert.NoError(t, err)
}
